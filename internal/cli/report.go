// Package cli is the canteiro-report command tree: run any report over a YAML snapshot
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"canteiro/internal/adapters/snapshot"
	"canteiro/internal/platform/config"
	perr "canteiro/internal/platform/errors"
	"canteiro/internal/platform/logger"
	"canteiro/internal/services/api/reports/domain"
	"canteiro/internal/services/api/reports/engine"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// flags shared by every report command
type reportFlags struct {
	snapshot   string
	org        string
	league     string
	project    string
	sector     string
	kaizenType string
	limit      int
}

// NewRootCmd builds the command tree; output goes to cmd.OutOrStdout
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "canteiro-report",
		Short: "Compute kaizen and task reports from a snapshot file",
		Long: `Compute kaizen and task reports from a YAML snapshot of one organization.

Examples:
  canteiro-report list
  canteiro-report kaizen-counters --snapshot org.yaml --org 9d3f6a1e-2b4c-4d8e-9f0a-1b2c3d4e5f60 --league L1
  canteiro-report top-authors --snapshot org.yaml --org 9d3f6a1e-2b4c-4d8e-9f0a-1b2c3d4e5f60 --project P1 --limit 5`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var f reportFlags
	pf := root.PersistentFlags()
	pf.StringVar(&f.snapshot, "snapshot", "", "snapshot YAML file")
	pf.StringVar(&f.org, "org", "", "organization id (uuid)")
	pf.StringVar(&f.league, "league", "", "league id")
	pf.StringVar(&f.project, "project", "", "project id; overrides --league")
	pf.StringVar(&f.sector, "sector", "", "only kaizens whose author is in this sector")
	pf.StringVar(&f.kaizenType, "kaizen-type", "", "kaizen type for adherence-count")
	pf.IntVar(&f.limit, "limit", 0, "row cap for ranking reports; 0 uses REPORTS_DEFAULT_LIMIT")

	root.AddCommand(listCmd())
	for _, r := range engine.Catalog() {
		root.AddCommand(reportCmd(r, &f))
	}
	return root
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, r := range engine.Catalog() {
				fmt.Fprintf(tw, "%s\t%s\n", r.Name, r.Summary)
			}
			return tw.Flush()
		},
	}
}

func reportCmd(r engine.Report, f *reportFlags) *cobra.Command {
	return &cobra.Command{
		Use:   r.Name,
		Short: r.Summary,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), r, *f)
		},
	}
}

func run(ctx context.Context, out io.Writer, r engine.Report, f reportFlags) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if f.snapshot == "" {
		return perr.WithField(perr.InvalidArgf("--snapshot is required"), "snapshot")
	}
	if _, err := uuid.Parse(f.org); err != nil {
		return perr.WithField(perr.InvalidArgf("--org must be a uuid, got %q", f.org), "org")
	}
	if f.limit < 0 {
		return perr.WithField(perr.InvalidArgf("--limit must be at least 0"), "limit")
	}

	snap, err := snapshot.Load(f.snapshot)
	if err != nil {
		return err
	}
	eng := engine.FromConfig(config.New().Prefix("REPORTS_"))
	params := engine.Params{
		Query: domain.Query{
			OrganizationID: f.org,
			LeagueID:       f.league,
			ProjectID:      f.project,
			SectorID:       f.sector,
		},
		KaizenTypeID: f.kaizenType,
		Limit:        f.limit,
	}

	logger.C(ctx).Debug().Str("report", r.Name).Str("snapshot", f.snapshot).Msg("running report")
	res, err := r.Run(ctx, eng, snap, params)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// ExitCode maps an error to a process exit code
func ExitCode(err error) int {
	switch perr.CodeOf(err) {
	case perr.ErrorCodeInvalidArgument, perr.ErrorCodeValidation, perr.ErrorCodeDuplicateKey:
		return 2
	case perr.ErrorCodeNotFound:
		return 3
	default:
		return 1
	}
}
