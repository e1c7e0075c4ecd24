// Package snapshot is an in-memory report source loaded from YAML
// a snapshot holds the records of one organization
package snapshot

import (
	"context"
	"io"
	"os"
	"slices"

	"canteiro/internal/core/records"
	perr "canteiro/internal/platform/errors"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Snapshot is a frozen copy of an organization's records
type Snapshot struct {
	OrganizationID string               `yaml:"organization_id"`
	Leagues        []records.League     `yaml:"leagues"`
	Projects       []records.Project    `yaml:"projects"`
	Games          []records.Game       `yaml:"games"`
	Kaizens        []records.Kaizen     `yaml:"kaizens"`
	Tasks          []records.Task       `yaml:"tasks"`
	KaizenTypes    []records.KaizenType `yaml:"kaizen_types"`
	KPIs           []records.KPI        `yaml:"kpis"`
	Teams          []records.Team       `yaml:"teams"`
	Users          []records.User       `yaml:"users"`
	Members        []records.Member     `yaml:"members"`
}

// Decode reads a snapshot document and validates it
func Decode(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return nil, perr.InvalidArgf("snapshot: empty document")
		}
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "snapshot: decode")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load opens and decodes a snapshot file
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "snapshot: open %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Validate checks the organization id and that record ids are unique per kind
func (s *Snapshot) Validate() error {
	if _, err := uuid.Parse(s.OrganizationID); err != nil {
		return perr.WithField(perr.InvalidArgf("snapshot: organization_id %q is not a uuid", s.OrganizationID), "organization_id")
	}
	checks := []struct {
		kind string
		ids  []string
	}{
		{"league", ids(s.Leagues, func(l records.League) string { return l.ID })},
		{"project", ids(s.Projects, func(p records.Project) string { return p.ID })},
		{"game", ids(s.Games, func(g records.Game) string { return g.ID })},
		{"kaizen", ids(s.Kaizens, func(k records.Kaizen) string { return k.ID })},
		{"task", ids(s.Tasks, func(t records.Task) string { return t.ID })},
		{"member", ids(s.Members, func(m records.Member) string { return m.UserID })},
	}
	for _, c := range checks {
		seen := make(map[string]struct{}, len(c.ids))
		for _, id := range c.ids {
			if id == "" {
				return perr.InvalidArgf("snapshot: %s with empty id", c.kind)
			}
			if _, dup := seen[id]; dup {
				return perr.DuplicateKeyf("snapshot: duplicate %s id %s", c.kind, id)
			}
			seen[id] = struct{}{}
		}
	}
	return nil
}

func ids[T any](xs []T, id func(T) string) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		out = append(out, id(x))
	}
	return out
}

func pick[T any](xs []T, keep func(T) bool) []T {
	out := make([]T, 0, len(xs))
	for _, x := range xs {
		if keep(x) {
			out = append(out, x)
		}
	}
	return out
}

// other organizations see nothing
func (s *Snapshot) owns(organizationID string) bool { return organizationID == s.OrganizationID }

// GetLeague returns the league or a not found error
func (s *Snapshot) GetLeague(ctx context.Context, leagueID string) (records.League, error) {
	for _, l := range s.Leagues {
		if l.ID == leagueID {
			return l, nil
		}
	}
	return records.League{}, perr.NotFoundf("league %s not found", leagueID)
}

func (s *Snapshot) ListProjectsByActiveGame(ctx context.Context, organizationID, gameID string) ([]string, error) {
	if !s.owns(organizationID) {
		return nil, nil
	}
	var out []string
	for _, p := range s.Projects {
		if p.ActiveGameID != nil && *p.ActiveGameID == gameID {
			out = append(out, p.ID)
		}
	}
	return out, nil
}

func (s *Snapshot) ListKaizens(ctx context.Context, organizationID string, projectIDs []string) ([]records.Kaizen, error) {
	if !s.owns(organizationID) {
		return nil, nil
	}
	return pick(s.Kaizens, func(k records.Kaizen) bool { return slices.Contains(projectIDs, k.ProjectID) }), nil
}

func (s *Snapshot) ListTasks(ctx context.Context, gameIDs []string) ([]records.Task, error) {
	return pick(s.Tasks, func(t records.Task) bool { return slices.Contains(gameIDs, t.GameID) }), nil
}

func (s *Snapshot) ListProjects(ctx context.Context, projectIDs []string) ([]records.Project, error) {
	return pick(s.Projects, func(p records.Project) bool { return slices.Contains(projectIDs, p.ID) }), nil
}

func (s *Snapshot) ListKaizenTypes(ctx context.Context, ids []string) ([]records.KaizenType, error) {
	return pick(s.KaizenTypes, func(t records.KaizenType) bool { return slices.Contains(ids, t.ID) }), nil
}

func (s *Snapshot) ListKPIs(ctx context.Context, ids []string) ([]records.KPI, error) {
	return pick(s.KPIs, func(k records.KPI) bool { return slices.Contains(ids, k.ID) }), nil
}

func (s *Snapshot) ListTeams(ctx context.Context, ids []string) ([]records.Team, error) {
	return pick(s.Teams, func(t records.Team) bool { return slices.Contains(ids, t.ID) }), nil
}

func (s *Snapshot) ListUsers(ctx context.Context, ids []string) ([]records.User, error) {
	return pick(s.Users, func(u records.User) bool { return slices.Contains(ids, u.ID) }), nil
}

// ListMembers returns every member for an empty role
func (s *Snapshot) ListMembers(ctx context.Context, organizationID, role string) ([]records.Member, error) {
	if !s.owns(organizationID) {
		return nil, nil
	}
	return pick(s.Members, func(m records.Member) bool { return role == "" || m.Role == role }), nil
}

func (s *Snapshot) ListGamesByProject(ctx context.Context, organizationID string, projectIDs []string) ([]records.Game, error) {
	if !s.owns(organizationID) {
		return nil, nil
	}
	return pick(s.Games, func(g records.Game) bool { return slices.Contains(projectIDs, g.ProjectID) }), nil
}
