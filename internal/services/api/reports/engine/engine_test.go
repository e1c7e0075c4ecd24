package engine_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"canteiro/internal/adapters/snapshot"
	"canteiro/internal/core/records"
	"canteiro/internal/platform/testkit"
	"canteiro/internal/services/api/reports/domain"
	"canteiro/internal/services/api/reports/engine"
)

const org = "org-1"

func sp(s string) *string   { return &s }
func fp(f float64) *float64 { return &f }

func day(d int) time.Time { return time.Date(2024, time.January, d, 9, 0, 0, 0, time.UTC) }

func fixture() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		OrganizationID: org,
		Leagues: []records.League{
			{ID: "L1", Projects: []string{"P1", "P2"}},
			{ID: "LG", GameID: sp("G1")},
			{ID: "LE"},
			{ID: "L3", Projects: []string{"P1", "P2", "P3"}},
		},
		Projects: []records.Project{
			{ID: "P1", Name: "Torre Norte", ActiveGameID: sp("G1")},
			{ID: "P2", Name: "Galpao", ActiveGameID: sp("G1")},
			{ID: "P3", Name: "Ponte"},
		},
		Games: []records.Game{
			{ID: "G1", ProjectID: "P1", Name: "Spring"},
			{ID: "G2", ProjectID: "P2", Name: "Summer"},
		},
		Kaizens: []records.Kaizen{
			{
				ID: "K1", ProjectID: "P1", AuthorID: "U1", KaizenTypeID: sp("T1"), Name: "Guarda corpo",
				Benefits:    []records.Benefit{{KPIID: "KPI1"}, {KPIID: "KPI1"}, {KPIID: "KPI2"}},
				CreatedDate: day(3),
			},
			{ID: "K2", ProjectID: "P1", AuthorID: "U1", Name: "Andaime", Replicas: []string{"K3", "KZ"}, CreatedDate: day(4)},
			{ID: "K3", ProjectID: "P1", AuthorID: "U2", KaizenTypeID: sp("T9"), Name: "Andaime copia", OriginalKaizenID: sp("K2"), CreatedDate: day(10)},
		},
		Tasks: []records.Task{
			{ID: "T1", GameID: "G1", TeamID: sp("TM1"), UserID: sp("U1"), KPIID: sp("KPI1"), Progress: records.Progress{Percent: fp(40)}},
			{ID: "T2", GameID: "G1", UserID: sp("U1"), KPIID: sp("KPI2"), Progress: records.Progress{Percent: fp(90)}},
			{ID: "T3", GameID: "G2", TeamID: sp("TM1"), KPIID: sp("KPI1"), Progress: records.Progress{Percent: fp(60)}},
			{ID: "T4", GameID: "G2", UserID: sp("U2"), Progress: records.Progress{Percent: fp(100)}},
		},
		KaizenTypes: []records.KaizenType{{ID: "T1", Name: "Seguranca"}},
		KPIs:        []records.KPI{{ID: "KPI1", Name: "Prazo"}, {ID: "KPI2", Name: "Qualidade"}},
		Teams:       []records.Team{{ID: "TM1", Name: "Equipe A"}},
		Users:       []records.User{{ID: "U1", Name: "Ana", Photo: sp("ana.png")}},
		Members: []records.Member{
			{UserID: "U1", Name: "Ana", Role: records.RolePlayer, Sector: sp("Obra"), SectorID: sp("S1"), Position: sp("Pedreiro")},
			{UserID: "U2", Name: "Bia", Role: records.RolePlayer, SectorID: sp("S2"), Position: sp("Mestre")},
			{UserID: "U3", Name: "Caio", Role: records.RolePlayer},
			{UserID: "U4", Name: "Davi", Role: "manager"},
		},
	}
}

func league(id string) domain.Query { return domain.Query{OrganizationID: org, LeagueID: id} }

func TestKaizenCounters_EndToEnd(t *testing.T) {
	t.Parallel()

	got, err := engine.New().KaizenCounters(context.Background(), fixture(), league("L1"))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	want := domain.KaizenCounters{KaizenCount: 3, ProjectCount: 1, KaizensPerProject: 3, KaizensPerParticipant: 1.5}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestScope_GameLeagueAndProjectOverride(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e := engine.New()

	got, err := e.KaizenCounters(ctx, fixture(), league("LG"))
	if err != nil || got.KaizenCount != 3 {
		t.Fatalf("game league got %+v err %v", got, err)
	}

	q := league("LE")
	q.ProjectID = "P1"
	got, err = e.KaizenCounters(ctx, fixture(), q)
	if err != nil || got.KaizenCount != 3 {
		t.Fatalf("project override got %+v err %v", got, err)
	}

	q.ProjectID = "P3"
	got, err = e.KaizenCounters(ctx, fixture(), q)
	if err != nil || got != (domain.KaizenCounters{}) {
		t.Fatalf("empty project got %+v err %v", got, err)
	}
}

func TestKaizensPerProject(t *testing.T) {
	t.Parallel()

	got, err := engine.New().KaizensPerProject(context.Background(), fixture(), league("L1"))
	if err != nil {
		t.Fatal(err)
	}
	want := []domain.ProjectCount{{ProjectID: "P1", ProjectName: "Torre Norte", KaizenCount: 3}}
	if len(got.Items) != 1 || got.Items[0] != want[0] {
		t.Fatalf("got %+v", got.Items)
	}
}

func TestKaizensPerType_Placeholders(t *testing.T) {
	t.Parallel()

	got, err := engine.New().KaizensPerType(context.Background(), fixture(), league("L1"))
	if err != nil {
		t.Fatal(err)
	}
	names := []string{}
	for _, it := range got.Items {
		names = append(names, it.KaizenTypeName)
	}
	if len(names) != 3 || names[0] != "Seguranca" || names[1] != "Sem tipo" || names[2] != "Desconhecido" {
		t.Fatalf("names got %v", names)
	}
	if got.Items[1].KaizenTypeID != nil {
		t.Fatalf("untyped bucket id got %v", *got.Items[1].KaizenTypeID)
	}
}

func TestKaizensPerTypePerProject_OuterJoin(t *testing.T) {
	t.Parallel()

	got, err := engine.New().KaizensPerTypePerProject(context.Background(), fixture(), league("L3"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 3 {
		t.Fatalf("rows got %d", len(got.Items))
	}
	for _, row := range got.Items {
		if len(row.Projects) != 3 {
			t.Fatalf("type %s projects got %+v", row.KaizenTypeName, row.Projects)
		}
		zeros := 0
		for _, p := range row.Projects {
			if p.KaizenCount == 0 {
				zeros++
			}
		}
		if zeros != 2 || row.Projects[0].ProjectID != "P1" {
			t.Fatalf("type %s projects got %+v", row.KaizenTypeName, row.Projects)
		}
	}
}

func TestKaizensPerSectorAndPosition(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e := engine.New()

	sectors, err := e.KaizensPerSector(ctx, fixture(), league("L1"))
	if err != nil {
		t.Fatal(err)
	}
	if len(sectors.Items) != 2 || *sectors.Items[0].Sector != "Obra" || sectors.Items[0].KaizenCount != 2 || sectors.Items[1].Sector != nil {
		t.Fatalf("sectors got %+v", sectors.Items)
	}

	positions, err := e.KaizensPerPosition(ctx, fixture(), league("L1"))
	if err != nil {
		t.Fatal(err)
	}
	if len(positions.Items) != 2 || *positions.Items[0].Position != "Pedreiro" || *positions.Items[1].Position != "Mestre" {
		t.Fatalf("positions got %+v", positions.Items)
	}
}

func TestKaizensPerBenefit_CountsKaizenOncePerKPI(t *testing.T) {
	t.Parallel()

	got, err := engine.New().KaizensPerBenefit(context.Background(), fixture(), league("L1"))
	if err != nil {
		t.Fatal(err)
	}
	want := []domain.BenefitCount{
		{KPIID: "KPI1", KPIName: "Prazo", KaizenCount: 1},
		{KPIID: "KPI2", KPIName: "Qualidade", KaizenCount: 1},
	}
	if len(got.Items) != 2 || got.Items[0] != want[0] || got.Items[1] != want[1] {
		t.Fatalf("got %+v", got.Items)
	}
}

func TestKaizensPerWeek(t *testing.T) {
	t.Parallel()

	got, err := engine.New().KaizensPerWeek(context.Background(), fixture(), league("L1"))
	if err != nil {
		t.Fatal(err)
	}
	want := []domain.WeekCount{
		{WeekStart: "2024-01-01", WeekEnd: "2024-01-07", KaizenCount: 2},
		{WeekStart: "2024-01-08", WeekEnd: "2024-01-14", KaizenCount: 1},
	}
	if len(got.Items) != 2 || got.Items[0] != want[0] || got.Items[1] != want[1] {
		t.Fatalf("got %+v", got.Items)
	}
}

func TestKaizensPerParticipant(t *testing.T) {
	t.Parallel()

	got, err := engine.New().KaizensPerParticipant(context.Background(), fixture(), league("L3"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 1 || got.Items[0].ParticipantCount != 2 || got.Items[0].KaizensPerParticipant != 1.5 {
		t.Fatalf("got %+v", got.Items)
	}
}

func TestSectorFilter(t *testing.T) {
	t.Parallel()

	q := league("L1")
	q.SectorID = "S1"
	got, err := engine.New().KaizenCounters(context.Background(), fixture(), q)
	if err != nil {
		t.Fatal(err)
	}
	want := domain.KaizenCounters{KaizenCount: 2, ProjectCount: 1, KaizensPerProject: 2, KaizensPerParticipant: 2}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}

	tasks, err := engine.New().TaskCounters(context.Background(), fixture(), q)
	if err != nil || tasks.TaskCount != 4 {
		t.Fatalf("task reports ignore sector, got %+v err %v", tasks, err)
	}
}

func TestAdherence(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e := engine.New()

	rows, err := e.AdherencePercentage(ctx, fixture(), league("L3"))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows.Items) != 3 {
		t.Fatalf("every project in scope should be listed, got %+v", rows.Items)
	}
	first := rows.Items[0]
	if first.ProjectID != "P1" || first.ParticipantCount != 2 || first.PlayerCount != 3 || math.Abs(first.Percentage-200.0/3) > 1e-9 {
		t.Fatalf("P1 row got %+v", first)
	}
	if rows.Items[1].Percentage != 0 || rows.Items[2].Percentage != 0 {
		t.Fatalf("idle projects got %+v", rows.Items[1:])
	}

	count, err := e.AdherenceCount(ctx, fixture(), domain.AdherenceCountInput{Query: league("L1"), KaizenTypeID: "T1"})
	if err != nil {
		t.Fatal(err)
	}
	if count.ParticipantCount != 1 || count.PlayerCount != 3 || math.Abs(count.Percentage-100.0/3) > 1e-9 {
		t.Fatalf("count got %+v", count)
	}
}

func TestMostReplicatedKaizens_LiteralCount(t *testing.T) {
	t.Parallel()

	in := domain.MostReplicatedInput{Query: league("L1"), IsReplica: new(bool), Category: "ignored"}
	got, err := engine.New().MostReplicatedKaizens(context.Background(), fixture(), in)
	if err != nil {
		t.Fatal(err)
	}
	want := domain.ReplicatedKaizen{
		KaizenID: "K2", KaizenName: "Andaime", ProjectID: "P1", ProjectName: "Torre Norte",
		ReplicaCount: 3, RootKaizenID: "K2",
	}
	if len(got.Items) != 1 || got.Items[0] != want {
		t.Fatalf("got %+v", got.Items)
	}
}

func TestTopAuthors(t *testing.T) {
	t.Parallel()

	got, err := engine.New().TopAuthors(context.Background(), fixture(), domain.RankingInput{Query: league("L1")})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("got %+v", got.Items)
	}
	if a := got.Items[0]; a.UserID != "U1" || a.Name != "Ana" || a.KaizenCount != 2 || a.Photo == nil {
		t.Fatalf("first got %+v", a)
	}
	if b := got.Items[1]; b.UserID != "U2" || b.Name != "" {
		t.Fatalf("unresolved user should keep an empty name, got %+v", b)
	}

	limited, err := engine.New(engine.WithDefaultLimit(1)).TopAuthors(context.Background(), fixture(), domain.RankingInput{Query: league("L1")})
	if err != nil || len(limited.Items) != 1 {
		t.Fatalf("default limit got %+v err %v", limited.Items, err)
	}
}

func TestTaskReports(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e := engine.New()

	counters, err := e.TaskCounters(ctx, fixture(), league("L1"))
	if err != nil {
		t.Fatal(err)
	}
	want := domain.TaskCounters{TaskCount: 4, GameCount: 2, TasksWithKPI: 3, CompletedTasks: 1, AverageProgress: 72.5}
	if counters != want {
		t.Fatalf("counters got %+v want %+v", counters, want)
	}

	byProject, err := e.TaskKPIsByProject(ctx, fixture(), league("L1"))
	if err != nil {
		t.Fatal(err)
	}
	if len(byProject) != 2 || byProject[0].ProjectName != "Torre Norte" || len(byProject[0].KPIs) != 2 {
		t.Fatalf("by project got %+v", byProject)
	}
	if k := byProject[0].KPIs[0]; k.KPIID != "KPI1" || k.KPIName != "Prazo" || k.Average != 40 {
		t.Fatalf("P1 KPI1 got %+v", k)
	}

	byGame, err := e.TaskKPIsByGame(ctx, fixture(), league("L1"))
	if err != nil {
		t.Fatal(err)
	}
	if len(byGame) != 2 || byGame[1].GameName != "Summer" || byGame[1].ProjectName != "Galpao" || byGame[1].KPIs[0].Average != 60 {
		t.Fatalf("by game got %+v", byGame)
	}
}

func TestBestPlayers_TeamPrecedence(t *testing.T) {
	t.Parallel()

	got, err := engine.New().BestPlayers(context.Background(), fixture(), domain.RankingInput{Query: league("L1")})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Items) != 3 {
		t.Fatalf("got %+v", got.Items)
	}
	for _, row := range got.Items {
		if row.EntityKind == string(records.KindUser) && row.EntityID == "U1" && row.TaskCount != 1 {
			t.Fatalf("U1 should only own the task without a team, got %+v", row)
		}
	}
	team := got.Items[2]
	if team.EntityID != "TM1" || team.EntityKind != "team" || team.Name != "Equipe A" || team.AverageProgress != 50 || team.TaskCount != 2 {
		t.Fatalf("team row got %+v", team)
	}
	if got.Items[0].EntityID != "U2" || got.Items[0].Name != "" || len(got.Items[0].KPIs) != 0 {
		t.Fatalf("top row got %+v", got.Items[0])
	}

	limited, err := engine.New().BestPlayers(context.Background(), fixture(), domain.RankingInput{Query: league("L1"), Limit: 2})
	if err != nil || len(limited.Items) != 2 {
		t.Fatalf("limit got %+v err %v", limited.Items, err)
	}
}

// strict fails any read past league lookup
type strict struct {
	*snapshot.Snapshot
}

var errUnexpected = errors.New("unexpected read")

func (strict) ListProjectsByActiveGame(context.Context, string, string) ([]string, error) {
	return nil, errUnexpected
}

func (strict) ListKaizens(context.Context, string, []string) ([]records.Kaizen, error) {
	return nil, errUnexpected
}
func (strict) ListTasks(context.Context, []string) ([]records.Task, error) { return nil, errUnexpected }
func (strict) ListProjects(context.Context, []string) ([]records.Project, error) {
	return nil, errUnexpected
}

func (strict) ListKaizenTypes(context.Context, []string) ([]records.KaizenType, error) {
	return nil, errUnexpected
}
func (strict) ListKPIs(context.Context, []string) ([]records.KPI, error)   { return nil, errUnexpected }
func (strict) ListTeams(context.Context, []string) ([]records.Team, error) { return nil, errUnexpected }
func (strict) ListUsers(context.Context, []string) ([]records.User, error) { return nil, errUnexpected }
func (strict) ListMembers(context.Context, string, string) ([]records.Member, error) {
	return nil, errUnexpected
}

func (strict) ListGamesByProject(context.Context, string, []string) ([]records.Game, error) {
	return nil, errUnexpected
}

type report struct {
	name string
	run  func(context.Context, domain.Source, domain.Query) (any, error)
	zero string
}

const (
	zeroItems = `{"items":[]}`
	zeroArray = `[]`
)

func reports(e engine.Engine) []report {
	return []report{
		{"kaizen counters", func(ctx context.Context, s domain.Source, q domain.Query) (any, error) {
			return e.KaizenCounters(ctx, s, q)
		}, `{"kaizen_count":0,"project_count":0,"kaizens_per_project":0,"kaizens_per_participant":0}`},
		{"per project", func(ctx context.Context, s domain.Source, q domain.Query) (any, error) {
			return e.KaizensPerProject(ctx, s, q)
		}, zeroItems},
		{"per type", func(ctx context.Context, s domain.Source, q domain.Query) (any, error) {
			return e.KaizensPerType(ctx, s, q)
		}, zeroItems},
		{"per type per project", func(ctx context.Context, s domain.Source, q domain.Query) (any, error) {
			return e.KaizensPerTypePerProject(ctx, s, q)
		}, zeroItems},
		{"per sector", func(ctx context.Context, s domain.Source, q domain.Query) (any, error) {
			return e.KaizensPerSector(ctx, s, q)
		}, zeroItems},
		{"per position", func(ctx context.Context, s domain.Source, q domain.Query) (any, error) {
			return e.KaizensPerPosition(ctx, s, q)
		}, zeroItems},
		{"per benefit", func(ctx context.Context, s domain.Source, q domain.Query) (any, error) {
			return e.KaizensPerBenefit(ctx, s, q)
		}, zeroItems},
		{"per week", func(ctx context.Context, s domain.Source, q domain.Query) (any, error) {
			return e.KaizensPerWeek(ctx, s, q)
		}, zeroItems},
		{"per participant", func(ctx context.Context, s domain.Source, q domain.Query) (any, error) {
			return e.KaizensPerParticipant(ctx, s, q)
		}, zeroItems},
		{"adherence percentage", func(ctx context.Context, s domain.Source, q domain.Query) (any, error) {
			return e.AdherencePercentage(ctx, s, q)
		}, zeroItems},
		{"adherence count", func(ctx context.Context, s domain.Source, q domain.Query) (any, error) {
			return e.AdherenceCount(ctx, s, domain.AdherenceCountInput{Query: q})
		}, `{"participant_count":0,"player_count":0,"percentage":0}`},
		{"most replicated", func(ctx context.Context, s domain.Source, q domain.Query) (any, error) {
			return e.MostReplicatedKaizens(ctx, s, domain.MostReplicatedInput{Query: q})
		}, zeroItems},
		{"top authors", func(ctx context.Context, s domain.Source, q domain.Query) (any, error) {
			return e.TopAuthors(ctx, s, domain.RankingInput{Query: q})
		}, zeroItems},
		{"task counters", func(ctx context.Context, s domain.Source, q domain.Query) (any, error) {
			return e.TaskCounters(ctx, s, q)
		}, `{"task_count":0,"game_count":0,"tasks_with_kpi":0,"completed_tasks":0,"average_progress":0}`},
		{"kpis by project", func(ctx context.Context, s domain.Source, q domain.Query) (any, error) {
			return e.TaskKPIsByProject(ctx, s, q)
		}, zeroArray},
		{"kpis by game", func(ctx context.Context, s domain.Source, q domain.Query) (any, error) {
			return e.TaskKPIsByGame(ctx, s, q)
		}, zeroArray},
		{"best players", func(ctx context.Context, s domain.Source, q domain.Query) (any, error) {
			return e.BestPlayers(ctx, s, domain.RankingInput{Query: q})
		}, zeroItems},
	}
}

func TestZeroScope_EveryReportReturnsItsZeroShape(t *testing.T) {
	t.Parallel()

	queries := map[string]domain.Query{
		"no league":    {OrganizationID: org},
		"empty league": league("LE"),
	}
	all := reports(engine.New())
	if len(all) != 17 {
		t.Fatalf("report table has %d entries", len(all))
	}
	for qname, q := range queries {
		for _, r := range all {
			t.Run(qname+"/"+r.name, func(t *testing.T) {
				t.Parallel()
				out, err := r.run(context.Background(), strict{fixture()}, q)
				if err != nil {
					t.Fatalf("err: %v", err)
				}
				if got := testkit.MustJSON(t, out); got != r.zero {
					t.Fatalf("got %s want %s", got, r.zero)
				}
			})
		}
	}
}

// failing returns sentinel from the first bulk read of each pipeline
type failing struct {
	*snapshot.Snapshot
	err error
}

func (f failing) ListKaizens(context.Context, string, []string) ([]records.Kaizen, error) {
	return nil, f.err
}

func (f failing) ListGamesByProject(context.Context, string, []string) ([]records.Game, error) {
	return nil, f.err
}

func TestSourceErrors_ReturnedUnmodified(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("db down")
	for _, r := range reports(engine.New()) {
		t.Run(r.name, func(t *testing.T) {
			t.Parallel()
			_, err := r.run(context.Background(), failing{fixture(), sentinel}, league("L1"))
			if err != sentinel {
				t.Fatalf("got %v want the sentinel itself", err)
			}
		})
	}
}

func TestUnknownLeague_Propagates(t *testing.T) {
	t.Parallel()

	_, err := engine.New().KaizenCounters(context.Background(), fixture(), league("nope"))
	if err == nil {
		t.Fatal("want error")
	}
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := engine.New().KaizensPerProject(ctx, fixture(), league("L1"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v want context.Canceled", err)
	}
}
