package engine

import (
	"context"

	"canteiro/internal/services/api/reports/domain"
)

// Params is the union of report inputs; each report reads the fields it knows
type Params struct {
	domain.Query
	KaizenTypeID string
	Limit        int
}

// Report is one named entry of the catalog
type Report struct {
	Name    string
	Summary string
	Run     func(ctx context.Context, e Engine, src domain.Source, p Params) (any, error)
}

var catalog = []Report{
	{"kaizen-counters", "Kaizen counters", func(ctx context.Context, e Engine, src domain.Source, p Params) (any, error) {
		return e.KaizenCounters(ctx, src, p.Query)
	}},
	{"kaizens-per-project", "Kaizens per project", func(ctx context.Context, e Engine, src domain.Source, p Params) (any, error) {
		return e.KaizensPerProject(ctx, src, p.Query)
	}},
	{"kaizens-per-type", "Kaizens per type", func(ctx context.Context, e Engine, src domain.Source, p Params) (any, error) {
		return e.KaizensPerType(ctx, src, p.Query)
	}},
	{"kaizens-per-type-per-project", "Kaizens per type broken down by project", func(ctx context.Context, e Engine, src domain.Source, p Params) (any, error) {
		return e.KaizensPerTypePerProject(ctx, src, p.Query)
	}},
	{"kaizens-per-sector", "Kaizens per author sector", func(ctx context.Context, e Engine, src domain.Source, p Params) (any, error) {
		return e.KaizensPerSector(ctx, src, p.Query)
	}},
	{"kaizens-per-position", "Kaizens per author position", func(ctx context.Context, e Engine, src domain.Source, p Params) (any, error) {
		return e.KaizensPerPosition(ctx, src, p.Query)
	}},
	{"kaizens-per-benefit", "Kaizens per benefit kpi", func(ctx context.Context, e Engine, src domain.Source, p Params) (any, error) {
		return e.KaizensPerBenefit(ctx, src, p.Query)
	}},
	{"kaizens-per-week", "Kaizens per ISO week", func(ctx context.Context, e Engine, src domain.Source, p Params) (any, error) {
		return e.KaizensPerWeek(ctx, src, p.Query)
	}},
	{"kaizens-per-participant", "Kaizens per participant by project", func(ctx context.Context, e Engine, src domain.Source, p Params) (any, error) {
		return e.KaizensPerParticipant(ctx, src, p.Query)
	}},
	{"adherence-percentage", "Player adherence per project", func(ctx context.Context, e Engine, src domain.Source, p Params) (any, error) {
		return e.AdherencePercentage(ctx, src, p.Query)
	}},
	{"adherence-count", "Player adherence over the scope", func(ctx context.Context, e Engine, src domain.Source, p Params) (any, error) {
		return e.AdherenceCount(ctx, src, domain.AdherenceCountInput{Query: p.Query, KaizenTypeID: p.KaizenTypeID})
	}},
	{"most-replicated-kaizens", "Most replicated kaizens", func(ctx context.Context, e Engine, src domain.Source, p Params) (any, error) {
		return e.MostReplicatedKaizens(ctx, src, domain.MostReplicatedInput{Query: p.Query, Limit: p.Limit})
	}},
	{"top-authors", "Users with the most kaizens", func(ctx context.Context, e Engine, src domain.Source, p Params) (any, error) {
		return e.TopAuthors(ctx, src, domain.RankingInput{Query: p.Query, Limit: p.Limit})
	}},
	{"task-counters", "Task counters", func(ctx context.Context, e Engine, src domain.Source, p Params) (any, error) {
		return e.TaskCounters(ctx, src, p.Query)
	}},
	{"task-kpis-by-project", "Task kpi averages per project", func(ctx context.Context, e Engine, src domain.Source, p Params) (any, error) {
		return e.TaskKPIsByProject(ctx, src, p.Query)
	}},
	{"task-kpis-by-game", "Task kpi averages per game", func(ctx context.Context, e Engine, src domain.Source, p Params) (any, error) {
		return e.TaskKPIsByGame(ctx, src, p.Query)
	}},
	{"best-players", "Teams and users ranked by task progress", func(ctx context.Context, e Engine, src domain.Source, p Params) (any, error) {
		return e.BestPlayers(ctx, src, domain.RankingInput{Query: p.Query, Limit: p.Limit})
	}},
}

// Catalog lists every report in a stable order
func Catalog() []Report { return append([]Report(nil), catalog...) }

// Lookup finds a report by name
func Lookup(name string) (Report, bool) {
	for _, r := range catalog {
		if r.Name == name {
			return r, true
		}
	}
	return Report{}, false
}
