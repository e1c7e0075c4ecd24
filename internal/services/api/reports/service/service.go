// Package service runs reports against the database inside one read only transaction
package service

import (
	"context"
	"time"

	"canteiro/internal/modkit/repokit"
	"canteiro/internal/platform/logger"
	"canteiro/internal/platform/metrics"
	"canteiro/internal/services/api/reports/domain"
	"canteiro/internal/services/api/reports/engine"
)

// Service defines the reports service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the reports service
type Svc struct {
	db      repokit.TxRunner
	binder  repokit.Binder[domain.Source]
	eng     engine.Engine
	metrics *metrics.Manager
}

// Option configures Svc
type Option func(*Svc)

// WithEngine replaces the default engine
func WithEngine(e engine.Engine) Option { return func(s *Svc) { s.eng = e } }

// WithMetrics records report outcomes on m
func WithMetrics(m *metrics.Manager) Option { return func(s *Svc) { s.metrics = m } }

// snapshotRead pins every read of a report to one consistent view
const snapshotRead = "set transaction isolation level repeatable read, read only"

// ReadOnly is the begin hook applied to every report transaction
func ReadOnly(ctx context.Context, q repokit.Queryer) error {
	_, err := q.Exec(ctx, snapshotRead)
	return err
}

// New constructs a reports service
func New(db repokit.TxRunner, binder repokit.Binder[domain.Source], opts ...Option) *Svc {
	if db == nil {
		panic("reports.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("reports.Service requires a non nil Source binder")
	}
	s := &Svc{db: repokit.WithBeginHooks(db, ReadOnly), binder: binder, eng: engine.New()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// run binds a source to a fresh transaction and computes one report with it
func run[T any](ctx context.Context, s *Svc, report string, fn func(domain.Source) (T, error)) (T, error) {
	var out T
	start := time.Now()
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, err = fn(repokit.MustBind(s.binder, q))
		return err
	})
	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.ObserveReport(report, elapsed, err)
	}
	if err != nil {
		logger.C(ctx).Error().Err(err).Str("report", report).Dur("elapsed", elapsed).Msg("report failed")
		var zero T
		return zero, err
	}
	logger.C(ctx).Debug().Str("report", report).Dur("elapsed", elapsed).Msg("report computed")
	return out, nil
}

// KaizenCounters returns headline kaizen numbers
func (s *Svc) KaizenCounters(ctx context.Context, in domain.Query) (domain.KaizenCounters, error) {
	return run(ctx, s, "kaizen_counters", func(src domain.Source) (domain.KaizenCounters, error) {
		return s.eng.KaizenCounters(ctx, src, in)
	})
}

// KaizensPerProject counts kaizens per project
func (s *Svc) KaizensPerProject(ctx context.Context, in domain.Query) (domain.Items[domain.ProjectCount], error) {
	return run(ctx, s, "kaizens_per_project", func(src domain.Source) (domain.Items[domain.ProjectCount], error) {
		return s.eng.KaizensPerProject(ctx, src, in)
	})
}

// KaizensPerType counts kaizens per kaizen type
func (s *Svc) KaizensPerType(ctx context.Context, in domain.Query) (domain.Items[domain.TypeCount], error) {
	return run(ctx, s, "kaizens_per_type", func(src domain.Source) (domain.Items[domain.TypeCount], error) {
		return s.eng.KaizensPerType(ctx, src, in)
	})
}

// KaizensPerTypePerProject is the type by project matrix
func (s *Svc) KaizensPerTypePerProject(ctx context.Context, in domain.Query) (domain.Items[domain.TypeProjectRow], error) {
	return run(ctx, s, "kaizens_per_type_per_project", func(src domain.Source) (domain.Items[domain.TypeProjectRow], error) {
		return s.eng.KaizensPerTypePerProject(ctx, src, in)
	})
}

// KaizensPerSector counts kaizens by author sector
func (s *Svc) KaizensPerSector(ctx context.Context, in domain.Query) (domain.Items[domain.SectorCount], error) {
	return run(ctx, s, "kaizens_per_sector", func(src domain.Source) (domain.Items[domain.SectorCount], error) {
		return s.eng.KaizensPerSector(ctx, src, in)
	})
}

// KaizensPerPosition counts kaizens by author position
func (s *Svc) KaizensPerPosition(ctx context.Context, in domain.Query) (domain.Items[domain.PositionCount], error) {
	return run(ctx, s, "kaizens_per_position", func(src domain.Source) (domain.Items[domain.PositionCount], error) {
		return s.eng.KaizensPerPosition(ctx, src, in)
	})
}

// KaizensPerBenefit counts kaizens per benefit kpi
func (s *Svc) KaizensPerBenefit(ctx context.Context, in domain.Query) (domain.Items[domain.BenefitCount], error) {
	return run(ctx, s, "kaizens_per_benefit", func(src domain.Source) (domain.Items[domain.BenefitCount], error) {
		return s.eng.KaizensPerBenefit(ctx, src, in)
	})
}

// KaizensPerWeek counts kaizens per ISO week
func (s *Svc) KaizensPerWeek(ctx context.Context, in domain.Query) (domain.Items[domain.WeekCount], error) {
	return run(ctx, s, "kaizens_per_week", func(src domain.Source) (domain.Items[domain.WeekCount], error) {
		return s.eng.KaizensPerWeek(ctx, src, in)
	})
}

// KaizensPerParticipant reports kaizens per author by project
func (s *Svc) KaizensPerParticipant(ctx context.Context, in domain.Query) (domain.Items[domain.ParticipantRatio], error) {
	return run(ctx, s, "kaizens_per_participant", func(src domain.Source) (domain.Items[domain.ParticipantRatio], error) {
		return s.eng.KaizensPerParticipant(ctx, src, in)
	})
}

// AdherencePercentage reports player adherence per project
func (s *Svc) AdherencePercentage(ctx context.Context, in domain.Query) (domain.Items[domain.AdherenceRow], error) {
	return run(ctx, s, "adherence_percentage", func(src domain.Source) (domain.Items[domain.AdherenceRow], error) {
		return s.eng.AdherencePercentage(ctx, src, in)
	})
}

// AdherenceCount reports player adherence over the scope
func (s *Svc) AdherenceCount(ctx context.Context, in domain.AdherenceCountInput) (domain.AdherenceCount, error) {
	return run(ctx, s, "adherence_count", func(src domain.Source) (domain.AdherenceCount, error) {
		return s.eng.AdherenceCount(ctx, src, in)
	})
}

// MostReplicatedKaizens ranks kaizens by replication
func (s *Svc) MostReplicatedKaizens(ctx context.Context, in domain.MostReplicatedInput) (domain.Items[domain.ReplicatedKaizen], error) {
	return run(ctx, s, "most_replicated_kaizens", func(src domain.Source) (domain.Items[domain.ReplicatedKaizen], error) {
		return s.eng.MostReplicatedKaizens(ctx, src, in)
	})
}

// TopAuthors ranks kaizen authors
func (s *Svc) TopAuthors(ctx context.Context, in domain.RankingInput) (domain.Items[domain.AuthorCount], error) {
	return run(ctx, s, "top_authors", func(src domain.Source) (domain.Items[domain.AuthorCount], error) {
		return s.eng.TopAuthors(ctx, src, in)
	})
}

// TaskCounters returns headline task numbers
func (s *Svc) TaskCounters(ctx context.Context, in domain.Query) (domain.TaskCounters, error) {
	return run(ctx, s, "task_counters", func(src domain.Source) (domain.TaskCounters, error) {
		return s.eng.TaskCounters(ctx, src, in)
	})
}

// TaskKPIsByProject returns kpi averages per project
func (s *Svc) TaskKPIsByProject(ctx context.Context, in domain.Query) ([]domain.ProjectKPIs, error) {
	return run(ctx, s, "task_kpis_by_project", func(src domain.Source) ([]domain.ProjectKPIs, error) {
		return s.eng.TaskKPIsByProject(ctx, src, in)
	})
}

// TaskKPIsByGame returns kpi averages per game
func (s *Svc) TaskKPIsByGame(ctx context.Context, in domain.Query) ([]domain.GameKPIs, error) {
	return run(ctx, s, "task_kpis_by_game", func(src domain.Source) ([]domain.GameKPIs, error) {
		return s.eng.TaskKPIsByGame(ctx, src, in)
	})
}

// BestPlayers ranks teams and users by task progress
func (s *Svc) BestPlayers(ctx context.Context, in domain.RankingInput) (domain.Items[domain.BestPlayer], error) {
	return run(ctx, s, "best_players", func(src domain.Source) (domain.Items[domain.BestPlayer], error) {
		return s.eng.BestPlayers(ctx, src, in)
	})
}
