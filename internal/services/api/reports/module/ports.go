package module

import (
	"context"

	"canteiro/internal/services/api/reports/domain"
	reportssvc "canteiro/internal/services/api/reports/service"
)

// Ports returns the module ports; a domain.ServicePort unless overridden
func (m *Module) Ports() any { return m.ports }

var _ domain.ServicePort = adaptReportsPort{}

type adaptReportsPort struct{ svc reportssvc.Service }

func (a adaptReportsPort) KaizenCounters(ctx context.Context, in domain.Query) (domain.KaizenCounters, error) {
	return a.svc.KaizenCounters(ctx, in)
}

func (a adaptReportsPort) KaizensPerProject(ctx context.Context, in domain.Query) (domain.Items[domain.ProjectCount], error) {
	return a.svc.KaizensPerProject(ctx, in)
}

func (a adaptReportsPort) KaizensPerType(ctx context.Context, in domain.Query) (domain.Items[domain.TypeCount], error) {
	return a.svc.KaizensPerType(ctx, in)
}

func (a adaptReportsPort) KaizensPerTypePerProject(ctx context.Context, in domain.Query) (domain.Items[domain.TypeProjectRow], error) {
	return a.svc.KaizensPerTypePerProject(ctx, in)
}

func (a adaptReportsPort) KaizensPerSector(ctx context.Context, in domain.Query) (domain.Items[domain.SectorCount], error) {
	return a.svc.KaizensPerSector(ctx, in)
}

func (a adaptReportsPort) KaizensPerPosition(ctx context.Context, in domain.Query) (domain.Items[domain.PositionCount], error) {
	return a.svc.KaizensPerPosition(ctx, in)
}

func (a adaptReportsPort) KaizensPerBenefit(ctx context.Context, in domain.Query) (domain.Items[domain.BenefitCount], error) {
	return a.svc.KaizensPerBenefit(ctx, in)
}

func (a adaptReportsPort) KaizensPerWeek(ctx context.Context, in domain.Query) (domain.Items[domain.WeekCount], error) {
	return a.svc.KaizensPerWeek(ctx, in)
}

func (a adaptReportsPort) KaizensPerParticipant(ctx context.Context, in domain.Query) (domain.Items[domain.ParticipantRatio], error) {
	return a.svc.KaizensPerParticipant(ctx, in)
}

func (a adaptReportsPort) AdherencePercentage(ctx context.Context, in domain.Query) (domain.Items[domain.AdherenceRow], error) {
	return a.svc.AdherencePercentage(ctx, in)
}

func (a adaptReportsPort) AdherenceCount(ctx context.Context, in domain.AdherenceCountInput) (domain.AdherenceCount, error) {
	return a.svc.AdherenceCount(ctx, in)
}

func (a adaptReportsPort) MostReplicatedKaizens(ctx context.Context, in domain.MostReplicatedInput) (domain.Items[domain.ReplicatedKaizen], error) {
	return a.svc.MostReplicatedKaizens(ctx, in)
}

func (a adaptReportsPort) TopAuthors(ctx context.Context, in domain.RankingInput) (domain.Items[domain.AuthorCount], error) {
	return a.svc.TopAuthors(ctx, in)
}

func (a adaptReportsPort) TaskCounters(ctx context.Context, in domain.Query) (domain.TaskCounters, error) {
	return a.svc.TaskCounters(ctx, in)
}

func (a adaptReportsPort) TaskKPIsByProject(ctx context.Context, in domain.Query) ([]domain.ProjectKPIs, error) {
	return a.svc.TaskKPIsByProject(ctx, in)
}

func (a adaptReportsPort) TaskKPIsByGame(ctx context.Context, in domain.Query) ([]domain.GameKPIs, error) {
	return a.svc.TaskKPIsByGame(ctx, in)
}

func (a adaptReportsPort) BestPlayers(ctx context.Context, in domain.RankingInput) (domain.Items[domain.BestPlayer], error) {
	return a.svc.BestPlayers(ctx, in)
}
