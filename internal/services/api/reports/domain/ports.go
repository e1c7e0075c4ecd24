package domain

import (
	"context"

	"canteiro/internal/core/records"
)

// Source is the read side the reports are computed from
// implementations return their own errors; the engine passes them through untouched
type Source interface {
	GetLeague(ctx context.Context, leagueID string) (records.League, error)
	ListProjectsByActiveGame(ctx context.Context, organizationID, gameID string) ([]string, error)
	ListKaizens(ctx context.Context, organizationID string, projectIDs []string) ([]records.Kaizen, error)
	ListTasks(ctx context.Context, gameIDs []string) ([]records.Task, error)
	ListProjects(ctx context.Context, projectIDs []string) ([]records.Project, error)
	ListKaizenTypes(ctx context.Context, ids []string) ([]records.KaizenType, error)
	ListKPIs(ctx context.Context, ids []string) ([]records.KPI, error)
	ListTeams(ctx context.Context, ids []string) ([]records.Team, error)
	ListUsers(ctx context.Context, ids []string) ([]records.User, error)
	// ListMembers returns every member when role is empty
	ListMembers(ctx context.Context, organizationID, role string) ([]records.Member, error)
	ListGamesByProject(ctx context.Context, organizationID string, projectIDs []string) ([]records.Game, error)
}

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	KaizenCounters(ctx context.Context, in Query) (KaizenCounters, error)
	KaizensPerProject(ctx context.Context, in Query) (Items[ProjectCount], error)
	KaizensPerType(ctx context.Context, in Query) (Items[TypeCount], error)
	KaizensPerTypePerProject(ctx context.Context, in Query) (Items[TypeProjectRow], error)
	KaizensPerSector(ctx context.Context, in Query) (Items[SectorCount], error)
	KaizensPerPosition(ctx context.Context, in Query) (Items[PositionCount], error)
	KaizensPerBenefit(ctx context.Context, in Query) (Items[BenefitCount], error)
	KaizensPerWeek(ctx context.Context, in Query) (Items[WeekCount], error)
	KaizensPerParticipant(ctx context.Context, in Query) (Items[ParticipantRatio], error)
	AdherencePercentage(ctx context.Context, in Query) (Items[AdherenceRow], error)
	AdherenceCount(ctx context.Context, in AdherenceCountInput) (AdherenceCount, error)
	MostReplicatedKaizens(ctx context.Context, in MostReplicatedInput) (Items[ReplicatedKaizen], error)
	TopAuthors(ctx context.Context, in RankingInput) (Items[AuthorCount], error)
	TaskCounters(ctx context.Context, in Query) (TaskCounters, error)
	TaskKPIsByProject(ctx context.Context, in Query) ([]ProjectKPIs, error)
	TaskKPIsByGame(ctx context.Context, in Query) ([]GameKPIs, error)
	BestPlayers(ctx context.Context, in RankingInput) (Items[BestPlayer], error)
}
