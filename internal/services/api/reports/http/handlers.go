// Package http provides http transport for reports
package http

import (
	"context"
	stdhttp "net/http"

	"canteiro/internal/modkit/httpkit"
	"canteiro/internal/modkit/swaggerkit"
	"canteiro/internal/platform/logger"
	pnet "canteiro/internal/platform/net"
	"canteiro/internal/services/api/reports/domain"
	svc "canteiro/internal/services/api/reports/service"
)

// Register mounts report endpoints on the given router and returns their docs
// paths in the docs are relative to r
func Register(r httpkit.Router, s svc.Service) []swaggerkit.Operation {
	h := &handlers{svc: s}
	var ops []swaggerkit.Operation

	// kaizens
	post[domain.Query](r, &ops, "/kaizens/counters", "Kaizen counters", h.kaizenCounters)
	post[domain.Query](r, &ops, "/kaizens/per-project", "Kaizens per project", h.perProject)
	post[domain.Query](r, &ops, "/kaizens/per-type", "Kaizens per type", h.perType)
	post[domain.Query](r, &ops, "/kaizens/per-type-per-project", "Kaizens per type broken down by project", h.perTypePerProject)
	post[domain.Query](r, &ops, "/kaizens/per-sector", "Kaizens per author sector", h.perSector)
	post[domain.Query](r, &ops, "/kaizens/per-position", "Kaizens per author position", h.perPosition)
	post[domain.Query](r, &ops, "/kaizens/per-benefit", "Kaizens per benefit kpi", h.perBenefit)
	post[domain.Query](r, &ops, "/kaizens/per-week", "Kaizens per ISO week", h.perWeek)
	post[domain.Query](r, &ops, "/kaizens/per-participant", "Kaizens per participant by project", h.perParticipant)
	post[domain.MostReplicatedInput](r, &ops, "/kaizens/most-replicated", "Most replicated kaizens", h.mostReplicated)
	post[domain.RankingInput](r, &ops, "/kaizens/top-authors", "Users with the most kaizens", h.topAuthors)

	// adherence
	post[domain.Query](r, &ops, "/adherence/percentage", "Player adherence per project", h.adherencePercentage)
	post[domain.AdherenceCountInput](r, &ops, "/adherence/count", "Player adherence over the scope", h.adherenceCount)

	// tasks
	post[domain.Query](r, &ops, "/tasks/counters", "Task counters", h.taskCounters)
	post[domain.Query](r, &ops, "/tasks/kpis-by-project", "Task kpi averages per project", h.kpisByProject)
	post[domain.Query](r, &ops, "/tasks/kpis-by-game", "Task kpi averages per game", h.kpisByGame)
	post[domain.RankingInput](r, &ops, "/tasks/best-players", "Teams and users ranked by task progress", h.bestPlayers)

	return ops
}

func post[T any](r httpkit.Router, ops *[]swaggerkit.Operation, path, summary string, h func(*stdhttp.Request, T) (any, error)) {
	httpkit.PostJSON(r, path, h)
	*ops = append(*ops, swaggerkit.Operation{Method: stdhttp.MethodPost, Path: path, Summary: summary, Tag: "Reports"})
}

type handlers struct{ svc svc.Service }

// scoped tags request logs with the organization being reported on
func scoped(r *stdhttp.Request, q domain.Query) context.Context {
	ctx := pnet.WithRequest(r.Context(), "", q.OrganizationID)
	return logger.WithRequest(ctx, pnet.RequestID(ctx), q.OrganizationID)
}

// swagger:route POST /reports/kaizens/counters Reports reportsKaizenCounters
// @Summary Kaizen counters
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.Query true "Scope"
// @Success 200 {object} domain.KaizenCounters "ok"
// @Router /reports/kaizens/counters [post]
func (h *handlers) kaizenCounters(r *stdhttp.Request, in domain.Query) (any, error) {
	return h.svc.KaizenCounters(scoped(r, in), in)
}

// swagger:route POST /reports/kaizens/per-project Reports reportsKaizensPerProject
// @Summary Kaizens per project
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.Query true "Scope"
// @Success 200 {object} domain.Items[domain.ProjectCount] "ok"
// @Router /reports/kaizens/per-project [post]
func (h *handlers) perProject(r *stdhttp.Request, in domain.Query) (any, error) {
	return h.svc.KaizensPerProject(scoped(r, in), in)
}

// swagger:route POST /reports/kaizens/per-type Reports reportsKaizensPerType
// @Summary Kaizens per type
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.Query true "Scope"
// @Success 200 {object} domain.Items[domain.TypeCount] "ok"
// @Router /reports/kaizens/per-type [post]
func (h *handlers) perType(r *stdhttp.Request, in domain.Query) (any, error) {
	return h.svc.KaizensPerType(scoped(r, in), in)
}

// swagger:route POST /reports/kaizens/per-type-per-project Reports reportsKaizensPerTypePerProject
// @Summary Kaizens per type broken down by project
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.Query true "Scope"
// @Success 200 {object} domain.Items[domain.TypeProjectRow] "ok"
// @Router /reports/kaizens/per-type-per-project [post]
func (h *handlers) perTypePerProject(r *stdhttp.Request, in domain.Query) (any, error) {
	return h.svc.KaizensPerTypePerProject(scoped(r, in), in)
}

// swagger:route POST /reports/kaizens/per-sector Reports reportsKaizensPerSector
// @Summary Kaizens per author sector
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.Query true "Scope"
// @Success 200 {object} domain.Items[domain.SectorCount] "ok"
// @Router /reports/kaizens/per-sector [post]
func (h *handlers) perSector(r *stdhttp.Request, in domain.Query) (any, error) {
	return h.svc.KaizensPerSector(scoped(r, in), in)
}

// swagger:route POST /reports/kaizens/per-position Reports reportsKaizensPerPosition
// @Summary Kaizens per author position
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.Query true "Scope"
// @Success 200 {object} domain.Items[domain.PositionCount] "ok"
// @Router /reports/kaizens/per-position [post]
func (h *handlers) perPosition(r *stdhttp.Request, in domain.Query) (any, error) {
	return h.svc.KaizensPerPosition(scoped(r, in), in)
}

// swagger:route POST /reports/kaizens/per-benefit Reports reportsKaizensPerBenefit
// @Summary Kaizens per benefit kpi
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.Query true "Scope"
// @Success 200 {object} domain.Items[domain.BenefitCount] "ok"
// @Router /reports/kaizens/per-benefit [post]
func (h *handlers) perBenefit(r *stdhttp.Request, in domain.Query) (any, error) {
	return h.svc.KaizensPerBenefit(scoped(r, in), in)
}

// swagger:route POST /reports/kaizens/per-week Reports reportsKaizensPerWeek
// @Summary Kaizens per ISO week
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.Query true "Scope"
// @Success 200 {object} domain.Items[domain.WeekCount] "ok"
// @Router /reports/kaizens/per-week [post]
func (h *handlers) perWeek(r *stdhttp.Request, in domain.Query) (any, error) {
	return h.svc.KaizensPerWeek(scoped(r, in), in)
}

// swagger:route POST /reports/kaizens/per-participant Reports reportsKaizensPerParticipant
// @Summary Kaizens per participant by project
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.Query true "Scope"
// @Success 200 {object} domain.Items[domain.ParticipantRatio] "ok"
// @Router /reports/kaizens/per-participant [post]
func (h *handlers) perParticipant(r *stdhttp.Request, in domain.Query) (any, error) {
	return h.svc.KaizensPerParticipant(scoped(r, in), in)
}

// swagger:route POST /reports/kaizens/most-replicated Reports reportsMostReplicated
// @Summary Most replicated kaizens
// @Description is_replica and category are accepted and ignored
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.MostReplicatedInput true "Scope and limit"
// @Success 200 {object} domain.Items[domain.ReplicatedKaizen] "ok"
// @Router /reports/kaizens/most-replicated [post]
func (h *handlers) mostReplicated(r *stdhttp.Request, in domain.MostReplicatedInput) (any, error) {
	return h.svc.MostReplicatedKaizens(scoped(r, in.Query), in)
}

// swagger:route POST /reports/kaizens/top-authors Reports reportsTopAuthors
// @Summary Users with the most kaizens
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.RankingInput true "Scope and limit"
// @Success 200 {object} domain.Items[domain.AuthorCount] "ok"
// @Router /reports/kaizens/top-authors [post]
func (h *handlers) topAuthors(r *stdhttp.Request, in domain.RankingInput) (any, error) {
	return h.svc.TopAuthors(scoped(r, in.Query), in)
}

// swagger:route POST /reports/adherence/percentage Reports reportsAdherencePercentage
// @Summary Player adherence per project
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.Query true "Scope"
// @Success 200 {object} domain.Items[domain.AdherenceRow] "ok"
// @Router /reports/adherence/percentage [post]
func (h *handlers) adherencePercentage(r *stdhttp.Request, in domain.Query) (any, error) {
	return h.svc.AdherencePercentage(scoped(r, in), in)
}

// swagger:route POST /reports/adherence/count Reports reportsAdherenceCount
// @Summary Player adherence over the scope
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.AdherenceCountInput true "Scope and kaizen type"
// @Success 200 {object} domain.AdherenceCount "ok"
// @Router /reports/adherence/count [post]
func (h *handlers) adherenceCount(r *stdhttp.Request, in domain.AdherenceCountInput) (any, error) {
	return h.svc.AdherenceCount(scoped(r, in.Query), in)
}

// swagger:route POST /reports/tasks/counters Reports reportsTaskCounters
// @Summary Task counters
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.Query true "Scope"
// @Success 200 {object} domain.TaskCounters "ok"
// @Router /reports/tasks/counters [post]
func (h *handlers) taskCounters(r *stdhttp.Request, in domain.Query) (any, error) {
	return h.svc.TaskCounters(scoped(r, in), in)
}

// swagger:route POST /reports/tasks/kpis-by-project Reports reportsKPIsByProject
// @Summary Task kpi averages per project
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.Query true "Scope"
// @Success 200 {array} domain.ProjectKPIs "ok"
// @Router /reports/tasks/kpis-by-project [post]
func (h *handlers) kpisByProject(r *stdhttp.Request, in domain.Query) (any, error) {
	return h.svc.TaskKPIsByProject(scoped(r, in), in)
}

// swagger:route POST /reports/tasks/kpis-by-game Reports reportsKPIsByGame
// @Summary Task kpi averages per game
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.Query true "Scope"
// @Success 200 {array} domain.GameKPIs "ok"
// @Router /reports/tasks/kpis-by-game [post]
func (h *handlers) kpisByGame(r *stdhttp.Request, in domain.Query) (any, error) {
	return h.svc.TaskKPIsByGame(scoped(r, in), in)
}

// swagger:route POST /reports/tasks/best-players Reports reportsBestPlayers
// @Summary Teams and users ranked by task progress
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.RankingInput true "Scope and limit"
// @Success 200 {object} domain.Items[domain.BestPlayer] "ok"
// @Router /reports/tasks/best-players [post]
func (h *handlers) bestPlayers(r *stdhttp.Request, in domain.RankingInput) (any, error) {
	return h.svc.BestPlayers(scoped(r, in.Query), in)
}
