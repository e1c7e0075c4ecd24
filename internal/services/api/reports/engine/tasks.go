package engine

import (
	"context"

	"canteiro/internal/core/records"
	"canteiro/internal/core/taskperf"
	"canteiro/internal/services/api/reports/domain"
)

// TaskCounters summarizes the tasks of every game in scope
func (e Engine) TaskCounters(ctx context.Context, src domain.Source, q domain.Query) (domain.TaskCounters, error) {
	set, err := e.loadTasks(ctx, src, q)
	if err != nil || set.scope.Empty() {
		return domain.TaskCounters{}, err
	}
	t := taskperf.Summarize(set.tasks)
	return domain.TaskCounters{
		TaskCount:       t.Tasks,
		GameCount:       len(set.games),
		TasksWithKPI:    t.WithKPI,
		CompletedTasks:  t.Completed,
		AverageProgress: t.Average,
	}, nil
}

// TaskKPIsByProject returns rounded kpi averages per project as a bare array
func (e Engine) TaskKPIsByProject(ctx context.Context, src domain.Source, q domain.Query) ([]domain.ProjectKPIs, error) {
	set, err := e.loadTasks(ctx, src, q)
	if err != nil || len(set.tasks) == 0 {
		return []domain.ProjectKPIs{}, err
	}
	rows := taskperf.ByProject(set.tasks, set.games)

	var projectIDs, kpiIDs []string
	for _, r := range rows {
		projectIDs = append(projectIDs, r.ProjectID)
		kpiIDs = appendKPIs(kpiIDs, r.KPIs)
	}
	projects, err := e.projectNames(ctx, src, projectIDs)
	if err != nil {
		return []domain.ProjectKPIs{}, err
	}
	kpis, err := e.kpiNames(ctx, src, kpiIDs)
	if err != nil {
		return []domain.ProjectKPIs{}, err
	}

	out := make([]domain.ProjectKPIs, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.ProjectKPIs{
			ProjectID:   r.ProjectID,
			ProjectName: projects[r.ProjectID],
			KPIs:        kpiAverages(r.KPIs, kpis),
		})
	}
	return out, nil
}

// TaskKPIsByGame returns rounded kpi averages per game as a bare array
func (e Engine) TaskKPIsByGame(ctx context.Context, src domain.Source, q domain.Query) ([]domain.GameKPIs, error) {
	set, err := e.loadTasks(ctx, src, q)
	if err != nil || len(set.tasks) == 0 {
		return []domain.GameKPIs{}, err
	}
	rows := taskperf.ByGame(set.tasks, set.games)
	games := namesOf(set.games, func(g records.Game) (string, string) { return g.ID, g.Name })

	var projectIDs, kpiIDs []string
	for _, r := range rows {
		projectIDs = append(projectIDs, r.ProjectID)
		kpiIDs = appendKPIs(kpiIDs, r.KPIs)
	}
	projects, err := e.projectNames(ctx, src, projectIDs)
	if err != nil {
		return []domain.GameKPIs{}, err
	}
	kpis, err := e.kpiNames(ctx, src, kpiIDs)
	if err != nil {
		return []domain.GameKPIs{}, err
	}

	out := make([]domain.GameKPIs, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.GameKPIs{
			GameID:      r.GameID,
			GameName:    games[r.GameID],
			ProjectID:   r.ProjectID,
			ProjectName: projects[r.ProjectID],
			KPIs:        kpiAverages(r.KPIs, kpis),
		})
	}
	return out, nil
}

// BestPlayers ranks teams and users by mean task progress
// unresolved names stay empty and the row is kept
func (e Engine) BestPlayers(ctx context.Context, src domain.Source, in domain.RankingInput) (domain.Items[domain.BestPlayer], error) {
	set, err := e.loadTasks(ctx, src, in.Query)
	if err != nil || len(set.tasks) == 0 {
		return domain.ItemsOf[domain.BestPlayer](nil), err
	}
	standings := capped(taskperf.Leaderboard(set.tasks), e.limit(in.Limit))

	var teamIDs, userIDs []string
	for _, s := range standings {
		switch s.Entity.Kind {
		case records.KindTeam:
			teamIDs = append(teamIDs, s.Entity.ID)
		case records.KindUser:
			userIDs = append(userIDs, s.Entity.ID)
		}
	}
	type profile struct {
		name  string
		photo *string
	}
	profiles := map[records.Responsible]profile{}
	if len(teamIDs) > 0 {
		teams, err := src.ListTeams(ctx, teamIDs)
		if err != nil {
			return domain.ItemsOf[domain.BestPlayer](nil), err
		}
		for _, t := range teams {
			profiles[records.Responsible{Kind: records.KindTeam, ID: t.ID}] = profile{t.Name, t.Photo}
		}
	}
	if len(userIDs) > 0 {
		users, err := src.ListUsers(ctx, userIDs)
		if err != nil {
			return domain.ItemsOf[domain.BestPlayer](nil), err
		}
		for _, u := range users {
			profiles[records.Responsible{Kind: records.KindUser, ID: u.ID}] = profile{u.Name, u.Photo}
		}
	}

	out := make([]domain.BestPlayer, 0, len(standings))
	for _, s := range standings {
		p := profiles[s.Entity]
		out = append(out, domain.BestPlayer{
			EntityID:        s.Entity.ID,
			EntityKind:      string(s.Entity.Kind),
			Name:            p.name,
			Photo:           p.photo,
			KPIs:            s.KPIs,
			TaskCount:       s.Tasks,
			AverageProgress: s.Average,
		})
	}
	return domain.ItemsOf(out), nil
}

func appendKPIs(dst []string, ms []taskperf.KPIMean) []string {
	for _, m := range ms {
		dst = append(dst, m.KPIID)
	}
	return dst
}

func kpiAverages(ms []taskperf.KPIMean, names map[string]string) []domain.KPIAverage {
	out := make([]domain.KPIAverage, 0, len(ms))
	for _, m := range ms {
		out = append(out, domain.KPIAverage{KPIID: m.KPIID, KPIName: names[m.KPIID], Average: m.Average, TaskCount: m.Tasks})
	}
	return out
}
