// Package repo provides postgres access for reports
package repo

import (
	"context"
	"errors"
	"time"

	"canteiro/internal/core/records"
	"canteiro/internal/modkit/repokit"
	perr "canteiro/internal/platform/errors"
	"canteiro/internal/services/api/reports/domain"

	"github.com/jackc/pgx/v5"
)

type (
	// PG is a binder that can bind the source to a Queryer or TxRunner
	PG struct{}
	// queries implements domain.Source
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the source to a Queryer or TxRunner
func NewPG() repokit.Binder[domain.Source] { return PG{} }

// Bind wires a Queryer to the source
func (PG) Bind(q repokit.Queryer) domain.Source { return &queries{q: q} }

func (r *queries) GetLeague(ctx context.Context, leagueID string) (records.League, error) {
	const sql = `
select id::text, coalesce(projects::text[], '{}'), game_id::text
from leagues
where id = $1::uuid
`
	var l records.League
	if err := r.q.QueryRow(ctx, sql, leagueID).Scan(&l.ID, &l.Projects, &l.GameID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return records.League{}, perr.NotFoundf("league %s not found", leagueID)
		}
		return records.League{}, perr.FromPostgres(err, "get league")
	}
	return l, nil
}

func (r *queries) ListProjectsByActiveGame(ctx context.Context, organizationID, gameID string) ([]string, error) {
	const sql = `
select id::text
from projects
where organization_id = $1::uuid and active_game_id = $2::uuid
order by created_at asc, id asc
`
	ids, err := repokit.Many(ctx, r.q, func(row repokit.Row) (string, error) {
		var id string
		err := row.Scan(&id)
		return id, err
	}, sql, organizationID, gameID)
	return ids, perr.FromPostgres(err, "list projects by active game")
}

func scanKaizen(row repokit.Row) (records.Kaizen, error) {
	var (
		k       records.Kaizen
		created time.Time
	)
	err := row.Scan(&k.ID, &k.ProjectID, &k.AuthorID, &k.KaizenTypeID, &k.Name, &k.Replicas, &k.OriginalKaizenID, &created)
	k.CreatedDate = created.UTC()
	return k, err
}

func (r *queries) ListKaizens(ctx context.Context, organizationID string, projectIDs []string) ([]records.Kaizen, error) {
	// replicas keep their recorded order
	const sql = `
select k.id::text, k.project_id::text, k.author_id::text, k.kaizen_type_id::text, k.name,
       coalesce((select array_agg(rp.replica_id::text order by rp.position)
                 from kaizen_replicas rp where rp.kaizen_id = k.id), '{}'),
       k.original_kaizen_id::text, k.created_at
from kaizens k
where k.organization_id = $1::uuid and k.project_id = any($2::uuid[])
order by k.created_at asc, k.id asc
`
	out, err := repokit.Many(ctx, r.q, scanKaizen, sql, organizationID, projectIDs)
	if err != nil {
		return nil, perr.FromPostgres(err, "list kaizens")
	}
	if len(out) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(out))
	idx := make(map[string]int, len(out))
	for i, k := range out {
		ids = append(ids, k.ID)
		idx[k.ID] = i
	}
	benefits, err := r.benefits(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, b := range benefits {
		if i, ok := idx[b.kaizenID]; ok {
			out[i].Benefits = append(out[i].Benefits, b.Benefit)
		}
	}
	return out, nil
}

type kaizenBenefit struct {
	kaizenID string
	records.Benefit
}

func (r *queries) benefits(ctx context.Context, kaizenIDs []string) ([]kaizenBenefit, error) {
	const sql = `
select kaizen_id::text, kpi_id::text, description
from kaizen_benefits
where kaizen_id = any($1::uuid[])
order by kaizen_id, position
`
	out, err := repokit.Many(ctx, r.q, func(row repokit.Row) (kaizenBenefit, error) {
		var b kaizenBenefit
		err := row.Scan(&b.kaizenID, &b.KPIID, &b.Description)
		return b, err
	}, sql, kaizenIDs)
	return out, perr.FromPostgres(err, "list kaizen benefits")
}

func (r *queries) ListTasks(ctx context.Context, gameIDs []string) ([]records.Task, error) {
	const sql = `
select id::text, game_id::text, team_id::text, user_id::text, kpi_id::text, progress_percent
from tasks
where game_id = any($1::uuid[])
order by created_at asc, id asc
`
	out, err := repokit.Many(ctx, r.q, func(row repokit.Row) (records.Task, error) {
		var t records.Task
		err := row.Scan(&t.ID, &t.GameID, &t.TeamID, &t.UserID, &t.KPIID, &t.Progress.Percent)
		return t, err
	}, sql, gameIDs)
	return out, perr.FromPostgres(err, "list tasks")
}

func (r *queries) ListProjects(ctx context.Context, projectIDs []string) ([]records.Project, error) {
	const sql = `select id::text, name, active_game_id::text from projects where id = any($1::uuid[])`
	out, err := repokit.Many(ctx, r.q, func(row repokit.Row) (records.Project, error) {
		var p records.Project
		err := row.Scan(&p.ID, &p.Name, &p.ActiveGameID)
		return p, err
	}, sql, projectIDs)
	return out, perr.FromPostgres(err, "list projects")
}

func (r *queries) ListKaizenTypes(ctx context.Context, ids []string) ([]records.KaizenType, error) {
	const sql = `select id::text, name from kaizen_types where id = any($1::uuid[])`
	out, err := repokit.Many(ctx, r.q, func(row repokit.Row) (records.KaizenType, error) {
		var t records.KaizenType
		err := row.Scan(&t.ID, &t.Name)
		return t, err
	}, sql, ids)
	return out, perr.FromPostgres(err, "list kaizen types")
}

func (r *queries) ListKPIs(ctx context.Context, ids []string) ([]records.KPI, error) {
	const sql = `select id::text, name from kpis where id = any($1::uuid[])`
	out, err := repokit.Many(ctx, r.q, func(row repokit.Row) (records.KPI, error) {
		var k records.KPI
		err := row.Scan(&k.ID, &k.Name)
		return k, err
	}, sql, ids)
	return out, perr.FromPostgres(err, "list kpis")
}

func (r *queries) ListTeams(ctx context.Context, ids []string) ([]records.Team, error) {
	const sql = `select id::text, name, photo from teams where id = any($1::uuid[])`
	out, err := repokit.Many(ctx, r.q, func(row repokit.Row) (records.Team, error) {
		var t records.Team
		err := row.Scan(&t.ID, &t.Name, &t.Photo)
		return t, err
	}, sql, ids)
	return out, perr.FromPostgres(err, "list teams")
}

func (r *queries) ListUsers(ctx context.Context, ids []string) ([]records.User, error) {
	const sql = `select id::text, name, photo from users where id = any($1::uuid[])`
	out, err := repokit.Many(ctx, r.q, func(row repokit.Row) (records.User, error) {
		var u records.User
		err := row.Scan(&u.ID, &u.Name, &u.Photo)
		return u, err
	}, sql, ids)
	return out, perr.FromPostgres(err, "list users")
}

func (r *queries) ListMembers(ctx context.Context, organizationID, role string) ([]records.Member, error) {
	const sql = `
select m.user_id::text, u.name, m.role, m.position, s.name, m.sector_id::text
from members m
join users u on u.id = m.user_id
left join sectors s on s.id = m.sector_id
where m.organization_id = $1::uuid
and ($2 = '' or m.role = $2)
order by u.name asc, m.user_id asc
`
	out, err := repokit.Many(ctx, r.q, func(row repokit.Row) (records.Member, error) {
		var m records.Member
		err := row.Scan(&m.UserID, &m.Name, &m.Role, &m.Position, &m.Sector, &m.SectorID)
		return m, err
	}, sql, organizationID, role)
	return out, perr.FromPostgres(err, "list members")
}

func (r *queries) ListGamesByProject(ctx context.Context, organizationID string, projectIDs []string) ([]records.Game, error) {
	const sql = `
select g.id::text, g.project_id::text, g.name
from games g
join projects p on p.id = g.project_id
where p.organization_id = $1::uuid and g.project_id = any($2::uuid[])
order by g.created_at asc, g.id asc
`
	out, err := repokit.Many(ctx, r.q, func(row repokit.Row) (records.Game, error) {
		var g records.Game
		err := row.Scan(&g.ID, &g.ProjectID, &g.Name)
		return g, err
	}, sql, organizationID, projectIDs)
	return out, perr.FromPostgres(err, "list games")
}
