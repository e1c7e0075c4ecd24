// Package engine computes report shapes from raw kaizen and task records
// every call resolves its scope, reads through a domain.Source and aggregates in memory
// nothing is cached between calls
package engine

import (
	"context"

	"canteiro/internal/core/grouping"
	"canteiro/internal/core/records"
	"canteiro/internal/core/scope"
	"canteiro/internal/platform/config"
	"canteiro/internal/services/api/reports/domain"
)

// Engine holds the tunables shared by all reports
type Engine struct {
	maxReplicaDepth int
	defaultLimit    int
}

// Option configures an Engine
type Option func(*Engine)

// WithMaxReplicaDepth caps lineage walks in the most replicated report
func WithMaxReplicaDepth(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxReplicaDepth = n
		}
	}
}

// WithDefaultLimit caps ranking reports when a request sets no limit; 0 means no cap
func WithDefaultLimit(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.defaultLimit = n
		}
	}
}

// New builds an Engine
func New(opts ...Option) Engine {
	var e Engine
	for _, o := range opts {
		o(&e)
	}
	return e
}

// FromConfig reads DEFAULT_LIMIT and MAX_REPLICA_DEPTH from cfg
func FromConfig(cfg config.Conf) Engine {
	return New(
		WithDefaultLimit(cfg.MayPositiveInt("DEFAULT_LIMIT", 10)),
		WithMaxReplicaDepth(cfg.MayPositiveInt("MAX_REPLICA_DEPTH", 64)),
	)
}

// resolve applies the project override, then the league rules
func (e Engine) resolve(ctx context.Context, src domain.Source, q domain.Query) (scope.Set, error) {
	if q.ProjectID != "" {
		return scope.ForProject(q.ProjectID), nil
	}
	if q.LeagueID == "" {
		return scope.Set{}, nil
	}
	league, err := src.GetLeague(ctx, q.LeagueID)
	if err != nil {
		return scope.Set{}, err
	}
	return scope.Resolve(ctx, src, q.OrganizationID, league)
}

// kaizenSet is the kaizen side of a report after scope and sector filtering
type kaizenSet struct {
	scope   scope.Set
	kaizens []records.Kaizen
	members map[string]records.Member
}

// loadKaizens fetches kaizens in scope; members are fetched when the report
// buckets by member attributes or a sector filter is set
func (e Engine) loadKaizens(ctx context.Context, src domain.Source, q domain.Query, needMembers bool) (kaizenSet, error) {
	sc, err := e.resolve(ctx, src, q)
	if err != nil {
		return kaizenSet{}, err
	}
	if sc.Empty() {
		return kaizenSet{scope: sc}, nil
	}
	ks, err := src.ListKaizens(ctx, q.OrganizationID, sc.ProjectIDs)
	if err != nil {
		return kaizenSet{}, err
	}
	set := kaizenSet{scope: sc, kaizens: ks}
	if needMembers || q.SectorID != "" {
		ms, err := src.ListMembers(ctx, q.OrganizationID, "")
		if err != nil {
			return kaizenSet{}, err
		}
		set.members = indexBy(ms, func(m records.Member) string { return m.UserID })
	}
	if q.SectorID != "" {
		set.kaizens = filter(set.kaizens, func(k records.Kaizen) bool {
			m, ok := set.members[k.AuthorID]
			return ok && m.SectorID != nil && *m.SectorID == q.SectorID
		})
	}
	if err := ctx.Err(); err != nil {
		return kaizenSet{}, err
	}
	return set, nil
}

// taskSet is the task side of a report
type taskSet struct {
	scope scope.Set
	games []records.Game
	tasks []records.Task
}

func (e Engine) loadTasks(ctx context.Context, src domain.Source, q domain.Query) (taskSet, error) {
	sc, err := e.resolve(ctx, src, q)
	if err != nil {
		return taskSet{}, err
	}
	if sc.Empty() {
		return taskSet{scope: sc}, nil
	}
	games, err := src.ListGamesByProject(ctx, q.OrganizationID, sc.ProjectIDs)
	if err != nil {
		return taskSet{}, err
	}
	set := taskSet{scope: sc, games: games}
	if len(games) == 0 {
		return set, nil
	}
	ids := make([]string, 0, len(games))
	for _, g := range games {
		ids = append(ids, g.ID)
	}
	if set.tasks, err = src.ListTasks(ctx, ids); err != nil {
		return taskSet{}, err
	}
	if err := ctx.Err(); err != nil {
		return taskSet{}, err
	}
	return set, nil
}

func (e Engine) projectNames(ctx context.Context, src domain.Source, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	ps, err := src.ListProjects(ctx, ids)
	if err != nil {
		return nil, err
	}
	return namesOf(ps, func(p records.Project) (string, string) { return p.ID, p.Name }), nil
}

func (e Engine) kpiNames(ctx context.Context, src domain.Source, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	ks, err := src.ListKPIs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return namesOf(ks, func(k records.KPI) (string, string) { return k.ID, k.Name }), nil
}

func (e Engine) typeNames(ctx context.Context, src domain.Source, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	ts, err := src.ListKaizenTypes(ctx, ids)
	if err != nil {
		return nil, err
	}
	return namesOf(ts, func(t records.KaizenType) (string, string) { return t.ID, t.Name }), nil
}

func (e Engine) playerCount(ctx context.Context, src domain.Source, organizationID string) (int, error) {
	ms, err := src.ListMembers(ctx, organizationID, records.RolePlayer)
	if err != nil {
		return 0, err
	}
	return len(ms), nil
}

func (e Engine) limit(requested int) int {
	if requested > 0 {
		return requested
	}
	return e.defaultLimit
}

// helpers

func indexBy[T any](xs []T, id func(T) string) map[string]T {
	out := make(map[string]T, len(xs))
	for _, x := range xs {
		out[id(x)] = x
	}
	return out
}

func namesOf[T any](xs []T, pick func(T) (string, string)) map[string]string {
	out := make(map[string]string, len(xs))
	for _, x := range xs {
		id, name := pick(x)
		out[id] = name
	}
	return out
}

func filter[T any](xs []T, keep func(T) bool) []T {
	out := make([]T, 0, len(xs))
	for _, x := range xs {
		if keep(x) {
			out = append(out, x)
		}
	}
	return out
}

func distinct[T any](xs []T, key func(T) string) int {
	seen := make(map[string]struct{}, len(xs))
	for _, x := range xs {
		seen[key(x)] = struct{}{}
	}
	return len(seen)
}

func capped[T any](xs []T, n int) []T {
	if n > 0 && len(xs) > n {
		return xs[:n]
	}
	return xs
}

func bucketKeys[K comparable, T any](b []grouping.Bucket[K, T]) []K {
	out := make([]K, 0, len(b))
	for _, x := range b {
		out = append(out, x.Key)
	}
	return out
}

func projectOf(k records.Kaizen) string { return k.ProjectID }

func authorOf(k records.Kaizen) string { return k.AuthorID }

// typeKey treats a blank type id like a missing one
func typeKey(k records.Kaizen) grouping.NullKey {
	if k.KaizenTypeID == nil || *k.KaizenTypeID == "" {
		return grouping.NullKey{}
	}
	return grouping.NullableKey(k.KaizenTypeID)
}

func typeLabel(k grouping.NullKey, names map[string]string) string {
	if !k.Valid {
		return grouping.PlaceholderNoType
	}
	return grouping.Label(k.Value, names, grouping.PlaceholderUnknown)
}

func validKeys(keys []grouping.NullKey) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k.Valid {
			out = append(out, k.Value)
		}
	}
	return out
}
