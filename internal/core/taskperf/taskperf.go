// Package taskperf aggregates task progress per project, per game and per player
package taskperf

import (
	"sort"

	"canteiro/internal/core/ratio"
	"canteiro/internal/core/records"
)

// KPIMean is the rounded mean progress of the tasks tied to one kpi
type KPIMean struct {
	KPIID   string
	Average float64
	Tasks   int
}

// ProjectKPIs lists kpi means for a project
type ProjectKPIs struct {
	ProjectID string
	KPIs      []KPIMean
}

// GameKPIs lists kpi means for a game
type GameKPIs struct {
	GameID    string
	ProjectID string
	KPIs      []KPIMean
}

// kpiAcc collects percents per kpi keeping first seen kpi order
type kpiAcc struct {
	order []string
	vals  map[string][]float64
}

func newKPIAcc() *kpiAcc { return &kpiAcc{vals: map[string][]float64{}} }

func (a *kpiAcc) add(kpi string, v float64) {
	if _, ok := a.vals[kpi]; !ok {
		a.order = append(a.order, kpi)
	}
	a.vals[kpi] = append(a.vals[kpi], v)
}

func (a *kpiAcc) means() []KPIMean {
	out := make([]KPIMean, 0, len(a.order))
	for _, k := range a.order {
		vs := a.vals[k]
		out = append(out, KPIMean{KPIID: k, Average: ratio.Round(ratio.Mean(vs)), Tasks: len(vs)})
	}
	return out
}

func gameIndex(games []records.Game) map[string]records.Game {
	idx := make(map[string]records.Game, len(games))
	for _, g := range games {
		idx[g.ID] = g
	}
	return idx
}

// kpiOf returns the task kpi id; ok is false for tasks without one
func kpiOf(t records.Task) (string, bool) {
	if t.KPIID == nil || *t.KPIID == "" {
		return "", false
	}
	return *t.KPIID, true
}

// ByProject groups tasks by the project owning their game, then by kpi
// tasks without a kpi or whose game is unknown are skipped
func ByProject(tasks []records.Task, games []records.Game) []ProjectKPIs {
	idx := gameIndex(games)
	var order []string
	acc := map[string]*kpiAcc{}
	for _, t := range tasks {
		kpi, ok := kpiOf(t)
		if !ok {
			continue
		}
		g, ok := idx[t.GameID]
		if !ok {
			continue
		}
		a, ok := acc[g.ProjectID]
		if !ok {
			a = newKPIAcc()
			acc[g.ProjectID] = a
			order = append(order, g.ProjectID)
		}
		a.add(kpi, t.Progress.Value())
	}
	out := make([]ProjectKPIs, 0, len(order))
	for _, p := range order {
		out = append(out, ProjectKPIs{ProjectID: p, KPIs: acc[p].means()})
	}
	return out
}

// ByGame is ByProject keyed by game instead
func ByGame(tasks []records.Task, games []records.Game) []GameKPIs {
	idx := gameIndex(games)
	var order []string
	acc := map[string]*kpiAcc{}
	for _, t := range tasks {
		kpi, ok := kpiOf(t)
		if !ok {
			continue
		}
		if _, known := idx[t.GameID]; !known {
			continue
		}
		a, ok := acc[t.GameID]
		if !ok {
			a = newKPIAcc()
			acc[t.GameID] = a
			order = append(order, t.GameID)
		}
		a.add(kpi, t.Progress.Value())
	}
	out := make([]GameKPIs, 0, len(order))
	for _, id := range order {
		out = append(out, GameKPIs{GameID: id, ProjectID: idx[id].ProjectID, KPIs: acc[id].means()})
	}
	return out
}

// Standing is one leaderboard row
type Standing struct {
	Entity  records.Responsible
	KPIs    []string
	Tasks   int
	Average float64
}

// Leaderboard credits each task to its team, or its user when there is no team,
// and ranks entities by mean progress; teams and users never merge
func Leaderboard(tasks []records.Task) []Standing {
	type acc struct {
		kpis    []string
		seenKPI map[string]struct{}
		vals    []float64
	}
	var order []records.Responsible
	byEntity := map[records.Responsible]*acc{}
	for _, t := range tasks {
		who, ok := t.Responsible()
		if !ok {
			continue
		}
		a, ok := byEntity[who]
		if !ok {
			a = &acc{seenKPI: map[string]struct{}{}}
			byEntity[who] = a
			order = append(order, who)
		}
		if kpi, ok := kpiOf(t); ok {
			if _, dup := a.seenKPI[kpi]; !dup {
				a.seenKPI[kpi] = struct{}{}
				a.kpis = append(a.kpis, kpi)
			}
		}
		a.vals = append(a.vals, t.Progress.Value())
	}
	out := make([]Standing, 0, len(order))
	for _, who := range order {
		a := byEntity[who]
		kpis := a.kpis
		if kpis == nil {
			kpis = []string{}
		}
		out = append(out, Standing{Entity: who, KPIs: kpis, Tasks: len(a.vals), Average: ratio.Mean(a.vals)})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Average > out[j].Average })
	return out
}

// Totals summarizes a task set
type Totals struct {
	Tasks     int
	WithKPI   int
	Completed int
	Average   float64
}

// Summarize counts tasks, those tied to a kpi, and those at or above 100 percent
func Summarize(tasks []records.Task) Totals {
	var t Totals
	vals := make([]float64, 0, len(tasks))
	for _, task := range tasks {
		t.Tasks++
		if _, ok := kpiOf(task); ok {
			t.WithKPI++
		}
		v := task.Progress.Value()
		if v >= 100 {
			t.Completed++
		}
		vals = append(vals, v)
	}
	t.Average = ratio.Mean(vals)
	return t
}
