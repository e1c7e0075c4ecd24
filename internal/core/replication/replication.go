// Package replication counts how often kaizens were replicated across projects
package replication

import (
	"sort"

	"canteiro/internal/core/records"
)

// DefaultMaxDepth bounds lineage walks over back references
const DefaultMaxDepth = 32

// Graph is an id keyed view of the replication edges in a kaizen set
// forward edges come from a kaizen's replica list, back edges from originalKaizenId
type Graph struct {
	forward map[string][]string
	back    map[string]string
}

// NewGraph indexes both edge directions
func NewGraph(kaizens []records.Kaizen) Graph {
	g := Graph{
		forward: make(map[string][]string, len(kaizens)),
		back:    make(map[string]string, len(kaizens)),
	}
	for _, k := range kaizens {
		if len(k.Replicas) > 0 {
			g.forward[k.ID] = append(g.forward[k.ID], k.Replicas...)
		}
		if k.OriginalKaizenID != nil && *k.OriginalKaizenID != "" {
			g.back[k.ID] = *k.OriginalKaizenID
		}
	}
	return g
}

// Replicas returns the forward edges recorded for id
func (g Graph) Replicas(id string) []string { return g.forward[id] }

// Original returns the back reference of id if any
func (g Graph) Original(id string) (string, bool) {
	o, ok := g.back[id]
	return o, ok
}

// Root follows back references from id until a kaizen with no original,
// a cycle, or maxDepth hops. maxDepth <= 0 uses DefaultMaxDepth
func (g Graph) Root(id string, maxDepth int) string {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	seen := map[string]struct{}{id: {}}
	cur := id
	for i := 0; i < maxDepth; i++ {
		next, ok := g.back[cur]
		if !ok {
			break
		}
		if _, loop := seen[next]; loop {
			break
		}
		seen[next] = struct{}{}
		cur = next
	}
	return cur
}

// Count tallies replication per kaizen id
// each kaizen adds len(replicas) to itself and 1 to its original
// both directions are counted independently so a pair recorded on both
// sides is counted twice; ids with no increment are absent
func Count(kaizens []records.Kaizen) map[string]int {
	counts := make(map[string]int)
	for _, k := range kaizens {
		if n := len(k.Replicas); n > 0 {
			counts[k.ID] += n
		}
		if k.OriginalKaizenID != nil && *k.OriginalKaizenID != "" {
			counts[*k.OriginalKaizenID]++
		}
	}
	return counts
}

// Entry is a kaizen with its replication count
type Entry struct {
	Kaizen records.Kaizen
	Count  int
}

// Ranked returns the kaizens of the input with a positive count,
// highest count first; ties keep input order
// ids counted only through back references to kaizens outside the input are not listed
func Ranked(kaizens []records.Kaizen, counts map[string]int) []Entry {
	out := make([]Entry, 0, len(counts))
	seen := make(map[string]struct{}, len(kaizens))
	for _, k := range kaizens {
		if _, dup := seen[k.ID]; dup {
			continue
		}
		seen[k.ID] = struct{}{}
		if c := counts[k.ID]; c > 0 {
			out = append(out, Entry{Kaizen: k, Count: c})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
