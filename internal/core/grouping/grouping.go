// Package grouping buckets records by a key and orders buckets for presentation
package grouping

import (
	"sort"
	"time"
)

// Placeholder labels used when a bucket key has no resolvable name
const (
	PlaceholderNoType  = "Sem tipo"
	PlaceholderUnknown = "Desconhecido"
)

// Bucket is one group of items sharing a key
type Bucket[K comparable, T any] struct {
	Key   K
	Count int
	Items []T
}

// Group buckets items by key; buckets come out in first seen order
func Group[T any, K comparable](items []T, key func(T) K) []Bucket[K, T] {
	idx := make(map[K]int)
	var out []Bucket[K, T]
	for _, it := range items {
		k := key(it)
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Bucket[K, T]{Key: k})
		}
		out[i].Count++
		out[i].Items = append(out[i].Items, it)
	}
	return out
}

// GroupMany lets one item land in several buckets
// an item is counted once per distinct key it yields
func GroupMany[T any, K comparable](items []T, keys func(T) []K) []Bucket[K, T] {
	idx := make(map[K]int)
	var out []Bucket[K, T]
	for _, it := range items {
		seen := make(map[K]struct{})
		for _, k := range keys(it) {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			i, ok := idx[k]
			if !ok {
				i = len(out)
				idx[k] = i
				out = append(out, Bucket[K, T]{Key: k})
			}
			out[i].Count++
			out[i].Items = append(out[i].Items, it)
		}
	}
	return out
}

// SortByCount orders buckets by count, highest first; ties keep their order
func SortByCount[K comparable, T any](b []Bucket[K, T]) {
	sort.SliceStable(b, func(i, j int) bool { return b[i].Count > b[j].Count })
}

// SortDesc orders s by val, highest first; ties keep their order
func SortDesc[E any](s []E, val func(E) float64) {
	sort.SliceStable(s, func(i, j int) bool { return val(s[i]) > val(s[j]) })
}

// Counts flattens buckets into a key to count map
func Counts[K comparable, T any](b []Bucket[K, T]) map[K]int {
	out := make(map[K]int, len(b))
	for _, x := range b {
		out[x.Key] = x.Count
	}
	return out
}

// KeyCount pairs a key with its count
type KeyCount[K comparable] struct {
	Key   K
	Count int
}

// OuterJoin lists every key once in the given order with its count,
// 0 when counts has no entry for it
func OuterJoin[K comparable](keys []K, counts map[K]int) []KeyCount[K] {
	seen := make(map[K]struct{}, len(keys))
	out := make([]KeyCount[K], 0, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, KeyCount[K]{Key: k, Count: counts[k]})
	}
	return out
}

// NullKey is a comparable stand in for an optional string key
type NullKey struct {
	Value string
	Valid bool
}

// NullableKey keeps nil and "" apart so null buckets stay distinct
func NullableKey(s *string) NullKey {
	if s == nil {
		return NullKey{}
	}
	return NullKey{Value: *s, Valid: true}
}

// Ptr turns the key back into an optional string
func (k NullKey) Ptr() *string {
	if !k.Valid {
		return nil
	}
	v := k.Value
	return &v
}

// Label resolves id through names, falling back to placeholder
func Label(id string, names map[string]string, placeholder string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return placeholder
}

// WeekRange is an ISO week, Monday through Sunday, in UTC
type WeekRange struct {
	Start time.Time
	End   time.Time
}

// Week truncates t to the Monday of its ISO week
func Week(t time.Time) WeekRange {
	t = t.UTC()
	back := (int(t.Weekday()) + 6) % 7
	start := time.Date(t.Year(), t.Month(), t.Day()-back, 0, 0, 0, 0, time.UTC)
	return WeekRange{Start: start, End: start.AddDate(0, 0, 6)}
}
