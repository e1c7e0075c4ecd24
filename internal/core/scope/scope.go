// Package scope resolves which projects a report covers
package scope

import (
	"context"

	"canteiro/internal/core/records"
)

// ProjectLister finds projects currently running a given game
type ProjectLister interface {
	ListProjectsByActiveGame(ctx context.Context, organizationID, gameID string) ([]string, error)
}

// Set is an ordered list of project ids
// duplicates from an explicit league list are kept as given
type Set struct {
	ProjectIDs []string
}

// Empty reports whether there is nothing to aggregate
func (s Set) Empty() bool { return len(s.ProjectIDs) == 0 }

// Len is the number of ids in scope
func (s Set) Len() int { return len(s.ProjectIDs) }

// Contains reports whether id is in scope
func (s Set) Contains(id string) bool {
	for _, p := range s.ProjectIDs {
		if p == id {
			return true
		}
	}
	return false
}

// ForProject builds the single project override scope
func ForProject(projectID string) Set {
	if projectID == "" {
		return Set{}
	}
	return Set{ProjectIDs: []string{projectID}}
}

// Resolve picks the league's explicit project list when present,
// else the projects whose active game is the league game,
// else an empty set
func Resolve(ctx context.Context, l ProjectLister, organizationID string, league records.League) (Set, error) {
	if len(league.Projects) > 0 {
		out := make([]string, len(league.Projects))
		copy(out, league.Projects)
		return Set{ProjectIDs: out}, nil
	}
	if league.GameID == nil || *league.GameID == "" {
		return Set{}, nil
	}
	ids, err := l.ListProjectsByActiveGame(ctx, organizationID, *league.GameID)
	if err != nil {
		return Set{}, err
	}
	return Set{ProjectIDs: ids}, nil
}
