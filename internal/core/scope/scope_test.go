package scope

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"canteiro/internal/core/records"
)

type fakeLister struct {
	ids   []string
	err   error
	calls int
	game  string
}

func (f *fakeLister) ListProjectsByActiveGame(_ context.Context, _, gameID string) ([]string, error) {
	f.calls++
	f.game = gameID
	return f.ids, f.err
}

func ptr(s string) *string { return &s }

func TestResolve_ExplicitProjectsWin(t *testing.T) {
	t.Parallel()

	l := &fakeLister{ids: []string{"P9"}}
	league := records.League{Projects: []string{"P1", "P2"}, GameID: ptr("G")}

	got, err := Resolve(context.Background(), l, "org", league)
	if err != nil {
		t.Fatalf("unexpected err %v", err)
	}
	if !reflect.DeepEqual(got.ProjectIDs, []string{"P1", "P2"}) {
		t.Fatalf("got %v want [P1 P2]", got.ProjectIDs)
	}
	if l.calls != 0 {
		t.Fatalf("lister should not be consulted, calls=%d", l.calls)
	}
}

func TestResolve_ExplicitListIsCopied(t *testing.T) {
	t.Parallel()

	league := records.League{Projects: []string{"P1"}}
	got, _ := Resolve(context.Background(), &fakeLister{}, "org", league)
	got.ProjectIDs[0] = "changed"
	if league.Projects[0] != "P1" {
		t.Fatal("league must not be mutated through the resolved set")
	}
}

func TestResolve_FallsBackToActiveGame(t *testing.T) {
	t.Parallel()

	l := &fakeLister{ids: []string{"P3"}}
	got, err := Resolve(context.Background(), l, "org", records.League{GameID: ptr("G1")})
	if err != nil {
		t.Fatalf("unexpected err %v", err)
	}
	if l.game != "G1" || !reflect.DeepEqual(got.ProjectIDs, []string{"P3"}) {
		t.Fatalf("got %v via game %q", got.ProjectIDs, l.game)
	}
}

func TestResolve_NoGameNoProjectsIsEmpty(t *testing.T) {
	t.Parallel()

	l := &fakeLister{ids: []string{"P3"}}
	got, err := Resolve(context.Background(), l, "org", records.League{})
	if err != nil {
		t.Fatalf("unexpected err %v", err)
	}
	if !got.Empty() || l.calls != 0 {
		t.Fatalf("expected empty set without lookup, got %v calls=%d", got.ProjectIDs, l.calls)
	}
}

func TestResolve_PropagatesListerError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, err := Resolve(context.Background(), &fakeLister{err: boom}, "org", records.League{GameID: ptr("G")})
	if err != boom {
		t.Fatalf("got %v want the lister error unchanged", err)
	}
}

func TestForProject(t *testing.T) {
	t.Parallel()

	if !ForProject("").Empty() {
		t.Fatal("blank project should give empty scope")
	}
	s := ForProject("P1")
	if s.Len() != 1 || !s.Contains("P1") || s.Contains("P2") {
		t.Fatalf("unexpected set %v", s.ProjectIDs)
	}
}
