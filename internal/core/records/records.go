// Package records holds the read-only shapes the reporting engine consumes
// values are produced by a data source and never mutated by the engine
package records

import "time"

// RolePlayer is the member role counted as the adherence denominator
const RolePlayer = "player"

// Kaizen is an improvement proposal submitted by a member within a project
type Kaizen struct {
	ID               string    `json:"id" yaml:"id"`
	ProjectID        string    `json:"project_id" yaml:"project_id"`
	AuthorID         string    `json:"author_id" yaml:"author_id"`
	KaizenTypeID     *string   `json:"kaizen_type_id,omitempty" yaml:"kaizen_type_id,omitempty"`
	Name             string    `json:"name" yaml:"name"`
	Benefits         []Benefit `json:"benefits,omitempty" yaml:"benefits,omitempty"`
	Replicas         []string  `json:"replicas,omitempty" yaml:"replicas,omitempty"`
	OriginalKaizenID *string   `json:"original_kaizen_id,omitempty" yaml:"original_kaizen_id,omitempty"`
	CreatedDate      time.Time `json:"created_date" yaml:"created_date"`
}

// Benefit links a kaizen to the kpi it improves
type Benefit struct {
	KPIID       string  `json:"kpi_id" yaml:"kpi_id"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Task is a unit of work inside a game
type Task struct {
	ID       string   `json:"id" yaml:"id"`
	GameID   string   `json:"game_id" yaml:"game_id"`
	TeamID   *string  `json:"team_id,omitempty" yaml:"team_id,omitempty"`
	UserID   *string  `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	KPIID    *string  `json:"kpi_id,omitempty" yaml:"kpi_id,omitempty"`
	Progress Progress `json:"progress" yaml:"progress"`
}

// Progress carries an optional completion percent
type Progress struct {
	Percent *float64 `json:"percent,omitempty" yaml:"percent,omitempty"`
}

// Value returns the percent or 0 when unset
func (p Progress) Value() float64 {
	if p.Percent == nil {
		return 0
	}
	return *p.Percent
}

// EntityKind tells teams and users apart in leaderboards
type EntityKind string

const (
	// KindTeam marks a team row
	KindTeam EntityKind = "team"
	// KindUser marks a user row
	KindUser EntityKind = "user"
)

// Responsible identifies who a task is credited to
type Responsible struct {
	Kind EntityKind
	ID   string
}

// Responsible returns the team when set, else the user
// ok is false when the task has neither
func (t Task) Responsible() (Responsible, bool) {
	if t.TeamID != nil && *t.TeamID != "" {
		return Responsible{Kind: KindTeam, ID: *t.TeamID}, true
	}
	if t.UserID != nil && *t.UserID != "" {
		return Responsible{Kind: KindUser, ID: *t.UserID}, true
	}
	return Responsible{}, false
}

// Project is a construction project
type Project struct {
	ID           string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	ActiveGameID *string `json:"active_game_id,omitempty" yaml:"active_game_id,omitempty"`
}

// Member is a user's membership in an organization
type Member struct {
	UserID   string  `json:"user_id" yaml:"user_id"`
	Name     string  `json:"name" yaml:"name"`
	Role     string  `json:"role" yaml:"role"`
	Position *string `json:"position,omitempty" yaml:"position,omitempty"`
	Sector   *string `json:"sector,omitempty" yaml:"sector,omitempty"`
	SectorID *string `json:"sector_id,omitempty" yaml:"sector_id,omitempty"`
}

// Game is a gamified campaign attached to a project
type Game struct {
	ID        string `json:"id" yaml:"id"`
	ProjectID string `json:"project_id" yaml:"project_id"`
	Name      string `json:"name" yaml:"name"`
}

// League groups projects either explicitly or through a shared game
type League struct {
	ID       string   `json:"id" yaml:"id"`
	Projects []string `json:"projects,omitempty" yaml:"projects,omitempty"`
	GameID   *string  `json:"game_id,omitempty" yaml:"game_id,omitempty"`
}

// KaizenType classifies kaizens
type KaizenType struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// KPI is a performance indicator
type KPI struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Team is a group of users competing together
type Team struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Photo *string `json:"photo,omitempty" yaml:"photo,omitempty"`
}

// User is an individual player
type User struct {
	ID    string  `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Photo *string `json:"photo,omitempty" yaml:"photo,omitempty"`
}

// Deref returns "" for a nil string pointer
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
