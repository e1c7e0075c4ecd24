// Package domain holds DTOs for reports http and service contracts
package domain

// Query selects the organization and the scope a report covers
// ProjectID overrides LeagueID; with neither the scope is empty
type Query struct {
	OrganizationID string `json:"organization_id" validate:"required,uuid" example:"4f8a1c2e-9b7d-4e1a-8c3f-2d6e5b4a7c91"`
	LeagueID       string `json:"league_id,omitempty" validate:"omitempty,uuid" example:"0b2d6f3a-1c4e-4a8b-9d7f-5e3c2a1b0f9e"`
	ProjectID      string `json:"project_id,omitempty" validate:"omitempty,uuid" example:"7c1e9a5b-3d2f-4b6a-8e0c-1f4d7a9b2c3e"`
	SectorID       string `json:"sector_id,omitempty" validate:"omitempty,uuid" example:"a3b5c7d9-e1f2-4a3b-8c5d-7e9f1a2b3c4d"`
}

// AdherenceCountInput narrows adherence to one kaizen type
type AdherenceCountInput struct {
	Query
	KaizenTypeID string `json:"kaizen_type_id,omitempty" validate:"omitempty,uuid"`
}

// MostReplicatedInput accepts is_replica and category for client compatibility;
// neither narrows the result
type MostReplicatedInput struct {
	Query
	IsReplica *bool  `json:"is_replica,omitempty" example:"false"`
	Category  string `json:"category,omitempty" validate:"omitempty,max=100" example:"safety"`
	Limit     int    `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"10"`
}

// RankingInput caps leaderboard style reports
type RankingInput struct {
	Query
	Limit int `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"10"`
}

// Items wraps list reports so an empty report serializes as []
type Items[T any] struct {
	Items []T `json:"items"`
}

// ItemsOf never returns a nil slice inside
func ItemsOf[T any](xs []T) Items[T] {
	if xs == nil {
		xs = []T{}
	}
	return Items[T]{Items: xs}
}

// KaizenCounters are the headline kaizen numbers of a scope
type KaizenCounters struct {
	KaizenCount           int     `json:"kaizen_count" example:"3"`
	ProjectCount          int     `json:"project_count" example:"1"`
	KaizensPerProject     float64 `json:"kaizens_per_project" example:"3"`
	KaizensPerParticipant float64 `json:"kaizens_per_participant" example:"1.5"`
}

// ProjectCount is a kaizen count for one project
type ProjectCount struct {
	ProjectID   string `json:"project_id"`
	ProjectName string `json:"project_name" example:"Torre Norte"`
	KaizenCount int    `json:"kaizen_count" example:"12"`
}

// TypeCount is a kaizen count for one kaizen type; a null id means untyped
type TypeCount struct {
	KaizenTypeID   *string `json:"kaizen_type_id"`
	KaizenTypeName string  `json:"kaizen_type_name" example:"Sem tipo"`
	KaizenCount    int     `json:"kaizen_count" example:"4"`
}

// TypeProjectRow breaks a kaizen type down over every project in scope
type TypeProjectRow struct {
	KaizenTypeID   *string        `json:"kaizen_type_id"`
	KaizenTypeName string         `json:"kaizen_type_name"`
	KaizenCount    int            `json:"kaizen_count"`
	Projects       []ProjectCount `json:"projects"`
}

// SectorCount is a kaizen count for the authors' sector
type SectorCount struct {
	Sector      *string `json:"sector"`
	KaizenCount int     `json:"kaizen_count"`
}

// PositionCount is a kaizen count for the authors' position
type PositionCount struct {
	Position    *string `json:"position"`
	KaizenCount int     `json:"kaizen_count"`
}

// BenefitCount is the number of kaizens declaring a benefit on a kpi
type BenefitCount struct {
	KPIID       string `json:"kpi_id"`
	KPIName     string `json:"kpi_name" example:"Seguranca"`
	KaizenCount int    `json:"kaizen_count"`
}

// WeekCount is a kaizen count for an ISO week
type WeekCount struct {
	WeekStart   string `json:"week_start" example:"2024-01-01"`
	WeekEnd     string `json:"week_end" example:"2024-01-07"`
	KaizenCount int    `json:"kaizen_count"`
}

// ParticipantRatio is kaizens per distinct author in a project
type ParticipantRatio struct {
	ProjectID             string  `json:"project_id"`
	ProjectName           string  `json:"project_name"`
	KaizenCount           int     `json:"kaizen_count"`
	ParticipantCount      int     `json:"participant_count"`
	KaizensPerParticipant float64 `json:"kaizens_per_participant" example:"1.5"`
}

// AdherenceRow is the share of the organization's players who authored a kaizen in a project
type AdherenceRow struct {
	ProjectID        string  `json:"project_id"`
	ProjectName      string  `json:"project_name"`
	ParticipantCount int     `json:"participant_count"`
	PlayerCount      int     `json:"player_count"`
	Percentage       float64 `json:"percentage" example:"25"`
}

// AdherenceCount is adherence over the whole scope
type AdherenceCount struct {
	ParticipantCount int     `json:"participant_count"`
	PlayerCount      int     `json:"player_count"`
	Percentage       float64 `json:"percentage"`
}

// ReplicatedKaizen is a kaizen with its replication count
type ReplicatedKaizen struct {
	KaizenID     string `json:"kaizen_id"`
	KaizenName   string `json:"kaizen_name"`
	ProjectID    string `json:"project_id"`
	ProjectName  string `json:"project_name"`
	ReplicaCount int    `json:"replica_count" example:"3"`
	RootKaizenID string `json:"root_kaizen_id"`
}

// AuthorCount is the number of kaizens a user authored
type AuthorCount struct {
	UserID      string  `json:"user_id"`
	Name        string  `json:"name"`
	Photo       *string `json:"photo"`
	KaizenCount int     `json:"kaizen_count"`
}

// TaskCounters are the headline task numbers of a scope
type TaskCounters struct {
	TaskCount       int     `json:"task_count"`
	GameCount       int     `json:"game_count"`
	TasksWithKPI    int     `json:"tasks_with_kpi"`
	CompletedTasks  int     `json:"completed_tasks"`
	AverageProgress float64 `json:"average_progress"`
}

// KPIAverage is the rounded mean progress of tasks on a kpi
type KPIAverage struct {
	KPIID     string  `json:"kpi_id"`
	KPIName   string  `json:"kpi_name"`
	Average   float64 `json:"average" example:"63"`
	TaskCount int     `json:"task_count"`
}

// ProjectKPIs are kpi averages for one project
type ProjectKPIs struct {
	ProjectID   string       `json:"project_id"`
	ProjectName string       `json:"project_name"`
	KPIs        []KPIAverage `json:"kpis"`
}

// GameKPIs are kpi averages for one game
type GameKPIs struct {
	GameID      string       `json:"game_id"`
	GameName    string       `json:"game_name"`
	ProjectID   string       `json:"project_id"`
	ProjectName string       `json:"project_name"`
	KPIs        []KPIAverage `json:"kpis"`
}

// BestPlayer is a leaderboard row for a team or a user
type BestPlayer struct {
	EntityID        string   `json:"entity_id"`
	EntityKind      string   `json:"entity_kind" example:"team"`
	Name            string   `json:"name"`
	Photo           *string  `json:"photo"`
	KPIs            []string `json:"kpis"`
	TaskCount       int      `json:"task_count"`
	AverageProgress float64  `json:"average_progress"`
}
