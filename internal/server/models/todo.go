package models

import "time"

// Todo belongs to exactly one account and optionally to one project.
// ProjectTodoNumber is the per-project sequence number: positive and unique
// within the project, nil exactly when ProjectID is nil. Numbers are assigned
// on creation or project reassignment and never compacted, so deletions leave
// gaps.
type Todo struct {
	ID                int64
	AccountID         int64
	Title             string
	Memo              string
	CompletedAt       *time.Time
	Deadline          *time.Time
	ProjectID         *int64
	ProjectTodoNumber *int32
}
