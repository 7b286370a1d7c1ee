package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/tdx/internal/shared"
)

// Status enumerates the lifecycle states of a [Todo].
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority enumerates the urgency levels of a [Todo].
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the three known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// List represents a named collection of todos for one user. TodoCount and
// CompletedCount are maintained by the todo manager via atomic store increments;
// nothing else writes them.
type List struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	TodoCount      int64     `json:"todoCount"`
	CompletedCount int64     `json:"completedCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Validate checks the list's invariants: a non-empty name and counter bounds
// 0 ≤ CompletedCount ≤ TodoCount.
func (l *List) Validate() error {
	if l.Name == "" {
		return shared.ErrEmptyName
	}
	if l.CompletedCount < 0 || l.CompletedCount > l.TodoCount {
		return fmt.Errorf("%w: completedCount %d outside [0, %d]", shared.ErrInvalidInput, l.CompletedCount, l.TodoCount)
	}
	return nil
}

// Todo represents one task. ListID and UserID are both stored so that todos can
// be queried per-list and user-wide without a join.
type Todo struct {
	ID          string     `json:"id"`
	ListID      string     `json:"listId"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Validate checks the todo's invariants. CompletedAt must be present iff the
// status is completed.
func (t *Todo) Validate() error {
	if t.Title == "" {
		return shared.ErrEmptyTitle
	}
	if !t.Status.Valid() {
		return fmt.Errorf("%w: %q", shared.ErrInvalidStatus, t.Status)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: %q", shared.ErrInvalidPriority, t.Priority)
	}
	if (t.Status == StatusCompleted) != (t.CompletedAt != nil) {
		return fmt.Errorf("%w: completedAt must be set exactly when status is completed", shared.ErrInvalidInput)
	}
	return nil
}

// User is the application-side profile mirror of an identity principal. The ID
// matches the authentication subject.
type User struct {
	ID        string    `json:"uid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
