package services

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tdx/internal/docstore"
	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/shared"
)

// TodoService is the todo item manager. It owns todo lifecycle and is
// responsible for calling [ListService.AdjustCounters] exactly once, with the
// correct sign and magnitude, for every mutation that changes item existence or
// completion state.
type TodoService struct {
	store  docstore.Store
	lists  *ListService
	logger *log.Logger
}

// NewTodoService creates a TodoService over the given store and list manager.
func NewTodoService(store docstore.Store, lists *ListService, logger *log.Logger) *TodoService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &TodoService{store: store, lists: lists, logger: logger.With("service", "todos")}
}

// CreateTodoParams carries the fields for a new todo. Priority defaults to
// medium when left empty.
type CreateTodoParams struct {
	ListID      string
	UserID      string
	Title       string
	Description string
	Priority    models.Priority
	DueDate     *time.Time
}

// UpdateTodoParams carries partial-update fields for a todo. Nil pointers leave
// the field unchanged. ClearDueDate removes the due date; it wins over DueDate
// when both are set.
type UpdateTodoParams struct {
	Title        *string
	Description  *string
	Status       *models.Status
	Priority     *models.Priority
	DueDate      *time.Time
	ClearDueDate bool
}

// Create persists a new pending todo and increments the owning list's
// todoCount.
func (s *TodoService) Create(ctx context.Context, params CreateTodoParams) (string, error) {
	if params.Title == "" {
		return "", shared.ErrEmptyTitle
	}

	priority := params.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return "", fmt.Errorf("%w: %q", shared.ErrInvalidPriority, priority)
	}

	id := shared.GenerateID()
	fields := docstore.Fields{
		"id":        id,
		"listId":    params.ListID,
		"userId":    params.UserID,
		"title":     params.Title,
		"status":    string(models.StatusPending),
		"priority":  string(priority),
		"createdAt": docstore.ServerTimestamp,
		"updatedAt": docstore.ServerTimestamp,
	}
	if params.Description != "" {
		fields["description"] = params.Description
	}
	if params.DueDate != nil {
		fields["dueDate"] = docstore.Millis(*params.DueDate)
	}

	if err := s.store.Put(ctx, docstore.CollectionTodos, id, fields); err != nil {
		return "", fmt.Errorf("failed to create todo: %w", err)
	}

	if err := s.lists.AdjustCounters(ctx, params.ListID, 1, 0); err != nil {
		return "", err
	}

	s.logger.Debug("created todo", "id", id, "list", params.ListID)
	return id, nil
}

// Get retrieves a todo by id, or (nil, nil) when it does not exist.
func (s *TodoService) Get(ctx context.Context, id string) (*models.Todo, error) {
	fields, err := s.store.Get(ctx, docstore.CollectionTodos, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}
	if fields == nil {
		return nil, nil
	}
	return todoFromFields(fields), nil
}

// ListByList returns the todos belonging to a list, newest first.
func (s *TodoService) ListByList(ctx context.Context, listID string) ([]*models.Todo, error) {
	return s.queryTodos(ctx, docstore.Fields{"listId": listID})
}

// ListByUser returns a user's todos across all lists, newest first.
func (s *TodoService) ListByUser(ctx context.Context, userID string) ([]*models.Todo, error) {
	return s.queryTodos(ctx, docstore.Fields{"userId": userID})
}

func (s *TodoService) queryTodos(ctx context.Context, filters docstore.Fields) ([]*models.Todo, error) {
	results, err := s.store.Query(ctx, docstore.CollectionTodos, filters, "createdAt")
	if err != nil {
		return nil, fmt.Errorf("failed to query todos: %w", err)
	}

	todos := make([]*models.Todo, 0, len(results))
	for _, fields := range results {
		todos = append(todos, todoFromFields(fields))
	}
	return todos, nil
}

// Update applies the provided fields to an existing todo. Updating a missing
// todo is a silent no-op.
//
// A status transition into completed stamps completedAt and increments the
// list's completedCount; a transition out of completed clears completedAt and
// decrements it. Any other status change touches neither.
//
// The read, the counter adjustment and the write are separate store calls with
// no transaction around them: two concurrent updates transitioning the same
// todo can both observe the pre-transition status and double-adjust the
// counter. The increments themselves are atomic, so only these logically
// duplicate transitions can skew counts.
func (s *TodoService) Update(ctx context.Context, id string, params UpdateTodoParams) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return nil
	}

	fields := docstore.Fields{"updatedAt": docstore.ServerTimestamp}

	if params.Title != nil {
		if *params.Title == "" {
			return shared.ErrEmptyTitle
		}
		fields["title"] = *params.Title
	}
	if params.Description != nil {
		if *params.Description == "" {
			fields["description"] = nil
		} else {
			fields["description"] = *params.Description
		}
	}
	if params.Priority != nil {
		if !params.Priority.Valid() {
			return fmt.Errorf("%w: %q", shared.ErrInvalidPriority, *params.Priority)
		}
		fields["priority"] = string(*params.Priority)
	}
	if params.ClearDueDate {
		fields["dueDate"] = nil
	} else if params.DueDate != nil {
		fields["dueDate"] = docstore.Millis(*params.DueDate)
	}

	if params.Status != nil {
		status := *params.Status
		if !status.Valid() {
			return fmt.Errorf("%w: %q", shared.ErrInvalidStatus, status)
		}
		fields["status"] = string(status)

		if status == models.StatusCompleted && current.Status != models.StatusCompleted {
			fields["completedAt"] = docstore.ServerTimestamp
			if err := s.lists.AdjustCounters(ctx, current.ListID, 0, 1); err != nil {
				return err
			}
		} else if status != models.StatusCompleted && current.Status == models.StatusCompleted {
			fields["completedAt"] = nil
			if err := s.lists.AdjustCounters(ctx, current.ListID, 0, -1); err != nil {
				return err
			}
		}
	}

	if err := s.store.Update(ctx, docstore.CollectionTodos, id, fields); err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	return nil
}

// Delete removes a todo and decrements the owning list's counters. Deleting a
// missing todo is a silent no-op, so a double delete from a stale UI is safe.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return nil
	}

	var deltaCompleted int64
	if current.Status == models.StatusCompleted {
		deltaCompleted = -1
	}

	if err := s.lists.AdjustCounters(ctx, current.ListID, -1, deltaCompleted); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, docstore.CollectionTodos, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	s.logger.Debug("deleted todo", "id", id, "list", current.ListID)
	return nil
}

// ToggleComplete flips a todo between completed and pending, reusing Update's
// transition logic. Toggling never lands on in_progress. Missing todos no-op.
func (s *TodoService) ToggleComplete(ctx context.Context, id string) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return nil
	}

	target := models.StatusCompleted
	if current.Status == models.StatusCompleted {
		target = models.StatusPending
	}

	return s.Update(ctx, id, UpdateTodoParams{Status: &target})
}
