package services

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tdx/internal/docstore"
	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/shared"
)

// ListService is the list aggregate manager. It owns list lifecycle and the
// todoCount/completedCount aggregates; [TodoService] adjusts those through
// [ListService.AdjustCounters] and nothing else writes them.
type ListService struct {
	store  docstore.Store
	logger *log.Logger
}

// NewListService creates a ListService over the given store.
func NewListService(store docstore.Store, logger *log.Logger) *ListService {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &ListService{store: store, logger: logger.With("service", "lists")}
}

// UpdateListParams carries partial-update fields for a list. Nil pointers leave
// the field unchanged; an empty description clears it.
type UpdateListParams struct {
	Name        *string
	Description *string
}

// Create persists a new list with both counters at zero and returns its id.
func (s *ListService) Create(ctx context.Context, userID, name, description string) (string, error) {
	if name == "" {
		return "", shared.ErrEmptyName
	}

	id := shared.GenerateID()
	fields := docstore.Fields{
		"id":             id,
		"userId":         userID,
		"name":           name,
		"todoCount":      int64(0),
		"completedCount": int64(0),
		"createdAt":      docstore.ServerTimestamp,
		"updatedAt":      docstore.ServerTimestamp,
	}
	if description != "" {
		fields["description"] = description
	}

	if err := s.store.Put(ctx, docstore.CollectionLists, id, fields); err != nil {
		return "", fmt.Errorf("failed to create list: %w", err)
	}

	s.logger.Debug("created list", "id", id, "user", userID)
	return id, nil
}

// Get retrieves a list by id, or (nil, nil) when it does not exist.
func (s *ListService) Get(ctx context.Context, id string) (*models.List, error) {
	fields, err := s.store.Get(ctx, docstore.CollectionLists, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get list: %w", err)
	}
	if fields == nil {
		return nil, nil
	}
	return listFromFields(fields), nil
}

// ListByUser returns the user's lists, newest first.
func (s *ListService) ListByUser(ctx context.Context, userID string) ([]*models.List, error) {
	results, err := s.store.Query(ctx, docstore.CollectionLists, docstore.Fields{"userId": userID}, "createdAt")
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}

	lists := make([]*models.List, 0, len(results))
	for _, fields := range results {
		lists = append(lists, listFromFields(fields))
	}
	return lists, nil
}

// Update applies the provided fields and refreshes the update timestamp.
// Fields left nil are unchanged.
func (s *ListService) Update(ctx context.Context, id string, params UpdateListParams) error {
	fields := docstore.Fields{"updatedAt": docstore.ServerTimestamp}

	if params.Name != nil {
		if *params.Name == "" {
			return shared.ErrEmptyName
		}
		fields["name"] = *params.Name
	}
	if params.Description != nil {
		if *params.Description == "" {
			fields["description"] = nil
		} else {
			fields["description"] = *params.Description
		}
	}

	if err := s.store.Update(ctx, docstore.CollectionLists, id, fields); err != nil {
		return fmt.Errorf("failed to update list: %w", err)
	}
	return nil
}

// Delete removes every todo owned by the list, then the list itself. Todos go
// first: if the operation is interrupted the survivors are orphan todos
// pointing at a gone list, never a list claiming todos that were removed.
func (s *ListService) Delete(ctx context.Context, id string) error {
	todos, err := s.store.Query(ctx, docstore.CollectionTodos, docstore.Fields{"listId": id}, "createdAt")
	if err != nil {
		return fmt.Errorf("failed to query list todos: %w", err)
	}

	for _, fields := range todos {
		todoID := fieldString(fields, "id")
		if err := s.store.Delete(ctx, docstore.CollectionTodos, todoID); err != nil {
			return fmt.Errorf("failed to delete todo %s: %w", todoID, err)
		}
	}

	if err := s.store.Delete(ctx, docstore.CollectionLists, id); err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}

	s.logger.Debug("deleted list", "id", id, "todos", len(todos))
	return nil
}

// AdjustCounters atomically adds the signed deltas to the list's counters and
// refreshes the update timestamp. This is the synchronization primitive used by
// the todo manager; it relies on the store's server-side increment rather than
// a read-then-write round trip, so concurrent adjustments are never lost.
func (s *ListService) AdjustCounters(ctx context.Context, id string, deltaTodo, deltaCompleted int64) error {
	err := s.store.Update(ctx, docstore.CollectionLists, id, docstore.Fields{
		"todoCount":      docstore.Increment(deltaTodo),
		"completedCount": docstore.Increment(deltaCompleted),
		"updatedAt":      docstore.ServerTimestamp,
	})
	if err != nil {
		return fmt.Errorf("failed to adjust counters for list %s: %w", id, err)
	}
	return nil
}
