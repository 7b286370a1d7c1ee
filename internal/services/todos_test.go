package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/shared"
)

// setupListWithTodos creates a list for u1 and returns the service trio plus
// the list id.
func setupListWithTodos(t *testing.T) (*ListService, *TodoService, string) {
	t.Helper()

	lists, todos, _ := setupServices(t)

	listID, err := lists.Create(context.Background(), "u1", "Groceries", "")
	if err != nil {
		t.Fatalf("failed to create list: %v", err)
	}

	return lists, todos, listID
}

func requireCounters(t *testing.T, lists *ListService, listID string, todoCount, completedCount int64) {
	t.Helper()

	list, err := lists.Get(context.Background(), listID)
	if err != nil {
		t.Fatalf("failed to get list: %v", err)
	}
	if list == nil {
		t.Fatalf("list %s is gone", listID)
	}

	if list.TodoCount != todoCount || list.CompletedCount != completedCount {
		t.Errorf("expected counters todo=%d completed=%d, got todo=%d completed=%d",
			todoCount, completedCount, list.TodoCount, list.CompletedCount)
	}
}

func TestTodoService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		lists, todos, listID := setupListWithTodos(t)

		id, err := todos.Create(ctx, CreateTodoParams{ListID: listID, UserID: "u1", Title: "Milk"})
		if err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}

		todo, err := todos.Get(ctx, id)
		if err != nil {
			t.Fatalf("failed to get todo: %v", err)
		}

		if todo.Status != models.StatusPending {
			t.Errorf("expected pending status, got %s", todo.Status)
		}
		if todo.Priority != models.PriorityMedium {
			t.Errorf("expected medium priority, got %s", todo.Priority)
		}
		if todo.CompletedAt != nil {
			t.Errorf("expected no completedAt, got %v", todo.CompletedAt)
		}
		if todo.DueDate != nil {
			t.Errorf("expected no dueDate, got %v", todo.DueDate)
		}

		requireCounters(t, lists, listID, 1, 0)
	})

	t.Run("explicit priority and due date", func(t *testing.T) {
		_, todos, listID := setupListWithTodos(t)

		due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		id, err := todos.Create(ctx, CreateTodoParams{
			ListID:   listID,
			UserID:   "u1",
			Title:    "Taxes",
			Priority: models.PriorityHigh,
			DueDate:  &due,
		})
		if err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}

		todo, err := todos.Get(ctx, id)
		if err != nil {
			t.Fatalf("failed to get todo: %v", err)
		}

		if todo.Priority != models.PriorityHigh {
			t.Errorf("expected high priority, got %s", todo.Priority)
		}
		if todo.DueDate == nil || !todo.DueDate.Equal(due) {
			t.Errorf("expected due date %v, got %v", due, todo.DueDate)
		}
	})

	t.Run("empty title rejected", func(t *testing.T) {
		lists, todos, listID := setupListWithTodos(t)

		_, err := todos.Create(ctx, CreateTodoParams{ListID: listID, UserID: "u1"})
		if !errors.Is(err, shared.ErrEmptyTitle) {
			t.Errorf("expected ErrEmptyTitle, got %v", err)
		}

		requireCounters(t, lists, listID, 0, 0)
	})

	t.Run("invalid priority rejected", func(t *testing.T) {
		lists, todos, listID := setupListWithTodos(t)

		_, err := todos.Create(ctx, CreateTodoParams{
			ListID:   listID,
			UserID:   "u1",
			Title:    "Milk",
			Priority: "urgent",
		})
		if !errors.Is(err, shared.ErrInvalidPriority) {
			t.Errorf("expected ErrInvalidPriority, got %v", err)
		}

		requireCounters(t, lists, listID, 0, 0)
	})
}

func TestTodoService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("completion transition", func(t *testing.T) {
		lists, todos, listID := setupListWithTodos(t)

		id, err := todos.Create(ctx, CreateTodoParams{ListID: listID, UserID: "u1", Title: "Milk"})
		if err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}

		completed := models.StatusCompleted
		if err := todos.Update(ctx, id, UpdateTodoParams{Status: &completed}); err != nil {
			t.Fatalf("failed to complete todo: %v", err)
		}

		todo, err := todos.Get(ctx, id)
		if err != nil {
			t.Fatalf("failed to get todo: %v", err)
		}
		if todo.Status != models.StatusCompleted {
			t.Errorf("expected completed status, got %s", todo.Status)
		}
		if todo.CompletedAt == nil {
			t.Error("expected completedAt to be stamped")
		}

		requireCounters(t, lists, listID, 1, 1)

		// Completing an already completed todo adjusts nothing.
		if err := todos.Update(ctx, id, UpdateTodoParams{Status: &completed}); err != nil {
			t.Fatalf("failed to re-complete todo: %v", err)
		}
		requireCounters(t, lists, listID, 1, 1)

		// Reopening clears completedAt and decrements.
		pending := models.StatusPending
		if err := todos.Update(ctx, id, UpdateTodoParams{Status: &pending}); err != nil {
			t.Fatalf("failed to reopen todo: %v", err)
		}

		todo, err = todos.Get(ctx, id)
		if err != nil {
			t.Fatalf("failed to get todo: %v", err)
		}
		if todo.CompletedAt != nil {
			t.Errorf("expected completedAt cleared, got %v", todo.CompletedAt)
		}
		requireCounters(t, lists, listID, 1, 0)
	})

	t.Run("non-completion transitions leave counters alone", func(t *testing.T) {
		lists, todos, listID := setupListWithTodos(t)

		id, err := todos.Create(ctx, CreateTodoParams{ListID: listID, UserID: "u1", Title: "Milk"})
		if err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}

		inProgress := models.StatusInProgress
		if err := todos.Update(ctx, id, UpdateTodoParams{Status: &inProgress}); err != nil {
			t.Fatalf("failed to update todo: %v", err)
		}

		requireCounters(t, lists, listID, 1, 0)
	})

	t.Run("partial field updates", func(t *testing.T) {
		_, todos, listID := setupListWithTodos(t)

		due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		id, err := todos.Create(ctx, CreateTodoParams{
			ListID:      listID,
			UserID:      "u1",
			Title:       "Milk",
			Description: "whole",
			DueDate:     &due,
		})
		if err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}

		high := models.PriorityHigh
		err = todos.Update(ctx, id, UpdateTodoParams{
			Title:    strptr("Oat milk"),
			Priority: &high,
		})
		if err != nil {
			t.Fatalf("failed to update todo: %v", err)
		}

		todo, err := todos.Get(ctx, id)
		if err != nil {
			t.Fatalf("failed to get todo: %v", err)
		}
		if todo.Title != "Oat milk" || todo.Priority != models.PriorityHigh {
			t.Errorf("unexpected todo: %+v", todo)
		}
		if todo.Description != "whole" {
			t.Errorf("description should be unchanged, got %q", todo.Description)
		}
		if todo.DueDate == nil {
			t.Error("due date should be unchanged")
		}

		if err := todos.Update(ctx, id, UpdateTodoParams{ClearDueDate: true}); err != nil {
			t.Fatalf("failed to clear due date: %v", err)
		}

		todo, err = todos.Get(ctx, id)
		if err != nil {
			t.Fatalf("failed to get todo: %v", err)
		}
		if todo.DueDate != nil {
			t.Errorf("expected due date cleared, got %v", todo.DueDate)
		}
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		_, todos, listID := setupListWithTodos(t)

		id, err := todos.Create(ctx, CreateTodoParams{ListID: listID, UserID: "u1", Title: "Milk"})
		if err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}

		bogus := models.Status("done")
		err = todos.Update(ctx, id, UpdateTodoParams{Status: &bogus})
		if !errors.Is(err, shared.ErrInvalidStatus) {
			t.Errorf("expected ErrInvalidStatus, got %v", err)
		}
	})

	t.Run("missing todo is a no-op", func(t *testing.T) {
		_, todos, _ := setupListWithTodos(t)

		err := todos.Update(ctx, "missing", UpdateTodoParams{Title: strptr("x")})
		if err != nil {
			t.Errorf("expected silent no-op, got %v", err)
		}
	})
}

func TestTodoService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("pending todo", func(t *testing.T) {
		lists, todos, listID := setupListWithTodos(t)

		id, err := todos.Create(ctx, CreateTodoParams{ListID: listID, UserID: "u1", Title: "Milk"})
		if err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}

		if err := todos.Delete(ctx, id); err != nil {
			t.Fatalf("failed to delete todo: %v", err)
		}

		requireCounters(t, lists, listID, 0, 0)

		todo, err := todos.Get(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if todo != nil {
			t.Errorf("expected todo gone, got %+v", todo)
		}
	})

	t.Run("completed todo decrements both counters", func(t *testing.T) {
		lists, todos, listID := setupListWithTodos(t)

		id, err := todos.Create(ctx, CreateTodoParams{ListID: listID, UserID: "u1", Title: "Milk"})
		if err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}
		if err := todos.ToggleComplete(ctx, id); err != nil {
			t.Fatalf("failed to complete todo: %v", err)
		}
		requireCounters(t, lists, listID, 1, 1)

		if err := todos.Delete(ctx, id); err != nil {
			t.Fatalf("failed to delete todo: %v", err)
		}
		requireCounters(t, lists, listID, 0, 0)
	})

	t.Run("double delete is a no-op", func(t *testing.T) {
		lists, todos, listID := setupListWithTodos(t)

		id, err := todos.Create(ctx, CreateTodoParams{ListID: listID, UserID: "u1", Title: "Milk"})
		if err != nil {
			t.Fatalf("failed to create todo: %v", err)
		}

		if err := todos.Delete(ctx, id); err != nil {
			t.Fatalf("failed to delete todo: %v", err)
		}
		if err := todos.Delete(ctx, id); err != nil {
			t.Errorf("second delete should no-op, got %v", err)
		}

		requireCounters(t, lists, listID, 0, 0)
	})
}

func TestTodoService_ToggleComplete(t *testing.T) {
	ctx := context.Background()
	lists, todos, listID := setupListWithTodos(t)

	id, err := todos.Create(ctx, CreateTodoParams{ListID: listID, UserID: "u1", Title: "Milk"})
	if err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}

	if err := todos.ToggleComplete(ctx, id); err != nil {
		t.Fatalf("failed to toggle todo: %v", err)
	}

	todo, err := todos.Get(ctx, id)
	if err != nil {
		t.Fatalf("failed to get todo: %v", err)
	}
	if todo.Status != models.StatusCompleted {
		t.Errorf("expected completed after toggle, got %s", todo.Status)
	}
	requireCounters(t, lists, listID, 1, 1)

	if err := todos.ToggleComplete(ctx, id); err != nil {
		t.Fatalf("failed to toggle todo back: %v", err)
	}

	todo, err = todos.Get(ctx, id)
	if err != nil {
		t.Fatalf("failed to get todo: %v", err)
	}
	if todo.Status != models.StatusPending {
		t.Errorf("expected pending after second toggle, got %s", todo.Status)
	}
	if todo.CompletedAt != nil {
		t.Errorf("expected completedAt cleared, got %v", todo.CompletedAt)
	}
	requireCounters(t, lists, listID, 1, 0)

	t.Run("in progress toggles to completed", func(t *testing.T) {
		inProgress := models.StatusInProgress
		if err := todos.Update(ctx, id, UpdateTodoParams{Status: &inProgress}); err != nil {
			t.Fatalf("failed to update todo: %v", err)
		}

		if err := todos.ToggleComplete(ctx, id); err != nil {
			t.Fatalf("failed to toggle todo: %v", err)
		}

		todo, err := todos.Get(ctx, id)
		if err != nil {
			t.Fatalf("failed to get todo: %v", err)
		}
		if todo.Status != models.StatusCompleted {
			t.Errorf("expected completed, got %s", todo.Status)
		}
		requireCounters(t, lists, listID, 1, 1)
	})

	t.Run("missing todo is a no-op", func(t *testing.T) {
		if err := todos.ToggleComplete(ctx, "missing"); err != nil {
			t.Errorf("expected silent no-op, got %v", err)
		}
	})
}

func TestTodoService_Listing(t *testing.T) {
	ctx := context.Background()
	lists, todos, _ := setupServices(t)

	groceries, err := lists.Create(ctx, "u1", "Groceries", "")
	if err != nil {
		t.Fatalf("failed to create list: %v", err)
	}
	work, err := lists.Create(ctx, "u1", "Work", "")
	if err != nil {
		t.Fatalf("failed to create list: %v", err)
	}

	for _, item := range []struct {
		listID string
		title  string
	}{
		{groceries, "Milk"},
		{work, "Standup"},
		{groceries, "Eggs"},
		{groceries, "Bread"},
	} {
		_, err := todos.Create(ctx, CreateTodoParams{ListID: item.listID, UserID: "u1", Title: item.title})
		if err != nil {
			t.Fatalf("failed to create todo %s: %v", item.title, err)
		}
	}

	t.Run("by list, newest first", func(t *testing.T) {
		got, err := todos.ListByList(ctx, groceries)
		if err != nil {
			t.Fatalf("failed to list todos: %v", err)
		}

		if len(got) != 3 {
			t.Fatalf("expected 3 todos, got %d", len(got))
		}
		for i, want := range []string{"Bread", "Eggs", "Milk"} {
			if got[i].Title != want {
				t.Errorf("position %d: expected %s, got %s", i, want, got[i].Title)
			}
		}
	})

	t.Run("by user spans lists", func(t *testing.T) {
		got, err := todos.ListByUser(ctx, "u1")
		if err != nil {
			t.Fatalf("failed to list todos: %v", err)
		}

		if len(got) != 4 {
			t.Fatalf("expected 4 todos, got %d", len(got))
		}
		for i, want := range []string{"Bread", "Eggs", "Standup", "Milk"} {
			if got[i].Title != want {
				t.Errorf("position %d: expected %s, got %s", i, want, got[i].Title)
			}
		}
	})
}
