package server

import (
	"net/http"
	"time"

	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/services"
)

type createTodoRequest struct {
	ListID      string     `json:"listId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

type updateTodoRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Status       *string    `json:"status"`
	Priority     *string    `json:"priority"`
	DueDate      *time.Time `json:"dueDate"`
	ClearDueDate bool       `json:"clearDueDate"`
}

// ownedTodo loads a todo and enforces ownership. Returns the todo, or nil
// after writing a response. Missing todos write nothing when quiet is set, so
// mutating endpoints can no-op per the double-delete policy.
func (a *API) ownedTodo(w http.ResponseWriter, req *http.Request, id string, quiet bool) (*models.Todo, bool) {
	principal, _ := PrincipalFrom(req.Context())

	todo, err := a.todos.Get(req.Context(), id)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	if todo == nil {
		if !quiet {
			writeErrorMessage(w, http.StatusNotFound, "todo not found")
		}
		return nil, quiet
	}
	if todo.UserID != principal.ID {
		writeErrorMessage(w, http.StatusNotFound, "todo not found")
		return nil, false
	}
	return todo, true
}

func (a *API) handleUserTodos(w http.ResponseWriter, req *http.Request) {
	principal, _ := PrincipalFrom(req.Context())

	todos, err := a.todos.ListByUser(req.Context(), principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

func (a *API) handleCreateTodo(w http.ResponseWriter, req *http.Request) {
	principal, _ := PrincipalFrom(req.Context())

	var body createTodoRequest
	if !decodeJSON(w, req, &body) {
		return
	}

	// Todos can only be created under a list the caller owns.
	list, err := a.lists.Get(req.Context(), body.ListID)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil || list.UserID != principal.ID {
		writeErrorMessage(w, http.StatusNotFound, "list not found")
		return
	}

	id, err := a.todos.Create(req.Context(), services.CreateTodoParams{
		ListID:      body.ListID,
		UserID:      principal.ID,
		Title:       body.Title,
		Description: body.Description,
		Priority:    models.Priority(body.Priority),
		DueDate:     body.DueDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	todo, err := a.todos.Get(req.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

func (a *API) handleGetTodo(w http.ResponseWriter, req *http.Request) {
	todo, _ := a.ownedTodo(w, req, req.PathValue("id"), false)
	if todo == nil {
		return
	}

	writeJSON(w, http.StatusOK, todo)
}

func (a *API) handleUpdateTodo(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")

	todo, ok := a.ownedTodo(w, req, id, true)
	if todo == nil {
		if ok {
			// Updating a missing todo is a deliberate no-op.
			w.WriteHeader(http.StatusNoContent)
		}
		return
	}

	var body updateTodoRequest
	if !decodeJSON(w, req, &body) {
		return
	}

	params := services.UpdateTodoParams{
		Title:        body.Title,
		Description:  body.Description,
		DueDate:      body.DueDate,
		ClearDueDate: body.ClearDueDate,
	}
	if body.Status != nil {
		status := models.Status(*body.Status)
		params.Status = &status
	}
	if body.Priority != nil {
		priority := models.Priority(*body.Priority)
		params.Priority = &priority
	}

	if err := a.todos.Update(req.Context(), id, params); err != nil {
		writeError(w, err)
		return
	}

	updated, err := a.todos.Get(req.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (a *API) handleDeleteTodo(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")

	todo, ok := a.ownedTodo(w, req, id, true)
	if todo == nil {
		if ok {
			w.WriteHeader(http.StatusNoContent)
		}
		return
	}

	if err := a.todos.Delete(req.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleToggleTodo(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")

	todo, ok := a.ownedTodo(w, req, id, true)
	if todo == nil {
		if ok {
			w.WriteHeader(http.StatusNoContent)
		}
		return
	}

	if err := a.todos.ToggleComplete(req.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	updated, err := a.todos.Get(req.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
