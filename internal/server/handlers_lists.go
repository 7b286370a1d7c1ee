package server

import (
	"net/http"

	"github.com/desertthunder/tdx/internal/models"
	"github.com/desertthunder/tdx/internal/services"
)

type createListRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type updateListRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ownedList loads a list and enforces ownership. A list that does not exist or
// belongs to someone else is reported identically as absent.
func (a *API) ownedList(w http.ResponseWriter, req *http.Request, id string) *models.List {
	principal, _ := PrincipalFrom(req.Context())

	list, err := a.lists.Get(req.Context(), id)
	if err != nil {
		writeError(w, err)
		return nil
	}
	if list == nil || list.UserID != principal.ID {
		writeErrorMessage(w, http.StatusNotFound, "list not found")
		return nil
	}
	return list
}

func (a *API) handleListLists(w http.ResponseWriter, req *http.Request) {
	principal, _ := PrincipalFrom(req.Context())

	lists, err := a.lists.ListByUser(req.Context(), principal.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lists)
}

func (a *API) handleCreateList(w http.ResponseWriter, req *http.Request) {
	principal, _ := PrincipalFrom(req.Context())

	var body createListRequest
	if !decodeJSON(w, req, &body) {
		return
	}

	id, err := a.lists.Create(req.Context(), principal.ID, body.Name, body.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	list, err := a.lists.Get(req.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, list)
}

func (a *API) handleGetList(w http.ResponseWriter, req *http.Request) {
	list := a.ownedList(w, req, req.PathValue("id"))
	if list == nil {
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (a *API) handleUpdateList(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")
	if a.ownedList(w, req, id) == nil {
		return
	}

	var body updateListRequest
	if !decodeJSON(w, req, &body) {
		return
	}

	params := services.UpdateListParams{Name: body.Name, Description: body.Description}
	if err := a.lists.Update(req.Context(), id, params); err != nil {
		writeError(w, err)
		return
	}

	list, err := a.lists.Get(req.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (a *API) handleDeleteList(w http.ResponseWriter, req *http.Request) {
	principal, _ := PrincipalFrom(req.Context())
	id := req.PathValue("id")

	list, err := a.lists.Get(req.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		// Deleting an already-gone list is harmless.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if list.UserID != principal.ID {
		writeErrorMessage(w, http.StatusNotFound, "list not found")
		return
	}

	if err := a.lists.Delete(req.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) handleListTodos(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")
	if a.ownedList(w, req, id) == nil {
		return
	}

	todos, err := a.todos.ListByList(req.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todos)
}
