package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tdx/internal/auth"
	"github.com/desertthunder/tdx/internal/services"
	"github.com/desertthunder/tdx/internal/shared"
)

// API bundles the managers behind the HTTP surface.
type API struct {
	identity *auth.Service
	users    *services.UserService
	lists    *services.ListService
	todos    *services.TodoService
	logger   *log.Logger
}

// APIOpts contains the collaborators an [API] needs.
type APIOpts struct {
	Identity *auth.Service
	Users    *services.UserService
	Lists    *services.ListService
	Todos    *services.TodoService
	Logger   *log.Logger
}

// NewAPI creates the API over its collaborators.
func NewAPI(opts APIOpts) *API {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &API{
		identity: opts.Identity,
		users:    opts.Users,
		lists:    opts.Lists,
		todos:    opts.Todos,
		logger:   opts.Logger.With("component", "api"),
	}
}

// Router builds the route table. Auth endpoints and the health check are
// public; everything else sits behind [Authenticate].
func (a *API) Router() *BasicRouter {
	router := NewBasicRouter()
	router.Use(RequestLogger(a.logger))

	router.HandleFunc(http.MethodGet, "/health", a.handleHealth)

	router.HandleFunc(http.MethodPost, "/api/auth/signup", a.handleSignUp)
	router.HandleFunc(http.MethodPost, "/api/auth/login", a.handleLogin)
	router.HandleFunc(http.MethodPost, "/api/auth/logout", a.handleLogout)

	authed := Authenticate(a.identity)
	protect := func(fn http.HandlerFunc) http.Handler { return authed(fn) }

	router.Handle(http.MethodGet, "/api/auth/me", protect(a.handleMe))
	router.Handle(http.MethodPatch, "/api/auth/me", protect(a.handleUpdateMe))

	router.Handle(http.MethodGet, "/api/lists", protect(a.handleListLists))
	router.Handle(http.MethodPost, "/api/lists", protect(a.handleCreateList))
	router.Handle(http.MethodGet, "/api/lists/{id}", protect(a.handleGetList))
	router.Handle(http.MethodPatch, "/api/lists/{id}", protect(a.handleUpdateList))
	router.Handle(http.MethodDelete, "/api/lists/{id}", protect(a.handleDeleteList))
	router.Handle(http.MethodGet, "/api/lists/{id}/todos", protect(a.handleListTodos))

	router.Handle(http.MethodGet, "/api/todos", protect(a.handleUserTodos))
	router.Handle(http.MethodPost, "/api/todos", protect(a.handleCreateTodo))
	router.Handle(http.MethodGet, "/api/todos/{id}", protect(a.handleGetTodo))
	router.Handle(http.MethodPatch, "/api/todos/{id}", protect(a.handleUpdateTodo))
	router.Handle(http.MethodDelete, "/api/todos/{id}", protect(a.handleDeleteTodo))
	router.Handle(http.MethodPost, "/api/todos/{id}/toggle", protect(a.handleToggleTodo))

	return router
}

func (a *API) handleHealth(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
