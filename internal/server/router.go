package server

import (
	"fmt"
	"net/http"
)

// Middleware wraps an [http.Handler] and returns a new handler with additional
// behavior: logging, authentication, and the like.
type Middleware func(http.Handler) http.Handler

// BasicRouter is a small HTTP router over [http.ServeMux] with a middleware
// stack. Routes are registered per method and may use ServeMux wildcards.
type BasicRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
}

// NewBasicRouter creates a new [BasicRouter] instance.
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{
		mux:         http.NewServeMux(),
		middlewares: []Middleware{},
	}
}

// Use adds [Middleware] to the router's stack, applied in the order it's added.
// Must be called before Handle; later additions don't rewrap existing routes.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers a handler for the given HTTP method and path pattern,
// wrapped with all registered middleware.
func (r *BasicRouter) Handle(method, pattern string, handler http.Handler) {
	r.mux.Handle(fmt.Sprintf("%s %s", method, pattern), r.Apply(handler))
}

// HandleFunc registers a handler function for the given method and pattern.
func (r *BasicRouter) HandleFunc(method, pattern string, handler http.HandlerFunc) {
	r.Handle(method, pattern, handler)
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Apply wraps a handler with all registered middleware.
//
// Middleware is applied in reverse order (last added wraps first).
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	wrapped := handler

	for i := len(r.middlewares) - 1; i >= 0; i-- {
		wrapped = r.middlewares[i](wrapped)
	}

	return wrapped
}
