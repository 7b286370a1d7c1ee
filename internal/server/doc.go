// Package server provides HTTP routing, middleware, and the JSON API handlers
// for the todo service.
//
// [BasicRouter] wraps [http.ServeMux] and registers method-qualified patterns
// ("GET /api/lists/{id}"). [Middleware] added with Use wraps every subsequently
// registered route, outermost first in registration order.
//
// [API] assembles the routes: public auth endpoints, and list/todo endpoints
// behind bearer-token authentication. Handlers stay thin: decode the request,
// check ownership, delegate to a manager, map errors to status codes.
//
// Error mapping follows the service's taxonomy: validation failures are 400s
// with the sentinel's message, absent single resources are 404s, mutating a
// missing todo quietly succeeds, identity failures map to friendly 4xx
// messages, and store failures surface as 502 with a generic body.
package server
