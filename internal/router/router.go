package router

import (
	"net/http"
	"slices"
)

// Router wraps http.ServeMux with middleware chaining
type Router struct {
	mux   *http.ServeMux
	chain []Middleware
	outer []Middleware
	root  http.Handler
}

// Middleware is a function that wraps an http.Handler
type Middleware func(http.Handler) http.Handler

// New creates a new Router with optional global middleware
func New(middleware ...Middleware) *Router {
	r := &Router{
		mux:   http.NewServeMux(),
		chain: middleware,
	}
	r.root = r.mux
	return r
}

// ServeHTTP implements http.Handler
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.root.ServeHTTP(w, req)
}

// Use adds middleware around the whole mux. Unlike route middleware it also
// runs for unmatched paths and OPTIONS preflight requests.
func (r *Router) Use(middleware ...Middleware) {
	r.outer = append(r.outer, middleware...)
	r.root = chain(r.mux, r.outer)
}

// Get registers a GET route
func (r *Router) Get(pattern string, handler http.HandlerFunc, middleware ...Middleware) {
	r.handle(http.MethodGet, pattern, handler, middleware)
}

// Post registers a POST route
func (r *Router) Post(pattern string, handler http.HandlerFunc, middleware ...Middleware) {
	r.handle(http.MethodPost, pattern, handler, middleware)
}

// Delete registers a DELETE route
func (r *Router) Delete(pattern string, handler http.HandlerFunc, middleware ...Middleware) {
	r.handle(http.MethodDelete, pattern, handler, middleware)
}

// Handle registers a route with explicit method
func (r *Router) Handle(method, pattern string, handler http.Handler, middleware ...Middleware) {
	r.mux.Handle(method+" "+pattern, r.wrap(handler, middleware))
}

// handle is the internal route registration function
func (r *Router) handle(method, pattern string, handler http.HandlerFunc, middleware []Middleware) {
	r.Handle(method, pattern, handler, middleware...)
}

// wrap applies the router's chain followed by route-specific middleware
func (r *Router) wrap(handler http.Handler, middleware []Middleware) http.Handler {
	return chain(handler, append(slices.Clone(r.chain), middleware...))
}

// chain applies middleware in reverse order so they execute in the order defined
func chain(handler http.Handler, middleware []Middleware) http.Handler {
	result := handler
	for i := len(middleware) - 1; i >= 0; i-- {
		result = middleware[i](result)
	}
	return result
}

// Group creates a sub-router with additional middleware
func (r *Router) Group(middleware ...Middleware) *Router {
	return &Router{
		mux:   r.mux,
		chain: append(slices.Clone(r.chain), middleware...),
		root:  r.mux,
	}
}
