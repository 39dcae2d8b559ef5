package interceptor

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Route is one mock endpoint definition. Its identity within a Registry is the
// (method, path) pair; both are matched exactly, with the method case-insensitive.
type Route struct {
	Method  string
	Path    string
	Respond Responder
}

func (r Route) String() string {
	return r.Method + " " + r.Path
}

// DuplicateRouteError is returned by Register when a route with the same (method, path)
// identity already exists. Registration never silently overwrites an earlier route;
// colliding definitions are a test-setup bug that should fail fast.
type DuplicateRouteError struct {
	Method string
	Path   string
}

func (e *DuplicateRouteError) Error() string {
	return fmt.Sprintf("a mock route for %s %s is already registered", e.Method, e.Path)
}

type routeKey struct {
	method string
	path   string
}

// Registry holds the mock routes for one test run. Each Registry instance owns its own
// state, so parallel test workers that each construct their own Registry cannot pollute
// each other's routes.
//
// A Registry can only be obtained through NewRegistry with a Gate that reports test
// mode; there is deliberately no package-level instance.
type Registry struct {
	gate   Gate
	routes map[routeKey]Route
	lock   sync.Mutex
}

// NewRegistry creates an empty Registry, or returns ErrNotTestMode if the Gate reports
// that test mode is not active.
func NewRegistry(gate Gate) (*Registry, error) {
	if !gate.TestModeActive() {
		return nil, ErrNotTestMode
	}
	return &Registry{gate: gate, routes: make(map[routeKey]Route)}, nil
}

func makeRouteKey(method, path string) routeKey {
	return routeKey{method: strings.ToUpper(method), path: path}
}

// Register adds a mock route. It returns a *DuplicateRouteError if a route with the same
// (method, path) identity is already present.
func (r *Registry) Register(method, path string, respond Responder) error {
	// A zero-value Registry never went through NewRegistry and carries a gate that
	// reports production mode, so it refuses registration too.
	if !r.gate.TestModeActive() {
		return ErrNotTestMode
	}
	key := makeRouteKey(method, path)
	r.lock.Lock()
	defer r.lock.Unlock()
	if _, found := r.routes[key]; found {
		return &DuplicateRouteError{Method: key.method, Path: key.path}
	}
	r.routes[key] = Route{Method: key.method, Path: key.path, Respond: respond}
	return nil
}

// RegisterRoutes adds each route in the list, stopping at the first error. This is the
// form used when a test suite supplies its whole mock configuration up front, for
// instance from a fixture file.
func (r *Registry) RegisterRoutes(routes []Route) error {
	for _, route := range routes {
		if err := r.Register(route.Method, route.Path, route.Respond); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the route registered for this exact (method, path), if any.
func (r *Registry) Lookup(method, path string) (Route, bool) {
	r.lock.Lock()
	defer r.lock.Unlock()
	route, found := r.routes[makeRouteKey(method, path)]
	return route, found
}

// Clear removes all routes. Test suites call this between test cases so that one case's
// mocks cannot leak into the next.
func (r *Registry) Clear() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.routes = make(map[routeKey]Route)
}

// Routes returns the registered routes in a stable order.
func (r *Registry) Routes() []Route {
	r.lock.Lock()
	ret := make([]Route, 0, len(r.routes))
	for _, route := range r.routes {
		ret = append(ret, route)
	}
	r.lock.Unlock()
	sort.Slice(ret, func(i, j int) bool { return ret[i].String() < ret[j].String() })
	return ret
}
