package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

type Outcome int

const (
	Render Outcome = iota
	Redirect
	// Pending means the session has not been restored yet.
	Pending
)

func (o Outcome) String() string {
	switch o {
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	case Pending:
		return "pending"
	}
	return "unknown"
}

// Decision is the result of resolving a location. For Render, Location is
// the rendered path; for Redirect it is the target.
type Decision struct {
	Outcome  Outcome
	View     View
	Location string
	Params   map[string]string
}

type Guard struct {
	mux    *chi.Mux
	routes map[string]Route
}

func NewGuard(routes []Route) *Guard {
	g := &Guard{mux: chi.NewRouter(), routes: make(map[string]Route, len(routes))}
	for _, r := range routes {
		g.mux.Get(r.Pattern, func(http.ResponseWriter, *http.Request) {})
		g.routes[r.Pattern] = r
	}
	return g
}

// Clean normalizes a typed location: leading slash, no query or fragment,
// no trailing slash.
func Clean(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = RootPath
		}
	}
	return path
}

func (g *Guard) match(path string) (Route, map[string]string, bool) {
	rctx := chi.NewRouteContext()
	if !g.mux.Match(rctx, http.MethodGet, path) {
		return Route{}, nil, false
	}
	r, ok := g.routes[rctx.RoutePattern()]
	if !ok {
		return Route{}, nil, false
	}
	var params map[string]string
	if n := len(rctx.URLParams.Keys); n > 0 {
		params = make(map[string]string, n)
		for i, k := range rctx.URLParams.Keys {
			params[k] = rctx.URLParams.Values[i]
		}
	}
	return r, params, true
}

// Resolve decides what to show for path. Unauthenticated users are sent to
// the login view for every path except the login view itself, unknown paths
// included. Authenticated users never see the login view.
func (g *Guard) Resolve(path string, authenticated bool) Decision {
	path = Clean(path)
	r, params, ok := g.match(path)

	switch {
	case !ok && authenticated:
		return Decision{Outcome: Render, View: ViewNotFound, Location: path}
	case !ok:
		return Decision{Outcome: Redirect, Location: LoginPath}
	case !r.Protected && authenticated:
		return Decision{Outcome: Redirect, Location: RootPath}
	case r.Protected && !authenticated:
		return Decision{Outcome: Redirect, Location: LoginPath}
	}
	return Decision{Outcome: Render, View: r.View, Location: path, Params: params}
}
