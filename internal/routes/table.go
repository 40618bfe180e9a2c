package routes

import (
	"slices"
	"sort"

	ferrors "git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// HomePath is the fallback route for unknown paths.
const HomePath = "/"

// Table is an insertion-ordered set of routes keyed by path.
type Table struct {
	routes []Route
	index  map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Add validates r and appends it. Duplicate paths are rejected.
func (t *Table) Add(r Route) error {
	r.Path = CleanPath(r.Path)
	if r.OGType == "" {
		r.OGType = OGTypeWebsite
	} else {
		og, err := ParseOGType(string(r.OGType))
		if err == nil {
			r.OGType = og
		}
	}
	if err := r.validate(); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryValidation, "invalid route").
			WithContext("path", r.Path).Build()
	}
	if _, dup := t.index[r.Path]; dup {
		return ferrors.ValidationError("duplicate route").WithContext("path", r.Path).Build()
	}
	r.Keywords = slices.Clone(r.Keywords)
	t.index[r.Path] = len(t.routes)
	t.routes = append(t.routes, r)
	return nil
}

// Get returns the route registered at path.
func (t *Table) Get(path string) (Route, bool) {
	i, ok := t.index[CleanPath(path)]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// Lookup returns the route for path, falling back to the home route.
// The boolean reports whether path itself was found.
func (t *Table) Lookup(path string) (Route, bool) {
	if r, ok := t.Get(path); ok {
		return r, true
	}
	home, _ := t.Get(HomePath)
	return home, false
}

// Home returns the "/" route.
func (t *Table) Home() (Route, bool) {
	return t.Get(HomePath)
}

// Len returns the number of routes.
func (t *Table) Len() int { return len(t.routes) }

// Routes returns a copy of the routes in insertion order.
func (t *Table) Routes() []Route {
	return slices.Clone(t.routes)
}

// Paths returns the route paths in insertion order.
func (t *Table) Paths() []string {
	out := make([]string, len(t.routes))
	for i, r := range t.routes {
		out[i] = r.Path
	}
	return out
}

// Sorted returns the routes ordered by path.
func (t *Table) Sorted() []Route {
	out := t.Routes()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
