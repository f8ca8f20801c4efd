// Package catalog indexes blueprints by method and path for request lookup.
package catalog

import (
	"sort"
	"strings"

	"github.com/sophialabs/blueprintmock/internal/domain/blueprint"
)

// ParamMarker prefixes a path segment that matches any value.
const ParamMarker = ":"

type routeKey struct {
	method string
	path   string
}

type dynamicRoute struct {
	method   string
	pattern  string
	segments []string
	bp       *blueprint.Blueprint
}

// Catalog holds literal routes in a hash index and parameterized routes in
// registration order. It is built once and only read while serving, so it
// needs no locking.
type Catalog struct {
	exact   map[routeKey]*blueprint.Blueprint
	dynamic []dynamicRoute
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{exact: make(map[routeKey]*blueprint.Blueprint)}
}

// Build registers every blueprint in order.
func Build(bps []*blueprint.Blueprint) *Catalog {
	c := New()
	for _, bp := range bps {
		c.Register(bp.Method, bp.Path, bp)
	}
	return c
}

// Register adds bp under method and pattern. A repeated method and pattern
// replaces the earlier blueprint; a parameterized pattern keeps the position
// of its first registration.
func (c *Catalog) Register(method, pattern string, bp *blueprint.Blueprint) {
	if !IsDynamic(pattern) {
		c.exact[routeKey{method: method, path: pattern}] = bp
		return
	}

	for i := range c.dynamic {
		if c.dynamic[i].method == method && c.dynamic[i].pattern == pattern {
			c.dynamic[i].bp = bp
			return
		}
	}
	c.dynamic = append(c.dynamic, dynamicRoute{
		method:   method,
		pattern:  pattern,
		segments: strings.Split(pattern, "/"),
		bp:       bp,
	})
}

// Lookup finds the blueprint for a request. Literal routes win over
// parameterized ones; among parameterized routes the first registered match
// wins.
func (c *Catalog) Lookup(method, path string) (*blueprint.Blueprint, bool) {
	if bp, ok := c.exact[routeKey{method: method, path: path}]; ok {
		return bp, true
	}

	segments := strings.Split(path, "/")
	for _, r := range c.dynamic {
		if r.method == method && matchSegments(r.segments, segments) {
			return r.bp, true
		}
	}
	return nil, false
}

// Len returns the number of registered routes.
func (c *Catalog) Len() int {
	return len(c.exact) + len(c.dynamic)
}

// Route describes one registered route.
type Route struct {
	Method    string
	Pattern   string
	Dynamic   bool
	Blueprint *blueprint.Blueprint
}

// Routes lists literal routes sorted by path then method, followed by
// parameterized routes in lookup order.
func (c *Catalog) Routes() []Route {
	routes := make([]Route, 0, c.Len())
	for k, bp := range c.exact {
		routes = append(routes, Route{Method: k.method, Pattern: k.path, Blueprint: bp})
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Pattern != routes[j].Pattern {
			return routes[i].Pattern < routes[j].Pattern
		}
		return routes[i].Method < routes[j].Method
	})
	for _, r := range c.dynamic {
		routes = append(routes, Route{Method: r.method, Pattern: r.pattern, Dynamic: true, Blueprint: r.bp})
	}
	return routes
}

// IsDynamic reports whether pattern has a parameter segment.
func IsDynamic(pattern string) bool {
	for _, seg := range strings.Split(pattern, "/") {
		if strings.HasPrefix(seg, ParamMarker) {
			return true
		}
	}
	return false
}

// Params extracts the values bound to parameter segments of pattern. It
// returns nil when path does not match.
func Params(pattern, path string) map[string]string {
	ps, as := strings.Split(pattern, "/"), strings.Split(path, "/")
	if !matchSegments(ps, as) {
		return nil
	}
	params := make(map[string]string)
	for i, seg := range ps {
		if name, ok := strings.CutPrefix(seg, ParamMarker); ok {
			params[name] = as[i]
		}
	}
	return params
}

func matchSegments(pattern, actual []string) bool {
	if len(pattern) != len(actual) {
		return false
	}
	for i, seg := range pattern {
		if strings.HasPrefix(seg, ParamMarker) {
			continue
		}
		if seg != actual[i] {
			return false
		}
	}
	return true
}
