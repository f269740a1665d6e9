package router

import (
	"strings"

	"encore.dev/beta/errs"

	"encore.app/proxy/model"
)

// ErrRouteNotFound is returned when no configured prefix matches the path.
var ErrRouteNotFound = &errs.Error{Code: errs.NotFound, Message: "no route found for the given path"}

// Resolve returns the backend URL for path: the backend base of the first
// route whose prefix is a literal prefix of path, with the full path appended.
// Routes are tried in table order, so overlapping prefixes are order sensitive.
func Resolve(path string, table model.RouteTable) (string, error) {
	for _, route := range table {
		if strings.HasPrefix(path, route.Prefix) {
			return route.Backend + path, nil
		}
	}
	return "", ErrRouteNotFound
}
