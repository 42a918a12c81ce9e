package service

import "net/http"

// Operation describes one forwarded UI route: the inbound method and path,
// the SummerDB API path it maps to, and whether the request body travels with it.
type Operation struct {
	Name         string
	Method       string
	Route        string
	PathSuffix   string
	ForwardsBody bool
}

// Target returns the upstream URL for base. The suffix is appended as-is;
// base is expected without a trailing slash.
func (o Operation) Target(base string) string {
	return base + o.PathSuffix
}

// Operations lists every route the admin UI calls.
//
// The UI this server replaces registered the user listing twice under one
// path (once fetching super-users). The two are kept apart here on
// /api/users and /api/super-users.
var Operations = []Operation{
	{Name: "create-collection", Method: http.MethodPost, Route: "/api/create/collection", PathSuffix: "/api/create/collection", ForwardsBody: true},
	{Name: "create-user", Method: http.MethodPost, Route: "/api/create/user", PathSuffix: "/api/create/user", ForwardsBody: true},
	{Name: "setup", Method: http.MethodGet, Route: "/api/setup", PathSuffix: "/api/setup"},
	{Name: "list-super-users", Method: http.MethodGet, Route: "/api/super-users", PathSuffix: "/api/super-users"},
	{Name: "list-users", Method: http.MethodGet, Route: "/api/users", PathSuffix: "/api/users"},
	{Name: "version", Method: http.MethodGet, Route: "/api/version", PathSuffix: ""},
}
