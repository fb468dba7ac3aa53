package router

import (
	"net/url"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type Name string

const (
	Browse        Name = "browse"
	Login         Name = "login"
	Register      Name = "register"
	Upload        Name = "upload"
	Work          Name = "work"
	Analyze       Name = "analyze"
	Bookmarks     Name = "bookmarks"
	Notifications Name = "notifications"
	Dashboard     Name = "dashboard"
	Profile       Name = "profile"
	Discover      Name = "discover"
	Inbox         Name = "inbox"
	Submissions   Name = "submissions"
)

// Route is a resolved location. Param holds the single path parameter
// (work id or username) for the routes that take one.
type Route struct {
	Name  Name
	Path  string
	Param string
	Gated bool
	// From is the originally requested path when a gated route was
	// redirected to the login page.
	From string
}

type pattern struct {
	name     Name
	segments []string
	gated    bool
}

var table = []pattern{
	{Browse, nil, false},
	{Login, []string{"login"}, false},
	{Register, []string{"register"}, false},
	{Upload, []string{"upload"}, true},
	{Work, []string{"works", ":id"}, false},
	{Analyze, []string{"works", ":id", "analyze"}, false},
	{Bookmarks, []string{"bookmarks"}, true},
	{Notifications, []string{"notifications"}, true},
	{Dashboard, []string{"dashboard"}, true},
	{Profile, []string{"profile", ":username"}, true},
	{Discover, []string{"professional", "discover"}, true},
	{Inbox, []string{"professional", "inbox"}, true},
	{Submissions, []string{"submissions"}, true},
}

// Resolve maps a path to a route. Unknown paths resolve to "/", and a
// gated path visited without a login resolves to "/login".
func Resolve(path string, authenticated bool) Route {
	segments := split(path)
	for _, p := range table {
		param, ok := match(p.segments, segments)
		if !ok {
			continue
		}
		route := Route{Name: p.name, Path: join(segments), Param: param, Gated: p.gated}
		if route.Gated && !authenticated {
			return Route{Name: Login, Path: "/login", From: route.Path}
		}
		return route
	}
	return Route{Name: Browse, Path: "/"}
}

func WorkPath(id string) string { return join([]string{"works", id}) }

func ProfilePath(username string) string { return join([]string{"profile", username}) }

// NavigateMsg asks the root model to switch routes.
type NavigateMsg struct{ Path string }

func Navigate(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}

func split(path string) []string {
	path = strings.TrimSpace(path)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	var out []string
	for _, s := range strings.Split(path, "/") {
		if s == "" {
			continue
		}
		if u, err := url.PathUnescape(s); err == nil {
			s = u
		}
		out = append(out, s)
	}
	return out
}

func join(segments []string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(escaped, "/")
}

func match(pattern, segments []string) (string, bool) {
	if len(pattern) != len(segments) {
		return "", false
	}
	param := ""
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			param = segments[i]
			continue
		}
		if p != segments[i] {
			return "", false
		}
	}
	return param, true
}
