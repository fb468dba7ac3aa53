package router_test

import (
	"testing"

	"writerly/internal/ui/router"
)

func TestResolve(t *testing.T) {
	t.Parallel()
	cases := []struct {
		path   string
		authed bool
		name   router.Name
		param  string
		from   string
	}{
		{"/", false, router.Browse, "", ""},
		{"", false, router.Browse, "", ""},
		{"/login", false, router.Login, "", ""},
		{"/register/", false, router.Register, "", ""},
		{"/works/abc", false, router.Work, "abc", ""},
		{"/works/abc/analyze", false, router.Analyze, "abc", ""},
		{"/dashboard", false, router.Login, "", "/dashboard"},
		{"/dashboard", true, router.Dashboard, "", ""},
		{"/profile/me", true, router.Profile, "me", ""},
		{"/profile/me", false, router.Login, "", "/profile/me"},
		{"/professional/inbox?status=pending", true, router.Inbox, "", ""},
		{"/nowhere/at/all", true, router.Browse, "", ""},
		{"/works", false, router.Browse, "", ""},
	}
	for _, tc := range cases {
		got := router.Resolve(tc.path, tc.authed)
		if got.Name != tc.name || got.Param != tc.param || got.From != tc.from {
			t.Fatalf("Resolve(%q, %t) = %+v", tc.path, tc.authed, got)
		}
	}
}

func TestGatedFlag(t *testing.T) {
	t.Parallel()
	for _, path := range []string{"/upload", "/bookmarks", "/notifications", "/professional/discover", "/submissions"} {
		if r := router.Resolve(path, true); !r.Gated {
			t.Fatalf("%s should be gated", path)
		}
	}
	if r := router.Resolve("/works/x", true); r.Gated {
		t.Fatalf("work view should not be gated")
	}
}

func TestPathHelpersEscape(t *testing.T) {
	t.Parallel()
	if got := router.ProfilePath("a b"); got != "/profile/a%20b" {
		t.Fatalf("ProfilePath = %q", got)
	}
	r := router.Resolve(router.ProfilePath("a b"), true)
	if r.Param != "a b" {
		t.Fatalf("round trip param = %q", r.Param)
	}
	if got := router.WorkPath("123"); got != "/works/123" {
		t.Fatalf("WorkPath = %q", got)
	}
}
