// Package guard decides what a navigation renders given the session, and
// which links and redirects the navigation shell offers.
package guard

import (
	"strings"

	"itsolutions/internal/domain"
	"itsolutions/internal/session"
)

type Decision int

const (
	RenderChildren Decision = iota
	RenderLogin
	RenderForbidden
)

func (d Decision) String() string {
	switch d {
	case RenderChildren:
		return "render-children"
	case RenderLogin:
		return "render-login"
	case RenderForbidden:
		return "render-forbidden"
	}
	return "unknown"
}

// Evaluate is total and has no side effects.
func Evaluate(st session.State, requireAdmin bool) Decision {
	switch {
	case !st.IsAuthenticated:
		return RenderLogin
	case requireAdmin && !st.IsAdmin:
		return RenderForbidden
	default:
		return RenderChildren
	}
}

type Area int

const (
	Public Area = iota
	GuestArea
	AdminArea
	LoginPage
)

func (a Area) String() string {
	return [...]string{"public", "guest", "admin", "login"}[a]
}

const (
	GuestRoot = "/guest"
	AdminRoot = "/admin"
	LoginPath = "/login"
)

// AreaOf tags a request path. Prefixes match whole segments, so /guestbook
// is public.
func AreaOf(path string) Area {
	if path != "/" {
		path = strings.TrimRight(path, "/")
	}
	switch {
	case path == LoginPath:
		return LoginPage
	case under(path, AdminRoot):
		return AdminArea
	case under(path, GuestRoot):
		return GuestArea
	}
	return Public
}

func under(path, root string) bool {
	return path == root || strings.HasPrefix(path, root+"/")
}

// RedirectOnAuth reports where the shell must send a client whose session
// just became authenticated. Only a non-admin arriving on a public page is
// moved; the target is guest area, so the rule cannot fire twice.
func RedirectOnAuth(prev, next session.State, area Area) (string, bool) {
	if prev.IsAuthenticated || !next.IsAuthenticated || next.IsAdmin || area != Public {
		return "", false
	}
	return GuestRoot, true
}

// Landing is where a successful login goes.
func Landing(u *domain.User) string {
	if u.IsAdmin() {
		return AdminRoot
	}
	return GuestRoot
}

// ProfileLink is the user-menu profile entry for the session's role.
func ProfileLink(st session.State) string {
	if st.IsAdmin {
		return AdminRoot + "/profile"
	}
	return GuestRoot + "/profile"
}

type Link struct {
	To    string
	Label string
}

var (
	adminLinks = []Link{
		{"/admin", "Dashboard"},
		{"/services", "Services"},
		{"/shop", "Shop"},
		{"/about", "About"},
	}
	guestLinks = []Link{
		{"/guest", "Overview"},
		{"/guest/profile", "Profile"},
		{"/guest/orders", "My orders"},
		{"/guest/services", "Services"},
		{"/guest/shop", "Shop"},
		{"/guest/cart", "Cart"},
		{"/guest/about", "About"},
		{"/guest/contact", "Contact"},
	}
	mainLinks = []Link{
		{"/", "Home"},
		{"/services", "Services"},
		{"/shop", "Shop"},
		{"/about", "About"},
		{"/contact", "Contact"},
	}
)

// NavLinks returns the header links for area. Public pages gain a shortcut
// to the signed-in user's own area.
func NavLinks(area Area, st session.State) []Link {
	switch area {
	case AdminArea:
		return append([]Link(nil), adminLinks...)
	case GuestArea:
		return append([]Link(nil), guestLinks...)
	}
	links := append([]Link(nil), mainLinks...)
	if st.IsAuthenticated {
		if st.IsAdmin {
			links = append(links, Link{AdminRoot, "Admin"})
		} else {
			links = append(links, Link{GuestRoot, "My account"})
		}
	}
	return links
}
