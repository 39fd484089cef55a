package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAreaGuards(t *testing.T) {
	e := newEnv(t)
	anon := e.browser(t)
	guest := e.browser(t)
	guest.loginGuest()
	admin := e.browser(t)
	admin.loginAdmin()

	cases := []struct {
		name string
		b    *browser
		path string
		want int
	}{
		{"anon guest area", anon, "/guest", http.StatusUnauthorized},
		{"anon admin area", anon, "/admin/products", http.StatusUnauthorized},
		{"anon public page", anon, "/shop", http.StatusOK},
		{"guest guest area", guest, "/guest/orders", http.StatusOK},
		{"guest admin area", guest, "/admin", http.StatusForbidden},
		{"admin admin area", admin, "/admin", http.StatusOK},
		{"admin guest area", admin, "/guest", http.StatusOK},
		{"admin login page", admin, "/login", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.b.get(tc.path).StatusCode)
		})
	}
}

func TestLoginPromptRemembersTarget(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	resp := b.get("/guest/orders")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `name="next" value="/guest/orders"`)
}

func TestForbiddenPageSaysAccessDenied(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	b.loginGuest()
	resp := b.get("/admin/services")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Access denied")
	assert.Contains(t, actions(e.logs), "access.denied.admin")
}

func TestAdminWritesNeedAdmin(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	b.loginGuest()
	before := len(e.stores.Services.List())
	resp := b.post("/admin/services/1/delete", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Len(t, e.stores.Services.List(), before)
}

func TestNavFollowsArea(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	b.loginAdmin()

	adminPage := readBody(t, b.get("/admin"))
	assert.Contains(t, adminPage, `href="/admin/products"`)
	assert.Contains(t, adminPage, `href="/admin/profile"`)

	public := readBody(t, b.get("/about"))
	assert.Contains(t, public, `href="/admin"`, "public nav offers the way back to the dashboard")
}
