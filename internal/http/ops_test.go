package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"itsolutions/internal/http/handlers"
)

// brokenMirror fails every read, so no session can be restored.
type brokenMirror struct{}

func (brokenMirror) Get(context.Context, string, string) (string, bool, error) {
	return "", false, errors.New("redis: connection refused at 10.0.0.7:6379")
}
func (brokenMirror) Set(context.Context, string, string, string) error { return nil }
func (brokenMirror) Delete(context.Context, string, string) error      { return nil }

func TestErrorHandlerFriendlyMessage(t *testing.T) {
	e := newEnv(t, func(o *envOptions) { o.mirror = brokenMirror{} })
	resp := e.browser(t).get("/")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := readBody(t, resp)
	assert.Contains(t, body, "Something went wrong")
	assert.NotContains(t, body, "10.0.0.7")
	assert.NotContains(t, body, "redis")

	errs := e.logs.FilterMessage("server.error").All()
	require.Len(t, errs, 1)
	assert.Equal(t, zapcore.ErrorLevel, errs[0].Level)
}

func TestNotFoundPage(t *testing.T) {
	e := newEnv(t)
	resp := e.browser(t).get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Page not found")
}

func TestHealthz(t *testing.T) {
	e := newEnv(t)
	resp := e.browser(t).get("/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, readBody(t, resp))
}

func TestShopRejectsBadCategory(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	assert.Equal(t, http.StatusBadRequest, b.get("/shop?category="+url.QueryEscape("<b>")).StatusCode)

	page := readBody(t, b.get("/shop?category=Laptops&sort=price"))
	assert.Contains(t, page, "MacBook Pro")
	assert.NotContains(t, page, "iPhone 15 Pro")
}

func TestTemplatesEscapeStoredContent(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	b.loginAdmin()
	resp := b.post("/admin/services", url.Values{
		"name": {`<script>alert("x")</script>`}, "price": {"1"}, "isActive": {"on"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	page := readBody(t, b.get("/services"))
	assert.NotContains(t, page, `<script>alert("x")</script>`)
	assert.Contains(t, page, "&lt;script&gt;")
}

func TestBodySizeLimit(t *testing.T) {
	e := newEnv(t)
	oversize := bytes.Repeat([]byte("A"), (1<<20)+10)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(oversize))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := e.app.Test(req, -1)
	// fasthttp rejects the request before routing; Test surfaces that as an error
	if err != nil {
		if strings.Contains(err.Error(), "body size exceeds") || strings.Contains(err.Error(), "too large") {
			return
		}
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestGlobalRateLimit(t *testing.T) {
	e := newEnv(t, withDeps(func(d *handlers.Deps) { d.RateMax = 3 }))
	b := e.browser(t)
	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, b.get("/healthz").StatusCode, "request %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, b.get("/healthz").StatusCode)
	assert.Contains(t, actions(e.logs), "rate.global.hit")
}

func TestAccessLogCarriesRequestContext(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	b.loginGuest()
	b.get("/guest/orders")

	var entry map[string]any
	for _, le := range e.logs.FilterMessage("http.access").All() {
		if m := le.ContextMap(); m["path"] == "/guest/orders" {
			entry = m
		}
	}
	require.NotNil(t, entry, "access log for /guest/orders")
	assert.Equal(t, "GET", entry["method"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
	assert.EqualValues(t, 2, entry["user_id"])
	assert.NotEmpty(t, entry["req_id"])
	assert.Equal(t, "info", entry["kind"])
}

func TestAuthAndAdminAuditLogs(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	b.login("admin@itsolutions.com", "wrong")
	b.loginAdmin()
	b.post("/admin/products/1/delete", nil)

	fail := e.logs.FilterMessage("auth.login.fail").All()
	require.Len(t, fail, 1)
	assert.Equal(t, "security", fail[0].ContextMap()["kind"])
	assert.Equal(t, "admin@itsolutions.com", fieldsOf(fail[0])["email"])

	ok := e.logs.FilterMessage("auth.login.success").All()
	require.Len(t, ok, 1)
	assert.Equal(t, "admin", fieldsOf(ok[0])["role"])
	assert.EqualValues(t, 1, ok[0].ContextMap()["user_id"])

	del := e.logs.FilterMessage("admin.products.delete").All()
	require.Len(t, del, 1)
	assert.Equal(t, "audit", del[0].ContextMap()["kind"])

	for _, le := range e.logs.All() {
		for _, v := range fieldsOf(le) {
			assert.NotEqual(t, "admin123", v, "passwords never reach the log")
		}
	}
}
