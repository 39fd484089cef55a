package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"itsolutions/internal/cart"
	"itsolutions/internal/content"
	"itsolutions/internal/guard"
	"itsolutions/internal/http/handlers"
	"itsolutions/internal/latency"
	applog "itsolutions/internal/log"
	"itsolutions/internal/mirror"
	"itsolutions/internal/repos"
	"itsolutions/internal/services"
	"itsolutions/internal/session"
	"itsolutions/web"
)

type env struct {
	app    *fiber.App
	db     *sqlx.DB
	stores *content.Stores
	logs   *observer.ObservedLogs
}

type envOptions struct {
	mirror mirror.Backend
	deps   func(*handlers.Deps)
}

// newEnv builds the full app over in-memory stores with no simulated latency.
func newEnv(t *testing.T, opts ...func(*envOptions)) *env {
	t.Helper()
	var o envOptions
	for _, fn := range opts {
		fn(&o)
	}
	if o.mirror == nil {
		o.mirror = mirror.NewMemory()
	}

	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(applog.SetLogger(zap.New(core)))

	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	stores, err := content.Open(context.Background(), content.NewMemoryBackend(), latency.Instant())
	require.NoError(t, err)

	d := handlers.Deps{
		Views:    web.Engine(),
		Sessions: session.NewRegistry(session.NewDemoDirectory(), o.mirror, session.Options{Latency: latency.None}),
		Carts:    cart.NewRegistry(),
		Shells:   guard.NewShells(),
		Content:  stores,
		Orders:   services.NewOrderService(repos.NewOrderRepo(db), stores.Products),
	}
	if o.deps != nil {
		o.deps(&d)
	}
	return &env{app: handlers.NewApp(d), db: db, stores: stores, logs: logs}
}

func withDeps(fn func(*handlers.Deps)) func(*envOptions) {
	return func(o *envOptions) { o.deps = fn }
}

// browser carries cookies between requests like a real client.
type browser struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func (e *env) browser(t *testing.T) *browser {
	return &browser{t: t, app: e.app, cookies: map[string]string{}}
}

func (b *browser) do(req *http.Request) *http.Response {
	b.t.Helper()
	for k, v := range b.cookies {
		req.AddCookie(&http.Cookie{Name: k, Value: v})
	}
	resp, err := b.app.Test(req, -1)
	require.NoError(b.t, err)
	for _, c := range resp.Cookies() {
		if c.Value == "" || c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c.Value
	}
	return resp
}

func (b *browser) get(path string) *http.Response {
	b.t.Helper()
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

// post submits a form, echoing the CSRF cookie as the form token.
func (b *browser) post(path string, form url.Values) *http.Response {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if tok := b.cookies["csrf_"]; tok != "" && form.Get("csrf") == "" {
		form.Set("csrf", tok)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) json(method, path string, v any) *http.Response {
	b.t.Helper()
	var body io.Reader
	if v != nil {
		raw, err := json.Marshal(v)
		require.NoError(b.t, err)
		body = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return b.do(req)
}

func (b *browser) login(email, password string) *http.Response {
	b.t.Helper()
	return b.post("/login", url.Values{"email": {email}, "password": {password}})
}

func (b *browser) loginGuest() {
	b.t.Helper()
	resp := b.login("guest@example.com", "guest123")
	require.Equal(b.t, http.StatusFound, resp.StatusCode)
}

func (b *browser) loginAdmin() {
	b.t.Helper()
	resp := b.login("admin@itsolutions.com", "admin123")
	require.Equal(b.t, http.StatusFound, resp.StatusCode)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// actions returns the logged action names, in order.
func actions(logs *observer.ObservedLogs) []string {
	var out []string
	for _, e := range logs.All() {
		out = append(out, e.Message)
	}
	return out
}

func fieldsOf(e observer.LoggedEntry) map[string]any {
	f, _ := e.ContextMap()["fields"].(map[string]any)
	return f
}
