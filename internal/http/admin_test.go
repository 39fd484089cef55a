package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itsolutions/internal/domain"
)

func TestAdminServiceCRUD(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	b.loginAdmin()

	resp := b.post("/admin/services", url.Values{
		"name": {"Security audit"}, "description": {"Pen test and report"},
		"price": {"75000"}, "category": {"Security"}, "isActive": {"on"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/services", resp.Header.Get("Location"))

	list := e.stores.Services.List()
	require.Len(t, list, 3)
	created := list[2]
	assert.Equal(t, 3, created.ID)
	assert.True(t, created.IsActive)
	assert.Contains(t, readBody(t, b.get("/services")), "Security audit")

	resp = b.post("/admin/services/3", url.Values{"name": {"Security review"}, "price": {"80000.50"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	got, ok := e.stores.Services.Get(3)
	require.True(t, ok)
	assert.Equal(t, "Security review", got.Name)
	assert.Equal(t, "80000.5", got.Price.String())
	assert.False(t, got.IsActive, "unchecked box hides the service")
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
	assert.NotContains(t, readBody(t, b.get("/services")), "Security review")

	resp = b.post("/admin/services/3/delete", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	_, ok = e.stores.Services.Get(3)
	assert.False(t, ok)

	assert.Contains(t, actions(e.logs), "admin.services.create")
	assert.Contains(t, actions(e.logs), "admin.services.delete")
}

func TestAdminFormValidation(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	b.loginAdmin()

	resp := b.post("/admin/services", url.Values{"name": {""}, "price": {"10"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "invalid name")

	resp = b.post("/admin/products", url.Values{"name": {"Widget"}, "price": {"1.999"}, "stockQuantity": {"1"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "invalid price")

	resp = b.post("/admin/products", url.Values{"name": {"Widget"}, "price": {"1"}, "stockQuantity": {"1"}, "specifications": {"no colon here"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = b.post("/admin/services/99", url.Values{"name": {"Ghost"}, "price": {"1"}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	assert.Len(t, e.stores.Products.List(), 2)
	assert.Contains(t, actions(e.logs), "validation.fail")
}

func TestAdminProductCreate(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	b.loginAdmin()

	resp := b.post("/admin/products", url.Values{
		"name": {"Mechanical keyboard"}, "price": {"12990"}, "originalPrice": {"14990"},
		"category": {"Accessories"}, "stockQuantity": {"0"}, "isActive": {"on"},
		"tags":           {"keyboard, mechanical"},
		"features":       {"Hot-swap switches\nRGB"},
		"specifications": {"Layout: ANSI\nSwitches: Brown"},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode)

	p, ok := e.stores.Products.Get(3)
	require.True(t, ok)
	assert.Equal(t, []string{"keyboard", "mechanical"}, p.Tags)
	assert.Equal(t, []string{"Hot-swap switches", "RGB"}, p.Features)
	assert.Equal(t, map[string]string{"Layout": "ANSI", "Switches": "Brown"}, p.Specifications)
	assert.False(t, p.InStock, "zero stock is out of stock")
	assert.NotContains(t, readBody(t, b.get("/shop")), "Mechanical keyboard")
}

func TestAdminPagesEdit(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	b.loginAdmin()

	resp := b.post("/admin/home", url.Values{"heroTitle": {"We build software"}, "heroSubtitle": {"Since 2016"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, readBody(t, b.get("/")), "We build software")

	resp = b.post("/admin/contact", url.Values{"companyName": {"IT Solutions"}, "email": {"hello@itsolutions.com"}, "phone": {"+1 555 0100"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "hello@itsolutions.com", e.stores.Contact.Get().Email)
	assert.False(t, e.stores.Contact.Get().LastUpdated.IsZero())

	resp = b.post("/admin/contact", url.Values{"companyName": {"IT Solutions"}, "email": {"not-an-email"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	stats := len(e.stores.About.Get().Stats)
	resp = b.post("/admin/about/stats", url.Values{"number": {"24/7"}, "label": {"Support"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	about := e.stores.About.Get()
	require.Len(t, about.Stats, stats+1)
	added := about.Stats[len(about.Stats)-1]
	assert.Equal(t, domain.CompanyStat{ID: 4, Number: "24/7", Label: "Support"}, added)

	resp = b.post("/admin/about/stats/4/delete", nil)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Len(t, e.stores.About.Get().Stats, stats)

	resp = b.post("/admin/about/team", url.Values{"name": {"Jo Park"}, "position": {"QA"}, "github": {"https://github.com/jopark"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, readBody(t, b.get("/about")), "Jo Park")

	resp = b.post("/admin/about", url.Values{"companyName": {"IT Solutions"}, "title": {"Who we are"}, "values": {"Quality\nHonesty"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	about = e.stores.About.Get()
	assert.Equal(t, []string{"Quality", "Honesty"}, about.Values)
	assert.NotEmpty(t, about.TeamMembers, "saving the page keeps its lists")
}

func TestAdminOrderStatus(t *testing.T) {
	e := newEnv(t)
	guest := e.browser(t)
	guest.loginGuest()
	addToCart(guest, "service", "1", "1")
	loc := guest.post("/guest/checkout", nil).Header.Get("Location")
	require.NotEmpty(t, loc)
	orderID := loc[len("/guest/orders/"):]

	admin := e.browser(t)
	admin.loginAdmin()
	assert.Contains(t, readBody(t, admin.get("/admin")), orderID)

	resp := admin.post("/admin/orders/"+orderID+"/status", url.Values{"status": {"COMPLETED"}})
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Contains(t, readBody(t, guest.get(loc)), "COMPLETED")

	assert.Equal(t, http.StatusBadRequest, admin.post("/admin/orders/"+orderID+"/status", url.Values{"status": {"LOST"}}).StatusCode)
	assert.Equal(t, http.StatusNotFound, admin.post("/admin/orders/nope/status", url.Values{"status": {"COMPLETED"}}).StatusCode)
}

func TestProfilePages(t *testing.T) {
	e := newEnv(t)
	b := e.browser(t)
	b.loginGuest()

	page := readBody(t, b.get("/guest/profile"))
	assert.Contains(t, page, `value="Guest"`)
	assert.Contains(t, page, `value="UTC"`)

	resp := b.post("/guest/profile", url.Values{"phone": {"555 0199"}, "bio": {"Hi"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	page = readBody(t, resp)
	assert.Contains(t, page, "Profile saved.")
	assert.Contains(t, page, `value="555 0199"`)
	assert.Contains(t, page, `value="Guest"`, "unsent fields are kept")

	resp = b.post("/guest/profile", url.Values{"avatar": {"javascript:alert(1)"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	admin := e.browser(t)
	admin.loginAdmin()
	assert.Contains(t, readBody(t, admin.get("/admin/profile")), "Administrator profile")
}
