package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"itsolutions/internal/cart"
	"itsolutions/internal/catalog"
	"itsolutions/internal/content"
	"itsolutions/internal/domain"
	applog "itsolutions/internal/log"
	"itsolutions/internal/session"
	"itsolutions/internal/validate"
)

// APIHandler is the JSON surface over the same per-client session and cart
// the HTML pages use.
type APIHandler struct {
	Content *content.Stores
}

type sessionJSON struct {
	User            *domain.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
	IsAdmin         bool         `json:"isAdmin"`
	Theme           domain.Theme `json:"theme"`
	Loading         bool         `json:"loading"`
}

func sessionOf(st session.State) sessionJSON {
	return sessionJSON{
		User:            st.User,
		IsAuthenticated: st.IsAuthenticated,
		IsAdmin:         st.IsAdmin,
		Theme:           st.Theme,
		Loading:         st.Loading,
	}
}

type cartJSON struct {
	Items     []domain.CartLine `json:"items"`
	Total     string            `json:"total"`
	ItemCount int               `json:"itemCount"`
}

func cartOf(v cart.View) cartJSON {
	return cartJSON{Items: v.Lines, Total: v.Total.StringFixed(2), ItemCount: v.ItemCount}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// GET /api/v1/session
func (h *APIHandler) Session(c *fiber.Ctx) error {
	return c.JSON(sessionOf(clientOf(c).State))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/v1/login
func (h *APIHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		applog.Security(c, "input.api.login.invalid", nil)
		return badRequest(c, "invalid request body")
	}
	cl := clientOf(c)
	if _, ok := validate.Email(req.Email); !ok || !validate.Password(req.Password) {
		cl.Session.RejectLogin()
		cl.Refresh()
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": session.MsgInvalidCredentials})
	}
	res := cl.Session.Login(c.UserContext(), req.Email, req.Password)
	cl.Refresh()
	if !res.Success {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "error": res.Error})
	}
	c.Locals("userID", res.User.ID)
	applog.Audit(c, "auth.login.success", map[string]any{"email": req.Email, "role": string(res.User.Role), "via": "api"})
	return c.JSON(fiber.Map{
		"success": true,
		"user":    res.User,
		"landing": landing(cl.State, ""),
	})
}

// POST /api/v1/logout
func (h *APIHandler) Logout(c *fiber.Ctx) error {
	cl := clientOf(c)
	cl.Session.Logout(c.UserContext())
	cl.Refresh()
	applog.Audit(c, "auth.logout", map[string]any{"sid": cl.SID, "via": "api"})
	return c.JSON(sessionOf(cl.State))
}

// GET /api/v1/services
func (h *APIHandler) Services(c *fiber.Ctx) error {
	return c.JSON(catalog.ActiveServices(h.Content.Services.List()))
}

// GET /api/v1/products?category=&sort=
func (h *APIHandler) Products(c *fiber.Ctx) error {
	category, ok := validate.Category(c.Query("category"))
	if !ok {
		applog.Security(c, "input.category.invalid", map[string]any{"category": c.Query("category")})
		return badRequest(c, "unknown category")
	}
	return c.JSON(catalog.Shop(h.Content.Products.List(), category, validate.Sort(c.Query("sort"))))
}

// GET /api/v1/cart
func (h *APIHandler) Cart(c *fiber.Ctx) error {
	return c.JSON(cartOf(clientOf(c).Cart.Snapshot()))
}

// DELETE /api/v1/cart
func (h *APIHandler) ClearCart(c *fiber.Ctx) error {
	cl := clientOf(c)
	cl.Cart.Clear()
	countCart(c, "clear")
	return c.JSON(cartOf(cl.Cart.Snapshot()))
}

type addItemRequest struct {
	Kind     string `json:"kind"`
	ID       int    `json:"id"`
	Quantity *int   `json:"quantity"`
}

// POST /api/v1/cart/items
func (h *APIHandler) AddItem(c *fiber.Ctx) error {
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	kind, ok := validate.Kind(req.Kind)
	if !ok || req.ID <= 0 {
		applog.Security(c, "input.cart.add.invalid", map[string]any{"kind": req.Kind, "id": req.ID})
		return badRequest(c, "invalid item")
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if qty < 1 {
		applog.Security(c, "input.cart.add.invalid", map[string]any{"quantity": qty})
		return badRequest(c, "invalid quantity")
	}
	if qty > 50 {
		qty = 50
	}
	line, err := lineFor(h.Content, kind, req.ID, qty)
	switch {
	case errors.Is(err, errBadItem):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	cl := clientOf(c)
	sum := cl.Cart.Add(line)
	countCart(c, "add")
	applog.Info(c, "cart.add", map[string]any{"line": line.ID, "qty": line.Quantity, "items": sum.ItemCount})
	return c.Status(fiber.StatusCreated).JSON(cartOf(cl.Cart.Snapshot()))
}

// Quantity is required; zero or below removes the line.
type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

// PATCH /api/v1/cart/items/:id
func (h *APIHandler) SetItemQuantity(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, _, ok := catalog.ParseLineID(id); !ok {
		return badRequest(c, "invalid item")
	}
	var req quantityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Quantity == nil {
		return badRequest(c, "quantity is required")
	}
	qty := *req.Quantity
	if qty > 50 {
		qty = 50
	}
	cl := clientOf(c)
	cl.Cart.SetQuantity(id, qty)
	countCart(c, "set_quantity")
	return c.JSON(cartOf(cl.Cart.Snapshot()))
}

// DELETE /api/v1/cart/items/:id
func (h *APIHandler) RemoveItem(c *fiber.Ctx) error {
	cl := clientOf(c)
	cl.Cart.Remove(c.Params("id"))
	countCart(c, "remove")
	return c.JSON(cartOf(cl.Cart.Snapshot()))
}
