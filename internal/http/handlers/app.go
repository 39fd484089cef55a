package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"

	"itsolutions/internal/cart"
	"itsolutions/internal/content"
	"itsolutions/internal/guard"
	applog "itsolutions/internal/log"
	"itsolutions/internal/services"
	"itsolutions/internal/session"
)

type Deps struct {
	Views    *html.Engine
	Sessions *session.Registry
	Carts    *cart.Registry
	Shells   *guard.Shells
	Content  *content.Stores
	Orders   *services.OrderService

	CSRF bool
	// LoginMax attempts per LoginWindow per IP; zero means 5 per 10 minutes.
	LoginMax    int
	LoginWindow time.Duration
	// RateMax requests per minute per IP across the site; zero means 120.
	RateMax int
}

func errorHandler(c *fiber.Ctx, err error) error {
	// Log and show a friendly message
	applog.Error(c, "server.error", err, nil)
	// Avoid leaking internals; best-effort render
	if rerr := renderStatus(c, fiber.StatusInternalServerError, "notfound", fiber.Map{
		"Message": "Something went wrong. Please try again.",
	}); rerr != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
	}
	return nil
}

// accessLog writes one entry per request after the error handler has set
// the final status.
func accessLog(c *fiber.Ctx) error {
	start := time.Now()
	if err := c.Next(); err != nil {
		if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
			_ = c.SendStatus(fiber.StatusInternalServerError)
		}
	}
	applog.Info(c, "http.access", map[string]any{"latency_ms": time.Since(start).Milliseconds()})
	return nil
}

func isAPI(c *fiber.Ctx) bool { return strings.HasPrefix(c.Path(), "/api/") }

func NewApp(d Deps) *fiber.App {
	if d.LoginMax == 0 {
		d.LoginMax, d.LoginWindow = 5, 10*time.Minute
	}
	if d.RateMax == 0 {
		d.RateMax = 120
	}

	app := fiber.New(fiber.Config{
		Views:        d.Views,
		ErrorHandler: errorHandler,
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(accessLog)
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        d.RateMax,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/static/")
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).SendString("rate limit exceeded, retry soon")
		},
	}))
	app.Use(attachClient(d.Sessions, d.Carts))
	app.Use(shellRedirect(d.Shells))
	if d.CSRF {
		app.Use(csrf.New(csrf.Config{
			KeyLookup:      "form:csrf",
			CookieName:     "csrf_",
			CookieSameSite: "Lax",
			CookieSecure:   false, // set true behind HTTPS
			ContextKey:     "csrf",
			Next:           isAPI,
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				applog.Security(c, "csrf.fail", nil)
				return renderStatus(c, fiber.StatusForbidden, "notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
			},
		}))
		app.Use(func(c *fiber.Ctx) error {
			if tok, ok := c.Locals("csrf").(string); ok {
				c.Locals("CSRFToken", tok)
			}
			return c.Next()
		})
	}

	loginLimiter := limiter.New(limiter.Config{
		Max:        d.LoginMax,
		Expiration: d.LoginWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|login"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			if isAPI(c) {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many attempts"})
			}
			return renderStatus(c, fiber.StatusTooManyRequests, "login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	})

	authH := &AuthHandler{}
	pages := &PageHandler{Content: d.Content}
	cartH := &CartHandler{Content: d.Content}
	guestH := &GuestHandler{Content: d.Content, Orders: d.Orders}
	adminH := &AdminHandler{Content: d.Content, Orders: d.Orders}
	apiH := &APIHandler{Content: d.Content}

	// Public pages
	app.Get("/", pages.Home)
	app.Get("/services", pages.Services)
	app.Get("/shop", pages.Shop)
	app.Get("/about", pages.About)
	app.Get("/contact", pages.Contact)

	// Auth routes (login throttled)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", loginLimiter, authH.Login)
	app.Post("/logout", authH.Logout)
	app.Post("/theme", authH.ToggleTheme)

	// Guest area
	guest := app.Group("/guest", RequireUser())
	guest.Get("/", guestH.Dashboard)
	guest.Get("/profile", guestH.Profile)
	guest.Post("/profile", guestH.UpdateProfile)
	guest.Get("/orders", guestH.OrderList)
	guest.Get("/orders/:id", guestH.Order)
	guest.Get("/services", pages.Services)
	guest.Get("/shop", pages.Shop)
	guest.Get("/about", pages.About)
	guest.Get("/contact", pages.Contact)
	guest.Get("/cart", cartH.View)
	guest.Post("/cart", cartH.Add)
	guest.Post("/cart/quantity", cartH.SetQuantity)
	guest.Post("/cart/remove", cartH.Remove)
	guest.Post("/cart/clear", cartH.Clear)
	guest.Post("/checkout", guestH.Checkout)

	// Admin
	admin := app.Group("/admin", RequireAdmin())
	admin.Get("/", adminH.Dashboard)
	admin.Post("/orders/:id/status", adminH.UpdateOrderStatus)
	admin.Get("/home", adminH.HomePage)
	admin.Post("/home", adminH.SaveHome)
	admin.Get("/about", adminH.AboutPage)
	admin.Post("/about", adminH.SaveAbout)
	admin.Post("/about/stats", adminH.AddStat)
	admin.Post("/about/stats/:id/delete", adminH.DeleteStat)
	admin.Post("/about/team", adminH.AddTeamMember)
	admin.Post("/about/team/:id/delete", adminH.DeleteTeamMember)
	admin.Post("/about/achievements", adminH.AddAchievement)
	admin.Post("/about/achievements/:id/delete", adminH.DeleteAchievement)
	admin.Get("/contact", adminH.ContactPage)
	admin.Post("/contact", adminH.SaveContact)
	admin.Get("/services", adminH.ServicesPage)
	admin.Post("/services", adminH.CreateService)
	admin.Post("/services/:id", adminH.UpdateService)
	admin.Post("/services/:id/delete", adminH.DeleteService)
	admin.Get("/products", adminH.ProductsPage)
	admin.Post("/products", adminH.CreateProduct)
	admin.Post("/products/:id", adminH.UpdateProduct)
	admin.Post("/products/:id/delete", adminH.DeleteProduct)
	admin.Get("/profile", adminH.Profile)
	admin.Post("/profile", adminH.UpdateProfile)

	// API
	api := app.Group("/api/v1")
	api.Get("/session", apiH.Session)
	api.Post("/login", loginLimiter, apiH.Login)
	api.Post("/logout", apiH.Logout)
	api.Get("/services", apiH.Services)
	api.Get("/products", apiH.Products)
	apiCart := api.Group("/cart", requireAPIUser)
	apiCart.Get("/", apiH.Cart)
	apiCart.Delete("/", apiH.ClearCart)
	apiCart.Post("/items", apiH.AddItem)
	apiCart.Patch("/items/:id", apiH.SetItemQuantity)
	apiCart.Delete("/items/:id", apiH.RemoveItem)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(notFound)

	return app
}
