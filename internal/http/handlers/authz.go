package handlers

import (
	"github.com/gofiber/fiber/v2"

	"itsolutions/internal/guard"
	applog "itsolutions/internal/log"
)

// RequireUser gates the guest area: anonymous callers get the login page.
func RequireUser() fiber.Handler { return requireArea(false) }

// RequireAdmin gates the admin area: signed-in non-admins get 403.
func RequireAdmin() fiber.Handler { return requireArea(true) }

func requireArea(admin bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cl := clientOf(c)
		switch guard.Evaluate(cl.State, admin) {
		case guard.RenderLogin:
			applog.Security(c, "access.denied.login", nil)
			return renderStatus(c, fiber.StatusUnauthorized, "login", fiber.Map{"Next": c.OriginalURL()})
		case guard.RenderForbidden:
			applog.Security(c, "access.denied.admin", map[string]any{"sid": cl.SID})
			return renderStatus(c, fiber.StatusForbidden, "notfound", fiber.Map{"Message": "Access denied"})
		}
		return c.Next()
	}
}

// requireAPIUser is RequireUser for JSON clients.
func requireAPIUser(c *fiber.Ctx) error {
	if guard.Evaluate(clientOf(c).State, false) != guard.RenderChildren {
		applog.Security(c, "access.denied.api", nil)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "login required"})
	}
	return c.Next()
}
