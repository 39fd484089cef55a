package handlers

import (
	"github.com/gofiber/fiber/v2"

	"itsolutions/internal/domain"
	"itsolutions/internal/guard"
	"itsolutions/internal/session"
)

const layout = "layouts/main"

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	// templates compare these, so they are always present
	data["Theme"] = string(domain.ThemeLight)
	data["Path"] = c.Path()
	data["CartCount"] = 0
	if cl := clientOf(c); cl != nil {
		data["User"] = cl.State.User
		data["Session"] = cl.State
		data["Theme"] = string(cl.State.Theme)
		data["Nav"] = guard.NavLinks(cl.Area, cl.State)
		data["CartCount"] = cl.Cart.Summary().ItemCount
		if cl.State.IsAuthenticated {
			data["Dashboard"] = guard.Landing(cl.State.User)
			data["ProfileLink"] = guard.ProfileLink(cl.State)
		}
	} else {
		data["Nav"] = guard.NavLinks(guard.AreaOf(c.Path()), session.State{})
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	data["CSRFToken"] = tok
	return c.Render(tmpl, data, layout)
}

func renderStatus(c *fiber.Ctx, status int, tmpl string, data fiber.Map) error {
	c.Status(status)
	return render(c, tmpl, data)
}

func notFound(c *fiber.Ctx) error {
	return renderStatus(c, fiber.StatusNotFound, "notfound", fiber.Map{"Message": "Page not found"})
}
