package handlers

import (
	"github.com/gofiber/fiber/v2"

	"itsolutions/internal/guard"
	"itsolutions/internal/log"
	"itsolutions/internal/session"
	"itsolutions/internal/validate"
)

type AuthHandler struct{}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	next, _ := validate.Next(c.Query("next"))
	return render(c, "login", fiber.Map{"Err": "", "Next": next})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	cl := clientOf(c)
	email := c.FormValue("email")
	pass := c.FormValue("password")
	next, _ := validate.Next(c.FormValue("next"))
	fail := func(msg string) error {
		return renderStatus(c, fiber.StatusUnauthorized, "login", fiber.Map{"Err": msg, "Email": email, "Next": next})
	}

	reason := ""
	if _, ok := validate.Email(email); !ok {
		reason = "bad_format"
	} else if !validate.Password(pass) {
		reason = "bad_password_format"
	}
	if reason != "" {
		cl.Session.RejectLogin()
		cl.Refresh()
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": reason})
		return fail(session.MsgInvalidCredentials)
	}

	res := cl.Session.Login(c.UserContext(), email, pass)
	cl.Refresh()
	if !res.Success {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return fail(res.Error)
	}
	c.Locals("userID", res.User.ID)
	log.Audit(c, "auth.login.success", map[string]any{"email": email, "role": string(res.User.Role)})
	return c.Redirect(landing(cl.State, next))
}

// landing honours next only when the new session may see it.
func landing(st session.State, next string) string {
	if next != "" {
		area := guard.AreaOf(next)
		if area != guard.LoginPage && guard.Evaluate(st, area == guard.AdminArea) == guard.RenderChildren {
			return next
		}
	}
	return guard.Landing(st.User)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	cl := clientOf(c)
	cl.Session.Logout(c.UserContext())
	log.Audit(c, "auth.logout", map[string]any{"sid": cl.SID})
	return c.Redirect("/")
}

func (h *AuthHandler) ToggleTheme(c *fiber.Ctx) error {
	theme := clientOf(c).Session.ToggleTheme(c.UserContext())
	log.Info(c, "ui.theme", map[string]any{"theme": string(theme)})
	back, ok := validate.Next(c.FormValue("back"))
	if !ok {
		back = "/"
	}
	return c.Redirect(back)
}
