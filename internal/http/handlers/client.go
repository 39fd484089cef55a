package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"itsolutions/internal/cart"
	"itsolutions/internal/guard"
	applog "itsolutions/internal/log"
	"itsolutions/internal/session"
)

// Client is everything the handlers know about the caller: its sid, its
// session and cart, and the session state read at the start of the request.
type Client struct {
	SID     string
	Session *session.Store
	Cart    *cart.Store
	State   session.State
	Area    guard.Area
}

// Refresh re-reads the session after a handler changed it.
func (cl *Client) Refresh() { cl.State = cl.Session.State() }

const clientKey = "client"

func clientOf(c *fiber.Ctx) *Client {
	cl, _ := c.Locals(clientKey).(*Client)
	return cl
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if _, err := uuid.Parse(sid); err != nil {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false,
		})
	}
	return sid
}

// attachClient resolves the caller's session and cart and exposes the user
// to templates and access logs.
func attachClient(sessions *session.Registry, carts *cart.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := ensureSID(c)
		s, err := sessions.For(c.UserContext(), sid)
		if err != nil {
			return err
		}
		cl := &Client{SID: sid, Session: s, Cart: carts.For(sid), State: s.State(), Area: guard.AreaOf(c.Path())}
		c.Locals(clientKey, cl)
		if u := cl.State.User; u != nil {
			c.Locals("user", u)
			c.Locals("userID", u.ID)
		}
		return c.Next()
	}
}

// shellRedirect moves a client whose session just became authenticated out
// of the public pages, once.
func shellRedirect(shells *guard.Shells) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet || isAPI(c) {
			return c.Next()
		}
		cl := clientOf(c)
		if target, ok := shells.For(cl.SID).Navigate(cl.State, cl.Area); ok {
			applog.Info(c, "nav.redirect.auth", map[string]any{"to": target})
			return c.Redirect(target)
		}
		return c.Next()
	}
}
