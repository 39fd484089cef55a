package handlers

import (
	"github.com/gofiber/fiber/v2"

	"itsolutions/internal/content"
	applog "itsolutions/internal/log"
	"itsolutions/internal/validate"
)

// profileForm reads a ProfilePatch from the form. Only submitted fields
// are patched; notifications is a checkbox and always submitted.
func profileForm(c *fiber.Ctx) (content.ProfilePatch, bool) {
	var p content.ProfilePatch
	text := func(field string, max int, dst **string) bool {
		if !c.Request().PostArgs().Has(field) {
			return true
		}
		v, ok := validate.Text(c.FormValue(field), max)
		if ok {
			*dst = &v
		}
		return ok
	}
	if raw := c.FormValue("name"); raw != "" {
		name, ok := validate.Name(raw)
		if !ok {
			return p, false
		}
		p.Name = &name
	}
	if !text("phone", 40, &p.Phone) || !text("position", 80, &p.Position) ||
		!text("bio", 1000, &p.Bio) || !text("language", 10, &p.Language) || !text("timezone", 60, &p.Timezone) {
		return p, false
	}
	if raw := c.FormValue("avatar"); raw != "" {
		u, ok := validate.URL(raw)
		if !ok {
			return p, false
		}
		p.Avatar = &u
	}
	on := c.FormValue("notifications") == "on"
	p.Notifications = &on
	return p, true
}

func showProfile(c *fiber.Ctx, stores *content.Stores, tmpl string) error {
	u := clientOf(c).State.User
	p, err := stores.Profiles.Fetch(c.UserContext(), *u)
	if err != nil {
		applog.Error(c, "profile.fetch", err, nil)
		return renderStatus(c, fiber.StatusInternalServerError, tmpl, fiber.Map{"Err": stores.Profiles.Err()})
	}
	return render(c, tmpl, fiber.Map{"Profile": p})
}

func saveProfile(c *fiber.Ctx, stores *content.Stores, tmpl string) error {
	u := clientOf(c).State.User
	patch, ok := profileForm(c)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"form": "profile"})
		p, _ := stores.Profiles.Fetch(c.UserContext(), *u)
		return renderStatus(c, fiber.StatusBadRequest, tmpl, fiber.Map{"Profile": p, "Err": "Please check the highlighted fields."})
	}
	p, err := stores.Profiles.Update(c.UserContext(), *u, patch)
	if err != nil {
		applog.Error(c, "profile.update", err, nil)
		return renderStatus(c, fiber.StatusInternalServerError, tmpl, fiber.Map{"Err": stores.Profiles.Err()})
	}
	applog.Audit(c, "profile.update", nil)
	return render(c, tmpl, fiber.Map{"Profile": p, "Saved": true})
}
