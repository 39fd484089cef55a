package handlers

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"itsolutions/internal/content"
	applog "itsolutions/internal/log"
	"itsolutions/internal/services"
	"itsolutions/internal/validate"
)

type AdminHandler struct {
	Content *content.Stores
	Orders  *services.OrderService
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	ords, err := h.Orders.Latest(c.UserContext(), 10)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return renderStatus(c, fiber.StatusInternalServerError, "notfound", fiber.Map{"Message": "Could not load orders"})
	}
	return render(c, "admin/dashboard", fiber.Map{
		"ServiceCount": len(h.Content.Services.List()),
		"ProductCount": len(h.Content.Products.List()),
		"Orders":       ords,
		"Statuses":     services.OrderStatuses,
	})
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	status := c.FormValue("status")
	if err := h.Orders.SetStatus(c.UserContext(), id, status); err != nil {
		if errors.Is(err, services.ErrBadStatus) {
			applog.Security(c, "validation.fail", map[string]any{"field": "status"})
			return c.Status(fiber.StatusBadRequest).SendString("unknown status")
		}
		if errors.Is(err, sql.ErrNoRows) {
			return notFound(c)
		}
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id})
		return err
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, "status": status})
	return c.Redirect("/admin")
}

// saved finishes an admin write: audit and redirect on success, re-render
// the page with the store's error otherwise.
func (h *AdminHandler) saved(c *fiber.Ctx, action, redirect string, err error, storeErr string, page fiber.Handler) error {
	if err == nil {
		applog.Audit(c, action, nil)
		return c.Redirect(redirect)
	}
	status := fiber.StatusInternalServerError
	msg := storeErr
	switch {
	case isFieldErr(err):
		applog.Security(c, "validation.fail", map[string]any{"action": action, "field": err.Error()})
		status, msg = fiber.StatusBadRequest, "Please check the form: "+err.Error()+"."
	case errors.Is(err, content.ErrNotFound):
		status = fiber.StatusNotFound
	default:
		applog.Error(c, action+".fail", err, nil)
	}
	c.Status(status)
	c.Locals("formErr", msg)
	return page(c)
}

func formErr(c *fiber.Ctx) string {
	s, _ := c.Locals("formErr").(string)
	return s
}

func (h *AdminHandler) HomePage(c *fiber.Ctx) error {
	return render(c, "admin/home", fiber.Map{"Home": h.Content.Home.Get(), "Err": formErr(c)})
}

func (h *AdminHandler) SaveHome(c *fiber.Ctx) error {
	in, err := homeForm(c)
	if err == nil {
		_, err = h.Content.Home.Save(c.UserContext(), in)
	}
	return h.saved(c, "admin.home.update", "/admin/home", err, h.Content.Home.Err(), h.HomePage)
}

func (h *AdminHandler) AboutPage(c *fiber.Ctx) error {
	return render(c, "admin/about", fiber.Map{"About": h.Content.About.Get(), "Err": formErr(c)})
}

func (h *AdminHandler) SaveAbout(c *fiber.Ctx) error {
	in, err := aboutForm(c)
	if err == nil {
		_, err = h.Content.About.Save(c.UserContext(), in)
	}
	return h.saved(c, "admin.about.update", "/admin/about", err, h.Content.About.Err(), h.AboutPage)
}

func (h *AdminHandler) aboutEdit(c *fiber.Ctx, action string, fn func(ctx context.Context) error) error {
	return h.saved(c, action, "/admin/about", fn(c.UserContext()), h.Content.About.Err(), h.AboutPage)
}

func (h *AdminHandler) AddStat(c *fiber.Ctx) error {
	return h.aboutEdit(c, "admin.about.stat.add", func(ctx context.Context) error {
		st, err := statForm(c)
		if err == nil {
			_, err = h.Content.About.AddStat(ctx, st)
		}
		return err
	})
}

func (h *AdminHandler) DeleteStat(c *fiber.Ctx) error {
	return h.aboutEdit(c, "admin.about.stat.delete", func(ctx context.Context) error {
		id, ok := validate.ID(c.Params("id"))
		if !ok {
			return fieldErr("id")
		}
		_, err := h.Content.About.DeleteStat(ctx, id)
		return err
	})
}

func (h *AdminHandler) AddTeamMember(c *fiber.Ctx) error {
	return h.aboutEdit(c, "admin.about.team.add", func(ctx context.Context) error {
		m, err := teamMemberForm(c)
		if err == nil {
			_, err = h.Content.About.AddTeamMember(ctx, m)
		}
		return err
	})
}

func (h *AdminHandler) DeleteTeamMember(c *fiber.Ctx) error {
	return h.aboutEdit(c, "admin.about.team.delete", func(ctx context.Context) error {
		id, ok := validate.ID(c.Params("id"))
		if !ok {
			return fieldErr("id")
		}
		_, err := h.Content.About.DeleteTeamMember(ctx, id)
		return err
	})
}

func (h *AdminHandler) AddAchievement(c *fiber.Ctx) error {
	return h.aboutEdit(c, "admin.about.achievement.add", func(ctx context.Context) error {
		a, err := achievementForm(c)
		if err == nil {
			_, err = h.Content.About.AddAchievement(ctx, a)
		}
		return err
	})
}

func (h *AdminHandler) DeleteAchievement(c *fiber.Ctx) error {
	return h.aboutEdit(c, "admin.about.achievement.delete", func(ctx context.Context) error {
		id, ok := validate.ID(c.Params("id"))
		if !ok {
			return fieldErr("id")
		}
		_, err := h.Content.About.DeleteAchievement(ctx, id)
		return err
	})
}

func (h *AdminHandler) ContactPage(c *fiber.Ctx) error {
	return render(c, "admin/contact", fiber.Map{"Contact": h.Content.Contact.Get(), "Err": formErr(c)})
}

func (h *AdminHandler) SaveContact(c *fiber.Ctx) error {
	in, err := contactForm(c)
	if err == nil {
		_, err = h.Content.Contact.Save(c.UserContext(), in)
	}
	return h.saved(c, "admin.contact.update", "/admin/contact", err, h.Content.Contact.Err(), h.ContactPage)
}

// GET /admin/services
func (h *AdminHandler) ServicesPage(c *fiber.Ctx) error {
	return render(c, "admin/services", fiber.Map{"Services": h.Content.Services.List(), "Err": formErr(c)})
}

func (h *AdminHandler) CreateService(c *fiber.Ctx) error {
	in, err := serviceForm(c)
	if err == nil {
		_, err = h.Content.Services.Create(c.UserContext(), in)
	}
	return h.saved(c, "admin.services.create", "/admin/services", err, h.Content.Services.Err(), h.ServicesPage)
}

func (h *AdminHandler) UpdateService(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c)
	}
	in, err := serviceForm(c)
	if err == nil {
		_, err = h.Content.Services.Update(c.UserContext(), id, in)
	}
	return h.saved(c, "admin.services.update", "/admin/services", err, h.Content.Services.Err(), h.ServicesPage)
}

func (h *AdminHandler) DeleteService(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c)
	}
	err := h.Content.Services.Delete(c.UserContext(), id)
	return h.saved(c, "admin.services.delete", "/admin/services", err, h.Content.Services.Err(), h.ServicesPage)
}

// GET /admin/products
func (h *AdminHandler) ProductsPage(c *fiber.Ctx) error {
	return render(c, "admin/products", fiber.Map{"Products": h.Content.Products.List(), "Err": formErr(c)})
}

func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	in, err := productForm(c)
	if err == nil {
		_, err = h.Content.Products.Create(c.UserContext(), in)
	}
	return h.saved(c, "admin.products.create", "/admin/products", err, h.Content.Products.Err(), h.ProductsPage)
}

func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c)
	}
	in, err := productForm(c)
	if err == nil {
		_, err = h.Content.Products.Update(c.UserContext(), id, in)
	}
	return h.saved(c, "admin.products.update", "/admin/products", err, h.Content.Products.Err(), h.ProductsPage)
}

func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return notFound(c)
	}
	err := h.Content.Products.Delete(c.UserContext(), id)
	return h.saved(c, "admin.products.delete", "/admin/products", err, h.Content.Products.Err(), h.ProductsPage)
}

func (h *AdminHandler) Profile(c *fiber.Ctx) error {
	return showProfile(c, h.Content, "admin/profile")
}

func (h *AdminHandler) UpdateProfile(c *fiber.Ctx) error {
	return saveProfile(c, h.Content, "admin/profile")
}
