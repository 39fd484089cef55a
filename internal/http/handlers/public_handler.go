package handlers

import (
	"github.com/gofiber/fiber/v2"

	"itsolutions/internal/catalog"
	"itsolutions/internal/content"
	"itsolutions/internal/log"
	"itsolutions/internal/validate"
)

// PageHandler serves the marketing pages. The guest area reuses them with
// its own navigation.
type PageHandler struct {
	Content *content.Stores
}

func (h *PageHandler) Home(c *fiber.Ctx) error {
	return render(c, "home", fiber.Map{
		"Home":     h.Content.Home.Get(),
		"Services": catalog.ActiveServices(h.Content.Services.List()),
	})
}

func (h *PageHandler) Services(c *fiber.Ctx) error {
	return render(c, "services", fiber.Map{
		"Services": catalog.ActiveServices(h.Content.Services.List()),
		"CanBuy":   clientOf(c).State.IsAuthenticated,
	})
}

func (h *PageHandler) Shop(c *fiber.Ctx) error {
	category, ok := validate.Category(c.Query("category"))
	if !ok {
		log.Security(c, "input.category.invalid", map[string]any{"category": c.Query("category")})
		return renderStatus(c, fiber.StatusBadRequest, "notfound", fiber.Map{"Message": "Unknown category"})
	}
	sort := validate.Sort(c.Query("sort"))
	all := h.Content.Products.List()
	return render(c, "shop", fiber.Map{
		"Products":   catalog.Shop(all, category, sort),
		"Categories": catalog.Categories(all),
		"Category":   category,
		"Sort":       string(sort),
		"CanBuy":     clientOf(c).State.IsAuthenticated,
	})
}

func (h *PageHandler) About(c *fiber.Ctx) error {
	return render(c, "about", fiber.Map{"About": h.Content.About.Get()})
}

func (h *PageHandler) Contact(c *fiber.Ctx) error {
	return render(c, "contact", fiber.Map{"Contact": h.Content.Contact.Get()})
}
