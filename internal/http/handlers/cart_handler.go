package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"itsolutions/internal/catalog"
	"itsolutions/internal/content"
	"itsolutions/internal/domain"
	"itsolutions/internal/log"
	"itsolutions/internal/telemetry"
	"itsolutions/internal/validate"
)

var (
	errBadItem     = errors.New("unknown item")
	errUnavailable = errors.New("item is not available")

	cartMutations = telemetry.Counter("cart", "cart.mutations", "cart mutations by op")
)

func countCart(c *fiber.Ctx, op string) {
	cartMutations.Add(c.UserContext(), 1, metric.WithAttributes(attribute.String("op", op)))
}

type CartHandler struct {
	Content *content.Stores
}

// lineFor builds a cart line for a purchasable catalog item.
func lineFor(stores *content.Stores, kind domain.Kind, id, qty int) (domain.CartLine, error) {
	switch kind {
	case domain.KindProduct:
		p, ok := stores.Products.Get(id)
		if !ok {
			return domain.CartLine{}, errBadItem
		}
		if !p.IsActive || !p.InStock {
			return domain.CartLine{}, errUnavailable
		}
		return catalog.ProductLine(p, qty), nil
	case domain.KindService:
		s, ok := stores.Services.Get(id)
		if !ok {
			return domain.CartLine{}, errBadItem
		}
		if !s.IsActive {
			return domain.CartLine{}, errUnavailable
		}
		return catalog.ServiceLine(s, qty), nil
	}
	return domain.CartLine{}, errBadItem
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	return render(c, "guest/cart", fiber.Map{"Cart": clientOf(c).Cart.Snapshot()})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	kind, okKind := validate.Kind(c.FormValue("kind"))
	id, okID := validate.ID(c.FormValue("id"))
	if !okKind || !okID {
		log.Security(c, "input.cart.add.invalid", map[string]any{"kind": c.FormValue("kind"), "id": c.FormValue("id")})
		return c.Status(fiber.StatusBadRequest).SendString("invalid item")
	}
	qty, ok := validate.Qty(c.FormValue("qty"))
	if !ok {
		log.Security(c, "input.cart.add.invalid", map[string]any{"qty": c.FormValue("qty")})
		return c.Status(fiber.StatusBadRequest).SendString("invalid quantity")
	}
	line, err := lineFor(h.Content, kind, id, qty)
	if errors.Is(err, errBadItem) {
		return notFound(c)
	}
	if err != nil {
		return renderStatus(c, fiber.StatusConflict, "notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	sum := clientOf(c).Cart.Add(line)
	countCart(c, "add")
	log.Info(c, "cart.add", map[string]any{"line": line.ID, "qty": line.Quantity, "items": sum.ItemCount})
	return c.Redirect(back(c, "/guest/cart"))
}

func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	id := c.FormValue("id")
	qty, ok := validate.SetQty(c.FormValue("qty"))
	if _, _, okID := catalog.ParseLineID(id); !okID || !ok {
		log.Security(c, "input.cart.qty.invalid", map[string]any{"id": id, "qty": c.FormValue("qty")})
		return c.Status(fiber.StatusBadRequest).SendString("invalid quantity")
	}
	clientOf(c).Cart.SetQuantity(id, qty)
	countCart(c, "set_quantity")
	return c.Redirect("/guest/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	clientOf(c).Cart.Remove(c.FormValue("id"))
	countCart(c, "remove")
	return c.Redirect("/guest/cart")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	clientOf(c).Cart.Clear()
	countCart(c, "clear")
	return c.Redirect("/guest/cart")
}

// back is the form's local return path, or def.
func back(c *fiber.Ctx, def string) string {
	if p, ok := validate.Next(c.FormValue("back")); ok {
		return p
	}
	return def
}
