package handlers

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"

	"itsolutions/internal/content"
	applog "itsolutions/internal/log"
	"itsolutions/internal/services"
)

type GuestHandler struct {
	Content *content.Stores
	Orders  *services.OrderService
}

func (h *GuestHandler) Dashboard(c *fiber.Ctx) error {
	cl := clientOf(c)
	orders, err := h.Orders.History(c.UserContext(), cl.State.User.ID)
	if err != nil {
		return err
	}
	if len(orders) > 3 {
		orders = orders[:3]
	}
	return render(c, "guest/dashboard", fiber.Map{
		"Cart":   cl.Cart.Snapshot(),
		"Orders": orders,
	})
}

func (h *GuestHandler) Profile(c *fiber.Ctx) error {
	return showProfile(c, h.Content, "guest/profile")
}

func (h *GuestHandler) UpdateProfile(c *fiber.Ctx) error {
	return saveProfile(c, h.Content, "guest/profile")
}

func (h *GuestHandler) OrderList(c *fiber.Ctx) error {
	orders, err := h.Orders.History(c.UserContext(), clientOf(c).State.User.ID)
	if err != nil {
		return err
	}
	return render(c, "guest/orders", fiber.Map{"Orders": orders})
}

func (h *GuestHandler) Order(c *fiber.Ctx) error {
	o, items, err := h.Orders.Detail(c.UserContext(), clientOf(c).State.User.ID, c.Params("id"))
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, services.ErrOrderNotFound) {
		if errors.Is(err, services.ErrOrderNotFound) {
			applog.Security(c, "access.denied.order", map[string]any{"order_id": c.Params("id")})
		}
		return notFound(c)
	}
	if err != nil {
		return err
	}
	return render(c, "guest/order", fiber.Map{"Order": o, "Items": items})
}

func (h *GuestHandler) Checkout(c *fiber.Ctx) error {
	cl := clientOf(c)
	oid, err := h.Orders.Checkout(c.UserContext(), *cl.State.User, cl.Cart)
	if errors.Is(err, services.ErrEmptyCart) {
		return renderStatus(c, fiber.StatusBadRequest, "guest/cart", fiber.Map{"Cart": cl.Cart.Snapshot(), "Err": "Your cart is empty."})
	}
	if err != nil {
		applog.Error(c, "order.checkout", err, nil)
		return renderStatus(c, fiber.StatusConflict, "guest/cart", fiber.Map{"Cart": cl.Cart.Snapshot(), "Err": "We could not place your order. Please review your cart."})
	}
	countCart(c, "checkout")
	applog.Audit(c, "order.placed", map[string]any{"order_id": oid})
	return c.Redirect("/guest/orders/" + oid)
}
