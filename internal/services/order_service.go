package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"itsolutions/internal/cart"
	"itsolutions/internal/catalog"
	"itsolutions/internal/domain"
	"itsolutions/internal/repos"
	"itsolutions/internal/telemetry"
)

var ErrEmptyCart = errors.New("cart empty")

// Products resolves a catalog product by id.
type Products interface {
	Get(id int) (domain.Product, bool)
}

type OrderService struct {
	Orders   *repos.OrderRepo
	Products Products
	Now      func() time.Time
}

func NewOrderService(orders *repos.OrderRepo, products Products) *OrderService {
	return &OrderService{Orders: orders, Products: products, Now: time.Now}
}

// Checkout turns the cart into an order for u and empties the cart. The
// total is the cart's own summary; nothing is recomputed from the catalog.
func (s *OrderService) Checkout(ctx context.Context, u domain.User, c *cart.Store) (string, error) {
	ctx, span := telemetry.Start(ctx, "orders", "checkout", attribute.Int("user_id", u.ID))
	defer span.End()

	view := c.Snapshot()
	if len(view.Lines) == 0 {
		return "", ErrEmptyCart
	}

	// pre-check stock
	for _, l := range view.Lines {
		kind, id, ok := catalog.ParseLineID(l.ID)
		if !ok || kind != domain.KindProduct {
			continue
		}
		p, ok := s.Products.Get(id)
		if !ok || !p.IsActive || !p.InStock {
			return "", fmt.Errorf("%s is no longer available", l.Name)
		}
		if p.StockQuantity < l.Quantity {
			return "", fmt.Errorf("insufficient stock for %s (need %d, have %d)", l.Name, l.Quantity, p.StockQuantity)
		}
	}

	orderID := uuid.NewString()
	items := make([]repos.OrderItemRow, 0, len(view.Lines))
	for _, l := range view.Lines {
		items = append(items, repos.OrderItemRow{LineID: l.ID, Name: l.Name, Kind: string(l.Kind), Qty: l.Quantity, Price: l.Price})
	}
	head := repos.OrderSummary{
		ID:            orderID,
		UserID:        u.ID,
		CustomerName:  u.Name,
		CustomerEmail: u.Email,
		Total:         view.Total,
		ItemCount:     view.ItemCount,
	}
	if err := s.Orders.Place(ctx, head, items, s.Now()); err != nil {
		return "", err
	}
	c.Clear()
	span.SetAttributes(attribute.String("order_id", orderID))
	return orderID, nil
}

// History lists u's orders, newest first.
func (s *OrderService) History(ctx context.Context, userID int) ([]repos.OrderSummary, error) {
	return s.Orders.ListByUser(ctx, userID)
}

// Detail returns one of userID's orders; another user's order reads as not found.
func (s *OrderService) Detail(ctx context.Context, userID int, orderID string) (repos.OrderSummary, []repos.OrderItemRow, error) {
	o, items, err := s.Orders.Get(ctx, orderID)
	if err != nil {
		return repos.OrderSummary{}, nil, err
	}
	if o.UserID != userID {
		return repos.OrderSummary{}, nil, ErrOrderNotFound
	}
	return o, items, nil
}

var ErrOrderNotFound = errors.New("order not found")

var OrderStatuses = []string{"PLACED", "PROCESSING", "COMPLETED", "CANCELED"}

var ErrBadStatus = errors.New("unknown order status")

// Latest lists every user's orders for the back office.
func (s *OrderService) Latest(ctx context.Context, limit int) ([]repos.OrderSummary, error) {
	return s.Orders.ListLatest(ctx, limit)
}

func (s *OrderService) SetStatus(ctx context.Context, orderID, status string) error {
	for _, st := range OrderStatuses {
		if st == status {
			return s.Orders.UpdateStatus(ctx, orderID, status)
		}
	}
	return ErrBadStatus
}
