package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindProduct Kind = "product"
	KindService Kind = "service"
)

// CartLine is one entry in a cart. ID is unique within the cart.
type CartLine struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	Kind          Kind            `json:"kind"`
	Image         string          `json:"image,omitempty"`
	Description   string          `json:"description,omitempty"`
	InStock       bool            `json:"inStock,omitempty"`
	StockQuantity int             `json:"stockQuantity,omitempty"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type CartSummary struct {
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

type Service struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Duration    string          `json:"duration,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (s Service) EntityID() int { return s.ID }

func (s Service) Created() time.Time { return s.CreatedAt }

func (s Service) Stamp(id int, createdAt, updatedAt time.Time) Service {
	s.ID, s.CreatedAt, s.UpdatedAt = id, createdAt, updatedAt
	return s
}

type Product struct {
	ID             int               `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	OriginalPrice  decimal.Decimal   `json:"originalPrice"`
	Category       string            `json:"category"`
	ImageURL       string            `json:"imageUrl"`
	Images         []string          `json:"images,omitempty"`
	InStock        bool              `json:"inStock"`
	StockQuantity  int               `json:"stockQuantity"`
	Tags           []string          `json:"tags"`
	Features       []string          `json:"features"`
	Specifications map[string]string `json:"specifications"`
	IsActive       bool              `json:"isActive"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

func (p Product) EntityID() int { return p.ID }

func (p Product) Created() time.Time { return p.CreatedAt }

func (p Product) Stamp(id int, createdAt, updatedAt time.Time) Product {
	p.ID, p.CreatedAt, p.UpdatedAt = id, createdAt, updatedAt
	return p
}

// Discounted reports whether the product shows a struck-through original price.
func (p Product) Discounted() bool {
	return p.OriginalPrice.GreaterThan(p.Price)
}
