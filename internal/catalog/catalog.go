// Package catalog turns the content collections into what the shop pages
// list and what the cart receives.
package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"itsolutions/internal/domain"
)

const AllCategories = "all"

type Sort string

const (
	SortNewest Sort = "newest"
	SortName   Sort = "name"
	SortPrice  Sort = "price"
)

func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortName, SortPrice:
		return Sort(s)
	}
	return SortNewest
}

// Shop lists the purchasable products in category, ordered by by.
func Shop(products []domain.Product, category string, by Sort) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !p.IsActive || !p.InStock {
			continue
		}
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		switch by {
		case SortName:
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		case SortPrice:
			return out[i].Price.LessThan(out[j].Price)
		default:
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
	})
	return out
}

// Categories lists distinct product categories in first-seen order.
func Categories(products []domain.Product) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

func ActiveServices(services []domain.Service) []domain.Service {
	out := make([]domain.Service, 0, len(services))
	for _, s := range services {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out
}

// Cart line ids carry the kind so a product and a service with the same
// numeric id never share a line.
func LineID(kind domain.Kind, id int) string {
	return fmt.Sprintf("%s-%d", kind, id)
}

// ParseLineID is the inverse of LineID.
func ParseLineID(s string) (domain.Kind, int, bool) {
	kind, num, ok := strings.Cut(s, "-")
	if !ok {
		return "", 0, false
	}
	id, err := strconv.Atoi(num)
	if err != nil || id <= 0 {
		return "", 0, false
	}
	switch domain.Kind(kind) {
	case domain.KindProduct, domain.KindService:
		return domain.Kind(kind), id, true
	}
	return "", 0, false
}

func ProductLine(p domain.Product, qty int) domain.CartLine {
	return domain.CartLine{
		ID:            LineID(domain.KindProduct, p.ID),
		Name:          p.Name,
		Price:         p.Price,
		Quantity:      qty,
		Kind:          domain.KindProduct,
		Image:         p.ImageURL,
		Description:   p.Description,
		InStock:       p.InStock,
		StockQuantity: p.StockQuantity,
	}
}

func ServiceLine(s domain.Service, qty int) domain.CartLine {
	return domain.CartLine{
		ID:          LineID(domain.KindService, s.ID),
		Name:        s.Name,
		Price:       s.Price,
		Quantity:    qty,
		Kind:        domain.KindService,
		Image:       s.ImageURL,
		Description: s.Description,
		InStock:     true,
	}
}
