package validate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"itsolutions/internal/catalog"
	"itsolutions/internal/domain"
)

var (
	reEmail    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reCategory = regexp.MustCompile(`^[\p{L}0-9 _&/'-]{1,40}$`)
	reURL      = regexp.MustCompile(`^(/[A-Za-z0-9._~/-]*|https?://[^\s"'<>]+)$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Password enforces only a length window; bcrypt ignores bytes past 72.
func Password(s string) bool {
	return len(s) >= 1 && len(s) <= 72
}

// Qty parses an add-to-cart quantity. An empty field means 1; zero,
// negatives and non-numbers are rejected; anything above 50 is capped.
func Qty(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	if n > 50 {
		n = 50
	}
	return n, true
}

// SetQty parses an exact cart quantity. Zero and below are allowed and
// mean remove; the upper bound matches Qty.
func SetQty(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	if n > 50 {
		n = 50
	}
	return n, true
}

// ID validates a positive integer resource id.
func ID(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil && n > 0
}

func Kind(s string) (domain.Kind, bool) {
	switch k := domain.Kind(strings.TrimSpace(s)); k {
	case domain.KindProduct, domain.KindService:
		return k, true
	}
	return "", false
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 120 {
		return "", false
	}
	return s, true
}

// Text trims free text and caps it at max bytes.
func Text(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) <= max
}

// Price parses a non-negative amount with at most two decimals.
func Price(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() || d.Exponent() < -2 {
		return decimal.Zero, false
	}
	return d, true
}

// OptionalPrice is Price, but empty input is zero.
func OptionalPrice(s string) (decimal.Decimal, bool) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, true
	}
	return Price(s)
}

func Stock(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil && n >= 0 && n <= 1_000_000
}

func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == catalog.AllCategories {
		return catalog.AllCategories, true
	}
	return s, reCategory.MatchString(s)
}

func Sort(s string) catalog.Sort {
	return catalog.ParseSort(strings.TrimSpace(s))
}

// URL accepts site-relative paths and http(s) links; empty is allowed.
func URL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	return s, len(s) <= 500 && reURL.MatchString(s)
}

// List splits s on sep, trimming and dropping empty entries.
func List(s, sep string) []string {
	var out []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Next accepts a site-local redirect path and rejects everything else.
func Next(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "/") || strings.HasPrefix(s, "//") || strings.ContainsAny(s, "\\\r\n") {
		return "", false
	}
	return s, len(s) <= 200
}
