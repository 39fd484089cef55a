package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"itsolutions/internal/domain"
	"itsolutions/internal/validate"
)

// fieldErr names the first form field that failed validation.
type fieldErr string

func (f fieldErr) Error() string { return "invalid " + string(f) }

type form struct {
	c   *fiber.Ctx
	err error
}

func (f *form) fail(field string) {
	if f.err == nil {
		f.err = fieldErr(field)
	}
}

func (f *form) name(field string) string {
	v, ok := validate.Name(f.c.FormValue(field))
	if !ok {
		f.fail(field)
	}
	return v
}

func (f *form) text(field string, max int) string {
	v, ok := validate.Text(f.c.FormValue(field), max)
	if !ok {
		f.fail(field)
	}
	return v
}

func (f *form) url(field string) string {
	v, ok := validate.URL(f.c.FormValue(field))
	if !ok {
		f.fail(field)
	}
	return v
}

func (f *form) check(field string) bool { return f.c.FormValue(field) == "on" }

func isFieldErr(err error) bool {
	var fe fieldErr
	return errors.As(err, &fe)
}

func serviceForm(c *fiber.Ctx) (domain.Service, error) {
	f := &form{c: c}
	s := domain.Service{
		Name:        f.name("name"),
		Description: f.text("description", 2000),
		Category:    f.text("category", 60),
		Duration:    f.text("duration", 60),
		ImageURL:    f.url("imageUrl"),
		IsActive:    f.check("isActive"),
	}
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		f.fail("price")
	}
	s.Price = price
	return s, f.err
}

func productForm(c *fiber.Ctx) (domain.Product, error) {
	f := &form{c: c}
	p := domain.Product{
		Name:        f.name("name"),
		Description: f.text("description", 2000),
		Category:    f.text("category", 60),
		ImageURL:    f.url("imageUrl"),
		Tags:        validate.List(c.FormValue("tags"), ","),
		Features:    validate.List(c.FormValue("features"), "\n"),
		IsActive:    f.check("isActive"),
		InStock:     f.check("inStock"),
	}
	var ok bool
	if p.Price, ok = validate.Price(c.FormValue("price")); !ok {
		f.fail("price")
	}
	if p.OriginalPrice, ok = validate.OptionalPrice(c.FormValue("originalPrice")); !ok {
		f.fail("originalPrice")
	}
	if p.StockQuantity, ok = validate.Stock(c.FormValue("stockQuantity")); !ok {
		f.fail("stockQuantity")
	}
	if specs := validate.List(c.FormValue("specifications"), "\n"); len(specs) > 0 {
		p.Specifications = make(map[string]string, len(specs))
		for _, line := range specs {
			k, v, found := cutTrim(line, ":")
			if !found || k == "" {
				f.fail("specifications")
				break
			}
			p.Specifications[k] = v
		}
	}
	return p, f.err
}

func homeForm(c *fiber.Ctx) (domain.HomeContent, error) {
	f := &form{c: c}
	h := domain.HomeContent{
		HeroTitle:           f.name("heroTitle"),
		HeroSubtitle:        f.text("heroSubtitle", 500),
		VideoURL:            f.url("videoUrl"),
		VideoPoster:         f.url("videoPoster"),
		PrimaryButtonText:   f.text("primaryButtonText", 60),
		SecondaryButtonText: f.text("secondaryButtonText", 60),
		PrimaryButtonIcon:   f.text("primaryButtonIcon", 40),
	}
	return h, f.err
}

func aboutForm(c *fiber.Ctx) (domain.AboutContent, error) {
	f := &form{c: c}
	a := domain.AboutContent{
		CompanyName: f.name("companyName"),
		Title:       f.name("title"),
		Subtitle:    f.text("subtitle", 500),
		Description: f.text("description", 4000),
		Mission:     f.text("mission", 2000),
		Vision:      f.text("vision", 2000),
		Values:      validate.List(c.FormValue("values"), "\n"),
	}
	return a, f.err
}

func socialForm(f *form) domain.SocialLinks {
	return domain.SocialLinks{
		LinkedIn: f.url("linkedin"),
		Telegram: f.url("telegram"),
		GitHub:   f.url("github"),
		WhatsApp: f.url("whatsapp"),
		VK:       f.url("vk"),
	}
}

func contactForm(c *fiber.Ctx) (domain.ContactInfo, error) {
	f := &form{c: c}
	ci := domain.ContactInfo{
		CompanyName:  f.name("companyName"),
		Address:      f.text("address", 300),
		Phone:        f.text("phone", 40),
		WorkingHours: f.text("workingHours", 120),
		MapEmbedURL:  f.url("mapEmbedUrl"),
	}
	if raw := c.FormValue("email"); raw != "" {
		email, ok := validate.Email(raw)
		if !ok {
			f.fail("email")
		}
		ci.Email = email
	}
	ci.SocialLinks = socialForm(f)
	return ci, f.err
}

func statForm(c *fiber.Ctx) (domain.CompanyStat, error) {
	f := &form{c: c}
	s := domain.CompanyStat{
		Number: f.name("number"),
		Label:  f.name("label"),
		Icon:   f.text("icon", 40),
	}
	return s, f.err
}

func teamMemberForm(c *fiber.Ctx) (domain.TeamMember, error) {
	f := &form{c: c}
	m := domain.TeamMember{
		Name:        f.name("name"),
		Position:    f.text("position", 120),
		Description: f.text("description", 2000),
		ImageURL:    f.url("imageUrl"),
	}
	m.SocialLinks = socialForm(f)
	return m, f.err
}

func achievementForm(c *fiber.Ctx) (domain.Achievement, error) {
	f := &form{c: c}
	a := domain.Achievement{
		Year:        f.name("year"),
		Title:       f.name("title"),
		Description: f.text("description", 2000),
		Icon:        f.text("icon", 40),
	}
	return a, f.err
}

func cutTrim(s, sep string) (string, string, bool) {
	k, v, ok := strings.Cut(s, sep)
	return strings.TrimSpace(k), strings.TrimSpace(v), ok
}
