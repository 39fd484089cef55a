package content

import (
	"time"

	"github.com/shopspring/decimal"

	"itsolutions/internal/domain"
)

func day(s string) time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return t
}

func SeedHome() domain.HomeContent {
	return domain.HomeContent{
		ID:                  "home",
		HeroTitle:           "IT solutions for growing businesses",
		HeroSubtitle:        "Web development, design and infrastructure from one team",
		VideoURL:            "/videos/hero.mp4",
		VideoPoster:         "/images/hero-poster.jpg",
		PrimaryButtonText:   "Our services",
		SecondaryButtonText: "Contact us",
		PrimaryButtonIcon:   "arrow-right",
		CreatedAt:           day("2024-01-01"),
		UpdatedAt:           day("2024-01-01"),
	}
}

func SeedAbout() domain.AboutContent {
	return domain.AboutContent{
		ID:          "about",
		CompanyName: "IT Solutions",
		Title:       "About us",
		Subtitle:    "Engineering teams that ship",
		Description: "We design, build and run software for small and medium companies.",
		Mission:     "Make dependable software affordable.",
		Vision:      "Every business runs on tools it trusts.",
		Values:      []string{"Quality", "Transparency", "Ownership"},
		Stats: []domain.CompanyStat{
			{ID: 1, Number: "150+", Label: "Projects delivered", Icon: "rocket"},
			{ID: 2, Number: "50+", Label: "Clients", Icon: "users"},
			{ID: 3, Number: "8", Label: "Years on the market", Icon: "calendar"},
		},
		TeamMembers: []domain.TeamMember{
			{ID: 1, Name: "Alex Morgan", Position: "CEO", Description: "Runs the company and its largest accounts.", ImageURL: "/images/team/ceo.jpg",
				SocialLinks: domain.SocialLinks{LinkedIn: "https://linkedin.com/in/example"}},
			{ID: 2, Name: "Sam Lee", Position: "Lead developer", Description: "Owns architecture and code review.", ImageURL: "/images/team/lead.jpg",
				SocialLinks: domain.SocialLinks{GitHub: "https://github.com/example"}},
		},
		Achievements: []domain.Achievement{
			{ID: 1, Year: "2016", Title: "Founded", Description: "Started as a two-person studio.", Icon: "flag"},
			{ID: 2, Year: "2021", Title: "100th project", Description: "Crossed one hundred delivered projects.", Icon: "trophy"},
		},
		CreatedAt: day("2024-01-01"),
		UpdatedAt: day("2024-01-01"),
	}
}

func SeedContact() domain.ContactInfo {
	return domain.ContactInfo{
		ID:           "contact",
		CompanyName:  "IT Solutions",
		Address:      "1 Main Street, Springfield",
		Phone:        "+1 555 010 0000",
		Email:        "info@itsolutions.com",
		WorkingHours: "Mon-Fri 9:00-18:00",
		SocialLinks:  domain.SocialLinks{Telegram: "https://t.me/itsolutions", GitHub: "https://github.com/itsolutions"},
		LastUpdated:  day("2024-01-01"),
	}
}

func SeedServices() []domain.Service {
	return []domain.Service{
		{ID: 1, Name: "Web development", Description: "Modern web applications on React and Node.js",
			Price: decimal.NewFromInt(50000), Category: "Development", Duration: "2-4 weeks", IsActive: true,
			CreatedAt: day("2024-01-15"), UpdatedAt: day("2024-01-15")},
		{ID: 2, Name: "UI/UX design", Description: "Interface and interaction design",
			Price: decimal.NewFromInt(30000), Category: "Design", Duration: "1-2 weeks", IsActive: true,
			CreatedAt: day("2024-01-10"), UpdatedAt: day("2024-01-10")},
	}
}

func SeedProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: `MacBook Pro 16"`, Description: "Laptop for professional work",
			Price: decimal.NewFromInt(249990), OriginalPrice: decimal.NewFromInt(279990), Category: "Laptops",
			ImageURL: "/images/products/macbook-pro.jpg", InStock: true, StockQuantity: 15,
			Tags: []string{"apple", "pro"}, Features: []string{"16-inch display", "M1 Pro", "16 GB RAM"},
			Specifications: map[string]string{"CPU": "Apple M1 Pro", "Memory": "16 GB", "Storage": "1 TB SSD"},
			IsActive:       true, CreatedAt: day("2024-01-15"), UpdatedAt: day("2024-01-15")},
		{ID: 2, Name: "iPhone 15 Pro", Description: "Flagship smartphone",
			Price: decimal.NewFromInt(119990), OriginalPrice: decimal.NewFromInt(129990), Category: "Smartphones",
			ImageURL: "/images/products/iphone-15-pro.jpg", InStock: true, StockQuantity: 25,
			Tags: []string{"apple", "flagship"}, Features: []string{"Titanium body", "48 MP camera", "A17 Pro"},
			Specifications: map[string]string{"Screen": "6.1 inch", "CPU": "Apple A17 Pro", "Storage": "128 GB"},
			IsActive:       true, CreatedAt: day("2024-01-10"), UpdatedAt: day("2024-01-10")},
	}
}
