package domain

import "time"

type HomeContent struct {
	ID                  string    `json:"id"`
	HeroTitle           string    `json:"heroTitle"`
	HeroSubtitle        string    `json:"heroSubtitle"`
	VideoURL            string    `json:"videoUrl"`
	VideoPoster         string    `json:"videoPoster"`
	PrimaryButtonText   string    `json:"primaryButtonText"`
	SecondaryButtonText string    `json:"secondaryButtonText"`
	PrimaryButtonIcon   string    `json:"primaryButtonIcon"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type CompanyStat struct {
	ID     int    `json:"id"`
	Number string `json:"number"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
}

func (s CompanyStat) EntityID() int             { return s.ID }
func (s CompanyStat) WithID(id int) CompanyStat { s.ID = id; return s }
func (m TeamMember) EntityID() int              { return m.ID }
func (m TeamMember) WithID(id int) TeamMember   { m.ID = id; return m }
func (a Achievement) EntityID() int             { return a.ID }
func (a Achievement) WithID(id int) Achievement { a.ID = id; return a }

type SocialLinks struct {
	LinkedIn string `json:"linkedin,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	GitHub   string `json:"github,omitempty"`
	WhatsApp string `json:"whatsapp,omitempty"`
	VK       string `json:"vk,omitempty"`
}

type TeamMember struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Position    string      `json:"position"`
	Description string      `json:"description"`
	ImageURL    string      `json:"imageUrl"`
	SocialLinks SocialLinks `json:"socialLinks"`
}

type Achievement struct {
	ID          int    `json:"id"`
	Year        string `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type AboutContent struct {
	ID           string        `json:"id"`
	CompanyName  string        `json:"companyName"`
	Title        string        `json:"title"`
	Subtitle     string        `json:"subtitle"`
	Description  string        `json:"description"`
	Mission      string        `json:"mission"`
	Vision       string        `json:"vision"`
	Values       []string      `json:"values"`
	Stats        []CompanyStat `json:"stats"`
	TeamMembers  []TeamMember  `json:"teamMembers"`
	Achievements []Achievement `json:"achievements"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

type ContactInfo struct {
	ID           string      `json:"id"`
	CompanyName  string      `json:"companyName"`
	Address      string      `json:"address"`
	Phone        string      `json:"phone"`
	Email        string      `json:"email"`
	WorkingHours string      `json:"workingHours"`
	SocialLinks  SocialLinks `json:"socialLinks"`
	MapEmbedURL  string      `json:"mapEmbedUrl,omitempty"`
	LastUpdated  time.Time   `json:"lastUpdated"`
}

type Profile struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Position      string    `json:"position,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	Avatar        string    `json:"avatar,omitempty"`
	Role          Role      `json:"role"`
	CreatedAt     time.Time `json:"createdAt"`
	LastLogin     time.Time `json:"lastLogin"`
	Notifications bool      `json:"notifications"`
	Language      string    `json:"language"`
	Timezone      string    `json:"timezone"`
}
