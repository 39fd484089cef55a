package domain

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the sanitized identity kept in a session; it never carries a password.
type User struct {
	ID     int    `json:"id" db:"id"`
	Email  string `json:"email" db:"email"`
	Name   string `json:"name" db:"name"`
	Role   Role   `json:"role" db:"role"`
	Avatar string `json:"avatar,omitempty" db:"avatar"`
	Token  string `json:"token,omitempty" db:"-"`
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), true
	}
	return ThemeLight, false
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
