package session

import (
	"context"
	"strings"

	"itsolutions/internal/domain"
)

// Directory resolves credentials to an identity. A nil user with a nil
// error means the credentials matched nobody.
type Directory interface {
	FindByCredentials(ctx context.Context, email, password string) (*domain.User, error)
}

// DemoIdentity is one row of the fixed demo table.
type DemoIdentity struct {
	User     domain.User
	Password string
}

// DemoIdentities are the two demo accounts offered on the login page.
var DemoIdentities = []DemoIdentity{
	{
		User: domain.User{
			ID: 1, Email: "admin@itsolutions.com", Name: "Administrator",
			Role: domain.RoleAdmin, Avatar: "/images/admin-avatar.png",
		},
		Password: "admin123",
	},
	{
		User: domain.User{
			ID: 2, Email: "guest@example.com", Name: "Guest",
			Role: domain.RoleUser, Avatar: "/images/guest-avatar.png",
		},
		Password: "guest123",
	},
}

// DemoDirectory matches plaintext credentials against an in-process table.
// It reproduces the demo behaviour and is not a security boundary.
type DemoDirectory struct {
	identities []DemoIdentity
}

func NewDemoDirectory(ids ...DemoIdentity) *DemoDirectory {
	if len(ids) == 0 {
		ids = DemoIdentities
	}
	return &DemoDirectory{identities: ids}
}

func (d *DemoDirectory) FindByCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	for _, id := range d.identities {
		if id.User.Email == email && id.Password == password {
			u := id.User
			return &u, nil
		}
	}
	return nil, nil
}
