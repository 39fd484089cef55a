package repos

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"itsolutions/internal/domain"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

type userRow struct {
	domain.User
	PasswordHash string `db:"password_hash"`
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	row, err := r.byEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &row.User, nil
}

func (r *UserRepo) ByID(ctx context.Context, id int) (*domain.User, error) {
	var u domain.User
	err := r.DB.GetContext(ctx, &u, `SELECT id,email,name,role,avatar FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) byEmail(ctx context.Context, email string) (*userRow, error) {
	var row userRow
	err := r.DB.GetContext(ctx, &row, `SELECT id,email,name,role,avatar,password_hash FROM users WHERE email=?`, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByCredentials reports the user whose email and password match, or
// nil when none does. The password hash never leaves this repo.
func (r *UserRepo) FindByCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	row, err := r.byEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return &row.User, nil
}
