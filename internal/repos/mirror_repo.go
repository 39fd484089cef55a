package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// MirrorRepo is the sqlite mirror.Backend: one row per (client, key).
type MirrorRepo struct{ db *sqlx.DB }

func NewMirrorRepo(db *sqlx.DB) *MirrorRepo { return &MirrorRepo{db: db} }

func (r *MirrorRepo) Get(ctx context.Context, scope, key string) (string, bool, error) {
	var v string
	err := r.db.GetContext(ctx, &v, `SELECT value FROM mirror WHERE scope=? AND key=?`, scope, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *MirrorRepo) Set(ctx context.Context, scope, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO mirror(scope,key,value,updated_at) VALUES(?,?,?,?)
		ON CONFLICT(scope,key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
	`, scope, key, value, stamp(time.Now()))
	return err
}

func (r *MirrorRepo) Delete(ctx context.Context, scope, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM mirror WHERE scope=? AND key=?`, scope, key)
	return err
}
