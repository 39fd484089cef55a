package repos

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// DocumentRepo stores content documents as JSON; it is a content.Backend.
type DocumentRepo struct{ db *sqlx.DB }

func NewDocumentRepo(db *sqlx.DB) *DocumentRepo { return &DocumentRepo{db: db} }

func (r *DocumentRepo) Load(ctx context.Context, name string, v any) (bool, error) {
	var body string
	err := r.db.GetContext(ctx, &body, `SELECT body FROM documents WHERE name=?`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(body), v)
}

func (r *DocumentRepo) Save(ctx context.Context, name string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO documents(name,body,updated_at) VALUES(?,?,?)
		ON CONFLICT(name) DO UPDATE SET body=excluded.body, updated_at=excluded.updated_at
	`, name, string(b), stamp(time.Now()))
	return err
}
