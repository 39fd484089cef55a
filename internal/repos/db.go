package repos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	applog "itsolutions/internal/log"
	"itsolutions/internal/session"
)

// tsLayout is fixed-width so stored timestamps sort as text.
const tsLayout = "2006-01-02 15:04:05.000000"

func stamp(t time.Time) string { return t.UTC().Format(tsLayout) }

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// every pooled connection would get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Ensure demo users exist (idempotent; safe to run every start)
	if err := SeedUsers(context.Background(), db, session.DemoIdentities); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users
CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('user','admin')),
  avatar TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Per-client key/value mirror (theme, user, token)
CREATE TABLE IF NOT EXISTS mirror(
  scope TEXT NOT NULL,
  key TEXT NOT NULL,
  value TEXT NOT NULL,
  updated_at TEXT,
  PRIMARY KEY (scope, key)
);

-- Site content documents, JSON encoded
CREATE TABLE IF NOT EXISTS documents(
  name TEXT PRIMARY KEY,
  body TEXT NOT NULL,
  updated_at TEXT
);

-- Orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  user_id INTEGER NOT NULL REFERENCES users(id),
  customer_name TEXT,
  customer_email TEXT,
  total TEXT NOT NULL,
  item_count INTEGER NOT NULL,
  status TEXT NOT NULL DEFAULT 'PLACED',
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_user       ON orders(user_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  line_id TEXT NOT NULL,
  name TEXT NOT NULL,
  kind TEXT NOT NULL CHECK (kind IN ('product','service')),
  qty INTEGER NOT NULL CHECK (qty >= 1),
  price TEXT NOT NULL,
  PRIMARY KEY (order_id, line_id)
);
`
	_, err := db.Exec(schema)
	return err
}

// SeedUsers inserts the given identities with bcrypt hashes (idempotent).
func SeedUsers(ctx context.Context, db *sqlx.DB, ids []session.DemoIdentity) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	inserted := 0
	for _, id := range ids {
		var n int
		if err := tx.GetContext(ctx, &n, `SELECT COUNT(*) FROM users WHERE email=?`, id.User.Email); err != nil {
			return err
		}
		if n > 0 {
			continue
		}
		h, err := bcrypt.GenerateFromPassword([]byte(id.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO users(id,email,name,password_hash,role,avatar)
			VALUES(?,?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, id.User.ID, id.User.Email, id.User.Name, string(h), string(id.User.Role), id.User.Avatar); err != nil {
			return err
		}
		inserted++
	}
	if inserted > 0 {
		applog.L().Info("seed.users", zap.Int("inserted", inserted))
	}
	return tx.Commit()
}
