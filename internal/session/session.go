// Package session holds who is logged in on a client, whether they are an
// admin, and the client's UI theme. The user, token and theme are mirrored
// to the client's durable key/value scope so a reload restores them.
package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"itsolutions/internal/domain"
	"itsolutions/internal/latency"
	applog "itsolutions/internal/log"
	"itsolutions/internal/mirror"
	"itsolutions/internal/telemetry"
)

const (
	MsgInvalidCredentials = "invalid email or password"
	MsgLoginFailed        = "login failed, please try again"
)

// State is a copy of the session at one instant. IsAuthenticated and
// IsAdmin are always derived from User.
type State struct {
	User            *domain.User
	IsAuthenticated bool
	IsAdmin         bool
	Theme           domain.Theme
	Loading         bool
}

type LoginResult struct {
	Success bool
	User    *domain.User
	Error   string
}

type Options struct {
	Latency latency.Func
	Now     func() time.Time
}

type Store struct {
	dir     Directory
	kv      mirror.KV
	latency latency.Func
	now     func() time.Time

	mu    sync.RWMutex
	state State
}

var logins = telemetry.Counter("session", "session.logins", "login attempts by outcome")

func New(dir Directory, kv mirror.KV, opts Options) *Store {
	if opts.Latency == nil {
		opts.Latency = latency.None
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		dir:     dir,
		kv:      kv,
		latency: opts.Latency,
		now:     opts.Now,
		state:   State{Theme: domain.ThemeLight},
	}
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// setUserLocked is the only place the derived flags change.
func (s *Store) setUserLocked(u *domain.User) {
	s.state.User = u
	s.state.IsAuthenticated = u != nil
	s.state.IsAdmin = u.IsAdmin()
}

// Restore loads theme and user from the mirror. Missing keys mean defaults;
// an unreadable user record means logged out.
func (s *Store) Restore(ctx context.Context) error {
	theme := domain.ThemeLight
	if v, ok, err := s.kv.Get(ctx, mirror.KeyTheme); err != nil {
		return fmt.Errorf("restore theme: %w", err)
	} else if ok {
		theme, _ = domain.ParseTheme(v)
	}

	var user *domain.User
	raw, ok, err := s.kv.Get(ctx, mirror.KeyUser)
	if err != nil {
		return fmt.Errorf("restore user: %w", err)
	}
	if ok {
		var u domain.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil || u.Email == "" {
			applog.L().Warn("session.restore.malformed", zap.Error(err))
			_ = s.kv.Delete(ctx, mirror.KeyUser)
			_ = s.kv.Delete(ctx, mirror.KeyToken)
		} else {
			user = &u
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Theme = theme
	s.setUserLocked(user)
	return nil
}

// Login checks the credentials after the simulated round trip. Failures are
// reported in the result, never as an error, and never say which field was wrong.
func (s *Store) Login(ctx context.Context, email, password string) LoginResult {
	ctx, span := telemetry.Start(ctx, "session", "login")
	defer span.End()

	s.mu.Lock()
	s.state.Loading = true
	s.mu.Unlock()

	res := s.login(ctx, email, password)

	s.mu.Lock()
	s.state.Loading = false
	if res.Success {
		s.setUserLocked(res.User)
	} else {
		s.setUserLocked(nil)
	}
	s.mu.Unlock()

	outcome := "success"
	if !res.Success {
		outcome = "failure"
		span.SetStatus(codes.Error, res.Error)
	}
	span.SetAttributes(attribute.String("outcome", outcome))
	logins.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))

	if res.User != nil {
		u := *res.User
		res.User = &u
	}
	return res
}

func (s *Store) login(ctx context.Context, email, password string) LoginResult {
	if err := s.latency(ctx); err != nil {
		applog.L().Error("session.login.latency", zap.Error(err))
		return LoginResult{Error: MsgLoginFailed}
	}
	u, err := s.dir.FindByCredentials(ctx, email, password)
	if err != nil {
		applog.L().Error("session.login.directory", zap.Error(err))
		return LoginResult{Error: MsgLoginFailed}
	}
	if u == nil {
		return LoginResult{Error: MsgInvalidCredentials}
	}

	user := *u
	user.Token = Token(user.Email, s.now())
	if err := s.persist(ctx, &user); err != nil {
		// the mirror is a cache; the in-memory session still stands
		applog.L().Error("session.mirror.write", zap.Error(err), zap.String("email", user.Email))
	}
	return LoginResult{Success: true, User: &user}
}

func (s *Store) persist(ctx context.Context, u *domain.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, mirror.KeyUser, string(b)); err != nil {
		return err
	}
	return s.kv.Set(ctx, mirror.KeyToken, u.Token)
}

// RejectLogin records a login refused before reaching the directory. Like
// a directory miss it leaves the client logged out; the mirror is untouched.
func (s *Store) RejectLogin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setUserLocked(nil)
	s.state.Loading = false
}

// Logout clears the session and its mirror. It always succeeds.
func (s *Store) Logout(ctx context.Context) {
	if err := s.kv.Delete(ctx, mirror.KeyUser); err != nil {
		applog.L().Error("session.mirror.delete", zap.Error(err))
	}
	if err := s.kv.Delete(ctx, mirror.KeyToken); err != nil {
		applog.L().Error("session.mirror.delete", zap.Error(err))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setUserLocked(nil)
	s.state.Loading = false
}

// ToggleTheme flips light/dark and mirrors the new value.
func (s *Store) ToggleTheme(ctx context.Context) domain.Theme {
	s.mu.Lock()
	s.state.Theme = s.state.Theme.Toggle()
	theme := s.state.Theme
	s.mu.Unlock()
	if err := s.kv.Set(ctx, mirror.KeyTheme, string(theme)); err != nil {
		applog.L().Error("session.mirror.theme", zap.Error(err))
	}
	return theme
}

// Token is the demo session token: base64("email:unixMillis"). It is an
// opaque marker, not a credential.
func Token(email string, at time.Time) string {
	return base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%d", email, at.UnixMilli())))
}
