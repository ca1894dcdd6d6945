// Package session tracks who is logged in. Authentication is a stub: any
// non-empty credentials succeed after a simulated round trip.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"synergysphere/internal/models"
	"synergysphere/internal/repository"
	"synergysphere/internal/seed"
)

// DefaultDelay simulates the latency of a real authentication call.
const DefaultDelay = time.Second

// DefaultUserID is the id given to a login whose email matches no known user.
const DefaultUserID = "1"

var (
	ErrMissingCredentials = errors.New("missing credentials")
	ErrClosed             = errors.New("session closed")
)

// Session is the explicitly constructed login state container. It is safe
// for concurrent use.
type Session struct {
	repo  *repository.Repository
	log   *zap.Logger
	delay time.Duration

	mu     sync.Mutex
	state  Snapshot
	closed bool
}

// Option configures a Session.
type Option func(*Session)

// WithDelay overrides DefaultDelay. Zero disables the wait.
func WithDelay(d time.Duration) Option {
	return func(s *Session) { s.delay = d }
}

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a session in the loading state. Call Init before use.
func New(repo *repository.Repository, opts ...Option) *Session {
	s := &Session{
		repo:  repo,
		log:   zap.L(),
		delay: DefaultDelay,
		state: Snapshot{State: StateAuthenticating},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) dispatch(ev event) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = reduce(s.state, ev)
	return s.state
}

// Init seeds any missing collections and restores a persisted login. A seed
// failure is logged and returned, but the persisted login is still restored.
func (s *Session) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.closed = false
	s.mu.Unlock()

	res, seedErr := seed.Initialize(s.repo)
	if seedErr != nil {
		s.log.Error("failed to initialize default data", zap.Error(seedErr))
	} else if res.Any() {
		s.log.Info("initialized default data",
			zap.Bool("users", res.Users),
			zap.Bool("projects", res.Projects),
			zap.Bool("tasks", res.Tasks),
			zap.Bool("notifications", res.Notifications),
		)
	}

	if u := s.repo.CurrentUser(); u != nil {
		s.dispatch(event{kind: evLoginSuccess, user: u})
		s.log.Info("restored session", zap.String("user_id", u.ID))
	} else {
		s.dispatch(event{kind: evSetLoading, loading: false})
	}
	return seedErr
}

// Close drops the in-memory login. The persisted pointer is kept so the
// next Init restores it.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.state = Snapshot{State: StateUnauthenticated}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.state
	if snap.User != nil {
		u := *snap.User
		snap.User = &u
	}
	return snap
}

// CurrentUser returns the logged-in user, if any.
func (s *Session) CurrentUser() (models.User, bool) {
	snap := s.Snapshot()
	if !snap.Authenticated() {
		return models.User{}, false
	}
	return *snap.User, true
}

func (s *Session) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Session) begin(ctx context.Context) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrClosed
	}
	s.dispatch(event{kind: evLoginStart})
	if err := s.wait(ctx); err != nil {
		s.dispatch(event{kind: evLoginFailure})
		return err
	}
	return nil
}

func (s *Session) succeed(u models.User) (models.User, error) {
	if err := s.repo.SaveCurrentUser(&u); err != nil {
		s.dispatch(event{kind: evLoginFailure})
		return models.User{}, fmt.Errorf("persist session: %w", err)
	}
	s.dispatch(event{kind: evLoginSuccess, user: &u})
	return u, nil
}

// Login accepts any non-empty email and password. The user's name is the
// local part of the email; the id is that of a known user with the same
// email, or DefaultUserID. The user list is not changed.
func (s *Session) Login(ctx context.Context, email, password string) (models.User, error) {
	if err := s.begin(ctx); err != nil {
		return models.User{}, err
	}

	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		s.dispatch(event{kind: evLoginFailure})
		return models.User{}, ErrMissingCredentials
	}

	id := DefaultUserID
	if known, err := s.repo.UserByEmail(email); err == nil {
		id = known.ID
	}
	name, _, _ := strings.Cut(email, "@")

	u, err := s.succeed(models.User{
		ID:        id,
		Name:      name,
		Email:     email,
		CreatedAt: s.repo.Now(),
	})
	if err != nil {
		s.log.Error("login failed", zap.String("email", email), zap.Error(err))
		return models.User{}, err
	}
	s.log.Info("user logged in", zap.String("user_id", u.ID))
	return u, nil
}

// Register creates a new user with a fresh id, appends it to the user list
// and logs it in. All three fields must be non-empty.
func (s *Session) Register(ctx context.Context, name, email, password string) (models.User, error) {
	if err := s.begin(ctx); err != nil {
		return models.User{}, err
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || strings.TrimSpace(password) == "" {
		s.dispatch(event{kind: evLoginFailure})
		return models.User{}, ErrMissingCredentials
	}

	u, err := s.repo.AddUser(models.User{Name: name, Email: email})
	if err != nil {
		s.dispatch(event{kind: evLoginFailure})
		s.log.Error("register failed", zap.String("email", email), zap.Error(err))
		return models.User{}, err
	}
	if u, err = s.succeed(u); err != nil {
		s.log.Error("register failed", zap.String("email", email), zap.Error(err))
		return models.User{}, err
	}
	s.log.Info("user registered", zap.String("user_id", u.ID))
	return u, nil
}

// Logout clears the login and removes the persisted pointer.
func (s *Session) Logout() error {
	s.dispatch(event{kind: evLogout})
	if err := s.repo.SaveCurrentUser(nil); err != nil {
		s.log.Error("failed to clear session", zap.Error(err))
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
