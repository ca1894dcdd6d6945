// Package store is the raw key-value persistence layer. Values are kept as
// JSON text under namespaced keys, the way a browser's local storage would
// hold them.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Application keys.
const (
	KeyUsers         = "users"
	KeyProjects      = "projects"
	KeyTasks         = "tasks"
	KeyNotifications = "notifications"
	KeyCurrentUser   = "current_user"
)

// Keys lists every key the application owns. Clear removes exactly these.
var Keys = []string{KeyUsers, KeyProjects, KeyTasks, KeyNotifications, KeyCurrentUser}

// DefaultNamespace prefixes every key written by a Store.
const DefaultNamespace = "synergysphere_"

// ErrQuotaExceeded is returned by a backend that has no room left for a write.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// ErrWrite wraps every failed Set, Remove or Clear.
var ErrWrite = errors.New("storage write failed")

// Backend is a flat string-keyed text store.
type Backend interface {
	// Read returns the stored text and whether the key was present.
	Read(key string) (string, bool, error)
	Write(key, value string) error
	// Delete removes a key. Deleting a missing key is not an error.
	Delete(key string) error
}

// Store serializes structured values to JSON text on a Backend.
type Store struct {
	backend   Backend
	namespace string
	log       *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithNamespace overrides DefaultNamespace.
func WithNamespace(ns string) Option {
	return func(s *Store) { s.namespace = ns }
}

// WithLogger sets the logger used to report swallowed read failures and
// write failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New wraps a backend.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		namespace: DefaultNamespace,
		log:       zap.L(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(k string) string {
	return s.namespace + k
}

// Get decodes the value stored under key into dst and reports whether it did.
// A missing key, a backend error and malformed text all read as absent; the
// last two are logged.
func (s *Store) Get(key string, dst any) bool {
	raw, ok, err := s.backend.Read(s.key(key))
	if err != nil {
		s.log.Error("error reading from storage", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok || raw == "" || raw == "null" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.Warn("discarding malformed stored value", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Has reports whether key holds a readable value.
func (s *Store) Has(key string) bool {
	var v json.RawMessage
	return s.Get(key, &v)
}

// Set serializes value and writes it under key. Failures are logged and
// returned.
func (s *Store) Set(key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		s.log.Error("error encoding value for storage", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: encode %s: %w", ErrWrite, key, err)
	}
	if err := s.backend.Write(s.key(key), string(b)); err != nil {
		s.log.Error("error writing to storage", zap.String("key", key), zap.Int("bytes", len(b)), zap.Error(err))
		return fmt.Errorf("%w: %s: %w", ErrWrite, key, err)
	}
	return nil
}

// Remove deletes key.
func (s *Store) Remove(key string) error {
	if err := s.backend.Delete(s.key(key)); err != nil {
		s.log.Error("error removing from storage", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: remove %s: %w", ErrWrite, key, err)
	}
	return nil
}

// Clear removes all application keys. Keys outside Keys are left alone.
func (s *Store) Clear() error {
	var errs []error
	for _, k := range Keys {
		if err := s.Remove(k); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
