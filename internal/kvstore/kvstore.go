// Package kvstore is the typed, JSON-encoded key-value facade every
// component persists through. It never fails loudly: when the backend is
// unavailable, writes report false and reads report absence so callers fall
// back to their defaults.
package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/abhisek/learnflow/internal/logging"
)

// Well-known keys.
const (
	KeyUserProfile      = "user-profile"
	KeyLearningProgress = "learning-progress"
	KeyQuizHistory      = "quiz-history"
	KeySelectedTheme    = "selected-theme"
	KeyCurrentSession   = "current-session"
)

// SchemaVersion is stamped on every stored value. Values written under a
// different version read as absent.
const SchemaVersion = 1

const probeKey = "__storage_test__"

// Backend is the raw byte storage underneath the facade.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context) error
	Keys(ctx context.Context) ([]string, error)
	Size(ctx context.Context) (int64, error)
}

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Store is the key-value facade.
type Store struct {
	backend   Backend
	available bool
	log       *logging.Logger
}

// New wraps backend and probes it once with a write/delete round trip.
// A nil backend yields a permanently unavailable store.
func New(ctx context.Context, backend Backend, log *logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	s := &Store{backend: backend, log: log.Named("kvstore")}
	s.available = s.probe(ctx)
	if !s.available {
		s.log.Warn("storage unavailable, running without persistence")
	}
	return s
}

func (s *Store) probe(ctx context.Context) bool {
	if s.backend == nil {
		return false
	}
	if err := s.backend.Put(ctx, probeKey, []byte(probeKey)); err != nil {
		return false
	}
	return s.backend.Delete(ctx, probeKey) == nil
}

// IsAvailable reports whether the backend passed its probe.
func (s *Store) IsAvailable() bool {
	return s.available
}

// Set stores value under key. It reports false when the value could not be
// encoded or the backend rejected the write.
func (s *Store) Set(ctx context.Context, key string, value any) bool {
	if !s.available {
		return false
	}
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("encode value failed", "key", key, "error", err)
		return false
	}
	raw, err := json.Marshal(envelope{Version: SchemaVersion, Data: data})
	if err != nil {
		s.log.Warn("encode envelope failed", "key", key, "error", err)
		return false
	}
	if err := s.backend.Put(ctx, key, raw); err != nil {
		s.log.Warn("write failed", "key", key, "error", err)
		return false
	}
	return true
}

// Get decodes the value stored under key into dst. It reports false, and
// leaves dst untouched, when the key is absent, unreadable, undecodable or
// written under another schema version.
func (s *Store) Get(ctx context.Context, key string, dst any) bool {
	if !s.available {
		return false
	}
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.log.Warn("read failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.log.Warn("stored value is not an envelope", "key", key, "error", err)
		return false
	}
	if env.Version != SchemaVersion {
		s.log.Warn("stored value has unknown schema version", "key", key, "version", env.Version)
		return false
	}
	if err := decodeInto(env.Data, dst); err != nil {
		s.log.Warn("decode value failed", "key", key, "error", err)
		return false
	}
	return true
}

// decodeInto unmarshals into a fresh value first so a failed decode never
// leaves dst half-written.
func decodeInto(data json.RawMessage, dst any) error {
	if len(data) == 0 || string(data) == "null" {
		return fmt.Errorf("empty value")
	}
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("destination must be a non-nil pointer, got %T", dst)
	}
	scratch := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal(data, scratch.Interface()); err != nil {
		return err
	}
	rv.Elem().Set(scratch.Elem())
	return nil
}

// Remove deletes key.
func (s *Store) Remove(ctx context.Context, key string) bool {
	if !s.available {
		return false
	}
	if err := s.backend.Delete(ctx, key); err != nil {
		s.log.Warn("remove failed", "key", key, "error", err)
		return false
	}
	return true
}

// Clear deletes every key.
func (s *Store) Clear(ctx context.Context) bool {
	if !s.available {
		return false
	}
	if err := s.backend.DeleteAll(ctx); err != nil {
		s.log.Warn("clear failed", "error", err)
		return false
	}
	return true
}

// Keys lists stored keys; nil when unavailable.
func (s *Store) Keys(ctx context.Context) []string {
	if !s.available {
		return nil
	}
	keys, err := s.backend.Keys(ctx)
	if err != nil {
		s.log.Warn("list keys failed", "error", err)
		return nil
	}
	return keys
}

// Size returns the approximate number of stored bytes; 0 when unavailable.
func (s *Store) Size(ctx context.Context) int64 {
	if !s.available {
		return 0
	}
	n, err := s.backend.Size(ctx)
	if err != nil {
		s.log.Warn("size failed", "error", err)
		return 0
	}
	return n
}
