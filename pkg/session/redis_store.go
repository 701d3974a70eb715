package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/dmitrymomot/inkhive/pkg/cookie"
	"github.com/dmitrymomot/inkhive/pkg/redis"
)

const redisKeyPrefix = "session:"

// Backend stores sessions by ID on the server.
type Backend interface {
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, id string) error
}

// RedisStore is a Backend in Redis. Keys expire with the session lifetime.
type RedisStore struct {
	storage *redis.Storage
}

func NewRedisStore(storage *redis.Storage) *RedisStore {
	return &RedisStore{storage: storage}
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := s.storage.Get(ctx, redisKeyPrefix+id)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrSessionNotFound
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrSessionNotFound, ErrInvalidSession, err)
	}
	return &sess, nil
}

func (s *RedisStore) Put(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, redisKeyPrefix+sess.ID, data, sess.Lifetime())
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.storage.Delete(ctx, redisKeyPrefix+id)
}

// ServerSideStore keeps the session in a Backend and only its ID in a signed
// cookie. Like CookieStore it is bound to one request.
type ServerSideStore struct {
	backend Backend
	cookies *cookie.Manager
	name    string
	w       http.ResponseWriter
	r       *http.Request

	mu      sync.Mutex
	written bool
	id      string
}

func NewServerSideStore(w http.ResponseWriter, r *http.Request, cookies *cookie.Manager, backend Backend) *ServerSideStore {
	return &ServerSideStore{
		backend: backend,
		cookies: cookies,
		name:    cookies.Name(CookieName),
		w:       w,
		r:       r,
	}
}

// sessionID returns the ID from this request's writes or its cookie.
func (s *ServerSideStore) sessionID() (string, error) {
	if s.written {
		if s.id == "" {
			return "", ErrSessionNotFound
		}
		return s.id, nil
	}

	id, err := s.cookies.GetSigned(s.r, s.name)
	if err != nil {
		if errors.Is(err, cookie.ErrCookieNotFound) {
			return "", ErrSessionNotFound
		}
		return "", fmt.Errorf("%w: %w: %w", ErrSessionNotFound, ErrInvalidSession, err)
	}
	return id, nil
}

func (s *ServerSideStore) Load(ctx context.Context) (*Session, error) {
	s.mu.Lock()
	id, err := s.sessionID()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.backend.Get(ctx, id)
}

func (s *ServerSideStore) Save(ctx context.Context, sess *Session) error {
	if sess == nil || sess.ID == "" {
		return ErrInvalidSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, _ := s.sessionID()

	if err := s.backend.Put(ctx, sess); err != nil {
		return err
	}
	if err := s.cookies.SetSigned(s.w, s.name, sess.ID, cookie.WithMaxAge(maxAge(sess))); err != nil {
		return err
	}
	s.written, s.id = true, sess.ID

	if previous != "" && previous != sess.ID {
		_ = s.backend.Delete(ctx, previous)
	}
	return nil
}

func (s *ServerSideStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, _ := s.sessionID()
	if id != "" {
		if err := s.backend.Delete(ctx, id); err != nil {
			return err
		}
	}

	s.cookies.Delete(s.w, s.name)
	s.written, s.id = true, ""
	return nil
}
