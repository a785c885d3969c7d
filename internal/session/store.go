package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/milkroute/storefront_api/internal/cache"
	"github.com/milkroute/storefront_api/internal/models"
	"github.com/milkroute/storefront_api/internal/utils"
)

// Record is one server-side session: the identity payload plus the upstream
// session cookie carried on every backend call.
type Record struct {
	SID            string             `json:"sid"`
	User           models.SessionUser `json:"user"`
	BackendSession string             `json:"backend_session"`
	CreatedAt      time.Time          `json:"created_at"`
}

// Store is the redis-backed session store. Sessions have an explicit
// create/teardown lifecycle; nothing identity-related lives in process state.
type Store struct {
	redis *cache.RedisClient
	ttl   time.Duration
}

// NewStore creates a session store with the configured TTL.
func NewStore(redis *cache.RedisClient, ttl time.Duration) *Store {
	return &Store{redis: redis, ttl: ttl}
}

func sessionKey(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}

func confirmKey(sid string) string {
	return fmt.Sprintf("session:confirm:%s", sid)
}

func backendKey(cookie string) string {
	return fmt.Sprintf("session:backend:%s", cookie)
}

// Create mints a new session record and returns its id.
func (s *Store) Create(ctx context.Context, user models.SessionUser, backendSession string) (string, error) {
	rec := Record{
		SID:            uuid.New().String(),
		User:           user,
		BackendSession: backendSession,
		CreatedAt:      time.Now(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(rec.SID), string(data), s.ttl); err != nil {
		return "", err
	}
	if backendSession != "" {
		if err := s.redis.Set(ctx, backendKey(backendSession), rec.SID, s.ttl); err != nil {
			return "", err
		}
	}
	return rec.SID, nil
}

// Get loads a session record by id.
func (s *Store) Get(ctx context.Context, sid string) (*Record, error) {
	raw, err := s.redis.Get(ctx, sessionKey(sid))
	if err != nil {
		if cache.IsNil(err) {
			return nil, utils.ErrSessionNotFound
		}
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &rec, nil
}

// UpdateBackendSession rewrites the stored upstream cookie when the backend
// rotates it.
func (s *Store) UpdateBackendSession(ctx context.Context, sid, backendSession string) error {
	rec, err := s.Get(ctx, sid)
	if err != nil {
		return err
	}
	rec.BackendSession = backendSession
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(sid), string(data), s.ttl); err != nil {
		return err
	}
	if backendSession != "" {
		return s.redis.Set(ctx, backendKey(backendSession), sid, s.ttl)
	}
	return nil
}

// RotateBackendSession re-points whichever session carried oldCookie at
// newCookie. Cookies no session carries are a no-op.
func (s *Store) RotateBackendSession(ctx context.Context, oldCookie, newCookie string) error {
	sid, err := s.redis.Get(ctx, backendKey(oldCookie))
	if err != nil {
		if cache.IsNil(err) {
			return nil
		}
		return err
	}
	if err := s.UpdateBackendSession(ctx, sid, newCookie); err != nil {
		return err
	}
	return s.redis.Delete(ctx, backendKey(oldCookie))
}

// Delete tears the session down, reverse cookie index included.
func (s *Store) Delete(ctx context.Context, sid string) error {
	if rec, err := s.Get(ctx, sid); err == nil && rec.BackendSession != "" {
		if err := s.redis.Delete(ctx, backendKey(rec.BackendSession)); err != nil {
			return err
		}
	}
	return s.redis.Delete(ctx, sessionKey(sid), confirmKey(sid))
}

// IssueConfirmToken mints a short-lived token gating a destructive action.
// One token per session; issuing replaces any outstanding one.
func (s *Store) IssueConfirmToken(ctx context.Context, sid string) (string, error) {
	token := uuid.New().String()
	if err := s.redis.Set(ctx, confirmKey(sid), token, 5*time.Minute); err != nil {
		return "", err
	}
	return token, nil
}

// ConsumeConfirmToken validates and burns the outstanding confirm token.
func (s *Store) ConsumeConfirmToken(ctx context.Context, sid, token string) error {
	stored, err := s.redis.Get(ctx, confirmKey(sid))
	if err != nil {
		if cache.IsNil(err) {
			return utils.ErrInvalidConfirmToken
		}
		return err
	}
	if stored != token || token == "" {
		return utils.ErrInvalidConfirmToken
	}
	return s.redis.Delete(ctx, confirmKey(sid))
}
