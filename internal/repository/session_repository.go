package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Session struct {
	UserID    uuid.UUID `json:"user_id"`
	UserAgent string    `json:"user_agent,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionRepository interface {
	Create(ctx context.Context, tokenHash string, session *Session) error
	Get(ctx context.Context, tokenHash string) (*Session, error)
	Delete(ctx context.Context, tokenHash string) error
	DeleteAllForUser(ctx context.Context, userID uuid.UUID) error
}

type sessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionRepository(rdb *redis.Client, ttl time.Duration) SessionRepository {
	return &sessionRepository{rdb: rdb, ttl: ttl}
}

func sessionKey(tokenHash string) string {
	return "session:" + tokenHash
}

func userSessionsKey(userID uuid.UUID) string {
	return "sessions:user:" + userID.String()
}

func (r *sessionRepository) Create(ctx context.Context, tokenHash string, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}

	pipe := r.rdb.TxPipeline()
	pipe.Set(ctx, sessionKey(tokenHash), payload, r.ttl)
	pipe.SAdd(ctx, userSessionsKey(session.UserID), tokenHash)
	// The per-user index outlives its members by one TTL at most.
	pipe.Expire(ctx, userSessionsKey(session.UserID), r.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *sessionRepository) Get(ctx context.Context, tokenHash string) (*Session, error) {
	payload, err := r.rdb.Get(ctx, sessionKey(tokenHash)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, tokenHash string) error {
	session, err := r.Get(ctx, tokenHash)
	if err != nil {
		return err
	}

	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, sessionKey(tokenHash))
	if session != nil {
		pipe.SRem(ctx, userSessionsKey(session.UserID), tokenHash)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (r *sessionRepository) DeleteAllForUser(ctx context.Context, userID uuid.UUID) error {
	hashes, err := r.rdb.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil {
		return err
	}

	pipe := r.rdb.TxPipeline()
	for _, hash := range hashes {
		pipe.Del(ctx, sessionKey(hash))
	}
	pipe.Del(ctx, userSessionsKey(userID))
	_, err = pipe.Exec(ctx)
	return err
}
