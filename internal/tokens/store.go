package tokens

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "token:"

// ErrNotFound is returned when a token is unknown or has expired.
var ErrNotFound = errors.New("token not found")

// Session is the identity stored against a bearer token.
type Session struct {
	AdminID string `json:"admin_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// Store keeps opaque bearer tokens in Redis under "token:<id>" with a TTL.
// Tokens are never refreshed; an expired key surfaces as ErrNotFound and
// the client's startup profile fetch turns that into a clean logout.
type Store struct {
	Rdb *redis.Client
	TTL time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{Rdb: rdb, TTL: ttl}
}

// Issue creates a fresh token for the given session.
func (s *Store) Issue(ctx context.Context, sess Session) (string, error) {
	token := uuid.New().String()
	b, err := json.Marshal(sess)
	if err != nil {
		return "", err
	}
	if err := s.Rdb.Set(ctx, keyPrefix+token, b, s.TTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Lookup resolves a token to its session.
func (s *Store) Lookup(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	b, err := s.Rdb.Get(ctx, keyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}
