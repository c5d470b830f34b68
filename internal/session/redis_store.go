// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"

	"github.com/canonical/oauth2-login/internal/logging"
	"github.com/canonical/oauth2-login/internal/tracing"
)

const keyPrefix = "session:"

var _ sessions.Store = (*RedisStore)(nil)

type RedisClientInterface interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps session values server side, the cookie only carries
// the signed session ID
type RedisStore struct {
	Codecs  []securecookie.Codec
	Options *sessions.Options

	client RedisClientInterface

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

func (s *RedisStore) key(id string) string {
	return keyPrefix + id
}

func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	ctx, span := s.tracer.Start(r.Context(), "session.RedisStore.New")
	defer span.End()

	session := sessions.NewSession(s, name)
	opts := *s.Options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	if err := securecookie.DecodeMulti(name, c.Value, &session.ID, s.Codecs...); err != nil {
		return session, err
	}

	found, err := s.load(ctx, session)
	if err != nil {
		return session, err
	}

	session.IsNew = !found

	return session, nil
}

func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	ctx, span := s.tracer.Start(r.Context(), "session.RedisStore.Save")
	defer span.End()

	if session.Options.MaxAge <= 0 {
		if session.ID != "" {
			if err := s.client.Del(ctx, s.key(session.ID)).Err(); err != nil {
				return fmt.Errorf("failed to delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		id, err := GenerateID()
		if err != nil {
			return err
		}
		session.ID = id
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.Values, s.Codecs...)
	if err != nil {
		return fmt.Errorf("failed to encode session values: %w", err)
	}

	ttl := time.Duration(session.Options.MaxAge) * time.Second
	if err := s.client.Set(ctx, s.key(session.ID), encoded, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	cookie, err := securecookie.EncodeMulti(session.Name(), session.ID, s.Codecs...)
	if err != nil {
		return fmt.Errorf("failed to encode session id: %w", err)
	}

	http.SetCookie(w, sessions.NewCookie(session.Name(), cookie, session.Options))

	return nil
}

func (s *RedisStore) load(ctx context.Context, session *sessions.Session) (bool, error) {
	val, err := s.client.Get(ctx, s.key(session.ID)).Result()
	if errors.Is(err, redis.Nil) {
		// expired or unknown, start over with a fresh ID
		session.ID = ""
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to load session: %w", err)
	}

	if err := securecookie.DecodeMulti(session.Name(), val, &session.Values, s.Codecs...); err != nil {
		return false, err
	}

	return true, nil
}

// NewRedisStore creates a Redis backed gorilla session store
func NewRedisStore(client RedisClientInterface, secret string, opts *sessions.Options, tracer tracing.TracingInterface, logger logging.LoggerInterface) *RedisStore {
	codecs := securecookie.CodecsFromPairs(Keys(secret))
	for _, c := range codecs {
		if sc, ok := c.(*securecookie.SecureCookie); ok {
			sc.MaxAge(opts.MaxAge)
			// values live in redis, the cookie size limit does not apply
			sc.MaxLength(0)
		}
	}

	return &RedisStore{
		Codecs:  codecs,
		Options: opts,
		client:  client,
		tracer:  tracer,
		logger:  logger,
	}
}

// NewRedisClient returns a go-redis client for the session store
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
