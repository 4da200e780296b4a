package codestore

import (
	"context"
	"encoding/json"
	"time"

	"rental-booking/internal/domain/verification"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const maxTxRetries = 5

var errTxContention = errs.New("verification entry kept changing under watch")

type envelope struct {
	Code     string          `json:"code"`
	Payload  json.RawMessage `json:"payload"`
	IssuedAt time.Time       `json:"issued_at"`
}

// RedisStore shares pending verifications between instances. Read-modify-write
// operations run under WATCH so a code is consumed at most once cluster-wide.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	clock  clock.Clock
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

func NewRedisStore(client *redis.Client, prefix string, ttl time.Duration, clk clock.Clock) *RedisStore {
	if prefix == "" {
		prefix = "otp"
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		clock:  clk,
	}
}

func (s *RedisStore) redisKey(key verification.Key) string {
	return s.prefix + ":" + key.String()
}

// expiration of 0 keeps the key until it is consumed or discarded
func (s *RedisStore) expiration() time.Duration {
	if s.ttl > 0 {
		return s.ttl
	}
	return 0
}

func (s *RedisStore) load(ctx context.Context, r redis.Cmdable, key verification.Key) (*envelope, error) {
	data, err := r.Get(ctx, s.redisKey(key)).Bytes()
	if err != nil {
		if errs.Is(err, redis.Nil) {
			return nil, errs.Wrapf(verification.ErrPendingNotFound, "key %s", key)
		}
		return nil, errs.Wrapf(err, "redis get %s", key)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, errs.Wrapf(err, "decode entry %s", key)
	}

	pending := verification.Pending{Key: key, Code: env.Code, IssuedAt: env.IssuedAt}
	if pending.Expired(s.clock.Now(), s.ttl) {
		return nil, errs.Wrapf(verification.ErrPendingNotFound, "key %s expired", key)
	}
	return &env, nil
}

func (s *RedisStore) write(ctx context.Context, pipe redis.Pipeliner, key verification.Key, env envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return errs.Wrapf(err, "encode entry %s", key)
	}
	pipe.Set(ctx, s.redisKey(key), data, s.expiration())
	return nil
}

// watch retries fn while another client modifies the key between WATCH and EXEC.
func (s *RedisStore) watch(ctx context.Context, key verification.Key, fn func(tx *redis.Tx) error) error {
	for range maxTxRetries {
		err := s.client.Watch(ctx, fn, s.redisKey(key))
		if errs.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return errs.Wrapf(errTxContention, "key %s", key)
}

func (s *RedisStore) Issue(ctx context.Context, key verification.Key, payload json.RawMessage) (string, error) {
	code, err := verification.NewCode()
	if err != nil {
		return "", err
	}

	env := envelope{Code: code, Payload: payload, IssuedAt: s.clock.Now()}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		return s.write(ctx, pipe, key, env)
	})
	if err != nil {
		return "", errs.Wrapf(err, "redis issue %s", key)
	}
	return code, nil
}

func (s *RedisStore) Reissue(ctx context.Context, key verification.Key) (string, error) {
	code, err := verification.NewCode()
	if err != nil {
		return "", err
	}

	err = s.watch(ctx, key, func(tx *redis.Tx) error {
		env, err := s.load(ctx, tx, key)
		if err != nil {
			return err
		}
		env.Code = code
		env.IssuedAt = s.clock.Now()
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			return s.write(ctx, pipe, key, *env)
		})
		return err
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

func (s *RedisStore) Peek(ctx context.Context, key verification.Key) (*verification.Pending, error) {
	env, err := s.load(ctx, s.client, key)
	if err != nil {
		return nil, err
	}
	return &verification.Pending{Key: key, Code: env.Code, Payload: env.Payload, IssuedAt: env.IssuedAt}, nil
}

func (s *RedisStore) Check(ctx context.Context, key verification.Key, code string) (json.RawMessage, error) {
	env, err := s.load(ctx, s.client, key)
	if err != nil {
		return nil, err
	}
	if env.Code != code {
		return nil, errs.Wrapf(verification.ErrCodeMismatch, "key %s", key)
	}
	return env.Payload, nil
}

func (s *RedisStore) Consume(ctx context.Context, key verification.Key, code string) (*verification.Pending, error) {
	var taken *verification.Pending
	err := s.watch(ctx, key, func(tx *redis.Tx) error {
		env, err := s.load(ctx, tx, key)
		if err != nil {
			return err
		}
		if env.Code != code {
			return errs.Wrapf(verification.ErrCodeMismatch, "key %s", key)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, s.redisKey(key))
			return nil
		})
		if err != nil {
			return err
		}
		taken = &verification.Pending{Key: key, Code: env.Code, Payload: env.Payload, IssuedAt: env.IssuedAt}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return taken, nil
}

// Restore writes with SETNX so a code issued after the Consume is never
// overwritten. The key expires when the original entry would have.
func (s *RedisStore) Restore(ctx context.Context, p verification.Pending) error {
	var expiration time.Duration
	if s.ttl > 0 {
		expiration = s.ttl - s.clock.Now().Sub(p.IssuedAt)
		if expiration <= 0 {
			return nil
		}
	}

	data, err := json.Marshal(envelope{Code: p.Code, Payload: p.Payload, IssuedAt: p.IssuedAt})
	if err != nil {
		return errs.Wrapf(err, "encode entry %s", p.Key)
	}
	if err := s.client.SetNX(ctx, s.redisKey(p.Key), data, expiration).Err(); err != nil {
		return errs.Wrapf(err, "redis restore %s", p.Key)
	}
	return nil
}

func (s *RedisStore) Discard(ctx context.Context, key verification.Key) error {
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return errs.Wrapf(err, "redis del %s", key)
	}
	return nil
}
