//go:build e2e

package codestore_test

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"rental-booking/internal/domain/verification"
	"rental-booking/internal/infra/codestore"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/pkg/errs"
	"rental-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, clk clock.Clock, ttl time.Duration) *codestore.RedisStore {
	t.Helper()

	client := codestore.NewRedisClient(config.RedisConfig{Addr: e2e.StartRedis(t)})
	require.NoError(t, client.Ping(t.Context()).Err())
	t.Cleanup(func() { _ = client.Close() })

	// a fresh prefix per test keeps parallel runs apart
	return codestore.NewRedisStore(client, "test-"+uuid.NewString(), ttl, clk)
}

func TestRedisStore_IssueCheckConsume(t *testing.T) {
	ctx := context.Background()
	store := newRedisStore(t, clock.NewRealClock(), 0)
	key := verification.NewKey("ana@example.com", verification.KindRegister)
	payload := json.RawMessage(`{"email":"ana@example.com"}`)

	code, err := store.Issue(ctx, key, payload)
	require.NoError(t, err)

	_, err = store.Consume(ctx, key, "not-it")
	assert.True(t, errs.Is(err, verification.ErrCodeMismatch))

	got, err := store.Check(ctx, key, code)
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(got))

	taken, err := store.Consume(ctx, key, code)
	require.NoError(t, err)
	assert.Equal(t, code, taken.Code)
	assert.JSONEq(t, string(payload), string(taken.Payload))

	_, err = store.Peek(ctx, key)
	assert.True(t, errs.Is(err, verification.ErrPendingNotFound))
}

func TestRedisStore_Restore(t *testing.T) {
	ctx := context.Background()
	store := newRedisStore(t, clock.NewRealClock(), 0)
	key := verification.NewKey("ana@example.com", verification.KindLogin)

	code, err := store.Issue(ctx, key, json.RawMessage(`{"n":1}`))
	require.NoError(t, err)
	taken, err := store.Consume(ctx, key, code)
	require.NoError(t, err)

	require.NoError(t, store.Restore(ctx, *taken))
	got, err := store.Check(ctx, key, code)
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":1}`, string(got))

	// a newer code wins over a late restore
	taken, err = store.Consume(ctx, key, code)
	require.NoError(t, err)
	newer, err := store.Issue(ctx, key, json.RawMessage(`{"n":2}`))
	require.NoError(t, err)
	require.NoError(t, store.Restore(ctx, *taken))

	pending, err := store.Peek(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, newer, pending.Code)
}

func TestRedisStore_ReissueKeepsPayload(t *testing.T) {
	ctx := context.Background()
	store := newRedisStore(t, clock.NewRealClock(), 0)
	key := verification.NewKey("ana@example.com", verification.KindLogin)

	first, err := store.Issue(ctx, key, json.RawMessage(`{"n":1}`))
	require.NoError(t, err)
	second, err := store.Reissue(ctx, key)
	require.NoError(t, err)

	pending, err := store.Peek(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, second, pending.Code)
	assert.JSONEq(t, `{"n":1}`, string(pending.Payload))
	if first != second {
		_, err = store.Check(ctx, key, first)
		assert.True(t, errs.Is(err, verification.ErrCodeMismatch))
	}

	_, err = store.Reissue(ctx, verification.NewKey("nobody@example.com", verification.KindLogin))
	assert.True(t, errs.Is(err, verification.ErrPendingNotFound))
}

func TestRedisStore_Expiry(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(time.Now())
	store := newRedisStore(t, clk, 10*time.Minute)
	key := verification.NewKey("ana@example.com", verification.KindPasswordReset)

	code, err := store.Issue(ctx, key, json.RawMessage(`{}`))
	require.NoError(t, err)

	clk.Add(11 * time.Minute)
	_, err = store.Check(ctx, key, code)
	assert.True(t, errs.Is(err, verification.ErrPendingNotFound))
}

func TestRedisStore_ConsumeOnceUnderContention(t *testing.T) {
	ctx := context.Background()
	store := newRedisStore(t, clock.NewRealClock(), 0)
	key := verification.NewKey("ana@example.com", verification.KindRegister)

	code, err := store.Issue(ctx, key, json.RawMessage(`{}`))
	require.NoError(t, err)

	const workers = 8
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Consume(ctx, key, code); err == nil {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
}
