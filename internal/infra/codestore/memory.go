// Package codestore holds pending verification codes.
package codestore

import (
	"context"
	"encoding/json"
	"hash/fnv"
	"sync"
	"time"

	"rental-booking/internal/domain/verification"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/errs"
)

const defaultShards = 32

type shard struct {
	mu      sync.Mutex
	entries map[verification.Key]verification.Pending
}

// MemoryStore keeps entries in process memory, split across shards so that
// unrelated keys do not contend on one mutex. Every operation on a key runs
// under that key's shard lock, which makes check-and-remove atomic.
type MemoryStore struct {
	shards []*shard
	clock  clock.Clock
	ttl    time.Duration
}

func NewMemoryStore(clk clock.Clock, ttl time.Duration, shards int) *MemoryStore {
	if shards <= 0 {
		shards = defaultShards
	}
	s := &MemoryStore{
		shards: make([]*shard, shards),
		clock:  clk,
		ttl:    ttl,
	}
	for i := range s.shards {
		s.shards[i] = &shard{entries: make(map[verification.Key]verification.Pending)}
	}
	return s
}

func (s *MemoryStore) shardFor(key verification.Key) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key.String()))
	return s.shards[h.Sum32()%uint32(len(s.shards))]
}

// lookup must be called with sh.mu held. Expired entries are dropped on sight.
func (s *MemoryStore) lookup(sh *shard, key verification.Key) (verification.Pending, error) {
	p, ok := sh.entries[key]
	if !ok {
		return verification.Pending{}, errs.Wrapf(verification.ErrPendingNotFound, "key %s", key)
	}
	if p.Expired(s.clock.Now(), s.ttl) {
		delete(sh.entries, key)
		return verification.Pending{}, errs.Wrapf(verification.ErrPendingNotFound, "key %s expired", key)
	}
	return p, nil
}

func (s *MemoryStore) Issue(_ context.Context, key verification.Key, payload json.RawMessage) (string, error) {
	code, err := verification.NewCode()
	if err != nil {
		return "", err
	}

	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	sh.entries[key] = verification.Pending{
		Key:      key,
		Code:     code,
		Payload:  append(json.RawMessage(nil), payload...),
		IssuedAt: s.clock.Now(),
	}
	return code, nil
}

func (s *MemoryStore) Reissue(_ context.Context, key verification.Key) (string, error) {
	code, err := verification.NewCode()
	if err != nil {
		return "", err
	}

	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	p, err := s.lookup(sh, key)
	if err != nil {
		return "", err
	}
	p.Code = code
	p.IssuedAt = s.clock.Now()
	sh.entries[key] = p
	return code, nil
}

func (s *MemoryStore) Peek(_ context.Context, key verification.Key) (*verification.Pending, error) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	p, err := s.lookup(sh, key)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MemoryStore) Check(_ context.Context, key verification.Key, code string) (json.RawMessage, error) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	p, err := s.lookup(sh, key)
	if err != nil {
		return nil, err
	}
	if !p.Matches(code) {
		return nil, errs.Wrapf(verification.ErrCodeMismatch, "key %s", key)
	}
	return p.Payload, nil
}

func (s *MemoryStore) Consume(_ context.Context, key verification.Key, code string) (*verification.Pending, error) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	p, err := s.lookup(sh, key)
	if err != nil {
		return nil, err
	}
	if !p.Matches(code) {
		return nil, errs.Wrapf(verification.ErrCodeMismatch, "key %s", key)
	}
	delete(sh.entries, key)
	return &p, nil
}

func (s *MemoryStore) Restore(_ context.Context, p verification.Pending) error {
	sh := s.shardFor(p.Key)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, err := s.lookup(sh, p.Key); err == nil {
		return nil
	}
	if p.Expired(s.clock.Now(), s.ttl) {
		return nil
	}
	sh.entries[p.Key] = p
	return nil
}

func (s *MemoryStore) Discard(_ context.Context, key verification.Key) error {
	sh := s.shardFor(key)
	sh.mu.Lock()
	delete(sh.entries, key)
	sh.mu.Unlock()
	return nil
}

func (s *MemoryStore) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		n += len(sh.entries)
		sh.mu.Unlock()
	}
	return n
}

// Clear drops every entry. Called on shutdown.
func (s *MemoryStore) Clear() {
	for _, sh := range s.shards {
		sh.mu.Lock()
		clear(sh.entries)
		sh.mu.Unlock()
	}
}
