// Package cache provides TTL memoization for computed payloads.
package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/jaekimandy/devops-demo/domain"
)

// memoKey is the only key a Memo ever stores: it is a single-entry
// cache.
const memoKey = "payload"

// Memo caches the result of a compute function for a bounded TTL.
// While an entry is fresh every Get returns the stored bytes; once it
// expires the next Get recomputes and stores a fresh payload. Two
// callers racing an expired entry may both recompute: the payload is
// pure, so the duplicate work is harmless and no single-flight
// coordination is attempted.
// It implements the domain.PayloadCache interface.
var _ domain.PayloadCache = (*Memo)(nil)

type Memo struct {
	entries *expirable.LRU[string, []byte]
	compute func() []byte
}

// NewMemo wraps compute in a TTL cache. A ttl <= 0 disables expiry and
// the first computed payload is served for the process lifetime.
func NewMemo(ttl time.Duration, compute func() []byte) *Memo {
	return &Memo{
		entries: expirable.NewLRU[string, []byte](1, nil, ttl),
		compute: compute,
	}
}

// Get returns the cached payload while it is fresh, recomputing and
// storing it otherwise.
func (m *Memo) Get() []byte {
	if payload, ok := m.entries.Get(memoKey); ok {
		return payload
	}

	payload := m.compute()
	m.entries.Add(memoKey, payload)
	return payload
}

// Invalidate drops the cached entry so the next Get recomputes.
func (m *Memo) Invalidate() {
	m.entries.Remove(memoKey)
}
