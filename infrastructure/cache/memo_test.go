package cache_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaekimandy/devops-demo/infrastructure/cache"
)

func TestMemoServesCachedPayload(t *testing.T) {
	var calls atomic.Int64
	memo := cache.NewMemo(time.Minute, func() []byte {
		calls.Add(1)
		return []byte(`{"name":"demo"}`)
	})

	first := memo.Get()
	second := memo.Get()

	assert.Equal(t, first, second, "payloads within TTL must be byte-identical")
	assert.Equal(t, int64(1), calls.Load(), "compute must run once while fresh")
}

func TestMemoRecomputesAfterExpiry(t *testing.T) {
	var calls atomic.Int64
	memo := cache.NewMemo(50*time.Millisecond, func() []byte {
		calls.Add(1)
		return []byte(`{"name":"demo"}`)
	})

	first := memo.Get()
	time.Sleep(80 * time.Millisecond)
	second := memo.Get()

	require.GreaterOrEqual(t, calls.Load(), int64(2), "expired entry must be recomputed")
	assert.Equal(t, first, second, "recomputed payload carries identical content")
}

func TestMemoInvalidate(t *testing.T) {
	var calls atomic.Int64
	memo := cache.NewMemo(time.Minute, func() []byte {
		calls.Add(1)
		return fmt.Appendf(nil, `{"call":%d}`, calls.Load())
	})

	memo.Get()
	memo.Invalidate()
	memo.Get()

	assert.Equal(t, int64(2), calls.Load(), "invalidate must force a recompute")
}

func TestMemoConcurrentGet(t *testing.T) {
	memo := cache.NewMemo(time.Minute, func() []byte {
		return []byte(`{"name":"demo"}`)
	})

	want := memo.Get()

	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		go func() {
			defer wg.Done()
			assert.Equal(t, want, memo.Get())
		}()
	}
	wg.Wait()
}
