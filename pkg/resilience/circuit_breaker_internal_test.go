package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errDependency = errors.New("dependency unavailable")

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker() (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	cb := newCircuitBreaker("test", CircuitBreakerConfig{
		ErrorThreshold:   2,
		Cooldown:         time.Second,
		SuccessThreshold: 2,
	}, clock.now)
	return cb, clock
}

func failing() error { return errDependency }

func succeeding() error { return nil }

func TestCircuitBreaker(t *testing.T) {
	ctx := context.Background()

	t.Run("trips after threshold and rejects", func(t *testing.T) {
		cb, _ := newTestBreaker()

		assert.ErrorIs(t, cb.Execute(ctx, failing), errDependency)
		assert.Equal(t, StateClosed, cb.State())
		assert.ErrorIs(t, cb.Execute(ctx, failing), errDependency)
		assert.Equal(t, StateOpen, cb.State())

		called := false
		err := cb.Execute(ctx, func() error { called = true; return nil })
		assert.ErrorIs(t, err, ErrCircuitOpen)
		assert.False(t, called)
	})

	t.Run("success resets failure count", func(t *testing.T) {
		cb, _ := newTestBreaker()

		_ = cb.Execute(ctx, failing)
		_ = cb.Execute(ctx, succeeding)
		_ = cb.Execute(ctx, failing)

		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("half-open probes close the circuit", func(t *testing.T) {
		cb, clock := newTestBreaker()
		_ = cb.Execute(ctx, failing)
		_ = cb.Execute(ctx, failing)

		clock.advance(2 * time.Second)

		assert.NoError(t, cb.Execute(ctx, succeeding))
		assert.Equal(t, StateHalfOpen, cb.State())
		assert.NoError(t, cb.Execute(ctx, succeeding))
		assert.Equal(t, StateClosed, cb.State())
	})

	t.Run("failed probe reopens", func(t *testing.T) {
		cb, clock := newTestBreaker()
		_ = cb.Execute(ctx, failing)
		_ = cb.Execute(ctx, failing)

		clock.advance(2 * time.Second)

		assert.ErrorIs(t, cb.Execute(ctx, failing), errDependency)
		assert.Equal(t, StateOpen, cb.State())
		assert.False(t, cb.Allow(ctx))
	})

	t.Run("non-positive thresholds default to one", func(t *testing.T) {
		cb := NewCircuitBreaker("zero", CircuitBreakerConfig{})

		_ = cb.Execute(ctx, failing)

		assert.Equal(t, StateOpen, cb.State())
	})
}

func TestCircuitState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", CircuitState(42).String())
}
