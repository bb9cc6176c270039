//go:build unit

package hold_test

import (
	"testing"
	"time"

	"library-circulation/internal/domain/hold"
	"library-circulation/internal/pkg/errs"
	"library-circulation/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHold(t *testing.T) {
	t.Run("starts active with the given position", func(t *testing.T) {
		h, err := builder.NewHoldBuilder().
			With(func(b *builder.HoldBuilder) { b.Position = 3 }).
			BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, hold.StatusActive, h.Status())
		assert.Equal(t, int32(3), h.Position())
		assert.Nil(t, h.ReadyAt())
	})

	t.Run("position below one rejected", func(t *testing.T) {
		_, err := builder.NewHoldBuilder().
			With(func(b *builder.HoldBuilder) { b.Position = 0 }).
			BuildDomain()
		assert.ErrorIs(t, err, errs.ErrInvariantViolation)
	})
}

func TestMarkReady(t *testing.T) {
	now := time.Now()

	t.Run("pickup window replaces the original expiry", func(t *testing.T) {
		h, err := builder.NewHoldBuilder().BuildDomain()
		require.NoError(t, err)

		err = h.MarkReady(now, 72*time.Hour)
		require.NoError(t, err)

		assert.Equal(t, hold.StatusReady, h.Status())
		require.NotNil(t, h.ReadyAt())
		assert.Equal(t, now.Add(72*time.Hour), h.ExpiresAt())
	})

	t.Run("only active holds become ready", func(t *testing.T) {
		h, err := builder.NewHoldBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, h.MarkReady(now, time.Hour))

		err = h.MarkReady(now, time.Hour)
		assert.ErrorIs(t, err, errs.ErrInvalidHoldState)
	})
}

func TestMarkFulfilled(t *testing.T) {
	now := time.Now()

	t.Run("ready hold fulfills", func(t *testing.T) {
		h, err := builder.NewHoldBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, h.MarkReady(now, time.Hour))

		require.NoError(t, h.MarkFulfilled())
		assert.Equal(t, hold.StatusFulfilled, h.Status())
	})

	t.Run("active hold cannot skip the ready step", func(t *testing.T) {
		h, err := builder.NewHoldBuilder().BuildDomain()
		require.NoError(t, err)

		err = h.MarkFulfilled()
		assert.ErrorIs(t, err, errs.ErrInvalidHoldState)
	})
}

func TestCancelHold(t *testing.T) {
	now := time.Now()

	t.Run("open holds cancel", func(t *testing.T) {
		h, err := builder.NewHoldBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, h.Cancel())
		assert.Equal(t, hold.StatusCancelled, h.Status())
	})

	t.Run("terminal hold cannot cancel", func(t *testing.T) {
		h, err := builder.NewHoldBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, h.MarkReady(now, time.Hour))
		require.NoError(t, h.MarkFulfilled())

		err = h.Cancel()
		assert.ErrorIs(t, err, errs.ErrInvalidHoldState)
	})
}

func TestExpire(t *testing.T) {
	placed := time.Now()

	t.Run("past expiry transitions to expired", func(t *testing.T) {
		h, err := builder.NewHoldBuilder().
			With(func(b *builder.HoldBuilder) {
				b.PlacedAt = placed
				b.Lifetime = time.Hour
			}).
			BuildDomain()
		require.NoError(t, err)

		later := placed.Add(2 * time.Hour)
		assert.True(t, h.IsStale(later))
		require.NoError(t, h.Expire(later))
		assert.Equal(t, hold.StatusExpired, h.Status())
	})

	t.Run("refuses while still inside the window", func(t *testing.T) {
		h, err := builder.NewHoldBuilder().
			With(func(b *builder.HoldBuilder) {
				b.PlacedAt = placed
				b.Lifetime = time.Hour
			}).
			BuildDomain()
		require.NoError(t, err)

		assert.False(t, h.IsStale(placed.Add(30*time.Minute)))
		err = h.Expire(placed.Add(30 * time.Minute))
		assert.ErrorIs(t, err, errs.ErrInvalidHoldState)
	})

	t.Run("ready hold past pickup window expires", func(t *testing.T) {
		h, err := builder.NewHoldBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, h.MarkReady(placed, time.Hour))

		later := placed.Add(2 * time.Hour)
		assert.True(t, h.IsStale(later))
		require.NoError(t, h.Expire(later))
		assert.Equal(t, hold.StatusExpired, h.Status())
	})
}
