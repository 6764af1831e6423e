//go:build unit

package correlation_test

import (
	"context"
	"testing"
	"time"

	"reserve-portal/internal/pkg/correlation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryResolve(t *testing.T) {
	t.Run("registered waiter receives the outcome", func(t *testing.T) {
		r := correlation.NewRegistry()
		id := uuid.New()

		ch := r.Register(id)
		delivered := r.Resolve(correlation.Outcome{ReservationID: id, ItemUpdated: true})
		require.True(t, delivered)

		o := <-ch
		assert.Equal(t, id, o.ReservationID)
		assert.True(t, o.ItemUpdated)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("outcome buffered before anyone reads", func(t *testing.T) {
		// Resolve must not block even when the waiter goroutine has not
		// reached its receive yet.
		r := correlation.NewRegistry()
		id := uuid.New()

		ch := r.Register(id)

		done := make(chan bool, 1)
		go func() {
			done <- r.Resolve(correlation.Outcome{ReservationID: id})
		}()

		select {
		case ok := <-done:
			require.True(t, ok)
		case <-time.After(time.Second):
			t.Fatal("Resolve blocked on an unread waiter channel")
		}

		o, open := <-ch
		assert.True(t, open)
		assert.Equal(t, id, o.ReservationID)
	})

	t.Run("resolving an unknown id is a no-op", func(t *testing.T) {
		r := correlation.NewRegistry()
		assert.False(t, r.Resolve(correlation.Outcome{ReservationID: uuid.New()}))
	})

	t.Run("second resolve for the same id finds no waiter", func(t *testing.T) {
		r := correlation.NewRegistry()
		id := uuid.New()
		r.Register(id)

		require.True(t, r.Resolve(correlation.Outcome{ReservationID: id}))
		assert.False(t, r.Resolve(correlation.Outcome{ReservationID: id}))
	})
}

func TestRegistryCancel(t *testing.T) {
	r := correlation.NewRegistry()
	id := uuid.New()

	r.Register(id)
	require.Equal(t, 1, r.Len())

	r.Cancel(id)
	assert.Equal(t, 0, r.Len())
	assert.False(t, r.Resolve(correlation.Outcome{ReservationID: id}))

	// Cancelling twice is harmless.
	r.Cancel(id)
}

func TestRegistryAwait(t *testing.T) {
	t.Run("returns the resolved outcome", func(t *testing.T) {
		r := correlation.NewRegistry()
		id := uuid.New()
		ch := r.Register(id)

		go r.Resolve(correlation.Outcome{ReservationID: id, ItemUpdated: true})

		o, err := r.Await(context.Background(), id, ch)
		require.NoError(t, err)
		assert.Equal(t, id, o.ReservationID)
		assert.True(t, o.ItemUpdated)
	})

	t.Run("context expiry removes the waiter", func(t *testing.T) {
		r := correlation.NewRegistry()
		id := uuid.New()
		ch := r.Register(id)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := r.Await(ctx, id, ch)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("outcome wins a race with cancellation if already buffered", func(t *testing.T) {
		r := correlation.NewRegistry()
		id := uuid.New()
		ch := r.Register(id)
		require.True(t, r.Resolve(correlation.Outcome{ReservationID: id}))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// The buffered send is already in the channel; select may pick
		// either arm, but a delivered outcome must never be silently
		// dropped together with a nil error.
		o, err := r.Await(ctx, id, ch)
		if err == nil {
			assert.Equal(t, id, o.ReservationID)
		}
	})
}

func TestRegistryLen(t *testing.T) {
	r := correlation.NewRegistry()
	assert.Equal(t, 0, r.Len())

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range ids {
		r.Register(id)
	}
	assert.Equal(t, 3, r.Len())

	r.Cancel(ids[0])
	r.Resolve(correlation.Outcome{ReservationID: ids[1]})
	assert.Equal(t, 1, r.Len())
}
