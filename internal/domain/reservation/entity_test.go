//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"reserve-portal/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, start, end time.Time) reservation.Window {
	t.Helper()
	w, err := reservation.NewWindow(start, end)
	require.NoError(t, err)
	return w
}

func newPending(t *testing.T) *reservation.Reservation {
	t.Helper()
	start := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	r, err := reservation.NewReservation(
		1,
		"equipment",
		2,
		reservation.NewNote("field survey"),
		nil,
		mustWindow(t, start, start.Add(4*time.Hour)),
		reservation.Requester{ID: "citizen-42", Contact: "555-0101", Email: "c42@example.org"},
		"citizen-42",
	)
	require.NoError(t, err)
	return r
}

func TestNewReservation(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		r := newPending(t)

		assert.NotEqual(t, uuid.Nil, r.ID())
		assert.Equal(t, reservation.StatusRequest, r.Status())
		assert.True(t, r.IsPending())
		assert.Equal(t, 2, r.Quantity())
		assert.Equal(t, "field survey", r.Purpose().String())
	})

	t.Run("zero quantity", func(t *testing.T) {
		start := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
		_, err := reservation.NewReservation(
			1, "equipment", 0, reservation.NewNote(""), nil,
			mustWindow(t, start, start.Add(time.Hour)),
			reservation.Requester{ID: "citizen-42"},
			"citizen-42",
		)
		require.ErrorIs(t, err, reservation.ErrInvalidQuantity)
	})

	t.Run("missing requester id", func(t *testing.T) {
		start := time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
		_, err := reservation.NewReservation(
			1, "equipment", 1, reservation.NewNote(""), nil,
			mustWindow(t, start, start.Add(time.Hour)),
			reservation.Requester{},
			"",
		)
		require.Error(t, err)
	})
}

func TestReservationTransitions(t *testing.T) {
	t.Run("approve moves REQUEST to APPROVE", func(t *testing.T) {
		r := newPending(t)
		require.NoError(t, r.Approve())
		assert.Equal(t, reservation.StatusApprove, r.Status())
		assert.False(t, r.IsPending())
	})

	t.Run("approve is idempotent on APPROVE", func(t *testing.T) {
		r := newPending(t)
		require.NoError(t, r.Approve())
		require.NoError(t, r.Approve())
		assert.Equal(t, reservation.StatusApprove, r.Status())
	})

	t.Run("approve rejected on terminal status", func(t *testing.T) {
		r := newPending(t)
		require.NoError(t, r.Approve())
		require.NoError(t, r.Close())
		require.ErrorIs(t, r.Approve(), reservation.ErrInvalidStatus)
	})

	t.Run("cancel requires APPROVE", func(t *testing.T) {
		r := newPending(t)
		require.ErrorIs(t, r.Cancel(), reservation.ErrInvalidStatus)

		require.NoError(t, r.Approve())
		require.NoError(t, r.Cancel())
		assert.Equal(t, reservation.StatusCancel, r.Status())
	})

	t.Run("close requires APPROVE", func(t *testing.T) {
		r := newPending(t)
		require.ErrorIs(t, r.Close(), reservation.ErrInvalidStatus)

		require.NoError(t, r.Approve())
		require.NoError(t, r.Close())
		assert.Equal(t, reservation.StatusDone, r.Status())
	})

	t.Run("cancelled reservation accepts nothing further", func(t *testing.T) {
		r := newPending(t)
		require.NoError(t, r.Approve())
		require.NoError(t, r.Cancel())

		require.ErrorIs(t, r.Approve(), reservation.ErrInvalidStatus)
		require.ErrorIs(t, r.Close(), reservation.ErrInvalidStatus)
	})
}

func TestWindow(t *testing.T) {
	start := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	t.Run("start must precede end", func(t *testing.T) {
		_, err := reservation.NewWindow(start, start)
		require.Error(t, err)

		_, err = reservation.NewWindow(start.Add(time.Hour), start)
		require.Error(t, err)
	})

	t.Run("days counts whole days only", func(t *testing.T) {
		tests := []struct {
			name string
			span time.Duration
			want int
		}{
			{"one hour", time.Hour, 0},
			{"just under a day", 24*time.Hour - time.Second, 0},
			{"exactly one day", 24 * time.Hour, 1},
			{"three and a half days", 84 * time.Hour, 3},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := mustWindow(t, start, start.Add(tt.span))
				assert.Equal(t, tt.want, w.Days())
			})
		}
	})

	t.Run("contains is inclusive on both ends", func(t *testing.T) {
		w := mustWindow(t, start, start.Add(24*time.Hour))

		assert.True(t, w.Contains(start))
		assert.True(t, w.Contains(start.Add(24*time.Hour)))
		assert.True(t, w.Contains(start.Add(time.Hour)))
		assert.False(t, w.Contains(start.Add(-time.Nanosecond)))
		assert.False(t, w.Contains(start.Add(24*time.Hour+time.Nanosecond)))
	})

	t.Run("overlaps is inclusive on shared endpoints", func(t *testing.T) {
		w := mustWindow(t, start, start.Add(24*time.Hour))

		assert.True(t, w.Overlaps(start.Add(24*time.Hour), start.Add(48*time.Hour)))
		assert.True(t, w.Overlaps(start.Add(-24*time.Hour), start))
		assert.False(t, w.Overlaps(start.Add(25*time.Hour), start.Add(48*time.Hour)))
	})
}
