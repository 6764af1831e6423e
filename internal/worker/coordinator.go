// Package worker holds the event-driven side of the reservation
// workflow: the inventory coordinator, the status resolver and the
// reconciliation sweeper.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"reserve-portal/internal/domain/item"
	"reserve-portal/internal/domain/reservation"
	"reserve-portal/internal/event"
	"reserve-portal/internal/infra"
	"reserve-portal/internal/pkg/errs"
)

type ItemInventory interface {
	FindByID(ctx context.Context, id int64) (*item.Item, error)
	// RecordedDecrement reports the result a previous delivery of the
	// same reservation already committed, if any.
	RecordedDecrement(ctx context.Context, reservationID uuid.UUID) (applied bool, found bool, err error)
	// DecrementInventory applies the guarded decrement at most once per
	// reservation; a replay returns the recorded result unchanged.
	DecrementInventory(ctx context.Context, reservationID uuid.UUID, itemID int64, qty int) (bool, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

// Coordinator consumes "reservation requested" events, re-validates
// shared capacity against committed state, applies the atomic inventory
// decrement and emits the outcome. The decrement-time check here is the
// source of truth; intake's earlier check was only a fast path over a
// possibly stale read.
type Coordinator struct {
	items     ItemInventory
	validator *reservation.CapacityValidator
	publisher EventPublisher
	log       *slog.Logger
}

func NewCoordinator(
	items ItemInventory,
	validator *reservation.CapacityValidator,
	publisher EventPublisher,
	log *slog.Logger,
) *Coordinator {
	return &Coordinator{
		items:     items,
		validator: validator,
		publisher: publisher,
		log:       log,
	}
}

// HandleRequested processes one requested event. Business rejections
// (no capacity, unknown item) produce a failure outcome; infrastructure
// errors are returned so the message is redelivered. The outcome is
// published only after the mutation completed, keyed by reservation id
// so it reaches the correlation channel opened before the request was
// published — no delay is needed to order the two.
func (c *Coordinator) HandleRequested(ctx context.Context, _, value []byte) error {
	var req event.ReservationRequested
	if err := json.Unmarshal(value, &req); err != nil {
		// Malformed payloads can never succeed; reject instead of
		// redelivering forever.
		c.log.Error("malformed requested event", "error", err)
		return nil
	}

	updated, err := c.adjust(ctx, req)
	if err != nil {
		return err
	}

	outcome := event.InventoryOutcome{
		ReservationID: req.ReservationID,
		ItemUpdated:   updated,
	}
	if err := c.publisher.Publish(ctx, event.TopicReservationOutcome, req.ReservationID.String(), outcome); err != nil {
		return errs.Wrap(err, "failed to publish inventory outcome")
	}

	c.log.Info("inventory outcome published",
		"reservation_id", req.ReservationID, "item_id", req.ItemID, "item_updated", updated)
	return nil
}

func (c *Coordinator) adjust(ctx context.Context, req event.ReservationRequested) (bool, error) {
	// A redelivery after a failed outcome publish must not mutate
	// inventory again: the result committed with the first decrement
	// stands and only the outcome is re-published.
	applied, found, err := c.items.RecordedDecrement(ctx, req.ReservationID)
	if err != nil {
		return false, errs.Wrap(err, "failed to read decrement record")
	}
	if found {
		c.log.Info("redelivered request already settled",
			"reservation_id", req.ReservationID, "item_updated", applied)
		return applied, nil
	}

	it, err := c.items.FindByID(ctx, req.ItemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.log.Warn("requested item no longer exists", "item_id", req.ItemID)
			return false, nil
		}
		return false, errs.Wrap(err, "failed to load item")
	}

	window, err := reservation.NewWindow(req.StartAt, req.EndAt)
	if err != nil {
		c.log.Warn("requested event carries invalid window",
			"reservation_id", req.ReservationID, "error", err)
		return false, nil
	}

	// The intake side persisted the REQUEST row before publishing, so
	// the re-check excludes the requester's own demand.
	if err := c.validator.RecheckSharedCapacity(ctx, it, window, req.Quantity, req.ReservationID); err != nil {
		if errors.Is(err, reservation.ErrCapacityExceeded) {
			return false, nil
		}
		return false, errs.Wrap(err, "capacity re-check failed")
	}

	updated, err := c.items.DecrementInventory(ctx, req.ReservationID, req.ItemID, req.Quantity)
	if err != nil {
		return false, errs.Wrap(err, "failed to decrement inventory")
	}
	return updated, nil
}
