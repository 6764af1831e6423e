package worker

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"reserve-portal/internal/domain/reservation"
	"reserve-portal/internal/event"
	"reserve-portal/internal/infra"
	"reserve-portal/internal/pkg/correlation"
	"reserve-portal/internal/pkg/errs"
)

type ReservationStateStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to reservation.Status) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type WaiterRegistry interface {
	Resolve(o correlation.Outcome) bool
}

// Resolver consumes inventory outcomes: a success approves the pending
// reservation, a failure compensates by deleting the record entirely.
// Both paths are idempotent — the state-conditional update and the
// delete tolerate redelivery and already-resolved reservations — and
// any in-process waiter registered at intake is notified afterwards.
type Resolver struct {
	reservations ReservationStateStore
	registry     WaiterRegistry
	log          *slog.Logger
}

func NewResolver(reservations ReservationStateStore, registry WaiterRegistry, log *slog.Logger) *Resolver {
	return &Resolver{
		reservations: reservations,
		registry:     registry,
		log:          log,
	}
}

func (r *Resolver) HandleOutcome(ctx context.Context, _, value []byte) error {
	var outcome event.InventoryOutcome
	if err := json.Unmarshal(value, &outcome); err != nil {
		r.log.Error("malformed outcome event", "error", err)
		return nil
	}

	if outcome.ItemUpdated {
		if err := r.approve(ctx, outcome.ReservationID); err != nil {
			return err
		}
	} else {
		if err := r.compensate(ctx, outcome.ReservationID); err != nil {
			return err
		}
	}

	r.registry.Resolve(correlation.Outcome{
		ReservationID: outcome.ReservationID,
		ItemUpdated:   outcome.ItemUpdated,
	})
	return nil
}

func (r *Resolver) approve(ctx context.Context, id uuid.UUID) error {
	ok, err := r.reservations.UpdateStatusIf(ctx, id, reservation.StatusRequest, reservation.StatusApprove)
	if err != nil {
		return errs.Wrap(err, "failed to approve reservation")
	}
	if ok {
		r.log.Info("reservation approved", "reservation_id", id)
		return nil
	}

	// Zero rows moved: either the outcome was redelivered after a
	// previous approval, or the record is gone. Both are no-ops.
	current, err := r.reservations.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			r.log.Info("outcome for deleted reservation ignored", "reservation_id", id)
			return nil
		}
		return errs.Wrap(err, "failed to inspect reservation after no-op approve")
	}
	r.log.Info("redelivered outcome ignored",
		"reservation_id", id, "status", current.Status())
	return nil
}

func (r *Resolver) compensate(ctx context.Context, id uuid.UUID) error {
	deleted, err := r.reservations.Delete(ctx, id)
	if err != nil {
		return errs.Wrap(err, "failed to delete rejected reservation")
	}
	if deleted {
		r.log.Info("reservation rolled back", "reservation_id", id)
	} else {
		r.log.Info("rollback for already-deleted reservation ignored", "reservation_id", id)
	}
	return nil
}
