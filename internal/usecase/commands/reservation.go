package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"reserve-portal/internal/domain/item"
	"reserve-portal/internal/domain/reservation"
	"reserve-portal/internal/event"
	"reserve-portal/internal/infra"
	"reserve-portal/internal/pkg/correlation"
	"reserve-portal/internal/pkg/errs"
	"reserve-portal/internal/usecase/queries"
)

var (
	ErrItemNotFound        = errs.New("item not found")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrInvalidWindow       = errs.New("invalid reservation window")
	ErrDomainValidation    = errs.New("domain validation error")
	ErrInvalidTransition   = errs.New("invalid status transition")
	ErrEventPublishFailed  = errs.New("event publish failed")
	ErrStorageFailure      = errs.New("storage operation failed")
)

const attachmentEntityType = "reservation"

type SubmitReservationInput struct {
	ItemID           int64
	Quantity         int
	Purpose          string
	AttachmentCode   *string
	StartAt          time.Time
	EndAt            time.Time
	RequesterID      string
	RequesterContact string
	RequesterEmail   string
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to reservation.Status) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type ItemReader interface {
	FindByID(ctx context.Context, id int64) (*item.Item, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
}

// OutcomeRegistry is the correlation-channel table. Register must have
// returned before the requested event is published; this ordering is
// what guarantees the coordinator's outcome can never beat its waiter.
type OutcomeRegistry interface {
	Register(id uuid.UUID) <-chan correlation.Outcome
	Cancel(id uuid.UUID)
	Await(ctx context.Context, id uuid.UUID, ch <-chan correlation.Outcome) (correlation.Outcome, error)
}

type ReservationCommands interface {
	Submit(ctx context.Context, in SubmitReservationInput) (*queries.ReservationView, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	Close(ctx context.Context, id uuid.UUID) error
}

type reservationUseCaseImpl struct {
	reservations   ReservationRepository
	items          ItemReader
	validator      *reservation.CapacityValidator
	publisher      EventPublisher
	registry       OutcomeRegistry
	views          queries.ReservationQueries
	log            *slog.Logger
	outcomeTimeout time.Duration
}

func NewReservationUseCase(
	reservations ReservationRepository,
	items ItemReader,
	validator *reservation.CapacityValidator,
	publisher EventPublisher,
	registry OutcomeRegistry,
	views queries.ReservationQueries,
	log *slog.Logger,
	outcomeTimeout time.Duration,
) ReservationCommands {
	return &reservationUseCaseImpl{
		reservations:   reservations,
		items:          items,
		validator:      validator,
		publisher:      publisher,
		registry:       registry,
		views:          views,
		log:            log,
		outcomeTimeout: outcomeTimeout,
	}
}

// Submit accepts a reservation request and routes it to the synchronous
// path (exclusive or deferred items: validate inline, approve at
// creation) or the asynchronous path (shared realtime items: persist as
// REQUEST, provision the correlation channel, emit the requested
// event). Validation failures surface to the caller and nothing is
// persisted.
func (uc *reservationUseCaseImpl) Submit(ctx context.Context, in SubmitReservationInput) (*queries.ReservationView, error) {
	it, err := uc.items.FindByID(ctx, in.ItemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrItemNotFound)
		}
		return nil, errs.Mark(err, ErrStorageFailure)
	}

	window, err := reservation.NewWindow(in.StartAt, in.EndAt)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidWindow)
	}

	if err := uc.validator.CheckWindow(it, window); err != nil {
		return nil, err
	}

	entity, err := reservation.NewReservation(
		in.ItemID,
		it.Category().String(),
		in.Quantity,
		reservation.NewNote(in.Purpose),
		in.AttachmentCode,
		window,
		reservation.Requester{ID: in.RequesterID, Contact: in.RequesterContact, Email: in.RequesterEmail},
		in.RequesterID,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if it.SettlesSynchronously() {
		return uc.submitSync(ctx, it, entity)
	}
	return uc.submitAsync(ctx, it, entity)
}

func (uc *reservationUseCaseImpl) submitSync(ctx context.Context, it *item.Item, entity *reservation.Reservation) (*queries.ReservationView, error) {
	if it.Category().Exclusive() {
		if entity.Quantity() > 1 {
			return nil, reservation.ErrExclusiveQuantity
		}
		if err := uc.validator.CheckExclusive(ctx, it, entity.Window()); err != nil {
			return nil, err
		}
	} else {
		if err := uc.validator.CheckSharedCapacity(ctx, it, entity.Window(), entity.Quantity()); err != nil {
			return nil, err
		}
	}

	// Validation passed; the record is born approved and no event is
	// emitted.
	if err := entity.Approve(); err != nil {
		return nil, errs.Mark(err, ErrInvalidTransition)
	}
	if err := uc.reservations.Create(ctx, entity); err != nil {
		return nil, errs.Mark(err, ErrStorageFailure)
	}

	uc.notifyAttachment(ctx, entity)
	return uc.views.GetByID(ctx, entity.ID())
}

func (uc *reservationUseCaseImpl) submitAsync(ctx context.Context, it *item.Item, entity *reservation.Reservation) (*queries.ReservationView, error) {
	// Optimistic fast-path rejection against committed state. The
	// coordinator re-checks at decrement time, which is authoritative.
	if err := uc.validator.CheckSharedCapacity(ctx, it, entity.Window(), entity.Quantity()); err != nil {
		return nil, err
	}

	if err := uc.reservations.Create(ctx, entity); err != nil {
		return nil, errs.Mark(err, ErrStorageFailure)
	}

	uc.notifyAttachment(ctx, entity)

	// The correlation channel must be provisioned before the event is
	// published; the coordinator may answer at any point afterwards.
	ch := uc.registry.Register(entity.ID())

	requested := event.ReservationRequested{
		ReservationID: entity.ID(),
		ItemID:        it.ID(),
		Quantity:      entity.Quantity(),
		StartAt:       entity.Window().Start(),
		EndAt:         entity.Window().End(),
	}
	if err := uc.publisher.Publish(ctx, event.TopicReservationRequested, entity.ID().String(), requested); err != nil {
		// Retries are exhausted inside the publisher; compensate so the
		// reservation is not left dangling in REQUEST.
		uc.registry.Cancel(entity.ID())
		if _, delErr := uc.reservations.Delete(ctx, entity.ID()); delErr != nil {
			uc.log.Error("failed to compensate unpublished reservation",
				"reservation_id", entity.ID(), "error", delErr)
		}
		return nil, errs.Mark(err, ErrEventPublishFailed)
	}

	go uc.watchOutcome(entity.ID(), ch)

	// The caller gets the pending record immediately; approval or
	// rollback arrives through the outcome consumer.
	return uc.views.GetByID(ctx, entity.ID())
}

func (uc *reservationUseCaseImpl) watchOutcome(id uuid.UUID, ch <-chan correlation.Outcome) {
	ctx, cancel := context.WithTimeout(context.Background(), uc.outcomeTimeout)
	defer cancel()

	outcome, err := uc.registry.Await(ctx, id, ch)
	if err != nil {
		// No outcome within the budget; the reconciliation sweep owns
		// cleanup of the stored record.
		uc.log.Warn("no inventory outcome before deadline", "reservation_id", id)
		return
	}
	uc.log.Info("inventory outcome received",
		"reservation_id", outcome.ReservationID, "item_updated", outcome.ItemUpdated)
}

func (uc *reservationUseCaseImpl) notifyAttachment(ctx context.Context, entity *reservation.Reservation) {
	code := entity.AttachmentCode()
	if code == nil || *code == "" {
		return
	}
	linked := event.AttachmentLinked{
		AttachmentCode: *code,
		EntityType:     attachmentEntityType,
		EntityID:       entity.ID().String(),
	}
	// Fire-and-forget: the reservation does not fail if the attachment
	// subsystem is unreachable.
	if err := uc.publisher.Publish(ctx, event.TopicAttachmentLinked, entity.ID().String(), linked); err != nil {
		uc.log.Warn("attachment link notification failed",
			"reservation_id", entity.ID(), "error", err)
	}
}

func (uc *reservationUseCaseImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	return uc.transition(ctx, id, reservation.StatusApprove, reservation.StatusCancel)
}

func (uc *reservationUseCaseImpl) Close(ctx context.Context, id uuid.UUID) error {
	return uc.transition(ctx, id, reservation.StatusApprove, reservation.StatusDone)
}

func (uc *reservationUseCaseImpl) transition(ctx context.Context, id uuid.UUID, from, to reservation.Status) error {
	current, err := uc.reservations.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrReservationNotFound)
		}
		return errs.Mark(err, ErrStorageFailure)
	}
	if current.Status() != from {
		return ErrInvalidTransition
	}

	ok, err := uc.reservations.UpdateStatusIf(ctx, id, from, to)
	if err != nil {
		return errs.Mark(err, ErrStorageFailure)
	}
	if !ok {
		// Lost a race with another transition.
		return ErrInvalidTransition
	}
	return nil
}
