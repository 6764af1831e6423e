package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidStatus   = errors.New("invalid status transition")
)

// Reservation is a request to use a quantity of an item for a window.
// It is created in REQUEST and either approved (sync validation or a
// successful async outcome) or deleted (compensating rollback on a
// failed outcome).
type Reservation struct {
	id             uuid.UUID
	itemID         int64
	category       string
	quantity       int
	purpose        Note
	attachmentCode *string
	window         Window
	status         Status
	requester      Requester
	createdBy      string
	createdAt      time.Time
	updatedAt      time.Time
}

func NewReservation(
	itemID int64,
	category string,
	quantity int,
	purpose Note,
	attachmentCode *string,
	window Window,
	requester Requester,
	createdBy string,
) (*Reservation, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if err := requester.Validate(); err != nil {
		return nil, err
	}

	return &Reservation{
		id:             uuid.New(),
		itemID:         itemID,
		category:       category,
		quantity:       quantity,
		purpose:        purpose,
		attachmentCode: attachmentCode,
		window:         window,
		status:         StatusRequest,
		requester:      requester,
		createdBy:      createdBy,
	}, nil
}

func ReconstructReservation(
	id uuid.UUID,
	itemID int64,
	category string,
	quantity int,
	purpose Note,
	attachmentCode *string,
	window Window,
	status Status,
	requester Requester,
	createdBy string,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:             id,
		itemID:         itemID,
		category:       category,
		quantity:       quantity,
		purpose:        purpose,
		attachmentCode: attachmentCode,
		window:         window,
		status:         status,
		requester:      requester,
		createdBy:      createdBy,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// Approve moves REQUEST to APPROVE. Approving an already approved
// reservation is a no-op so outcome redelivery stays harmless.
func (r *Reservation) Approve() error {
	switch r.status {
	case StatusApprove:
		return nil
	case StatusRequest:
		r.status = StatusApprove
		return nil
	default:
		return ErrInvalidStatus
	}
}

func (r *Reservation) Cancel() error {
	if r.status != StatusApprove {
		return ErrInvalidStatus
	}
	r.status = StatusCancel
	return nil
}

// Close marks an approved reservation administratively complete.
func (r *Reservation) Close() error {
	if r.status != StatusApprove {
		return ErrInvalidStatus
	}
	r.status = StatusDone
	return nil
}

func (r *Reservation) IsPending() bool {
	return r.status == StatusRequest
}

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) ItemID() int64           { return r.itemID }
func (r *Reservation) Category() string        { return r.category }
func (r *Reservation) Quantity() int           { return r.quantity }
func (r *Reservation) Purpose() Note           { return r.purpose }
func (r *Reservation) AttachmentCode() *string { return r.attachmentCode }
func (r *Reservation) Window() Window          { return r.window }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) Requester() Requester    { return r.requester }
func (r *Reservation) CreatedBy() string       { return r.createdBy }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time    { return r.updatedAt }
