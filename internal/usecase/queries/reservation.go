package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Read models (DTOs for the read side)
type ReservationView struct {
	ID               uuid.UUID `json:"id"`
	ItemID           int64     `json:"item_id"`
	ItemName         string    `json:"item_name"`
	ItemLocation     string    `json:"item_location"`
	Category         string    `json:"category"`
	Quantity         int       `json:"quantity"`
	Purpose          string    `json:"purpose"`
	AttachmentCode   *string   `json:"attachment_code,omitempty"`
	StartAt          time.Time `json:"start_at"`
	EndAt            time.Time `json:"end_at"`
	Status           string    `json:"status"`
	RequesterID      string    `json:"requester_id"`
	RequesterContact string    `json:"requester_contact"`
	RequesterEmail   string    `json:"requester_email"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type ReservationListItem struct {
	ID        uuid.UUID `json:"id"`
	ItemID    int64     `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Quantity  int       `json:"quantity"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByRequester(ctx context.Context, requesterID string, limit, offset int) ([]*ReservationListItem, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByRequesterPaged(ctx context.Context, requesterID string, limit, offset int32) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *reservationQueriesImpl) ListByRequester(ctx context.Context, requesterID string, limit, offset int) ([]*ReservationListItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return q.repo.FindByRequesterPaged(ctx, requesterID, int32(limit), int32(offset))
}
