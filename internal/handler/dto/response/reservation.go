package response

import (
	"time"

	"github.com/google/uuid"

	"reserve-portal/internal/usecase/queries"
)

type ReservationResponse struct {
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

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:               v.ID,
		ItemID:           v.ItemID,
		ItemName:         v.ItemName,
		ItemLocation:     v.ItemLocation,
		Category:         v.Category,
		Quantity:         v.Quantity,
		Purpose:          v.Purpose,
		AttachmentCode:   v.AttachmentCode,
		StartAt:          v.StartAt,
		EndAt:            v.EndAt,
		Status:           v.Status,
		RequesterID:      v.RequesterID,
		RequesterContact: v.RequesterContact,
		RequesterEmail:   v.RequesterEmail,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

type ReservationListResponse struct {
	ID        uuid.UUID `json:"id"`
	ItemID    int64     `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Quantity  int       `json:"quantity"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func FromReservationListItem(v *queries.ReservationListItem) *ReservationListResponse {
	return &ReservationListResponse{
		ID:        v.ID,
		ItemID:    v.ItemID,
		ItemName:  v.ItemName,
		Quantity:  v.Quantity,
		StartAt:   v.StartAt,
		EndAt:     v.EndAt,
		Status:    v.Status,
		CreatedAt: v.CreatedAt,
	}
}
