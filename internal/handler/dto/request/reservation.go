package request

import (
	"time"

	"reserve-portal/internal/usecase/commands"
)

type CreateReservationRequest struct {
	ItemID           int64     `json:"item_id" binding:"required"`
	Quantity         int       `json:"quantity" binding:"required,min=1"`
	Purpose          string    `json:"purpose" binding:"max=2000"`
	AttachmentCode   *string   `json:"attachment_code,omitempty"`
	StartAt          time.Time `json:"start_at" binding:"required"`
	EndAt            time.Time `json:"end_at" binding:"required"`
	RequesterID      string    `json:"requester_id" binding:"required"`
	RequesterContact string    `json:"requester_contact"`
	RequesterEmail   string    `json:"requester_email" binding:"omitempty,email"`
}

func (r CreateReservationRequest) ToInput() commands.SubmitReservationInput {
	return commands.SubmitReservationInput{
		ItemID:           r.ItemID,
		Quantity:         r.Quantity,
		Purpose:          r.Purpose,
		AttachmentCode:   r.AttachmentCode,
		StartAt:          r.StartAt,
		EndAt:            r.EndAt,
		RequesterID:      r.RequesterID,
		RequesterContact: r.RequesterContact,
		RequesterEmail:   r.RequesterEmail,
	}
}
