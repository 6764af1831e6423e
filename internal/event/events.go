// Package event defines the messages exchanged between reservation
// intake, the inventory coordinator and the status resolver. All
// messages are keyed by reservation id so related events land on the
// same partition and the outcome can be correlated back to its request.
package event

import (
	"time"

	"github.com/google/uuid"
)

const (
	TopicReservationRequested = "reservation.requested"
	TopicReservationOutcome   = "reservation.outcome"
	TopicAttachmentLinked     = "attachment.linked"
)

// ReservationRequested starts the async leg of the workflow.
type ReservationRequested struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	ItemID        int64     `json:"item_id"`
	Quantity      int       `json:"quantity"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
}

// InventoryOutcome reports whether the coordinator updated the item's
// inventory for the reservation.
type InventoryOutcome struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	ItemUpdated   bool      `json:"item_updated"`
}

// AttachmentLinked associates previously uploaded files with an entity.
// Fire-and-forget; the attachment subsystem owns the rest.
type AttachmentLinked struct {
	AttachmentCode string `json:"attachment_code"`
	EntityType     string `json:"entity_type"`
	EntityID       string `json:"entity_id"`
}
