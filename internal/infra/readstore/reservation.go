package readstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"reserve-portal/internal/infra"
	"reserve-portal/internal/usecase/queries"
)

type ReservationReadStore struct {
	db *pgxpool.Pool
}

func NewReservationReadStore(db *pgxpool.Pool) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

const reservationViewSelect = `
	SELECT r.id, r.item_id, i.name, i.location_ref, r.category,
	       r.quantity, r.purpose, r.attachment_code,
	       r.start_at, r.end_at, r.status,
	       r.requester_id, r.requester_contact, r.requester_email,
	       r.created_at, r.updated_at
	FROM reservations r
	JOIN reservation_items i ON i.id = r.item_id`

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row := s.db.QueryRow(ctx, reservationViewSelect+` WHERE r.id = $1`, id)

	var v queries.ReservationView
	err := row.Scan(
		&v.ID, &v.ItemID, &v.ItemName, &v.ItemLocation, &v.Category,
		&v.Quantity, &v.Purpose, &v.AttachmentCode,
		&v.StartAt, &v.EndAt, &v.Status,
		&v.RequesterID, &v.RequesterContact, &v.RequesterEmail,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to find reservation view", err)
	}
	return &v, nil
}

func (s *ReservationReadStore) FindByRequesterPaged(ctx context.Context, requesterID string, limit, offset int32) ([]*queries.ReservationListItem, error) {
	rows, err := s.db.Query(ctx, `
		SELECT r.id, r.item_id, i.name, r.quantity,
		       r.start_at, r.end_at, r.status, r.created_at
		FROM reservations r
		JOIN reservation_items i ON i.id = r.item_id
		WHERE r.requester_id = $1
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2 OFFSET $3`,
		requesterID, limit, offset)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to list reservations", err)
	}
	defer rows.Close()

	var result []*queries.ReservationListItem
	for rows.Next() {
		var it queries.ReservationListItem
		if err := rows.Scan(
			&it.ID, &it.ItemID, &it.ItemName, &it.Quantity,
			&it.StartAt, &it.EndAt, &it.Status, &it.CreatedAt,
		); err != nil {
			return nil, infra.ClassifyPgErr("failed to scan reservation list item", err)
		}
		result = append(result, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.ClassifyPgErr("failed to read reservation list", err)
	}
	return result, nil
}
