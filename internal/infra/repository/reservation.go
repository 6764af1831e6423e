package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"reserve-portal/internal/domain/reservation"
	"reserve-portal/internal/infra"
)

type ReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO reservations (
			id, item_id, category, quantity, purpose, attachment_code,
			start_at, end_at, status,
			requester_id, requester_contact, requester_email,
			created_by, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,now(),now())`,
		res.ID(), res.ItemID(), res.Category(), res.Quantity(),
		res.Purpose().String(), res.AttachmentCode(),
		res.Window().Start(), res.Window().End(), res.Status().String(),
		res.Requester().ID, res.Requester().Contact, res.Requester().Email,
		res.CreatedBy(),
	)
	if err != nil {
		return infra.ClassifyPgErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, item_id, category, quantity, purpose, attachment_code,
		       start_at, end_at, status,
		       requester_id, requester_contact, requester_email,
		       created_by, created_at, updated_at
		FROM reservations WHERE id = $1`, id)

	var (
		resID                                  uuid.UUID
		itemID                                 int64
		category, purpose, status              string
		quantity                               int
		attachmentCode                         *string
		startAt, endAt, createdAt, updatedAt   time.Time
		requesterID, requesterContact, email   string
		createdBy                              string
	)
	err := row.Scan(
		&resID, &itemID, &category, &quantity, &purpose, &attachmentCode,
		&startAt, &endAt, &status,
		&requesterID, &requesterContact, &email,
		&createdBy, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to find reservation by id", err)
	}

	window, err := reservation.NewWindow(startAt, endAt)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "stored reservation has invalid window", err)
	}

	return reservation.ReconstructReservation(
		resID, itemID, category, quantity,
		reservation.NewNote(purpose), attachmentCode,
		window, reservation.Status(status),
		reservation.Requester{ID: requesterID, Contact: requesterContact, Email: email},
		createdBy, createdAt, updatedAt,
	), nil
}

// FindActiveOverlapping returns the committed demand of all
// non-cancelled reservations of the item overlapping [start, end].
// This feeds both the exclusive check and the peak-overlap sampling.
func (r *ReservationRepository) FindActiveOverlapping(ctx context.Context, itemID int64, start, end time.Time) ([]reservation.BookedWindow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, start_at, end_at, quantity
		FROM reservations
		WHERE item_id = $1
		  AND status <> $2
		  AND start_at <= $4
		  AND end_at >= $3`,
		itemID, reservation.StatusCancel.String(), start, end)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to query overlapping reservations", err)
	}
	defer rows.Close()

	var booked []reservation.BookedWindow
	for rows.Next() {
		var b reservation.BookedWindow
		if err := rows.Scan(&b.ReservationID, &b.Start, &b.End, &b.Quantity); err != nil {
			return nil, infra.ClassifyPgErr("failed to scan overlapping reservation", err)
		}
		booked = append(booked, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.ClassifyPgErr("failed to read overlapping reservations", err)
	}
	return booked, nil
}

// UpdateStatusIf transitions id from one status to another. The state
// predicate makes redelivered outcomes no-ops: a second APPROVE finds
// zero rows in REQUEST and reports false without error.
func (r *ReservationRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to reservation.Status) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE reservations SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`,
		id, from.String(), to.String())
	if err != nil {
		return false, infra.ClassifyPgErr("failed to update reservation status", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Delete removes the record entirely. Compensating rollback of a failed
// async reservation deletes rather than transitions, so the reservation
// never becomes visible as approved.
func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return false, infra.ClassifyPgErr("failed to delete reservation", err)
	}
	return tag.RowsAffected() == 1, nil
}

// DeleteStaleRequested compensates reservations whose outcome never
// arrived: anything still in REQUEST created before the cutoff is
// removed. Reservations whose inventory decrement already applied are
// spared — deleting them would leak the decremented units, and a late
// success outcome can still approve them. Returns the number of rows
// swept.
func (r *ReservationRepository) DeleteStaleRequested(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM reservations r
		WHERE r.status = $1
		  AND r.created_at < $2
		  AND NOT EXISTS (
			SELECT 1 FROM inventory_applications a
			WHERE a.reservation_id = r.id AND a.applied
		  )`,
		reservation.StatusRequest.String(), cutoff)
	if err != nil {
		return 0, infra.ClassifyPgErr("failed to sweep stale reservations", err)
	}
	return tag.RowsAffected(), nil
}
