package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"reserve-portal/internal/domain/item"
	"reserve-portal/internal/infra"
)

type ItemRepository struct {
	db *pgxpool.Pool
}

func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `
	id, name, location_ref, category, total_qty, inventory_qty,
	operation_start, operation_end, request_start, request_end,
	means, is_period, period_max_count, paid, created_at, updated_at`

func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*item.Item, error) {
	row := r.db.QueryRow(ctx, `SELECT`+itemColumns+` FROM reservation_items WHERE id = $1`, id)

	it, err := scanItem(row)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to find item by id", err)
	}
	return it, nil
}

// RecordedDecrement reports the stored result of a previous decrement
// attempt for the reservation, if one exists. Lets a redelivered
// requested event re-publish its outcome without touching inventory.
func (r *ItemRepository) RecordedDecrement(ctx context.Context, reservationID uuid.UUID) (bool, bool, error) {
	var applied bool
	err := r.db.QueryRow(ctx,
		`SELECT applied FROM inventory_applications WHERE reservation_id = $1`,
		reservationID).Scan(&applied)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, false, nil
		}
		return false, false, infra.ClassifyPgErr("failed to read decrement record", err)
	}
	return applied, true, nil
}

// DecrementInventory subtracts qty from the item's available inventory,
// at most once per reservation. The application record and the guarded
// update commit in one transaction, so a redelivery after a crash or a
// failed outcome publish finds the record and returns the original
// result instead of decrementing again. The update's predicate makes
// the read-modify-write atomic under the row lock: concurrent
// decrements serialize and the losing one observes zero affected rows
// instead of driving the counter negative. Returns false when inventory
// is insufficient or the item does not exist.
func (r *ItemRepository) DecrementInventory(ctx context.Context, reservationID uuid.UUID, itemID int64, qty int) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, infra.ClassifyPgErr("failed to begin decrement", err)
	}
	defer tx.Rollback(ctx)

	claim, err := tx.Exec(ctx, `
		INSERT INTO inventory_applications (reservation_id, item_id, quantity, applied)
		VALUES ($1, $2, $3, false)
		ON CONFLICT (reservation_id) DO NOTHING`,
		reservationID, itemID, qty)
	if err != nil {
		return false, infra.ClassifyPgErr("failed to claim decrement", err)
	}
	if claim.RowsAffected() == 0 {
		// Lost the claim to a concurrent delivery; its result stands.
		var applied bool
		if err := tx.QueryRow(ctx,
			`SELECT applied FROM inventory_applications WHERE reservation_id = $1`,
			reservationID).Scan(&applied); err != nil {
			return false, infra.ClassifyPgErr("failed to read decrement record", err)
		}
		return applied, nil
	}

	tag, err := tx.Exec(ctx, `
		UPDATE reservation_items
		SET inventory_qty = inventory_qty - $2, updated_at = now()
		WHERE id = $1 AND inventory_qty >= $2`,
		itemID, qty)
	if err != nil {
		return false, infra.ClassifyPgErr("failed to decrement inventory", err)
	}
	applied := tag.RowsAffected() == 1
	if applied {
		if _, err := tx.Exec(ctx,
			`UPDATE inventory_applications SET applied = true WHERE reservation_id = $1`,
			reservationID); err != nil {
			return false, infra.ClassifyPgErr("failed to record decrement", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return false, infra.ClassifyPgErr("failed to commit decrement", err)
	}
	return applied, nil
}

// AdjustInventory applies a signed delta, keeping the counter within
// [0, total_qty]. Used by the administrative synchronous path and for
// restocks.
func (r *ItemRepository) AdjustInventory(ctx context.Context, id int64, delta int) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE reservation_items
		SET inventory_qty = inventory_qty + $2, updated_at = now()
		WHERE id = $1
		  AND inventory_qty + $2 >= 0
		  AND inventory_qty + $2 <= total_qty`,
		id, delta)
	if err != nil {
		return false, infra.ClassifyPgErr("failed to adjust inventory", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ItemRepository) Create(ctx context.Context, it *item.Item) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO reservation_items (
			name, location_ref, category, total_qty, inventory_qty,
			operation_start, operation_end, request_start, request_end,
			means, is_period, period_max_count, paid, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,now(),now())
		RETURNING id`,
		it.Name(), it.LocationRef(), it.Category().String(), it.TotalQty(), it.InventoryQty(),
		it.OperationStart(), it.OperationEnd(), it.RequestStart(), it.RequestEnd(),
		it.Means().String(), it.IsPeriod(), it.PeriodMaxCount(), it.Paid(),
	).Scan(&id)
	if err != nil {
		return 0, infra.ClassifyPgErr("failed to create item", err)
	}
	return id, nil
}

func scanItem(row pgx.Row) (*item.Item, error) {
	var (
		id                           int64
		name, locationRef            string
		category, means              string
		totalQty, inventoryQty       int
		opStart, opEnd, reqS, reqE   time.Time
		isPeriod, paid               bool
		periodMaxCount               int
		createdAt, updatedAt         time.Time
	)
	err := row.Scan(
		&id, &name, &locationRef, &category, &totalQty, &inventoryQty,
		&opStart, &opEnd, &reqS, &reqE,
		&means, &isPeriod, &periodMaxCount, &paid, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item.ReconstructItem(
		id, name, locationRef, item.Category(category),
		totalQty, inventoryQty,
		opStart, opEnd, reqS, reqE,
		item.Means(means), isPeriod, periodMaxCount, paid,
		createdAt, updatedAt,
	), nil
}
