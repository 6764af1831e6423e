package readstore

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"reserve-portal/internal/infra"
	"reserve-portal/internal/usecase/queries"
)

type ItemReadStore struct {
	db *pgxpool.Pool
}

func NewItemReadStore(db *pgxpool.Pool) *ItemReadStore {
	return &ItemReadStore{db: db}
}

func (s *ItemReadStore) FindByID(ctx context.Context, id int64) (*queries.ItemView, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, location_ref, category, total_qty, inventory_qty,
		       operation_start, operation_end, request_start, request_end,
		       means, is_period, period_max_count, paid, created_at, updated_at
		FROM reservation_items WHERE id = $1`, id)

	var v queries.ItemView
	err := row.Scan(
		&v.ID, &v.Name, &v.LocationRef, &v.Category, &v.TotalQty, &v.InventoryQty,
		&v.OperationStart, &v.OperationEnd, &v.RequestStart, &v.RequestEnd,
		&v.Means, &v.IsPeriod, &v.PeriodMaxCount, &v.Paid, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, infra.ClassifyPgErr("failed to find item view", err)
	}
	return &v, nil
}
