package queries

import (
	"context"
	"time"
)

type ItemView struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	LocationRef    string    `json:"location_ref"`
	Category       string    `json:"category"`
	TotalQty       int       `json:"total_qty"`
	InventoryQty   int       `json:"inventory_qty"`
	OperationStart time.Time `json:"operation_start"`
	OperationEnd   time.Time `json:"operation_end"`
	RequestStart   time.Time `json:"request_start"`
	RequestEnd     time.Time `json:"request_end"`
	Means          string    `json:"means"`
	IsPeriod       bool      `json:"is_period"`
	PeriodMaxCount int       `json:"period_max_count"`
	Paid           bool      `json:"paid"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ItemQueries interface {
	GetByID(ctx context.Context, id int64) (*ItemView, error)
}

type ItemViewRepo interface {
	FindByID(ctx context.Context, id int64) (*ItemView, error)
}

type itemQueriesImpl struct {
	repo ItemViewRepo
}

func NewItemQueries(repo ItemViewRepo) ItemQueries {
	return &itemQueriesImpl{repo: repo}
}

func (q *itemQueriesImpl) GetByID(ctx context.Context, id int64) (*ItemView, error) {
	return q.repo.FindByID(ctx, id)
}
