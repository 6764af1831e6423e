package response

import (
	"time"

	"reserve-portal/internal/usecase/queries"
)

type ItemResponse struct {
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

func FromItemView(v *queries.ItemView) *ItemResponse {
	return &ItemResponse{
		ID:             v.ID,
		Name:           v.Name,
		LocationRef:    v.LocationRef,
		Category:       v.Category,
		TotalQty:       v.TotalQty,
		InventoryQty:   v.InventoryQty,
		OperationStart: v.OperationStart,
		OperationEnd:   v.OperationEnd,
		RequestStart:   v.RequestStart,
		RequestEnd:     v.RequestEnd,
		Means:          v.Means,
		IsPeriod:       v.IsPeriod,
		PeriodMaxCount: v.PeriodMaxCount,
		Paid:           v.Paid,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}
