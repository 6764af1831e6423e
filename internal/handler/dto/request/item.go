package request

type AdjustInventoryRequest struct {
	// Delta is added to the item's available inventory; negative
	// values consume units, positive values restock.
	Delta int `json:"delta" binding:"required"`
}
