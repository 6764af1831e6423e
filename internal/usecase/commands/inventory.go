package commands

import (
	"context"

	"reserve-portal/internal/infra"
	"reserve-portal/internal/pkg/errs"
)

var ErrInsufficientInventory = errs.New("insufficient inventory")

type ItemInventoryRepository interface {
	ItemReader
	AdjustInventory(ctx context.Context, id int64, delta int) (bool, error)
}

// InventoryCommands is the administrative synchronous path: a single
// guarded read-modify-write on the item row, race-safe under concurrent
// callers because the predicate and the write execute as one statement.
type InventoryCommands interface {
	Adjust(ctx context.Context, itemID int64, delta int) error
}

type inventoryUseCaseImpl struct {
	items ItemInventoryRepository
}

func NewInventoryUseCase(items ItemInventoryRepository) InventoryCommands {
	return &inventoryUseCaseImpl{items: items}
}

func (uc *inventoryUseCaseImpl) Adjust(ctx context.Context, itemID int64, delta int) error {
	if _, err := uc.items.FindByID(ctx, itemID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrItemNotFound)
		}
		return errs.Mark(err, ErrStorageFailure)
	}

	ok, err := uc.items.AdjustInventory(ctx, itemID, delta)
	if err != nil {
		return errs.Mark(err, ErrStorageFailure)
	}
	if !ok {
		// The guarded update found the delta would leave the counter
		// outside [0, total]; nothing was mutated.
		return ErrInsufficientInventory
	}
	return nil
}
