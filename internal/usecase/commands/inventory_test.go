//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"reserve-portal/internal/domain/item"
	"reserve-portal/internal/usecase/commands"
	commandsmock "reserve-portal/tests/mock/commands"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func inventoryItem(t *testing.T) *item.Item {
	t.Helper()
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	it, err := item.NewItem(
		"projector", "storage-2", item.CategoryEquipment,
		5, 3,
		base, base.AddDate(1, 0, 0),
		base, base.AddDate(1, 0, 0),
		item.MeansRealtime, false, 0, false,
	)
	require.NoError(t, err)
	return it
}

func TestInventoryAdjust(t *testing.T) {
	newUC := func(t *testing.T) (*commandsmock.MockItemInventoryRepository, commands.InventoryCommands) {
		ctrl := gomock.NewController(t)
		repo := commandsmock.NewMockItemInventoryRepository(ctrl)
		return repo, commands.NewInventoryUseCase(repo)
	}

	t.Run("delta within bounds is applied", func(t *testing.T) {
		repo, uc := newUC(t)
		repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(inventoryItem(t), nil)
		repo.EXPECT().AdjustInventory(gomock.Any(), int64(1), -2).Return(true, nil)

		require.NoError(t, uc.Adjust(context.Background(), 1, -2))
	})

	t.Run("restock is applied", func(t *testing.T) {
		repo, uc := newUC(t)
		repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(inventoryItem(t), nil)
		repo.EXPECT().AdjustInventory(gomock.Any(), int64(1), 2).Return(true, nil)

		require.NoError(t, uc.Adjust(context.Background(), 1, 2))
	})

	t.Run("guarded update refusing the delta", func(t *testing.T) {
		repo, uc := newUC(t)
		repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(inventoryItem(t), nil)
		repo.EXPECT().AdjustInventory(gomock.Any(), int64(1), -4).Return(false, nil)

		require.ErrorIs(t, uc.Adjust(context.Background(), 1, -4), commands.ErrInsufficientInventory)
	})

	t.Run("unknown item", func(t *testing.T) {
		repo, uc := newUC(t)
		repo.EXPECT().FindByID(gomock.Any(), int64(9)).Return(nil, notFoundErr())

		require.ErrorIs(t, uc.Adjust(context.Background(), 9, 1), commands.ErrItemNotFound)
	})
}
