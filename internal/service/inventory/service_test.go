package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medhq/hms-api/internal/model"
	"github.com/medhq/hms-api/internal/repository/memory"
	apperrors "github.com/medhq/hms-api/pkg/errors"
)

type recordingEmailer struct {
	alerts []*model.InventoryItem
}

func (r *recordingEmailer) SendLowStockAlert(_ context.Context, item *model.InventoryItem) error {
	r.alerts = append(r.alerts, item)
	return nil
}

func newFixture() (*Service, *recordingEmailer) {
	emailer := &recordingEmailer{}
	return NewService(memory.NewStore().Inventory(), emailer), emailer
}

func createRequest(name string, quantity, reorder int) *model.CreateInventoryItemRequest {
	cost := 2.5
	return &model.CreateInventoryItemRequest{
		Name:         name,
		Category:     "MEDICINE",
		Unit:         "box",
		Quantity:     &quantity,
		ReorderLevel: reorder,
		Cost:         &cost,
	}
}

func TestCreateItem(t *testing.T) {
	service, _ := newFixture()

	item, err := service.CreateItem(context.Background(), createRequest("Paracetamol", 40, 10))
	require.NoError(t, err)
	assert.Equal(t, 40, item.Quantity)
	assert.False(t, item.LowStock())
}

func TestLowStockBoundaryIsInclusive(t *testing.T) {
	service, _ := newFixture()
	ctx := context.Background()

	atLevel, err := service.CreateItem(ctx, createRequest("Gauze", 10, 10))
	require.NoError(t, err)
	assert.True(t, atLevel.LowStock())

	above, err := service.CreateItem(ctx, createRequest("Saline", 11, 10))
	require.NoError(t, err)
	assert.False(t, above.LowStock())

	low, err := service.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Gauze", low[0].Name)
}

func TestUpdateAlertsOnLowStockCrossing(t *testing.T) {
	service, emailer := newFixture()
	ctx := context.Background()

	item, err := service.CreateItem(ctx, createRequest("Paracetamol", 40, 10))
	require.NoError(t, err)

	quantity := 8
	_, err = service.UpdateItem(ctx, item.ID, &model.UpdateInventoryItemRequest{Quantity: &quantity})
	require.NoError(t, err)
	require.Len(t, emailer.alerts, 1)
	assert.Equal(t, "Paracetamol", emailer.alerts[0].Name)

	// Further writes while already low stay quiet.
	quantity = 5
	_, err = service.UpdateItem(ctx, item.ID, &model.UpdateInventoryItemRequest{Quantity: &quantity})
	require.NoError(t, err)
	assert.Len(t, emailer.alerts, 1)

	// Restock, then drop again: a second crossing alerts again.
	quantity = 50
	_, err = service.UpdateItem(ctx, item.ID, &model.UpdateInventoryItemRequest{Quantity: &quantity})
	require.NoError(t, err)
	quantity = 3
	_, err = service.UpdateItem(ctx, item.ID, &model.UpdateInventoryItemRequest{Quantity: &quantity})
	require.NoError(t, err)
	assert.Len(t, emailer.alerts, 2)
}

func TestListByCategory(t *testing.T) {
	service, _ := newFixture()
	ctx := context.Background()

	_, err := service.CreateItem(ctx, createRequest("Paracetamol", 40, 10))
	require.NoError(t, err)

	equipment := createRequest("Wheelchair", 4, 1)
	equipment.Category = "EQUIPMENT"
	_, err = service.CreateItem(ctx, equipment)
	require.NoError(t, err)

	medicine, err := service.ListByCategory(ctx, "MEDICINE")
	require.NoError(t, err)
	require.Len(t, medicine, 1)
	assert.Equal(t, "Paracetamol", medicine[0].Name)

	_, err = service.ListByCategory(ctx, "FURNITURE")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestDeleteItem(t *testing.T) {
	service, _ := newFixture()
	ctx := context.Background()

	item, err := service.CreateItem(ctx, createRequest("Paracetamol", 40, 10))
	require.NoError(t, err)

	require.NoError(t, service.DeleteItem(ctx, item.ID))
	_, err = service.GetItem(ctx, item.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
