package forms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instock/internal/domain"
)

var testWarehouseOptions = []domain.Option{
	{ID: "1", Value: "Manhattan"},
	{ID: "2", Value: "Washington"},
}

func filledInventoryForm(status, quantity string) *InventoryForm {
	f := NewInventoryForm(nil)
	f.Set(FieldItemName, "Television")
	f.Set(FieldDescription, "A 50\" 4K LED TV")
	f.Set(FieldCategory, "Electronics")
	f.Set(FieldStatus, status)
	f.Set(FieldQuantity, quantity)
	f.Set(FieldWarehouse, "Manhattan")
	return f
}

func TestInventoryFormSeedsFromRecord(t *testing.T) {
	src := &domain.InventoryItem{
		ID:            12,
		ItemName:      "Paper Towels",
		Description:   "Made out of recycled paper",
		Category:      "Gear",
		Status:        "In Stock",
		Quantity:      601,
		WarehouseName: "Washington",
	}

	f := NewInventoryForm(src)

	assert.True(t, f.EditMode())
	assert.Equal(t, "Paper Towels", f.Value(FieldItemName))
	assert.Equal(t, "601", f.Value(FieldQuantity))
	assert.Equal(t, "Washington", f.Value(FieldWarehouse))
	for _, name := range InventorySchema {
		assert.False(t, f.Field(name).HasError, name)
	}
}

func TestInventoryFormSeedsZeroQuantityAsBlank(t *testing.T) {
	src := &domain.InventoryItem{ID: 5, ItemName: "Hoses", Status: "Out of Stock"}
	f := NewInventoryForm(src)
	assert.Empty(t, f.Value(FieldQuantity))
}

func TestInventoryValidateInStock(t *testing.T) {
	f := filledInventoryForm(StatusInStock, "500")
	assert.True(t, f.Validate())
}

func TestInventoryValidateInStockZeroQuantity(t *testing.T) {
	f := filledInventoryForm(StatusInStock, "0")

	assert.False(t, f.Validate())
	assert.True(t, f.Field(FieldQuantity).HasError)
}

func TestInventoryValidateInStockJunkQuantity(t *testing.T) {
	f := filledInventoryForm(StatusInStock, "lots")

	assert.False(t, f.Validate())
	assert.True(t, f.Field(FieldQuantity).HasError)
}

func TestInventoryValidateOutOfStockBlankQuantity(t *testing.T) {
	f := filledInventoryForm(StatusOutOfStock, "")

	assert.True(t, f.Validate())
	assert.False(t, f.Field(FieldQuantity).HasError)
}

func TestInventoryValidateStatusCaseInsensitive(t *testing.T) {
	f := filledInventoryForm("Out of stock", "")
	assert.True(t, f.Validate())
}

func TestInventoryValidateMarksAllProblemsInOnePass(t *testing.T) {
	f := NewInventoryForm(nil)
	f.Set(FieldStatus, StatusInStock)
	f.Set(FieldQuantity, "0")

	assert.False(t, f.Validate())

	// Blank fields and the quantity problem are reported together, not one
	// at a time.
	assert.True(t, f.Field(FieldItemName).HasError)
	assert.True(t, f.Field(FieldDescription).HasError)
	assert.True(t, f.Field(FieldCategory).HasError)
	assert.True(t, f.Field(FieldWarehouse).HasError)
	assert.True(t, f.Field(FieldQuantity).HasError)
	assert.False(t, f.Field(FieldStatus).HasError)
}

func TestInventoryPayloadResolvesWarehouseID(t *testing.T) {
	f := filledInventoryForm(StatusInStock, "500")

	payload, err := f.Payload(testWarehouseOptions)

	require.NoError(t, err)
	assert.Equal(t, domain.InventoryPayload{
		ItemName:    "Television",
		Description: "A 50\" 4K LED TV",
		Category:    "Electronics",
		Status:      StatusInStock,
		Quantity:    500,
		WarehouseID: 1,
	}, payload)
}

func TestInventoryPayloadOutOfStockCoercesQuantity(t *testing.T) {
	f := filledInventoryForm(StatusOutOfStock, "")

	payload, err := f.Payload(testWarehouseOptions)

	require.NoError(t, err)
	assert.Equal(t, int64(0), payload.Quantity)
}

func TestInventoryPayloadUnknownWarehouse(t *testing.T) {
	f := filledInventoryForm(StatusInStock, "500")
	f.Set(FieldWarehouse, "Atlantis")

	_, err := f.Payload(testWarehouseOptions)

	assert.Error(t, err)
}

func TestInventorySubmitDispatchesByMode(t *testing.T) {
	create := filledInventoryForm(StatusInStock, "500")
	api := &recordingSubmitter{}
	require.NoError(t, create.Submit(context.Background(), api, testWarehouseOptions))
	assert.Equal(t, []string{"inventories"}, api.added)

	edit := filledInventoryForm(StatusInStock, "500")
	edit.ID = 12
	api = &recordingSubmitter{}
	require.NoError(t, edit.Submit(context.Background(), api, testWarehouseOptions))
	assert.Equal(t, []int64{12}, api.edited)
	assert.Equal(t, "inventories", api.resource)
}
