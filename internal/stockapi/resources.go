package stockapi

import (
	"context"
	"strconv"

	"instock/internal/domain"
)

// Typed accessors over the generic operations, one per read the app makes.

func (c *Client) Warehouses(ctx context.Context) ([]domain.Warehouse, error) {
	var warehouses []domain.Warehouse
	if err := c.GetAll(ctx, ResourceWarehouses, &warehouses); err != nil {
		return nil, err
	}
	return warehouses, nil
}

func (c *Client) Warehouse(ctx context.Context, id int64) (*domain.Warehouse, error) {
	var warehouse domain.Warehouse
	if err := c.GetByID(ctx, ResourceWarehouses, id, &warehouse); err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (c *Client) InventoryItems(ctx context.Context) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	if err := c.GetAll(ctx, ResourceInventories, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) InventoryItem(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	if err := c.GetByID(ctx, ResourceInventories, id, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) WarehouseInventory(ctx context.Context, warehouseID int64) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	if err := c.InventoryByWarehouse(ctx, ResourceWarehouses, warehouseID, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) InventoryCategories(ctx context.Context) ([]domain.Option, error) {
	var categories []domain.Option
	if err := c.Categories(ctx, ResourceInventories, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// WarehouseOptions lists warehouses as dropdown options, id stringified and
// the display value set to the warehouse name.
func (c *Client) WarehouseOptions(ctx context.Context) ([]domain.Option, error) {
	warehouses, err := c.Warehouses(ctx)
	if err != nil {
		return nil, err
	}
	options := make([]domain.Option, 0, len(warehouses))
	for _, w := range warehouses {
		options = append(options, domain.Option{
			ID:    strconv.FormatInt(w.ID, 10),
			Value: w.WarehouseName,
		})
	}
	return options, nil
}
