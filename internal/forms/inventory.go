package forms

import (
	"context"
	"fmt"
	"strconv"

	"instock/internal/domain"
	"instock/internal/stockapi"
)

// Inventory form field names, in display order.
const (
	FieldItemName    = "itemName"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldStatus      = "status"
	FieldQuantity    = "quantity"
	FieldWarehouse   = "warehouse"
)

// InventorySchema is the fixed field set of the inventory form.
var InventorySchema = []string{
	FieldItemName,
	FieldDescription,
	FieldCategory,
	FieldStatus,
	FieldQuantity,
	FieldWarehouse,
}

// InventoryForm is one inventory create/edit session. A zero ID means
// create mode.
type InventoryForm struct {
	Form
	ID int64
}

// NewInventoryForm seeds a form from an existing record, or empty when src
// is nil. The numeric quantity becomes the field's string value; the owning
// warehouse is seeded by display name and resolved back to an id at submit.
func NewInventoryForm(src *domain.InventoryItem) *InventoryForm {
	f := &InventoryForm{}
	seed := map[string]string{}
	if src != nil {
		f.ID = src.ID
		quantity := ""
		if src.Quantity > 0 {
			quantity = strconv.FormatInt(src.Quantity, 10)
		}
		seed = map[string]string{
			FieldItemName:    src.ItemName,
			FieldDescription: src.Description,
			FieldCategory:    src.Category,
			FieldStatus:      src.Status,
			FieldQuantity:    quantity,
			FieldWarehouse:   src.WarehouseName,
		}
	}
	f.Form = newForm(InventorySchema, seed)
	return f
}

// EditMode reports whether the form updates an existing record.
func (f *InventoryForm) EditMode() bool {
	return f.ID > 0
}

// OutOfStock reports whether the current status makes quantity optional.
func (f *InventoryForm) OutOfStock() bool {
	return statusIs(f.Value(FieldStatus), StatusOutOfStock)
}

// Validate runs the inventory pipeline: the blank-field check and the
// conditional quantity check run together, so a form with several problems
// marks all of them in one pass. Quantity is exempt from the blank check
// when the item is out of stock; in stock it must be a positive number.
func (f *InventoryForm) Validate() bool {
	valid := f.validateRequired(FieldQuantity)

	if f.OutOfStock() {
		return valid
	}
	if _, ok := parsePositiveQuantity(f.Value(FieldQuantity)); !ok {
		f.markError(FieldQuantity)
		valid = false
	}
	return valid
}

// Payload maps the field values to the backend's snake_case wire shape,
// resolving the chosen warehouse display name to its backend id via the
// options list. Out-of-stock items submit quantity 0 regardless of the
// field's contents.
func (f *InventoryForm) Payload(warehouses []domain.Option) (domain.InventoryPayload, error) {
	warehouseID, err := resolveWarehouseID(f.Value(FieldWarehouse), warehouses)
	if err != nil {
		return domain.InventoryPayload{}, err
	}

	var quantity int64
	if !f.OutOfStock() {
		quantity, _ = parsePositiveQuantity(f.Value(FieldQuantity))
	}

	return domain.InventoryPayload{
		ItemName:    f.Value(FieldItemName),
		Description: f.Value(FieldDescription),
		Category:    f.Value(FieldCategory),
		Status:      f.Value(FieldStatus),
		Quantity:    quantity,
		WarehouseID: warehouseID,
	}, nil
}

// Submit builds the payload and dispatches a create or update based on mode.
// Callers run Validate first; Submit does not re-check.
func (f *InventoryForm) Submit(ctx context.Context, api Submitter, warehouses []domain.Option) error {
	payload, err := f.Payload(warehouses)
	if err != nil {
		return err
	}
	if f.EditMode() {
		return api.Edit(ctx, stockapi.ResourceInventories, f.ID, payload)
	}
	return api.Add(ctx, stockapi.ResourceInventories, payload)
}

func resolveWarehouseID(name string, warehouses []domain.Option) (int64, error) {
	for _, w := range warehouses {
		if w.Value == name {
			id, err := strconv.ParseInt(w.ID, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("warehouse option %q has bad id %q: %w", name, w.ID, err)
			}
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown warehouse %q", name)
}
