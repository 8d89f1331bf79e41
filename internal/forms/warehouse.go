package forms

import (
	"context"

	"instock/internal/domain"
	"instock/internal/stockapi"
)

// Warehouse form field names, in display order.
const (
	FieldWarehouseName   = "warehouseName"
	FieldAddress         = "address"
	FieldCity            = "city"
	FieldCountry         = "country"
	FieldContactName     = "contactName"
	FieldContactPosition = "contactPosition"
	FieldContactPhone    = "contactPhone"
	FieldContactEmail    = "contactEmail"
)

// WarehouseSchema is the fixed field set of the warehouse form.
var WarehouseSchema = []string{
	FieldWarehouseName,
	FieldAddress,
	FieldCity,
	FieldCountry,
	FieldContactName,
	FieldContactPosition,
	FieldContactPhone,
	FieldContactEmail,
}

// Submitter dispatches a validated form to the backend. *stockapi.Client
// satisfies it.
type Submitter interface {
	Add(ctx context.Context, resource string, payload any) error
	Edit(ctx context.Context, resource string, id int64, payload any) error
}

// WarehouseForm is one warehouse create/edit session. A zero ID means create
// mode; a positive ID means edit mode submitting an update for that record.
type WarehouseForm struct {
	Form
	ID int64
}

// NewWarehouseForm seeds a form from an existing record, or empty when src
// is nil (create mode).
func NewWarehouseForm(src *domain.Warehouse) *WarehouseForm {
	f := &WarehouseForm{}
	seed := map[string]string{}
	if src != nil {
		f.ID = src.ID
		seed = map[string]string{
			FieldWarehouseName:   src.WarehouseName,
			FieldAddress:         src.Address,
			FieldCity:            src.City,
			FieldCountry:         src.Country,
			FieldContactName:     src.ContactName,
			FieldContactPosition: src.ContactPosition,
			FieldContactPhone:    src.ContactPhone,
			FieldContactEmail:    src.ContactEmail,
		}
	}
	f.Form = newForm(WarehouseSchema, seed)
	return f
}

// Set records a field edit, clearing the field's error. The contact phone
// is normalized into the +1 (xxx) xxx-xxxx pattern as it is typed.
func (f *WarehouseForm) Set(name, value string) {
	if name == FieldContactPhone {
		value = FormatPhoneNumber(value)
	}
	f.Form.Set(name, value)
}

// EditMode reports whether the form updates an existing record.
func (f *WarehouseForm) EditMode() bool {
	return f.ID > 0
}

// Validate runs the warehouse pipeline: the blank-field pass marks every
// empty field, and only when it is clean do the phone and email checks run.
// A failed phone check stops the email check from running at all.
func (f *WarehouseForm) Validate() bool {
	if !f.validateRequired() {
		return false
	}
	return f.validatePhone(FieldContactPhone) && f.validateEmail(FieldContactEmail)
}

// Payload maps the field values to the backend's snake_case wire shape.
func (f *WarehouseForm) Payload() domain.WarehousePayload {
	return domain.WarehousePayload{
		WarehouseName:   f.Value(FieldWarehouseName),
		Address:         f.Value(FieldAddress),
		City:            f.Value(FieldCity),
		Country:         f.Value(FieldCountry),
		ContactName:     f.Value(FieldContactName),
		ContactPosition: f.Value(FieldContactPosition),
		ContactPhone:    f.Value(FieldContactPhone),
		ContactEmail:    f.Value(FieldContactEmail),
	}
}

// Submit dispatches a create or update based on mode. Callers run Validate
// first; Submit does not re-check.
func (f *WarehouseForm) Submit(ctx context.Context, api Submitter) error {
	if f.EditMode() {
		return api.Edit(ctx, stockapi.ResourceWarehouses, f.ID, f.Payload())
	}
	return api.Add(ctx, stockapi.ResourceWarehouses, f.Payload())
}
