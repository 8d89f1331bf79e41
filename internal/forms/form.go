// Package forms owns the form state shared by the warehouse and inventory
// create/edit flows: seeding field values from an existing record, clearing
// errors on edit, the validation pipeline that gates submission, and mapping
// validated state to the backend's wire shape.
package forms

import "strings"

// FieldState is the value and validity flag for one form field. Editing a
// field always resets HasError; failed validation sets it without touching
// the value.
type FieldState struct {
	Value    string
	HasError bool
}

// Form is a fixed set of named fields. Every name in the schema is present
// from construction on; Set ignores names outside the schema so the key set
// never grows or shrinks during a session.
type Form struct {
	schema []string
	fields map[string]FieldState
}

func newForm(schema []string, seed map[string]string) Form {
	fields := make(map[string]FieldState, len(schema))
	for _, name := range schema {
		fields[name] = FieldState{Value: seed[name]}
	}
	return Form{schema: schema, fields: fields}
}

// Set replaces the named field with the new value and a cleared error flag.
func (f *Form) Set(name, value string) {
	if _, ok := f.fields[name]; !ok {
		return
	}
	f.fields[name] = FieldState{Value: value}
}

// Field returns the named field's state. Names outside the schema return a
// zero FieldState.
func (f *Form) Field(name string) FieldState {
	return f.fields[name]
}

// Value returns the named field's current value.
func (f *Form) Value(name string) string {
	return f.fields[name].Value
}

// Schema returns the field names in declaration order.
func (f *Form) Schema() []string {
	return f.schema
}

func (f *Form) markError(name string) {
	state := f.fields[name]
	state.HasError = true
	f.fields[name] = state
}

// validateRequired marks every field whose trimmed value is empty, skipping
// the named exceptions. It marks all offending fields, not just the first,
// and reports whether the form passed.
func (f *Form) validateRequired(skip ...string) bool {
	valid := true
	for _, name := range f.schema {
		if contains(skip, name) {
			continue
		}
		if strings.TrimSpace(f.fields[name].Value) == "" {
			f.markError(name)
			valid = false
		}
	}
	return valid
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
