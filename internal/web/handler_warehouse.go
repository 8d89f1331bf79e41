package web

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"instock/internal/domain"
	"instock/internal/forms"
	"instock/internal/stockapi"
)

// fieldView is what the text_field partial renders.
type fieldView struct {
	Name      string
	Label     string
	Value     string
	HasError  bool
	ErrorHint string
}

// phoneView is what the phone_input partial renders.
type phoneView struct {
	Value    string
	HasError bool
	Caret    int
	Focused  bool
}

func (s *Server) handleListWarehouses(w http.ResponseWriter, r *http.Request) {
	warehouses, err := s.api.Warehouses(r.Context())
	if err != nil {
		s.renderError(w, err, "/warehouses")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query != "" {
		warehouses = filterWarehouses(warehouses, query)
	}
	sortKey, dir := sortParams(r, "warehouse")
	sortWarehouses(warehouses, sortKey, dir)

	s.renderPage(w, http.StatusOK, s.pageData(w, r, "warehouses", map[string]any{
		"Warehouses": warehouses,
		"Query":      query,
		"NextDir":    nextDir(dir),
	}), "pages/warehouses.html")
}

func (s *Server) handleWarehouseDetail(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid warehouse id", http.StatusBadRequest)
		return
	}

	warehouse, err := s.api.Warehouse(r.Context(), id)
	if err != nil {
		s.renderError(w, err, "/warehouses")
		return
	}
	items, err := s.api.WarehouseInventory(r.Context(), id)
	if err != nil {
		s.renderError(w, err, "/warehouses")
		return
	}

	s.renderPage(w, http.StatusOK, s.pageData(w, r, "warehouses", map[string]any{
		"Warehouse": warehouse,
		"Items":     items,
	}), "pages/warehouse_detail.html")
}

func (s *Server) handleNewWarehouseForm(w http.ResponseWriter, r *http.Request) {
	f := forms.NewWarehouseForm(nil)
	s.renderWarehouseForm(w, r, http.StatusOK, f, "")
}

func (s *Server) handleCreateWarehouse(w http.ResponseWriter, r *http.Request) {
	f := forms.NewWarehouseForm(nil)
	bindForm(r, forms.WarehouseSchema, f.Set)

	if !f.Validate() {
		s.renderWarehouseForm(w, r, http.StatusUnprocessableEntity, f, "")
		return
	}

	if err := f.Submit(r.Context(), s.api); err != nil {
		s.renderWarehouseForm(w, r, submitStatus(err), f, err.Error())
		return
	}

	s.renderSuccess(w, r, "warehouse", f.Value(forms.FieldWarehouseName), false, "/warehouses")
}

func (s *Server) handleEditWarehouseForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid warehouse id", http.StatusBadRequest)
		return
	}

	// The form renders only after the record fetch resolves, so there is no
	// window where edits could be clobbered by a late-arriving rebuild.
	warehouse, err := s.api.Warehouse(r.Context(), id)
	if err != nil {
		s.renderError(w, err, "/warehouses")
		return
	}

	f := forms.NewWarehouseForm(warehouse)
	s.renderWarehouseForm(w, r, http.StatusOK, f, "")
}

func (s *Server) handleUpdateWarehouse(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid warehouse id", http.StatusBadRequest)
		return
	}

	f := forms.NewWarehouseForm(nil)
	f.ID = id
	bindForm(r, forms.WarehouseSchema, f.Set)

	if !f.Validate() {
		s.renderWarehouseForm(w, r, http.StatusUnprocessableEntity, f, "")
		return
	}

	if err := f.Submit(r.Context(), s.api); err != nil {
		s.renderWarehouseForm(w, r, submitStatus(err), f, err.Error())
		return
	}

	s.renderSuccess(w, r, "warehouse", f.Value(forms.FieldWarehouseName), true, "/warehouses")
}

func (s *Server) handleDeleteWarehouse(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid warehouse id", http.StatusBadRequest)
		return
	}

	// Deleting an id that is already gone reports the backend's "not found"
	// message rather than pretending the delete succeeded.
	if err := s.api.Delete(r.Context(), stockapi.ResourceWarehouses, id); err != nil {
		s.renderError(w, err, "/warehouses")
		return
	}

	w.Header().Set("HX-Redirect", "/warehouses")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) renderWarehouseForm(w http.ResponseWriter, r *http.Request, status int, f *forms.WarehouseForm, banner string) {
	action := "/warehouses/add"
	if f.EditMode() {
		action = "/warehouses/" + formatID(f.ID) + "/edit"
	}

	detailFields := []fieldView{
		warehouseField(f, forms.FieldWarehouseName, "Warehouse Name"),
		warehouseField(f, forms.FieldAddress, "Address"),
		warehouseField(f, forms.FieldCity, "City"),
		warehouseField(f, forms.FieldCountry, "Country"),
	}
	contactFields := []fieldView{
		warehouseField(f, forms.FieldContactName, "Contact Name"),
		warehouseField(f, forms.FieldContactPosition, "Position"),
	}

	email := warehouseField(f, forms.FieldContactEmail, "Email")
	if email.HasError && strings.TrimSpace(email.Value) != "" {
		email.ErrorHint = "Enter an email like name@company.com."
	}
	phone := f.Field(forms.FieldContactPhone)

	s.renderPage(w, status, s.pageData(w, r, "warehouses", map[string]any{
		"EditMode":      f.EditMode(),
		"Action":        action,
		"Error":         banner,
		"DetailFields":  detailFields,
		"ContactFields": contactFields,
		"Phone":         phoneView{Value: phone.Value, HasError: phone.HasError},
		"Email":         email,
	}), "pages/warehouse_form.html", "partials/text_field.html", "partials/phone_input.html")
}

func (s *Server) renderSuccess(w http.ResponseWriter, r *http.Request, kind, name string, editMode bool, doneURL string) {
	s.renderPage(w, http.StatusOK, s.pageData(w, r, "", map[string]any{
		"Kind":     kind,
		"Name":     name,
		"EditMode": editMode,
		"DoneURL":  doneURL,
	}), "pages/success.html")
}

func warehouseField(f *forms.WarehouseForm, name, label string) fieldView {
	state := f.Field(name)
	return fieldView{Name: name, Label: label, Value: state.Value, HasError: state.HasError}
}

// bindForm applies the posted value of every schema field through the form's
// Set method, which clears stale error flags and normalizes where needed.
func bindForm(r *http.Request, schema []string, set func(name, value string)) {
	for _, name := range schema {
		set(name, r.FormValue(name))
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// submitStatus picks the response status for a failed submission: the
// backend's status when there is one, 502 for transport-level failures.
func submitStatus(err error) int {
	var domainErr *stockapi.DomainError
	if errors.As(err, &domainErr) && domainErr.Status >= 400 {
		return domainErr.Status
	}
	return http.StatusBadGateway
}

func sortParams(r *http.Request, defaultKey string) (key, dir string) {
	key = r.URL.Query().Get("sort")
	if key == "" {
		key = defaultKey
	}
	dir = r.URL.Query().Get("dir")
	if dir != "desc" {
		dir = "asc"
	}
	return key, dir
}

func nextDir(dir string) string {
	if dir == "asc" {
		return "desc"
	}
	return "asc"
}

func filterWarehouses(warehouses []domain.Warehouse, query string) []domain.Warehouse {
	q := strings.ToLower(query)
	matched := make([]domain.Warehouse, 0, len(warehouses))
	for _, wh := range warehouses {
		haystack := strings.ToLower(strings.Join([]string{
			wh.WarehouseName, wh.Address, wh.City, wh.Country, wh.ContactName,
		}, " "))
		if strings.Contains(haystack, q) {
			matched = append(matched, wh)
		}
	}
	return matched
}

func sortWarehouses(warehouses []domain.Warehouse, key, dir string) {
	sort.SliceStable(warehouses, func(i, j int) bool {
		a, b := warehouses[i], warehouses[j]
		if dir == "desc" {
			a, b = b, a
		}
		switch key {
		case "address":
			return strings.ToLower(a.Address) < strings.ToLower(b.Address)
		case "contact":
			return strings.ToLower(a.ContactName) < strings.ToLower(b.ContactName)
		default:
			return strings.ToLower(a.WarehouseName) < strings.ToLower(b.WarehouseName)
		}
	})
}
