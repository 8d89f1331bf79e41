package web

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"instock/internal/domain"
	"instock/internal/forms"
	"instock/internal/stockapi"
)

// inventoryStatuses are the fixed status choices of the availability radio.
var inventoryStatuses = []domain.Option{
	{ID: "1", Value: forms.StatusInStock},
	{ID: "2", Value: forms.StatusOutOfStock},
}

func (s *Server) handleListInventory(w http.ResponseWriter, r *http.Request) {
	items, err := s.api.InventoryItems(r.Context())
	if err != nil {
		s.renderError(w, err, "/inventory")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query != "" {
		items = filterInventory(items, query)
	}
	sortKey, dir := sortParams(r, "item")
	sortInventory(items, sortKey, dir)

	s.renderPage(w, http.StatusOK, s.pageData(w, r, "inventory", map[string]any{
		"Items":   items,
		"Query":   query,
		"NextDir": nextDir(dir),
	}), "pages/inventory.html")
}

func (s *Server) handleInventoryDetail(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid inventory id", http.StatusBadRequest)
		return
	}

	item, err := s.api.InventoryItem(r.Context(), id)
	if err != nil {
		s.renderError(w, err, "/inventory")
		return
	}

	s.renderPage(w, http.StatusOK, s.pageData(w, r, "inventory", map[string]any{
		"Item": item,
	}), "pages/inventory_detail.html")
}

func (s *Server) handleNewInventoryForm(w http.ResponseWriter, r *http.Request) {
	f := forms.NewInventoryForm(nil)
	s.renderInventoryForm(w, r, http.StatusOK, f, "")
}

func (s *Server) handleCreateInventory(w http.ResponseWriter, r *http.Request) {
	f := forms.NewInventoryForm(nil)
	bindForm(r, forms.InventorySchema, f.Set)

	if !f.Validate() {
		s.renderInventoryForm(w, r, http.StatusUnprocessableEntity, f, "")
		return
	}

	warehouses, err := s.api.WarehouseOptions(r.Context())
	if err != nil {
		s.renderInventoryForm(w, r, submitStatus(err), f, err.Error())
		return
	}
	if err := f.Submit(r.Context(), s.api, warehouses); err != nil {
		s.renderInventoryForm(w, r, submitStatus(err), f, err.Error())
		return
	}

	s.renderSuccess(w, r, "inventory", f.Value(forms.FieldItemName), false, "/inventory")
}

func (s *Server) handleEditInventoryForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid inventory id", http.StatusBadRequest)
		return
	}

	item, err := s.api.InventoryItem(r.Context(), id)
	if err != nil {
		s.renderError(w, err, "/inventory")
		return
	}

	f := forms.NewInventoryForm(item)
	s.renderInventoryForm(w, r, http.StatusOK, f, "")
}

func (s *Server) handleUpdateInventory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid inventory id", http.StatusBadRequest)
		return
	}

	f := forms.NewInventoryForm(nil)
	f.ID = id
	bindForm(r, forms.InventorySchema, f.Set)

	if !f.Validate() {
		s.renderInventoryForm(w, r, http.StatusUnprocessableEntity, f, "")
		return
	}

	warehouses, err := s.api.WarehouseOptions(r.Context())
	if err != nil {
		s.renderInventoryForm(w, r, submitStatus(err), f, err.Error())
		return
	}
	if err := f.Submit(r.Context(), s.api, warehouses); err != nil {
		s.renderInventoryForm(w, r, submitStatus(err), f, err.Error())
		return
	}

	s.renderSuccess(w, r, "inventory", f.Value(forms.FieldItemName), true, "/inventory")
}

func (s *Server) handleDeleteInventory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid inventory id", http.StatusBadRequest)
		return
	}

	if err := s.api.Delete(r.Context(), stockapi.ResourceInventories, id); err != nil {
		s.renderError(w, err, "/inventory")
		return
	}

	w.Header().Set("HX-Redirect", "/inventory")
	w.WriteHeader(http.StatusOK)
}

func (s *Server) renderInventoryForm(w http.ResponseWriter, r *http.Request, status int, f *forms.InventoryForm, banner string) {
	action := "/inventory/add"
	if f.EditMode() {
		action = "/inventory/" + formatID(f.ID) + "/edit"
	}

	// The options lists are presentation data: a fetch failure logs and
	// leaves the dropdown empty rather than replacing the form with an
	// error view.
	categories := s.fetchOptions(r.Context(), "categories", s.api.InventoryCategories)
	warehouses := s.fetchOptions(r.Context(), "warehouses", s.api.WarehouseOptions)

	s.renderPage(w, status, s.pageData(w, r, "inventory", map[string]any{
		"EditMode":    f.EditMode(),
		"Action":      action,
		"Error":       banner,
		"ItemName":    inventoryField(f, forms.FieldItemName, "Item Name"),
		"Description": f.Field(forms.FieldDescription),
		"Category":    f.Field(forms.FieldCategory),
		"Status":      f.Field(forms.FieldStatus),
		"Quantity":    f.Field(forms.FieldQuantity),
		"Warehouse":   f.Field(forms.FieldWarehouse),
		"Categories":  categories,
		"Warehouses":  warehouses,
		"Statuses":    inventoryStatuses,
	}), "pages/inventory_form.html", "partials/text_field.html")
}

func (s *Server) fetchOptions(ctx context.Context, kind string, fetch func(context.Context) ([]domain.Option, error)) []domain.Option {
	options, err := fetch(ctx)
	if err != nil {
		s.logger.Error("failed to fetch options", "kind", kind, "error", err)
		return nil
	}
	return options
}

func inventoryField(f *forms.InventoryForm, name, label string) fieldView {
	state := f.Field(name)
	return fieldView{Name: name, Label: label, Value: state.Value, HasError: state.HasError}
}

func filterInventory(items []domain.InventoryItem, query string) []domain.InventoryItem {
	q := strings.ToLower(query)
	matched := make([]domain.InventoryItem, 0, len(items))
	for _, item := range items {
		haystack := strings.ToLower(strings.Join([]string{
			item.ItemName, item.Category, item.WarehouseName,
		}, " "))
		if strings.Contains(haystack, q) {
			matched = append(matched, item)
		}
	}
	return matched
}

func sortInventory(items []domain.InventoryItem, key, dir string) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if dir == "desc" {
			a, b = b, a
		}
		switch key {
		case "category":
			return strings.ToLower(a.Category) < strings.ToLower(b.Category)
		case "quantity":
			return a.Quantity < b.Quantity
		case "warehouse":
			return strings.ToLower(a.WarehouseName) < strings.ToLower(b.WarehouseName)
		default:
			return strings.ToLower(a.ItemName) < strings.ToLower(b.ItemName)
		}
	})
}
