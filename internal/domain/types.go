package domain

// Warehouse is the backend's warehouse record. The API uses snake_case keys
// for warehouses in both directions.
type Warehouse struct {
	ID              int64  `json:"id"`
	WarehouseName   string `json:"warehouse_name"`
	Address         string `json:"address"`
	City            string `json:"city"`
	Country         string `json:"country"`
	ContactName     string `json:"contact_name"`
	ContactPosition string `json:"contact_position"`
	ContactPhone    string `json:"contact_phone"`
	ContactEmail    string `json:"contact_email"`
}

// InventoryItem is the backend's inventory record as returned by reads.
// Unlike warehouses, inventory reads come back camelCase.
type InventoryItem struct {
	ID            int64  `json:"id"`
	ItemName      string `json:"itemName"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Status        string `json:"status"`
	Quantity      int64  `json:"quantity"`
	WarehouseName string `json:"warehouseName"`
}

// Option is one choice in a dropdown or radio group.
type Option struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// WarehousePayload is the wire shape for warehouse writes.
type WarehousePayload struct {
	WarehouseName   string `json:"warehouse_name"`
	Address         string `json:"address"`
	City            string `json:"city"`
	Country         string `json:"country"`
	ContactName     string `json:"contact_name"`
	ContactPosition string `json:"contact_position"`
	ContactPhone    string `json:"contact_phone"`
	ContactEmail    string `json:"contact_email"`
}

// InventoryPayload is the wire shape for inventory writes. Writes are
// snake_case and reference the owning warehouse by id, not name.
type InventoryPayload struct {
	ItemName    string `json:"item_name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Quantity    int64  `json:"quantity"`
	WarehouseID int64  `json:"warehouse_id"`
}
