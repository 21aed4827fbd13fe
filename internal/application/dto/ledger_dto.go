package dto

import "github.com/shopspring/decimal"

// ComponentShortage detalle de un componente (o del propio ítem simple) que no
// alcanza a cubrir lo solicitado.
type ComponentShortage struct {
	ItemID    string          `json:"item_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Required  decimal.Decimal `json:"required"`
	Available decimal.Decimal `json:"available"`
	Shortage  decimal.Decimal `json:"shortage"`
}

// AvailabilityResult veredicto de disponibilidad para un ítem y una cantidad.
// Las condiciones esperadas (no encontrado, sin receta, insuficiente) se
// reportan aquí como datos, nunca como error, para que los chequeos por lote
// no se corten.
type AvailabilityResult struct {
	ItemID      string `json:"item_id"`
	SKU         string `json:"sku,omitempty"`
	Name        string `json:"name,omitempty"`
	Found       bool   `json:"found"`
	IsComposite bool   `json:"is_composite"`
	// HasRecipe es false solo para un compuesto sin líneas de receta; un
	// compuesto así es improducible para cualquier cantidad.
	HasRecipe              bool                `json:"has_recipe"`
	Requested              decimal.Decimal     `json:"requested"`
	AvailableQuantity      decimal.Decimal     `json:"available_quantity"`
	CanFulfill             bool                `json:"can_fulfill"`
	InsufficientComponents []ComponentShortage `json:"insufficient_components,omitempty"`
}

// LimitingComponent componente que fija el máximo producible de un compuesto.
type LimitingComponent struct {
	ItemID       string          `json:"item_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	PerUnit      decimal.Decimal `json:"per_unit"`
}

// CapacityResult unidades terminadas producibles ahora mismo con el stock de
// componentes en mano.
type CapacityResult struct {
	ItemID            string             `json:"item_id"`
	Found             bool               `json:"found"`
	CanProduce        decimal.Decimal    `json:"can_produce"`
	LimitingComponent *LimitingComponent `json:"limiting_component,omitempty"`
}

// OrderLine línea de chequeo: ítem del ledger + cantidad solicitada.
type OrderLine struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}

// UnmappedLine línea de pedido cuya referencia de catálogo no resuelve a un
// ítem del ledger. Se reporta aparte, no aborta el lote.
type UnmappedLine struct {
	CatalogRef string          `json:"catalog_ref"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// OrderCheckResult veredicto agregado de un pedido. Results conserva el orden
// de entrada; InsufficientItems repite (en el mismo orden) las líneas que no
// se pueden cumplir para armar un reporte de déficit completo.
type OrderCheckResult struct {
	CanFulfill        bool                 `json:"can_fulfill"`
	Results           []AvailabilityResult `json:"results"`
	InsufficientItems []AvailabilityResult `json:"insufficient_items,omitempty"`
	Unmapped          []UnmappedLine       `json:"unmapped,omitempty"`
}

// LowStockAlert ítem simple en o por debajo de su umbral de reorden.
type LowStockAlert struct {
	ItemID       string          `json:"item_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Shortage     decimal.Decimal `json:"shortage"`
}
