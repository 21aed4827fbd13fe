package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa una unidad de stock (SKU) del almacén.
// CurrentStock solo es autoritativo para ítems simples; para un compuesto la
// disponibilidad se calcula desde su receta y el campo nunca se lee ni escribe.
type Item struct {
	ID           string
	SKU          string // código único legible
	Name         string
	CurrentStock decimal.Decimal
	MinStock     *decimal.Decimal // umbral de reorden, solo ítems simples (nil = sin umbral)
	Unit         string           // unidad de medida, informativa
	IsComposite  bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RecipeLine una línea de la receta de un ítem compuesto: cuánto componente
// se consume por cada unidad terminada del padre.
type RecipeLine struct {
	CompositeID string
	ComponentID string
	Quantity    decimal.Decimal // cantidad de componente por unidad del padre
	SortOrder   int             // solo orden de presentación
}
