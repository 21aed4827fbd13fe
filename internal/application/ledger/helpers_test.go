package ledger_test

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/memstore"
)

// dec parsea un decimal literal de test.
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedSimple siembra un ítem simple activo con el stock dado.
func seedSimple(store *memstore.Store, id, stock string) *entity.Item {
	item := &entity.Item{
		ID:           id,
		SKU:          "SKU-" + id,
		Name:         "Ítem " + id,
		CurrentStock: dec(stock),
		Unit:         "und",
		IsActive:     true,
	}
	store.PutItem(item)
	return item
}

// recipeEntry línea de receta para sembrar: componente y cantidad por unidad.
type recipeEntry struct {
	component string
	qty       string
}

// seedComposite siembra un compuesto con su receta en el orden dado. Los
// componentes deben sembrarse aparte.
func seedComposite(store *memstore.Store, id string, recipe ...recipeEntry) *entity.Item {
	item := &entity.Item{
		ID:          id,
		SKU:         "SKU-" + id,
		Name:        "Compuesto " + id,
		Unit:        "und",
		IsComposite: true,
		IsActive:    true,
	}
	store.PutItem(item)
	lines := make([]entity.RecipeLine, 0, len(recipe))
	for i, entry := range recipe {
		lines = append(lines, entity.RecipeLine{
			CompositeID: id,
			ComponentID: entry.component,
			Quantity:    dec(entry.qty),
			SortOrder:   i,
		})
	}
	store.PutRecipe(id, lines)
	return item
}
