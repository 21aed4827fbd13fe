package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para ítems y sus recetas (DIP).
// Los Get devuelven (nil, nil) cuando el ítem no existe: el no-encontrado es una
// condición esperada del ledger, no un error.
type ItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Item, error)
	// GetForUpdate bloquea la fila del ítem (SELECT FOR UPDATE). Solo tiene
	// sentido dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	// UpdateStock escribe el nuevo saldo de un ítem simple.
	UpdateStock(ctx context.Context, itemID string, quantity decimal.Decimal) error
	// GetRecipe devuelve las líneas de receta de un compuesto, en sort_order.
	GetRecipe(ctx context.Context, compositeID string) ([]entity.RecipeLine, error)
	// ListBelowMinStock devuelve ítems activos, simples y con umbral configurado
	// cuyo stock actual está en o por debajo del umbral.
	ListBelowMinStock(ctx context.Context) ([]*entity.Item, error)
}
