package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// CatalogLine línea de un pedido externo: referencia de catálogo + cantidad.
// La referencia es el identificador que usa el sistema de pedidos (marketplace,
// tienda), no el ID del ledger.
type CatalogLine struct {
	CatalogRef string
	Quantity   decimal.Decimal
}

// CatalogRepository define el puerto para resolver pedidos externos contra el
// ledger: líneas de un pedido y mapeo referencia de catálogo → ítem del ledger.
type CatalogRepository interface {
	// OrderLines devuelve las líneas del pedido. Slice vacío cuando el pedido
	// no existe.
	OrderLines(ctx context.Context, orderID string) ([]CatalogLine, error)
	// LedgerItemID devuelve el ID de ítem del ledger para una referencia de
	// catálogo, o "" cuando no hay mapeo.
	LedgerItemID(ctx context.Context, catalogRef string) (string, error)
}
