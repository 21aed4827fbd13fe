package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia para la bitácora de
// movimientos. Create debe devolver domain.ErrDuplicateDeduction cuando ya
// existe un movimiento para el mismo (invoice_id, source_item_id, item_id).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error)
	// SumByItem suma todos los deltas registrados para un ítem (reconciliación
	// contra el saldo actual).
	SumByItem(ctx context.Context, itemID string) (decimal.Decimal, error)
}
