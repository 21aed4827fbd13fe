package ledger

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// descuento: o se persisten todos los saldos y movimientos, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// AlertNotifier puerto de salida para publicar alertas de stock bajo hacia un
// sistema externo (webhook del dashboard operativo). nil o no configurado =
// solo registro en logs.
type AlertNotifier interface {
	NotifyLowStock(ctx context.Context, alerts []dto.LowStockAlert) error
}
