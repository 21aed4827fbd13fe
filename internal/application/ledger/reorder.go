package ledger

import (
	"context"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

// ReorderUseCase escanea los ítems simples activos con umbral configurado y
// reporta los que están en o por debajo del umbral (la igualdad exacta cuenta
// como disparado). Corre bajo demanda desde el dashboard y de forma periódica
// vía cron.
type ReorderUseCase struct {
	itemRepo repository.ItemRepository
	notifier AlertNotifier // opcional
	log      *logger.Logger
}

// NewReorderUseCase construye el caso de uso. notifier puede ser nil.
func NewReorderUseCase(itemRepo repository.ItemRepository, notifier AlertNotifier, log *logger.Logger) *ReorderUseCase {
	return &ReorderUseCase{itemRepo: itemRepo, notifier: notifier, log: log}
}

// LowStockAlerts devuelve las alertas de reorden vigentes. Lectura de
// snapshot, tolerante a una vista ligeramente desactualizada.
func (uc *ReorderUseCase) LowStockAlerts(ctx context.Context) ([]dto.LowStockAlert, error) {
	items, err := uc.itemRepo.ListBelowMinStock(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.LowStockAlert, 0, len(items))
	for _, item := range items {
		if item.MinStock == nil {
			continue
		}
		alerts = append(alerts, dto.LowStockAlert{
			ItemID:       item.ID,
			SKU:          item.SKU,
			Name:         item.Name,
			Unit:         item.Unit,
			CurrentStock: item.CurrentStock,
			MinStock:     *item.MinStock,
			Shortage:     item.MinStock.Sub(item.CurrentStock),
		})
	}
	return alerts, nil
}

// RunScan ejecuta el escaneo periódico: calcula alertas, las registra en el
// log y las publica al notificador si hay alguna. Pensado para el job de cron.
func (uc *ReorderUseCase) RunScan(ctx context.Context) {
	alerts, err := uc.LowStockAlerts(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("escaneo de stock bajo")
		return
	}
	if len(alerts) == 0 {
		uc.log.Debug().Msg("escaneo de stock bajo: sin alertas")
		return
	}
	for _, a := range alerts {
		uc.log.Warn().
			Str("sku", a.SKU).
			Str("current_stock", a.CurrentStock.String()).
			Str("min_stock", a.MinStock.String()).
			Msg("ítem bajo umbral de reorden")
	}
	if uc.notifier != nil {
		if err := uc.notifier.NotifyLowStock(ctx, alerts); err != nil {
			uc.log.Error().Err(err).Msg("publicar alertas de stock bajo")
		}
	}
}
