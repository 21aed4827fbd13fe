package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/ledger"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/memstore"
	"github.com/jhoicas/almacen-ledger/pkg/logger"
)

func seedWithMin(store *memstore.Store, id, stock, minStock string, active, composite bool) {
	min := dec(minStock)
	store.PutItem(&entity.Item{
		ID:           id,
		SKU:          "SKU-" + id,
		Name:         "Ítem " + id,
		CurrentStock: dec(stock),
		MinStock:     &min,
		Unit:         "und",
		IsComposite:  composite,
		IsActive:     active,
	})
}

func TestLowStockAlerts(t *testing.T) {
	store := memstore.New()
	seedWithMin(store, "bajo", "3", "10", true, false)     // 3 <= 10 -> alerta
	seedWithMin(store, "exacto", "10", "10", true, false)  // igualdad cuenta
	seedWithMin(store, "sobre", "11", "10", true, false)   // por encima, no
	seedWithMin(store, "inactivo", "0", "10", false, false)
	seedWithMin(store, "compuesto", "0", "10", true, true)
	seedSimple(store, "sin-umbral", "0") // sin min_stock configurado
	uc := ledger.NewReorderUseCase(store, nil, logger.Nop())

	alerts, err := uc.LowStockAlerts(context.Background())
	require.NoError(t, err)

	byID := map[string]dto.LowStockAlert{}
	for _, a := range alerts {
		byID[a.ItemID] = a
	}
	require.Len(t, alerts, 2)
	require.Contains(t, byID, "bajo")
	require.Contains(t, byID, "exacto", "stock igual al umbral dispara la alerta")

	assert.True(t, byID["bajo"].Shortage.Equal(dec("7")))
	assert.True(t, byID["exacto"].Shortage.IsZero())
}

func TestLowStockAlerts_SinAlertas(t *testing.T) {
	store := memstore.New()
	seedWithMin(store, "ok", "50", "10", true, false)
	uc := ledger.NewReorderUseCase(store, nil, logger.Nop())

	alerts, err := uc.LowStockAlerts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

// notifierSpy captura lo publicado por RunScan.
type notifierSpy struct {
	batches [][]dto.LowStockAlert
}

func (n *notifierSpy) NotifyLowStock(_ context.Context, alerts []dto.LowStockAlert) error {
	n.batches = append(n.batches, alerts)
	return nil
}

func TestRunScan_PublicaAlertas(t *testing.T) {
	store := memstore.New()
	seedWithMin(store, "bajo", "1", "10", true, false)
	spy := &notifierSpy{}
	uc := ledger.NewReorderUseCase(store, spy, logger.Nop())

	uc.RunScan(context.Background())

	require.Len(t, spy.batches, 1)
	require.Len(t, spy.batches[0], 1)
	assert.Equal(t, "bajo", spy.batches[0][0].ItemID)
}

func TestRunScan_SinAlertasNoPublica(t *testing.T) {
	store := memstore.New()
	seedWithMin(store, "ok", "50", "10", true, false)
	spy := &notifierSpy{}
	uc := ledger.NewReorderUseCase(store, spy, logger.Nop())

	uc.RunScan(context.Background())
	assert.Empty(t, spy.batches)
}
