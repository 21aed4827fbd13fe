package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/ledger"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/memstore"
)

func newOrderUC(store *memstore.Store) *ledger.OrderUseCase {
	return ledger.NewOrderUseCase(ledger.NewAvailabilityUseCase(store), store)
}

func TestCheckMany_TodoDisponible(t *testing.T) {
	store := memstore.New()
	seedSimple(store, "item-1", "100")
	seedSimple(store, "item-2", "40")
	uc := newOrderUC(store)

	res, err := uc.CheckMany(context.Background(), []dto.OrderLine{
		{ItemID: "item-1", Quantity: dec("50")},
		{ItemID: "item-2", Quantity: dec("40")},
	})
	require.NoError(t, err)

	assert.True(t, res.CanFulfill)
	require.Len(t, res.Results, 2)
	assert.Empty(t, res.InsufficientItems)
}

func TestCheckMany_VeredictoEsANDDeLasLineas(t *testing.T) {
	store := memstore.New()
	seedSimple(store, "item-1", "100")
	seedSimple(store, "item-2", "5")
	seedSimple(store, "item-3", "0")
	uc := newOrderUC(store)

	res, err := uc.CheckMany(context.Background(), []dto.OrderLine{
		{ItemID: "item-1", Quantity: dec("10")},
		{ItemID: "item-2", Quantity: dec("8")},
		{ItemID: "item-3", Quantity: dec("1")},
	})
	require.NoError(t, err)

	assert.False(t, res.CanFulfill)
	// Resultados en orden de entrada, y el déficit completo, no solo el primero.
	require.Len(t, res.Results, 3)
	assert.Equal(t, "item-1", res.Results[0].ItemID)
	assert.Equal(t, "item-2", res.Results[1].ItemID)
	assert.Equal(t, "item-3", res.Results[2].ItemID)
	require.Len(t, res.InsufficientItems, 2)
	assert.Equal(t, "item-2", res.InsufficientItems[0].ItemID)
	assert.Equal(t, "item-3", res.InsufficientItems[1].ItemID)
}

func TestCheckMany_LineaDesconocidaNoAborta(t *testing.T) {
	store := memstore.New()
	seedSimple(store, "item-1", "100")
	uc := newOrderUC(store)

	res, err := uc.CheckMany(context.Background(), []dto.OrderLine{
		{ItemID: "fantasma", Quantity: dec("1")},
		{ItemID: "item-1", Quantity: dec("1")},
	})
	require.NoError(t, err)

	assert.False(t, res.CanFulfill)
	require.Len(t, res.Results, 2)
	assert.False(t, res.Results[0].Found)
	assert.True(t, res.Results[1].CanFulfill, "la línea válida se chequea igual")
}

func TestCheckOrderByCatalogRefs(t *testing.T) {
	store := memstore.New()
	seedSimple(store, "item-1", "100")
	seedSimple(store, "item-2", "3")
	store.MapCatalogRef("ML-001", "item-1")
	store.MapCatalogRef("ML-002", "item-2")
	store.PutOrder("ord-7", []repository.CatalogLine{
		{CatalogRef: "ML-001", Quantity: dec("10")},
		{CatalogRef: "ML-002", Quantity: dec("5")},
		{CatalogRef: "ML-XXX", Quantity: dec("2")}, // sin mapeo
	})
	uc := newOrderUC(store)

	res, err := uc.CheckOrderByCatalogRefs(context.Background(), "ord-7")
	require.NoError(t, err)

	assert.False(t, res.CanFulfill)
	require.Len(t, res.Results, 2, "solo las líneas resueltas se chequean")
	require.Len(t, res.InsufficientItems, 1)
	assert.Equal(t, "item-2", res.InsufficientItems[0].ItemID)
	// La referencia sin mapeo se recolecta aparte en vez de abortar el lote.
	require.Len(t, res.Unmapped, 1)
	assert.Equal(t, "ML-XXX", res.Unmapped[0].CatalogRef)
}

func TestCheckOrderByCatalogRefs_TodoMapeadoYDisponible(t *testing.T) {
	store := memstore.New()
	seedSimple(store, "item-1", "100")
	store.MapCatalogRef("ML-001", "item-1")
	store.PutOrder("ord-8", []repository.CatalogLine{
		{CatalogRef: "ML-001", Quantity: dec("10")},
	})
	uc := newOrderUC(store)

	res, err := uc.CheckOrderByCatalogRefs(context.Background(), "ord-8")
	require.NoError(t, err)
	assert.True(t, res.CanFulfill)
	assert.Empty(t, res.Unmapped)
}

func TestCheckOrderByCatalogRefs_PedidoInexistente(t *testing.T) {
	store := memstore.New()
	uc := newOrderUC(store)

	_, err := uc.CheckOrderByCatalogRefs(context.Background(), "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
