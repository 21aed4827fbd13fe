package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/almacen-ledger/internal/application/ledger"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/memstore"
)

func TestCheck_SimpleConStock(t *testing.T) {
	store := memstore.New()
	seedSimple(store, "item-1", "100")
	uc := ledger.NewAvailabilityUseCase(store)

	res, err := uc.Check(context.Background(), "item-1", dec("50"))
	require.NoError(t, err)

	assert.True(t, res.Found)
	assert.True(t, res.CanFulfill)
	assert.True(t, res.AvailableQuantity.Equal(dec("100")))
	assert.Empty(t, res.InsufficientComponents)
}

func TestCheck_SimpleInsuficiente(t *testing.T) {
	store := memstore.New()
	seedSimple(store, "item-1", "30")
	uc := ledger.NewAvailabilityUseCase(store)

	res, err := uc.Check(context.Background(), "item-1", dec("50"))
	require.NoError(t, err)

	assert.False(t, res.CanFulfill)
	assert.True(t, res.AvailableQuantity.Equal(dec("30")))
	// El propio ítem se reporta como único componente insuficiente.
	require.Len(t, res.InsufficientComponents, 1)
	short := res.InsufficientComponents[0]
	assert.Equal(t, "item-1", short.ItemID)
	assert.True(t, short.Shortage.Equal(dec("20")), "faltante esperado 20, fue %s", short.Shortage)
}

func TestCheck_SimpleIgualExacto(t *testing.T) {
	store := memstore.New()
	seedSimple(store, "item-1", "50")
	uc := ledger.NewAvailabilityUseCase(store)

	res, err := uc.Check(context.Background(), "item-1", dec("50"))
	require.NoError(t, err)
	assert.True(t, res.CanFulfill, "stock igual a lo solicitado debe cumplir")
}

func TestCheck_ItemInexistente(t *testing.T) {
	store := memstore.New()
	uc := ledger.NewAvailabilityUseCase(store)

	// No encontrado es resultado, no error: los lotes no deben cortarse.
	res, err := uc.Check(context.Background(), "no-existe", dec("1"))
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.False(t, res.CanFulfill)
	assert.True(t, res.AvailableQuantity.IsZero())
}

func TestCheck_CantidadInvalida(t *testing.T) {
	store := memstore.New()
	seedSimple(store, "item-1", "10")
	uc := ledger.NewAvailabilityUseCase(store)

	_, err := uc.Check(context.Background(), "item-1", dec("0"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Check(context.Background(), "item-1", dec("-3"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCheck_CompuestoConReceta(t *testing.T) {
	store := memstore.New()
	seedSimple(store, "comp-a", "100")
	seedSimple(store, "comp-b", "50")
	seedComposite(store, "kit",
		recipeEntry{component: "comp-a", qty: "2"},
		recipeEntry{component: "comp-b", qty: "1"},
	)
	uc := ledger.NewAvailabilityUseCase(store)

	res, err := uc.Check(context.Background(), "kit", dec("10"))
	require.NoError(t, err)

	assert.True(t, res.IsComposite)
	assert.True(t, res.HasRecipe)
	assert.True(t, res.CanFulfill)
	// min(floor(100/2), floor(50/1)) = min(50, 50) = 50
	assert.True(t, res.AvailableQuantity.Equal(dec("50")),
		"disponible esperado 50, fue %s", res.AvailableQuantity)
}

func TestCheck_CompuestoComponenteInsuficiente(t *testing.T) {
	store := memstore.New()
	seedSimple(store, "comp-a", "10")
	seedComposite(store, "kit", recipeEntry{component: "comp-a", qty: "5"})
	uc := ledger.NewAvailabilityUseCase(store)

	res, err := uc.Check(context.Background(), "kit", dec("5"))
	require.NoError(t, err)

	// requerido = 5*5 = 25 > 10 en mano
	assert.False(t, res.CanFulfill)
	require.Len(t, res.InsufficientComponents, 1)
	short := res.InsufficientComponents[0]
	assert.Equal(t, "comp-a", short.ItemID)
	assert.True(t, short.Required.Equal(dec("25")))
	assert.True(t, short.Shortage.Equal(dec("15")), "faltante esperado 15, fue %s", short.Shortage)
}

func TestCheck_CompuestoReportaTodasLasLineasVioladas(t *testing.T) {
	store := memstore.New()
	seedSimple(store, "comp-a", "1")
	seedSimple(store, "comp-b", "2")
	seedSimple(store, "comp-c", "1000")
	seedComposite(store, "kit",
		recipeEntry{component: "comp-a", qty: "3"},
		recipeEntry{component: "comp-b", qty: "4"},
		recipeEntry{component: "comp-c", qty: "1"},
	)
	uc := ledger.NewAvailabilityUseCase(store)

	res, err := uc.Check(context.Background(), "kit", dec("2"))
	require.NoError(t, err)

	// El chequeo no corta en la primera línea violada: reporta todas.
	assert.False(t, res.CanFulfill)
	require.Len(t, res.InsufficientComponents, 2)
	assert.Equal(t, "comp-a", res.InsufficientComponents[0].ItemID)
	assert.Equal(t, "comp-b", res.InsufficientComponents[1].ItemID)
}

func TestCheck_CompuestoSinReceta(t *testing.T) {
	store := memstore.New()
	item := seedComposite(store, "kit-vacio")
	// Aunque el campo exista en almacenamiento, nunca decide disponibilidad
	// de un compuesto.
	item.CurrentStock = dec("999")
	store.PutItem(item)
	uc := ledger.NewAvailabilityUseCase(store)

	for _, qty := range []string{"1", "10", "0.5"} {
		res, err := uc.Check(context.Background(), "kit-vacio", dec(qty))
		require.NoError(t, err)
		assert.False(t, res.CanFulfill, "compuesto sin receta nunca cumple (qty=%s)", qty)
		assert.False(t, res.HasRecipe)
		assert.True(t, res.AvailableQuantity.IsZero())
	}
}

func TestCheck_RecetaFraccionaria(t *testing.T) {
	store := memstore.New()
	seedSimple(store, "harina", "10")
	seedComposite(store, "pan", recipeEntry{component: "harina", qty: "0.75"})
	uc := ledger.NewAvailabilityUseCase(store)

	res, err := uc.Check(context.Background(), "pan", dec("13"))
	require.NoError(t, err)

	// floor(10/0.75) = 13 unidades terminadas
	assert.True(t, res.AvailableQuantity.Equal(dec("13")))
	assert.True(t, res.CanFulfill)

	res, err = uc.Check(context.Background(), "pan", dec("14"))
	require.NoError(t, err)
	assert.False(t, res.CanFulfill)
}
