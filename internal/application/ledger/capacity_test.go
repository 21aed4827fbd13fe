package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/almacen-ledger/internal/application/ledger"
	"github.com/jhoicas/almacen-ledger/internal/infrastructure/memstore"
)

func TestProductionCapacity_Compuesto(t *testing.T) {
	store := memstore.New()
	seedSimple(store, "comp-a", "100") // floor(100/2) = 50
	seedSimple(store, "comp-b", "30")  // floor(30/1)  = 30 <- limita
	seedComposite(store, "kit",
		recipeEntry{component: "comp-a", qty: "2"},
		recipeEntry{component: "comp-b", qty: "1"},
	)
	uc := ledger.NewCapacityUseCase(store)

	res, err := uc.ProductionCapacity(context.Background(), "kit")
	require.NoError(t, err)

	assert.True(t, res.Found)
	assert.True(t, res.CanProduce.Equal(dec("30")), "producible esperado 30, fue %s", res.CanProduce)
	require.NotNil(t, res.LimitingComponent)
	assert.Equal(t, "comp-b", res.LimitingComponent.ItemID)
}

func TestProductionCapacity_EmpateTomaElPrimero(t *testing.T) {
	store := memstore.New()
	seedSimple(store, "comp-a", "20")
	seedSimple(store, "comp-b", "40")
	seedComposite(store, "kit",
		recipeEntry{component: "comp-a", qty: "1"}, // 20
		recipeEntry{component: "comp-b", qty: "2"}, // 20, empate
	)
	uc := ledger.NewCapacityUseCase(store)

	res, err := uc.ProductionCapacity(context.Background(), "kit")
	require.NoError(t, err)

	assert.True(t, res.CanProduce.Equal(dec("20")))
	require.NotNil(t, res.LimitingComponent)
	assert.Equal(t, "comp-a", res.LimitingComponent.ItemID, "en empate gana la primera línea")
}

func TestProductionCapacity_ItemSimple(t *testing.T) {
	store := memstore.New()
	seedSimple(store, "item-1", "100")
	uc := ledger.NewCapacityUseCase(store)

	res, err := uc.ProductionCapacity(context.Background(), "item-1")
	require.NoError(t, err)

	assert.True(t, res.Found)
	assert.True(t, res.CanProduce.IsZero(), "un ítem simple no se produce")
	assert.Nil(t, res.LimitingComponent)
}

func TestProductionCapacity_CompuestoSinReceta(t *testing.T) {
	store := memstore.New()
	seedComposite(store, "kit-vacio")
	uc := ledger.NewCapacityUseCase(store)

	res, err := uc.ProductionCapacity(context.Background(), "kit-vacio")
	require.NoError(t, err)
	assert.True(t, res.CanProduce.IsZero())
}

func TestProductionCapacity_ItemInexistente(t *testing.T) {
	store := memstore.New()
	uc := ledger.NewCapacityUseCase(store)

	res, err := uc.ProductionCapacity(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.True(t, res.CanProduce.IsZero())
}
