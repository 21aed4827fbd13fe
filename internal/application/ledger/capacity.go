package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

// CapacityUseCase calcula cuántas unidades terminadas de un compuesto se
// pueden producir ahora mismo con el stock de componentes en mano.
type CapacityUseCase struct {
	itemRepo repository.ItemRepository
}

// NewCapacityUseCase construye el caso de uso.
func NewCapacityUseCase(itemRepo repository.ItemRepository) *CapacityUseCase {
	return &CapacityUseCase{itemRepo: itemRepo}
}

// ProductionCapacity devuelve el mínimo de floor(stock / cantidad_por_unidad)
// entre las líneas de la receta, y el componente que fija ese mínimo (el
// primero en caso de empate). Un ítem simple o un compuesto sin receta
// produce cero.
func (uc *CapacityUseCase) ProductionCapacity(ctx context.Context, itemID string) (*dto.CapacityResult, error) {
	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	res := &dto.CapacityResult{ItemID: itemID}
	if item == nil {
		return res, nil
	}
	res.Found = true
	if !item.IsComposite {
		return res, nil
	}

	recipe, err := uc.itemRepo.GetRecipe(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if len(recipe) == 0 {
		return res, nil
	}

	for i, line := range recipe {
		if !line.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: receta de %s con cantidad no positiva en el componente %s",
				domain.ErrInvalidInput, item.SKU, line.ComponentID)
		}
		component, err := uc.itemRepo.GetByID(ctx, line.ComponentID)
		if err != nil {
			return nil, err
		}
		if component == nil {
			return nil, fmt.Errorf("componente %s de la receta de %s: %w",
				line.ComponentID, item.SKU, domain.ErrNotFound)
		}
		units := component.CurrentStock.Div(line.Quantity).Floor()
		if i == 0 || units.LessThan(res.CanProduce) {
			res.CanProduce = units
			res.LimitingComponent = &dto.LimitingComponent{
				ItemID:       component.ID,
				SKU:          component.SKU,
				Name:         component.Name,
				CurrentStock: component.CurrentStock,
				PerUnit:      line.Quantity,
			}
		}
	}
	return res, nil
}
