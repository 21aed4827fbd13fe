package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

// AvailabilityUseCase decide si una cantidad solicitada de un ítem se puede
// cumplir con el stock en mano. Para compuestos resuelve un solo nivel de
// receta: un componente que a su vez es compuesto se lee como contador plano.
// Es una lectura consultiva, no una reserva: el motor de descuento revalida
// contra el valor vivo dentro de su propia transacción.
type AvailabilityUseCase struct {
	itemRepo repository.ItemRepository
}

// NewAvailabilityUseCase construye el caso de uso.
func NewAvailabilityUseCase(itemRepo repository.ItemRepository) *AvailabilityUseCase {
	return &AvailabilityUseCase{itemRepo: itemRepo}
}

// Check evalúa la disponibilidad de qty unidades del ítem. Las condiciones
// esperadas (ítem inexistente, sin receta, stock insuficiente) se devuelven en
// el resultado, no como error; solo fallas de infraestructura retornan error.
func (uc *AvailabilityUseCase) Check(ctx context.Context, itemID string, qty decimal.Decimal) (*dto.AvailabilityResult, error) {
	if !qty.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad solicitada debe ser positiva", domain.ErrInvalidInput)
	}

	item, err := uc.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		// No encontrado es resultado, no excepción: los chequeos por lote no
		// deben cortarse por una línea desconocida.
		return &dto.AvailabilityResult{ItemID: itemID, Requested: qty}, nil
	}

	if !item.IsComposite {
		return uc.checkSimple(item, qty), nil
	}
	return uc.checkComposite(ctx, item, qty)
}

// checkSimple: el saldo propio del ítem decide; si no alcanza, el propio ítem
// se reporta como único componente insuficiente.
func (uc *AvailabilityUseCase) checkSimple(item *entity.Item, qty decimal.Decimal) *dto.AvailabilityResult {
	res := &dto.AvailabilityResult{
		ItemID:            item.ID,
		SKU:               item.SKU,
		Name:              item.Name,
		Found:             true,
		HasRecipe:         true,
		Requested:         qty,
		AvailableQuantity: item.CurrentStock,
		CanFulfill:        item.CurrentStock.GreaterThanOrEqual(qty),
	}
	if !res.CanFulfill {
		res.InsufficientComponents = []dto.ComponentShortage{{
			ItemID:    item.ID,
			SKU:       item.SKU,
			Name:      item.Name,
			Required:  qty,
			Available: item.CurrentStock,
			Shortage:  qty.Sub(item.CurrentStock),
		}}
	}
	return res
}

// checkComposite: por cada línea de receta calcula lo requerido y las unidades
// terminadas que el componente soporta; lo disponible del compuesto es el
// mínimo entre líneas. Las líneas violadas se reportan todas, sin cortar en la
// primera. El CurrentStock del compuesto nunca se lee.
func (uc *AvailabilityUseCase) checkComposite(ctx context.Context, item *entity.Item, qty decimal.Decimal) (*dto.AvailabilityResult, error) {
	recipe, err := uc.itemRepo.GetRecipe(ctx, item.ID)
	if err != nil {
		return nil, err
	}

	res := &dto.AvailabilityResult{
		ItemID:      item.ID,
		SKU:         item.SKU,
		Name:        item.Name,
		Found:       true,
		IsComposite: true,
		Requested:   qty,
	}
	if len(recipe) == 0 {
		// Compuesto sin receta: improducible para cualquier cantidad.
		return res, nil
	}
	res.HasRecipe = true
	res.CanFulfill = true

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

		required := line.Quantity.Mul(qty)
		possibleUnits := component.CurrentStock.Div(line.Quantity).Floor()
		if i == 0 || possibleUnits.LessThan(res.AvailableQuantity) {
			res.AvailableQuantity = possibleUnits
		}
		if component.CurrentStock.LessThan(required) {
			res.CanFulfill = false
			res.InsufficientComponents = append(res.InsufficientComponents, dto.ComponentShortage{
				ItemID:    component.ID,
				SKU:       component.SKU,
				Name:      component.Name,
				Required:  required,
				Available: component.CurrentStock,
				Shortage:  required.Sub(component.CurrentStock),
			})
		}
	}
	return res, nil
}
