package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

// DeductInput entrada para descontar stock por un evento de cumplimiento
// (ej. emisión de factura). OrderID/InvoiceID correlacionan el movimiento con
// el documento que lo disparó; con InvoiceID presente el descuento es
// idempotente por (factura, ítem).
type DeductInput struct {
	ItemID    string
	Quantity  decimal.Decimal
	Type      entity.MovementType // vacío = SALE
	OrderID   string
	InvoiceID string
	Reason    string
	ActorID   string
}

// DeductUseCase descuenta stock de forma transaccional. Para un ítem simple
// muta su propio saldo; para un compuesto muta cada componente de la receta
// escalado por su proporción, todo o nada. El motor no impone piso de stock
// (el saldo puede quedar negativo): la factibilidad es responsabilidad del
// chequeo de disponibilidad previo, que aquí no se confía porque es
// consultivo, no una reserva.
type DeductUseCase struct {
	txRunner TxRunner
}

// NewDeductUseCase construye el caso de uso.
func NewDeductUseCase(txRunner TxRunner) *DeductUseCase {
	return &DeductUseCase{txRunner: txRunner}
}

// Deduct ejecuta el descuento dentro de una sola transacción: bloquea las
// filas involucradas (SELECT FOR UPDATE), escribe los nuevos saldos y agrega
// un StockMovement por ítem mutado. Si cualquier paso falla, nada se persiste.
// Devuelve los movimientos generados.
//
// Errores: domain.ErrNotFound (ítem o componente inexistente),
// domain.ErrNoRecipe (compuesto sin receta), domain.ErrDuplicateDeduction
// (misma factura ya descontada), domain.ErrTxConflict (conflicto concurrente,
// el caller reintenta con backoff).
func (uc *DeductUseCase) Deduct(ctx context.Context, input DeductInput) ([]*entity.StockMovement, error) {
	if !input.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad a descontar debe ser positiva", domain.ErrInvalidInput)
	}
	movType := input.Type
	if movType == "" {
		movType = entity.MovementTypeSale
	}
	if !movType.IsValid() {
		return nil, fmt.Errorf("%w: tipo de movimiento desconocido %q", domain.ErrInvalidInput, input.Type)
	}

	var movements []*entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.ItemRepository,
		movRepo repository.StockMovementRepository,
	) error {
		now := time.Now()

		// Bloquea primero la fila del ítem solicitado: serializa descuentos
		// concurrentes del mismo ítem (simple o compuesto).
		item, err := itemRepo.GetForUpdate(ctx, input.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("ítem %s: %w", input.ItemID, domain.ErrNotFound)
		}

		if !item.IsComposite {
			mov, err := deductOne(ctx, itemRepo, movRepo, item, input.Quantity, movType, input, input.Reason, now)
			if err != nil {
				return err
			}
			movements = append(movements, mov)
			return nil
		}

		recipe, err := itemRepo.GetRecipe(ctx, item.ID)
		if err != nil {
			return err
		}
		if len(recipe) == 0 {
			return fmt.Errorf("ítem compuesto %s: %w", item.SKU, domain.ErrNoRecipe)
		}

		// Orden determinista de bloqueo por ID de componente para que dos
		// descuentos concurrentes de compuestos con componentes en común no
		// se interbloqueen.
		sort.Slice(recipe, func(i, j int) bool { return recipe[i].ComponentID < recipe[j].ComponentID })

		reason := "consumo de componente para " + item.Name
		for _, line := range recipe {
			if !line.Quantity.IsPositive() {
				return fmt.Errorf("%w: receta de %s con cantidad no positiva en el componente %s",
					domain.ErrInvalidInput, item.SKU, line.ComponentID)
			}
			component, err := itemRepo.GetForUpdate(ctx, line.ComponentID)
			if err != nil {
				return err
			}
			if component == nil {
				return fmt.Errorf("componente %s de la receta de %s: %w",
					line.ComponentID, item.SKU, domain.ErrNotFound)
			}
			mov, err := deductOne(ctx, itemRepo, movRepo, component,
				line.Quantity.Mul(input.Quantity), entity.MovementTypeRecipeOut, input, reason, now)
			if err != nil {
				return err
			}
			movements = append(movements, mov)
		}
		// El saldo propio del compuesto nunca se escribe.
		return nil
	})
	if err != nil {
		return nil, err
	}
	return movements, nil
}

// deductOne aplica la aritmética de descuento a un solo ítem: nuevo saldo =
// saldo previo − delta, persiste el saldo y agrega el movimiento. Debe
// llamarse con la fila ya bloqueada por GetForUpdate.
func deductOne(
	ctx context.Context,
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
	item *entity.Item,
	delta decimal.Decimal,
	movType entity.MovementType,
	input DeductInput,
	reason string,
	now time.Time,
) (*entity.StockMovement, error) {
	previous := item.CurrentStock
	newStock := previous.Sub(delta)

	if err := itemRepo.UpdateStock(ctx, item.ID, newStock); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ItemID:        item.ID,
		SourceItemID:  input.ItemID,
		Type:          movType,
		Quantity:      delta.Neg(),
		PreviousStock: previous,
		NewStock:      newStock,
		OrderID:       input.OrderID,
		InvoiceID:     input.InvoiceID,
		Reason:        reason,
		CreatedBy:     input.ActorID,
		CreatedAt:     now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}
