package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo cerrado de movimiento de stock (enumeración verificable).
type MovementType string

const (
	MovementTypeSale            MovementType = "SALE"
	MovementTypeAdjustmentPlus  MovementType = "ADJUSTMENT_PLUS"
	MovementTypeAdjustmentMinus MovementType = "ADJUSTMENT_MINUS"
	MovementTypeReceipt         MovementType = "RECEIPT"
	MovementTypeReturn          MovementType = "RETURN"
	MovementTypeTransfer        MovementType = "TRANSFER"
	MovementTypeRecipeOut       MovementType = "RECIPE_OUT" // consumo de componente de receta
)

// IsValid reporta si el tipo pertenece a la enumeración.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeSale, MovementTypeAdjustmentPlus, MovementTypeAdjustmentMinus,
		MovementTypeReceipt, MovementTypeReturn, MovementTypeTransfer, MovementTypeRecipeOut:
		return true
	}
	return false
}

// StockMovement registro inmutable de auditoría: se crea uno por cada ítem
// mutado y nunca se edita ni se borra. NewStock siempre debe cumplir
// NewStock = PreviousStock + Quantity, y es el valor que se escribe de vuelta
// al ítem; el movimiento es bitácora derivada, no fuente de verdad del saldo.
type StockMovement struct {
	ID     string
	ItemID string
	// SourceItemID es el ítem del ledger cuyo cumplimiento originó el
	// movimiento: el compuesto padre cuando el movimiento es consumo de
	// componente, el propio ítem en los demás casos. Con InvoiceID presente,
	// (InvoiceID, SourceItemID, ItemID) es único: un descuento por factura e
	// ítem solicitado.
	SourceItemID  string
	Type          MovementType
	Quantity      decimal.Decimal // delta con signo (negativo en salidas)
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	OrderID       string // referencia de correlación, opcional
	InvoiceID     string // referencia de correlación, opcional
	Reason        string
	CreatedBy     string
	CreatedAt     time.Time
}
