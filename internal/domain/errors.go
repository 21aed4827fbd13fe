package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Las lecturas del ledger no devuelven estos errores para condiciones esperadas
// (no encontrado, sin receta, stock insuficiente): esas se reportan como datos
// en los DTOs de resultado. Los sentinelas se usan en mutaciones y para mapear
// fallas de infraestructura.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrNoRecipe           = errors.New("ítem compuesto sin receta definida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrTxConflict         = errors.New("conflicto de transacción concurrente, reintentar")
	ErrDuplicateDeduction = errors.New("descuento ya aplicado para esta factura")
)
