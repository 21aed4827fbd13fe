package dto

import (
	"github.com/shopspring/decimal"
)

// ErrorResponse respuesta de error estándar de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CheckOrderRequest cuerpo de POST /api/orders/check.
type CheckOrderRequest struct {
	Lines []OrderLine `json:"lines"`
}

// DeductRequest cuerpo de POST /api/items/:id/deduct.
type DeductRequest struct {
	Quantity  decimal.Decimal `json:"quantity"`
	Type      string          `json:"type,omitempty"` // vacío = SALE
	OrderID   string          `json:"order_id,omitempty"`
	InvoiceID string          `json:"invoice_id,omitempty"`
	Reason    string          `json:"reason,omitempty"`
	ActorID   string          `json:"actor_id,omitempty"`
}

// DeductResponse respuesta con los movimientos generados.
type DeductResponse struct {
	Movements []MovementDTO `json:"movements"`
}

// MovementDTO proyección JSON de un StockMovement.
type MovementDTO struct {
	ID            string          `json:"id"`
	ItemID        string          `json:"item_id"`
	Type          string          `json:"type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PreviousStock decimal.Decimal `json:"previous_stock"`
	NewStock      decimal.Decimal `json:"new_stock"`
	OrderID       string          `json:"order_id,omitempty"`
	InvoiceID     string          `json:"invoice_id,omitempty"`
	Reason        string          `json:"reason,omitempty"`
}
