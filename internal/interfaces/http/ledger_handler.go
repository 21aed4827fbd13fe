package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/application/ledger"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
)

// LedgerHandler maneja las peticiones HTTP del ledger de stock. Las
// condiciones esperadas (no encontrado, insuficiente, sin receta) se devuelven
// como 200 con el detalle en el cuerpo, para que los sistemas consumidores
// rendericen el reporte completo.
type LedgerHandler struct {
	availability *ledger.AvailabilityUseCase
	capacity     *ledger.CapacityUseCase
	deduct       *ledger.DeductUseCase
	order        *ledger.OrderUseCase
	reorder      *ledger.ReorderUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(
	availability *ledger.AvailabilityUseCase,
	capacity *ledger.CapacityUseCase,
	deduct *ledger.DeductUseCase,
	order *ledger.OrderUseCase,
	reorder *ledger.ReorderUseCase,
) *LedgerHandler {
	return &LedgerHandler{
		availability: availability,
		capacity:     capacity,
		deduct:       deduct,
		order:        order,
		reorder:      reorder,
	}
}

// CheckAvailability GET /api/items/:id/availability?qty=N
func (h *LedgerHandler) CheckAvailability(c *fiber.Ctx) error {
	qty, err := decimal.NewFromString(c.Query("qty"))
	if err != nil || !qty.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "qty debe ser un decimal positivo"})
	}
	res, err := h.availability.Check(c.Context(), c.Params("id"), qty)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(res)
}

// ProductionCapacity GET /api/items/:id/capacity
func (h *LedgerHandler) ProductionCapacity(c *fiber.Ctx) error {
	res, err := h.capacity.ProductionCapacity(c.Context(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(res)
}

// CheckOrder POST /api/orders/check
func (h *LedgerHandler) CheckOrder(c *fiber.Ctx) error {
	var req dto.CheckOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(req.Lines) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el pedido no tiene líneas"})
	}
	res, err := h.order.CheckMany(c.Context(), req.Lines)
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(res)
}

// CheckOrderByCatalogRefs GET /api/orders/:id/check
func (h *LedgerHandler) CheckOrderByCatalogRefs(c *fiber.Ctx) error {
	res, err := h.order.CheckOrderByCatalogRefs(c.Context(), c.Params("id"))
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(res)
}

// Deduct POST /api/items/:id/deduct
func (h *LedgerHandler) Deduct(c *fiber.Ctx) error {
	var req dto.DeductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movements, err := h.deduct.Deduct(c.Context(), ledger.DeductInput{
		ItemID:    c.Params("id"),
		Quantity:  req.Quantity,
		Type:      entity.MovementType(req.Type),
		OrderID:   req.OrderID,
		InvoiceID: req.InvoiceID,
		Reason:    req.Reason,
		ActorID:   req.ActorID,
	})
	if err != nil {
		return mapError(c, err)
	}

	resp := dto.DeductResponse{Movements: make([]dto.MovementDTO, 0, len(movements))}
	for _, m := range movements {
		resp.Movements = append(resp.Movements, dto.MovementDTO{
			ID:            m.ID,
			ItemID:        m.ItemID,
			Type:          string(m.Type),
			Quantity:      m.Quantity,
			PreviousStock: m.PreviousStock,
			NewStock:      m.NewStock,
			OrderID:       m.OrderID,
			InvoiceID:     m.InvoiceID,
			Reason:        m.Reason,
		})
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// LowStockAlerts GET /api/alerts/low-stock
func (h *LedgerHandler) LowStockAlerts(c *fiber.Ctx) error {
	alerts, err := h.reorder.LowStockAlerts(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(fiber.Map{"alerts": alerts, "count": len(alerts)})
}

// mapError traduce los sentinelas de dominio a códigos HTTP.
func mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNoRecipe):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NO_RECIPE", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateDeduction):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_DEDUCTION", Message: err.Error()})
	case errors.Is(err, domain.ErrTxConflict):
		// Reintentable por el caller con backoff.
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "TX_CONFLICT", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
