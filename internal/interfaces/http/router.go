package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-ledger/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Availability *ledger.AvailabilityUseCase
	Capacity     *ledger.CapacityUseCase
	Deduct       *ledger.DeductUseCase
	Order        *ledger.OrderUseCase
	Reorder      *ledger.ReorderUseCase
}

// Router registra las rutas del ledger. La autenticación de los sistemas
// consumidores corre por fuera (gateway interno), no aquí.
func Router(app *fiber.App, deps RouterDeps) {
	h := NewLedgerHandler(deps.Availability, deps.Capacity, deps.Deduct, deps.Order, deps.Reorder)

	api := app.Group("/api")

	items := api.Group("/items")
	items.Get("/:id/availability", h.CheckAvailability)
	items.Get("/:id/capacity", h.ProductionCapacity)
	items.Post("/:id/deduct", h.Deduct)

	orders := api.Group("/orders")
	orders.Post("/check", h.CheckOrder)
	orders.Get("/:id/check", h.CheckOrderByCatalogRefs)

	api.Get("/alerts/low-stock", h.LowStockAlerts)
}
