package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-ledger/internal/application/dto"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

// OrderUseCase resuelve un conjunto de líneas (ítem, cantidad) a un solo
// veredicto de factibilidad. Cada línea se chequea de forma independiente; el
// veredicto global es el AND lógico y las líneas deficitarias se listan todas,
// en orden de entrada, para poder renderizar un reporte completo.
type OrderUseCase struct {
	availability *AvailabilityUseCase
	catalogRepo  repository.CatalogRepository
}

// NewOrderUseCase construye el caso de uso. catalogRepo se usa solo para la
// variante por referencias de catálogo.
func NewOrderUseCase(availability *AvailabilityUseCase, catalogRepo repository.CatalogRepository) *OrderUseCase {
	return &OrderUseCase{availability: availability, catalogRepo: catalogRepo}
}

// CheckMany chequea todas las líneas contra el ledger. Una línea con ítem
// desconocido produce un resultado not-found (CanFulfill=false) sin abortar
// el resto del lote.
func (uc *OrderUseCase) CheckMany(ctx context.Context, lines []dto.OrderLine) (*dto.OrderCheckResult, error) {
	res := &dto.OrderCheckResult{
		CanFulfill: true,
		Results:    make([]dto.AvailabilityResult, 0, len(lines)),
	}
	for _, line := range lines {
		check, err := uc.availability.Check(ctx, line.ItemID, line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("chequear línea %s: %w", line.ItemID, err)
		}
		res.Results = append(res.Results, *check)
		if !check.CanFulfill {
			res.CanFulfill = false
			res.InsufficientItems = append(res.InsufficientItems, *check)
		}
	}
	return res, nil
}

// CheckOrderByCatalogRefs carga las líneas de un pedido externo, resuelve cada
// referencia de catálogo a un ítem del ledger y chequea las resueltas. Las
// referencias sin mapeo se recolectan en Unmapped en vez de hacer fallar el
// lote; un pedido con líneas sin mapear nunca puede cumplirse completo.
func (uc *OrderUseCase) CheckOrderByCatalogRefs(ctx context.Context, orderID string) (*dto.OrderCheckResult, error) {
	catalogLines, err := uc.catalogRepo.OrderLines(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("líneas del pedido %s: %w", orderID, err)
	}
	if len(catalogLines) == 0 {
		return nil, fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
	}

	var resolved []dto.OrderLine
	var unmapped []dto.UnmappedLine
	for _, cl := range catalogLines {
		itemID, err := uc.catalogRepo.LedgerItemID(ctx, cl.CatalogRef)
		if err != nil {
			return nil, fmt.Errorf("resolver referencia %s: %w", cl.CatalogRef, err)
		}
		if itemID == "" {
			unmapped = append(unmapped, dto.UnmappedLine{CatalogRef: cl.CatalogRef, Quantity: cl.Quantity})
			continue
		}
		resolved = append(resolved, dto.OrderLine{ItemID: itemID, Quantity: cl.Quantity})
	}

	res, err := uc.CheckMany(ctx, resolved)
	if err != nil {
		return nil, err
	}
	res.Unmapped = unmapped
	if len(unmapped) > 0 {
		res.CanFulfill = false
	}
	return res, nil
}
