package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla stock_movements es bitácora append-only: sin UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento. El índice único parcial sobre
// (invoice_id, source_item_id, item_id) convierte un segundo descuento de la
// misma factura y el mismo ítem solicitado en domain.ErrDuplicateDeduction,
// con lo que la transacción completa se revierte.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO stock_movements
			(id, item_id, source_item_id, type, quantity, previous_stock, new_stock, order_id, invoice_id, reason, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ItemID, m.SourceItemID, string(m.Type), m.Quantity, m.PreviousStock, m.NewStock,
		nullIfEmpty(m.OrderID), nullIfEmpty(m.InvoiceID), m.Reason,
		nullIfEmpty(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("factura %s, ítem %s: %w", m.InvoiceID, m.ItemID, domain.ErrDuplicateDeduction)
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByItem devuelve los movimientos de un ítem, más recientes primero.
func (r *StockMovementRepo) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, item_id, source_item_id, type, quantity, previous_stock, new_stock, order_id, invoice_id, reason, created_by, created_at
		FROM stock_movements WHERE item_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var movs []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var orderID, invoiceID, createdBy *string
		if err := rows.Scan(
			&m.ID, &m.ItemID, &m.SourceItemID, &m.Type, &m.Quantity, &m.PreviousStock, &m.NewStock,
			&orderID, &invoiceID, &m.Reason, &createdBy, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.OrderID = deref(orderID)
		m.InvoiceID = deref(invoiceID)
		m.CreatedBy = deref(createdBy)
		movs = append(movs, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return movs, nil
}

// SumByItem suma todos los deltas registrados para un ítem, para reconciliar
// la bitácora contra el saldo actual.
func (r *StockMovementRepo) SumByItem(ctx context.Context, itemID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM stock_movements WHERE item_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, itemID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum movements: %w", err)
	}
	return sum, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
