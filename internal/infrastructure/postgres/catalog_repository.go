package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo resuelve pedidos externos contra el ledger: líneas de pedido y
// mapeo referencia de catálogo → ítem. Las tablas order_lines y catalog_items
// las llena el sistema de pedidos, aquí solo se leen.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador.
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// OrderLines devuelve las líneas del pedido en su orden original.
func (r *CatalogRepo) OrderLines(ctx context.Context, orderID string) ([]repository.CatalogLine, error) {
	query := `
		SELECT catalog_ref, quantity
		FROM order_lines WHERE order_id = $1
		ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("order lines: %w", err)
	}
	defer rows.Close()

	var lines []repository.CatalogLine
	for rows.Next() {
		var l repository.CatalogLine
		if err := rows.Scan(&l.CatalogRef, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order lines: %w", err)
	}
	return lines, nil
}

// LedgerItemID devuelve el ítem del ledger mapeado a la referencia, o "" si
// no hay mapeo.
func (r *CatalogRepo) LedgerItemID(ctx context.Context, catalogRef string) (string, error) {
	query := `SELECT item_id FROM catalog_items WHERE catalog_ref = $1`
	var itemID string
	err := r.q.QueryRow(ctx, query, catalogRef).Scan(&itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("ledger item id: %w", err)
	}
	return itemID, nil
}
