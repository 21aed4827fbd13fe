// Package memstore implementa los puertos del ledger sobre mapas en memoria.
// Se usa en tests y en desarrollo local sin PostgreSQL. Reproduce las mismas
// garantías que el adaptador de PostgreSQL: transacciones todo-o-nada,
// escrituras por ítem serializadas y unicidad de descuento por
// (factura, ítem solicitado, ítem).
package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/almacen-ledger/internal/application/ledger"
	"github.com/jhoicas/almacen-ledger/internal/domain"
	"github.com/jhoicas/almacen-ledger/internal/domain/entity"
	"github.com/jhoicas/almacen-ledger/internal/domain/repository"
)

var (
	_ repository.ItemRepository          = (*Store)(nil)
	_ repository.StockMovementRepository = (*Store)(nil)
	_ repository.CatalogRepository       = (*Store)(nil)
	_ ledger.TxRunner                    = (*Store)(nil)
)

// Store almacén en memoria. El mutex serializa las transacciones completas,
// que es el equivalente en memoria del bloqueo de filas de PostgreSQL.
type Store struct {
	mu         sync.Mutex
	items      map[string]*entity.Item
	recipes    map[string][]entity.RecipeLine
	movements  []*entity.StockMovement
	dedup      map[string]bool // invoice|source|item
	orderLines map[string][]repository.CatalogLine
	catalogMap map[string]string // catalog_ref -> item_id
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{
		items:      make(map[string]*entity.Item),
		recipes:    make(map[string][]entity.RecipeLine),
		dedup:      make(map[string]bool),
		orderLines: make(map[string][]repository.CatalogLine),
		catalogMap: make(map[string]string),
	}
}

// PutItem registra o reemplaza un ítem (siembra de datos).
func (s *Store) PutItem(item *entity.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *item
	s.items[item.ID] = &cp
}

// PutRecipe registra la receta de un compuesto (siembra de datos).
func (s *Store) PutRecipe(compositeID string, lines []entity.RecipeLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes[compositeID] = append([]entity.RecipeLine(nil), lines...)
}

// PutOrder registra las líneas de un pedido externo (siembra de datos).
func (s *Store) PutOrder(orderID string, lines []repository.CatalogLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderLines[orderID] = append([]repository.CatalogLine(nil), lines...)
}

// MapCatalogRef registra el mapeo referencia de catálogo → ítem del ledger.
func (s *Store) MapCatalogRef(catalogRef, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalogMap[catalogRef] = itemID
}

// --- repository.ItemRepository (lecturas de snapshot) ---

// itemCopy retorna una copia del ítem o nil si no existe. Requiere el mutex.
func (s *Store) itemCopy(id string) *entity.Item {
	item, ok := s.items[id]
	if !ok {
		return nil
	}
	cp := *item
	return &cp
}

func (s *Store) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemCopy(id), nil
}

func (s *Store) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.items {
		if item.SKU == sku {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

// GetForUpdate fuera de transacción equivale a una lectura simple.
func (s *Store) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return s.GetByID(ctx, id)
}

func (s *Store) UpdateStock(ctx context.Context, itemID string, quantity decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[itemID]
	if !ok {
		return fmt.Errorf("update stock: ítem %s no existe", itemID)
	}
	item.CurrentStock = quantity
	return nil
}

func (s *Store) GetRecipe(ctx context.Context, compositeID string) ([]entity.RecipeLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.RecipeLine(nil), s.recipes[compositeID]...), nil
}

func (s *Store) ListBelowMinStock(ctx context.Context) ([]*entity.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Item
	for _, item := range s.items {
		if !item.IsActive || item.IsComposite || item.MinStock == nil {
			continue
		}
		if item.CurrentStock.LessThanOrEqual(*item.MinStock) {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

// --- repository.StockMovementRepository ---

func (s *Store) Create(ctx context.Context, m *entity.StockMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(m)
}

func (s *Store) createLocked(m *entity.StockMovement) error {
	if m.InvoiceID != "" {
		key := dedupKey(m)
		if s.dedup[key] {
			return fmt.Errorf("factura %s, ítem %s: %w", m.InvoiceID, m.ItemID, domain.ErrDuplicateDeduction)
		}
		s.dedup[key] = true
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	cp := *m
	s.movements = append(s.movements, &cp)
	return nil
}

func (s *Store) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range s.movements {
		if m.ItemID == itemID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *Store) SumByItem(ctx context.Context, itemID string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for _, m := range s.movements {
		if m.ItemID == itemID {
			sum = sum.Add(m.Quantity)
		}
	}
	return sum, nil
}

// --- repository.CatalogRepository ---

func (s *Store) OrderLines(ctx context.Context, orderID string) ([]repository.CatalogLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]repository.CatalogLine(nil), s.orderLines[orderID]...), nil
}

func (s *Store) LedgerItemID(ctx context.Context, catalogRef string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalogMap[catalogRef], nil
}

// --- ledger.TxRunner ---

// Run ejecuta fn contra una vista transaccional: los cambios quedan staged y
// solo se aplican al almacén si fn retorna nil. El mutex se sostiene durante
// toda la transacción, como el bloqueo de filas en PostgreSQL.
func (s *Store) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s, staged: make(map[string]decimal.Decimal), dedupSeen: make(map[string]bool)}
	if err := fn(tx, tx); err != nil {
		return err
	}
	// Commit: aplicar saldos y movimientos.
	for itemID, qty := range tx.staged {
		s.items[itemID].CurrentStock = qty
	}
	for _, m := range tx.movs {
		if err := s.createLocked(m); err != nil {
			return err
		}
	}
	return nil
}

// memTx vista transaccional del almacén: lee lo staged por encima de la base
// y acumula movimientos sin tocar el almacén hasta el commit.
type memTx struct {
	store     *Store
	staged    map[string]decimal.Decimal
	movs      []*entity.StockMovement
	dedupSeen map[string]bool
}

var (
	_ repository.ItemRepository          = (*memTx)(nil)
	_ repository.StockMovementRepository = (*memTx)(nil)
)

func (t *memTx) itemView(id string) *entity.Item {
	item, ok := t.store.items[id]
	if !ok {
		return nil
	}
	cp := *item
	if qty, ok := t.staged[id]; ok {
		cp.CurrentStock = qty
	}
	return &cp
}

func (t *memTx) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return t.itemView(id), nil
}

func (t *memTx) GetBySKU(ctx context.Context, sku string) (*entity.Item, error) {
	for id, item := range t.store.items {
		if item.SKU == sku {
			return t.itemView(id), nil
		}
	}
	return nil, nil
}

func (t *memTx) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return t.itemView(id), nil
}

func (t *memTx) UpdateStock(ctx context.Context, itemID string, quantity decimal.Decimal) error {
	if _, ok := t.store.items[itemID]; !ok {
		return fmt.Errorf("update stock: ítem %s no existe", itemID)
	}
	t.staged[itemID] = quantity
	return nil
}

func (t *memTx) GetRecipe(ctx context.Context, compositeID string) ([]entity.RecipeLine, error) {
	return append([]entity.RecipeLine(nil), t.store.recipes[compositeID]...), nil
}

func (t *memTx) ListBelowMinStock(ctx context.Context) ([]*entity.Item, error) {
	return nil, fmt.Errorf("list below min stock: no soportado dentro de una transacción")
}

func (t *memTx) Create(ctx context.Context, m *entity.StockMovement) error {
	if m.InvoiceID != "" {
		key := dedupKey(m)
		if t.store.dedup[key] || t.dedupSeen[key] {
			return fmt.Errorf("factura %s, ítem %s: %w", m.InvoiceID, m.ItemID, domain.ErrDuplicateDeduction)
		}
		t.dedupSeen[key] = true
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	cp := *m
	t.movs = append(t.movs, &cp)
	return nil
}

// ListByItem y SumByItem ven base + staged. No toman el mutex: el caller de
// la transacción ya lo sostiene.
func (t *memTx) ListByItem(ctx context.Context, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range append(append([]*entity.StockMovement(nil), t.store.movements...), t.movs...) {
		if m.ItemID == itemID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (t *memTx) SumByItem(ctx context.Context, itemID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range append(append([]*entity.StockMovement(nil), t.store.movements...), t.movs...) {
		if m.ItemID == itemID {
			sum = sum.Add(m.Quantity)
		}
	}
	return sum, nil
}

func dedupKey(m *entity.StockMovement) string {
	return m.InvoiceID + "|" + m.SourceItemID + "|" + m.ItemID
}
