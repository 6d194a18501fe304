package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mitiendita-api/internal/domain/entity"
	"github.com/jhoicas/mitiendita-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta nueva (vacía, total 0).
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO ventas (venta_id, fecha_venta, total)
		VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, sale.ID, sale.Date, sale.Total)
	if err != nil {
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta (sin items).
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT venta_id, fecha_venta, total FROM ventas WHERE venta_id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(&s.ID, &s.Date, &s.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene la cabecera de la venta y bloquea su fila. Usar solo
// dentro de una transacción: dos AddItem concurrentes sobre la misma venta se
// serializan aquí, de modo que el recálculo del total siempre parte de los
// items ya confirmados (a READ COMMITTED, recalcular sin este bloqueo puede
// pisar el total con un snapshot que no ve el item de la otra transacción).
func (r *SaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	query := `SELECT venta_id, fecha_venta, total FROM ventas WHERE venta_id = $1 FOR UPDATE`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(&s.ID, &s.Date, &s.Total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta for update: %w", err)
	}
	return &s, nil
}

// GetWithItems obtiene la venta con sus items y el producto de cada item.
func (r *SaleRepo) GetWithItems(id string) (*entity.Sale, error) {
	sale, err := r.GetByID(id)
	if err != nil || sale == nil {
		return sale, err
	}
	itemsBySale, err := r.loadItems([]string{id})
	if err != nil {
		return nil, err
	}
	sale.Items = itemsBySale[id]
	return sale, nil
}

// List lista ventas (con items) ordenadas por fecha descendente.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT venta_id, fecha_venta, total
		FROM ventas ORDER BY fecha_venta DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	var ids []string
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.Date, &s.Total); err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, &s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}

	itemsBySale, err := r.loadItems(ids)
	if err != nil {
		return nil, err
	}
	for _, s := range list {
		s.Items = itemsBySale[s.ID]
	}
	return list, nil
}

// loadItems carga los items (con su producto) de un conjunto de ventas.
func (r *SaleRepo) loadItems(saleIDs []string) (map[string][]entity.SaleItem, error) {
	query := `
		SELECT i.id, i.venta_id, i.producto_id, i.cantidad, i.precio_unitario,
		       p.nombre, p.descripcion, p.precio, p.stock, p.activo
		FROM venta_items i
		JOIN productos p ON p.producto_id = i.producto_id
		WHERE i.venta_id = ANY($1)
		ORDER BY i.id`
	rows, err := r.q.Query(context.Background(), query, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("list venta items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.SaleItem)
	for rows.Next() {
		var (
			item  entity.SaleItem
			p     entity.Product
			stock *int64
		)
		if err := rows.Scan(
			&item.ID, &item.SaleID, &item.ProductID, &item.Quantity, &item.UnitPrice,
			&p.Name, &p.Description, &p.Price, &stock, &p.Active,
		); err != nil {
			return nil, fmt.Errorf("scan venta item: %w", err)
		}
		p.ID = item.ProductID
		p.Stock = entity.StockFromPtr(stock)
		item.Product = &p
		out[item.SaleID] = append(out[item.SaleID], item)
	}
	return out, rows.Err()
}

// Delete elimina la venta; venta_items cae en cascada (FK ON DELETE CASCADE).
func (r *SaleRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM ventas WHERE venta_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete venta: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta. Usar dentro de la transacción del
// coordinador, junto con el descuento de stock.
func (r *SaleRepo) CreateItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO venta_items (id, venta_id, producto_id, cantidad, precio_unitario)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert venta item: %w", err)
	}
	return nil
}

// RecomputeTotal recalcula y persiste total = SUM(cantidad * precio_unitario)
// de los items de la venta, y devuelve el valor nuevo.
func (r *SaleRepo) RecomputeTotal(saleID string) (decimal.Decimal, error) {
	query := `
		UPDATE ventas v
		SET total = COALESCE((
			SELECT SUM(i.cantidad * i.precio_unitario)
			FROM venta_items i WHERE i.venta_id = v.venta_id
		), 0)
		WHERE v.venta_id = $1
		RETURNING v.total`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, saleID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("recompute total venta: %w", err)
	}
	return total, nil
}
