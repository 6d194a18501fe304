package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/mitiendita-api/internal/domain"
	"github.com/jhoicas/mitiendita-api/internal/domain/entity"
	"github.com/jhoicas/mitiendita-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Columnas de producto más la categoría asociada (LEFT JOIN: puede no tener).
const productSelect = `
	SELECT p.producto_id, p.nombre, p.descripcion, p.precio, p.stock, p.activo,
	       p.categoria_id, p.fecha_creacion, p.fecha_actualizacion,
	       c.nombre, c.descripcion, c.activo, c.fecha_creacion, c.fecha_actualizacion
	FROM productos p
	LEFT JOIN categorias c ON c.categoria_id = p.categoria_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var (
		p          entity.Product
		stock      *int64
		categoryID *string
		catName    *string
		catDesc    *string
		catActive  *bool
		catCreated *time.Time
		catUpdated *time.Time
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &stock, &p.Active,
		&categoryID, &p.CreatedAt, &p.UpdatedAt,
		&catName, &catDesc, &catActive, &catCreated, &catUpdated,
	)
	if err != nil {
		return nil, err
	}
	p.Stock = entity.StockFromPtr(stock)
	if categoryID != nil {
		p.CategoryID = *categoryID
		p.Category = &entity.Category{
			ID:          *categoryID,
			Name:        *catName,
			Description: *catDesc,
			Active:      *catActive,
			CreatedAt:   *catCreated,
			UpdatedAt:   *catUpdated,
		}
	}
	return &p, nil
}

// Create persiste un nuevo producto. stock NULL = sin seguimiento.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO productos (producto_id, nombre, descripcion, precio, stock, activo, categoria_id, fecha_creacion, fecha_actualizacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	var categoryID *string
	if product.CategoryID != "" {
		categoryID = &product.CategoryID
	}
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price,
		product.Stock.IntPtr(), product.Active, categoryID,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID con su categoría.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	row := r.q.QueryRow(context.Background(), productSelect+` WHERE p.producto_id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto con su categoría y bloquea la fila del
// producto (SELECT FOR UPDATE OF p). Usar solo dentro de una transacción:
// el stock leído es el que se descuenta antes del commit.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	row := r.q.QueryRow(context.Background(),
		productSelect+` WHERE p.producto_id = $1 FOR UPDATE OF p`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto for update: %w", err)
	}
	return p, nil
}

// Update actualiza los datos de catálogo del producto (incluido stock, para
// ajustes manuales; durante una venta usar UpdateStock dentro de la tx).
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE productos SET nombre = $2, descripcion = $3, precio = $4, stock = $5, activo = $6, fecha_actualizacion = $7
		WHERE producto_id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.Price,
		product.Stock.IntPtr(), product.Active, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// UpdateStock escribe solo el stock (usado por el coordinador de ventas con
// la fila ya bloqueada).
func (r *ProductRepo) UpdateStock(id string, stock entity.Stock) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET stock = $2, fecha_actualizacion = now() WHERE producto_id = $1`,
		id, stock.IntPtr(),
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// List lista productos con filtros opcionales. Los productos de categorías
// desactivadas quedan fuera del listado (los sin categoría sí aparecen).
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	query := productSelect + ` WHERE (c.activo IS NULL OR c.activo = true)`
	args := []any{}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		query += fmt.Sprintf(" AND p.categoria_id = $%d", len(args))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		query += fmt.Sprintf(" AND p.activo = $%d", len(args))
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY p.fecha_creacion DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID (borrado físico). Un producto ya vendido
// está referenciado por venta_items y no se puede eliminar.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM productos WHERE producto_id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete producto: %w", err)
	}
	return nil
}
