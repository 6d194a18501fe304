package repository

import "github.com/jhoicas/mitiendita-api/internal/domain/entity"

// ProductFilter filtros opcionales para listar productos.
type ProductFilter struct {
	CategoryID string
	Active     *bool
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate y UpdateStock solo deben usarse dentro de una transacción del
// TxRunner; el resto funciona igual sobre pool o tx.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate carga el producto con su categoría y bloquea la fila
	// (SELECT FOR UPDATE) para que validación y descuento vean el mismo stock.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock escribe solo el stock (usado por el coordinador de ventas).
	UpdateStock(id string, stock entity.Stock) error
	// List excluye productos cuya categoría está desactivada.
	List(filter ProductFilter) ([]*entity.Product, error)
	Delete(id string) error
}
