package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mitiendita-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus items (DIP).
// CreateItem y RecomputeTotal solo deben usarse dentro de una transacción del
// TxRunner, junto con el descuento de stock.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	// GetByID devuelve solo la cabecera de la venta.
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate devuelve la cabecera y bloquea la fila de la venta
	// (SELECT FOR UPDATE). Usar solo dentro de una transacción del TxRunner:
	// serializa los AddItem concurrentes sobre la misma venta para que el
	// recálculo del total vea todos los items confirmados.
	GetForUpdate(id string) (*entity.Sale, error)
	// GetWithItems devuelve la venta con sus items y el producto de cada item.
	GetWithItems(id string) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
	// Delete elimina la venta; los items caen en cascada.
	Delete(id string) error
	CreateItem(item *entity.SaleItem) error
	// RecomputeTotal recalcula total = SUM(cantidad * precio_unitario) de los
	// items de la venta, lo persiste y devuelve el valor nuevo.
	RecomputeTotal(saleID string) (decimal.Decimal, error)
}
