package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta. Total debe ser igual a la suma de
// cantidad × precio_unitario de sus items tras cada cambio confirmado.
// La venta es dueña de sus items: al eliminarla se eliminan en cascada.
type Sale struct {
	ID    string
	Date  time.Time
	Total decimal.Decimal
	Items []SaleItem
}

// SaleItem es una línea de venta. UnitPrice es el precio del producto
// capturado al momento de la venta; no cambia aunque el producto cambie
// de precio después. Los items no se actualizan tras su creación.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Product   *Product // cargado en lecturas con join; puede ser nil
}

// Subtotal devuelve cantidad × precio_unitario de la línea.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}
