package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Stock solo lo muta el
// coordinador de ventas (descuento dentro de su transacción); el resto de
// campos los maneja el CRUD del catálogo.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta vigente
	Stock       Stock
	Active      bool
	CategoryID  string    // vacío si no tiene categoría
	Category    *Category // cargada en lecturas con join; puede ser nil
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
