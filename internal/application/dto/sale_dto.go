package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddSaleItemRequest entrada para agregar un item a una venta.
type AddSaleItemRequest struct {
	ProductID string `json:"producto_id" form:"producto_id"`
	Quantity  int64  `json:"cantidad" form:"cantidad"`
}

// SaleItemResponse salida de una línea de venta. PrecioUnitario es el precio
// capturado al momento de la venta.
type SaleItemResponse struct {
	ID        string             `json:"id"`
	SaleID    string             `json:"venta_id"`
	ProductID string             `json:"producto_id"`
	Quantity  int64              `json:"cantidad"`
	UnitPrice decimal.Decimal    `json:"precio_unitario"`
	Product   *SaleItemProductRef `json:"producto,omitempty"`
}

// SaleItemProductRef resumen del producto vendido dentro de una línea.
type SaleItemProductRef struct {
	ID          string          `json:"producto_id"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Stock       *int64          `json:"stock"`
}

// SaleResponse salida de una venta con sus items.
type SaleResponse struct {
	ID    string             `json:"venta_id"`
	Date  time.Time          `json:"fecha_venta"`
	Total decimal.Decimal    `json:"total"`
	Items []SaleItemResponse `json:"items"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
