package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// Stock nil significa "sin seguimiento de stock" (no vendible).
type CreateProductRequest struct {
	Name        string           `json:"nombre" form:"nombre"`
	Description string           `json:"descripcion" form:"descripcion"`
	Price       *decimal.Decimal `json:"precio" form:"precio"`
	Stock       *int64           `json:"stock" form:"stock"`
	Active      *bool            `json:"activo" form:"activo"`
	CategoryID  string           `json:"categoria_id" form:"categoria_id"`
}

// UpdateProductRequest entrada para actualizar un producto (parcial).
type UpdateProductRequest struct {
	Name        *string          `json:"nombre" form:"nombre"`
	Description *string          `json:"descripcion" form:"descripcion"`
	Price       *decimal.Decimal `json:"precio" form:"precio"`
	Stock       *int64           `json:"stock" form:"stock"`
	Active      *bool            `json:"activo" form:"activo"`
}

// ProductResponse salida de un producto. Stock null = sin seguimiento.
type ProductResponse struct {
	ID          string          `json:"producto_id"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Stock       *int64          `json:"stock"`
	Active      bool            `json:"activo"`
	CategoryID  string          `json:"categoria_id,omitempty"`
	CreatedAt   time.Time       `json:"fecha_creacion"`
	UpdatedAt   time.Time       `json:"fecha_actualizacion"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
