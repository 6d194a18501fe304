package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"nombre" form:"nombre"`
	Description string `json:"descripcion" form:"descripcion"`
	Active      *bool  `json:"activo" form:"activo"`
}

// UpdateCategoryRequest entrada para actualizar una categoría (parcial).
type UpdateCategoryRequest struct {
	Name        *string `json:"nombre" form:"nombre"`
	Description *string `json:"descripcion" form:"descripcion"`
	Active      *bool   `json:"activo" form:"activo"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"categoria_id"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	Active      bool      `json:"activo"`
	CreatedAt   time.Time `json:"fecha_creacion"`
	UpdatedAt   time.Time `json:"fecha_actualizacion"`
}

// CategoryListResponse lista paginada de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
