package entity

import "time"

// Category representa una categoría de productos. Cuando Active es false sus
// productos quedan fuera de los listados del catálogo y no se pueden vender.
type Category struct {
	ID          string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
