package entity

import "time"

// User usuario de la tienda (para autenticación).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
