package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrSaleNotFound        = errors.New("venta no encontrada")
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrCategoryNotFound    = errors.New("categoría no encontrada")
	ErrCategoryInactive    = errors.New("categoría desactivada")
	ErrProductInactive     = errors.New("producto desactivado")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidQuantity     = errors.New("cantidad inválida")
	ErrConcurrencyConflict = errors.New("conflicto de concurrencia, reintente la operación")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrUnauthorized        = errors.New("no autorizado")
)

// InsufficientStockError lleva las cantidades del rechazo para que el caller
// pueda mostrar un mensaje preciso. Un producto sin stock registrado (NULL)
// se reporta con Available = 0.
type InsufficientStockError struct {
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", e.Available, e.Requested)
}

// Unwrap permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
