package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mitiendita-api/internal/domain"
	"github.com/jhoicas/mitiendita-api/internal/domain/entity"
	"github.com/jhoicas/mitiendita-api/internal/domain/inventory"
)

// producto base vendible: activo, categoría activa, 5 unidades.
func productoVendible() *entity.Product {
	return &entity.Product{
		ID:         "p-1",
		Name:       "Café molido",
		Price:      decimal.NewFromFloat(10.0),
		Stock:      entity.TrackedStock(5),
		Active:     true,
		CategoryID: "c-1",
		Category:   &entity.Category{ID: "c-1", Name: "Alimentos", Active: true},
	}
}

func TestCheckSaleEligibility_ProductoVendible(t *testing.T) {
	assert.NoError(t, inventory.CheckSaleEligibility(productoVendible(), 3))
	// Comprar exactamente todo el stock también es válido.
	assert.NoError(t, inventory.CheckSaleEligibility(productoVendible(), 5))
}

func TestCheckSaleEligibility_ProductoInexistente(t *testing.T) {
	err := inventory.CheckSaleEligibility(nil, 1)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCheckSaleEligibility_CantidadInvalida(t *testing.T) {
	assert.ErrorIs(t, inventory.CheckSaleEligibility(productoVendible(), 0), domain.ErrInvalidQuantity)
	assert.ErrorIs(t, inventory.CheckSaleEligibility(productoVendible(), -3), domain.ErrInvalidQuantity)
}

// La categoría desactivada gana sobre cualquier otro chequeo posterior:
// aunque el producto esté activo y tenga stock, no es vendible.
func TestCheckSaleEligibility_CategoriaDesactivada(t *testing.T) {
	p := productoVendible()
	p.Category.Active = false
	assert.ErrorIs(t, inventory.CheckSaleEligibility(p, 1), domain.ErrCategoryInactive)
}

func TestCheckSaleEligibility_ProductoDesactivado(t *testing.T) {
	p := productoVendible()
	p.Active = false
	assert.ErrorIs(t, inventory.CheckSaleEligibility(p, 1), domain.ErrProductInactive)
}

// Un producto sin categoría pasa el chequeo de categoría.
func TestCheckSaleEligibility_SinCategoria(t *testing.T) {
	p := productoVendible()
	p.CategoryID = ""
	p.Category = nil
	assert.NoError(t, inventory.CheckSaleEligibility(p, 1))
}

// Orden de chequeos: con categoría y producto desactivados a la vez, gana la categoría.
func TestCheckSaleEligibility_OrdenCategoriaAntesQueProducto(t *testing.T) {
	p := productoVendible()
	p.Category.Active = false
	p.Active = false
	assert.ErrorIs(t, inventory.CheckSaleEligibility(p, 1), domain.ErrCategoryInactive)
}

// stock NULL (sin seguimiento) se rechaza siempre, sin importar la cantidad.
func TestCheckSaleEligibility_StockSinSeguimiento(t *testing.T) {
	p := productoVendible()
	p.Stock = entity.UntrackedStock()

	err := inventory.CheckSaleEligibility(p, 1)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &insErr))
	assert.Equal(t, int64(0), insErr.Available, "sin seguimiento se reporta disponible 0")
	assert.Equal(t, int64(1), insErr.Requested)
}

func TestCheckSaleEligibility_StockInsuficiente(t *testing.T) {
	p := productoVendible()
	p.Stock = entity.TrackedStock(2)

	err := inventory.CheckSaleEligibility(p, 10)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &insErr))
	assert.Equal(t, int64(2), insErr.Available)
	assert.Equal(t, int64(10), insErr.Requested)
}

// Sin efectos: evaluar no muta el snapshot del producto.
func TestCheckSaleEligibility_NoMutaElProducto(t *testing.T) {
	p := productoVendible()
	_ = inventory.CheckSaleEligibility(p, 3)
	_ = inventory.CheckSaleEligibility(p, 100)
	assert.Equal(t, int64(5), p.Stock.Units())
	assert.True(t, p.Active)
}
