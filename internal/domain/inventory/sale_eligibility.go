package inventory

import (
	"github.com/jhoicas/mitiendita-api/internal/domain"
	"github.com/jhoicas/mitiendita-api/internal/domain/entity"
)

// CheckSaleEligibility decide si se admite vender cantidad unidades del
// producto (servicio de dominio puro, sin efectos). El primer chequeo que
// falla gana:
//
//  1. producto inexistente
//  2. categoría desactivada (un producto sin categoría pasa este chequeo)
//  3. producto desactivado
//  4. stock sin seguimiento (NULL): no se puede vender
//  5. stock menor a la cantidad solicitada
//
// cantidad <= 0 es un error del caller (ErrInvalidQuantity), no de stock.
// Seguro de reevaluar bajo reintento.
func CheckSaleEligibility(p *entity.Product, cantidad int64) error {
	if p == nil {
		return domain.ErrProductNotFound
	}
	if cantidad <= 0 {
		return domain.ErrInvalidQuantity
	}
	if p.Category != nil && !p.Category.Active {
		return domain.ErrCategoryInactive
	}
	if !p.Active {
		return domain.ErrProductInactive
	}
	if !p.Stock.Covers(cantidad) {
		return &domain.InsufficientStockError{Available: p.Stock.Units(), Requested: cantidad}
	}
	return nil
}
