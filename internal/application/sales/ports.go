package sales

import (
	"context"

	"github.com/jhoicas/mitiendita-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Si fn devuelve error (o el contexto se cancela antes del
// commit) no queda ningún cambio; la implementación debe reportar conflictos
// de escritura como domain.ErrConcurrencyConflict.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error) error
}
