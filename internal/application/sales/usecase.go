package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/mitiendita-api/internal/application/dto"
	"github.com/jhoicas/mitiendita-api/internal/domain"
	"github.com/jhoicas/mitiendita-api/internal/domain/entity"
	"github.com/jhoicas/mitiendita-api/internal/domain/inventory"
	"github.com/jhoicas/mitiendita-api/internal/domain/repository"
)

// Un conflicto de concurrencia se reintenta una sola vez; si vuelve a fallar
// se devuelve al caller.
const maxConflictRetries = 1

// UseCase casos de uso de ventas. AddItem es la única operación que muta
// stock y total, y lo hace de forma transaccional (todo o nada).
type UseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
}

// NewUseCase construye el caso de uso de ventas.
func NewUseCase(txRunner TxRunner, saleRepo repository.SaleRepository) *UseCase {
	return &UseCase{txRunner: txRunner, saleRepo: saleRepo}
}

// Create crea una venta vacía con total 0.
func (uc *UseCase) Create(ctx context.Context) (*dto.SaleResponse, error) {
	sale := &entity.Sale{
		ID:    uuid.New().String(),
		Date:  time.Now(),
		Total: decimal.Zero,
	}
	if err := uc.saleRepo.Create(sale); err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// AddItem agrega un item a la venta de forma atómica: carga venta y producto
// bloqueando ambas filas con FOR UPDATE (siempre venta primero, producto
// después, para que no haya deadlocks entre AddItem concurrentes), valida
// elegibilidad, descuenta stock, inserta el item con el precio vigente como
// precio_unitario y recalcula el total. El bloqueo de la venta serializa los
// agregados concurrentes sobre la misma venta: sin él, el recálculo del total
// puede no ver el item recién confirmado por la otra transacción. Todo dentro
// de una transacción: cualquier fallo revierte sin dejar estado parcial. Un
// ErrConcurrencyConflict se reintenta una vez completo (la validación se
// reevalúa contra el estado recién leído).
func (uc *UseCase) AddItem(ctx context.Context, saleID, productID string, cantidad int64) (*dto.SaleItemResponse, error) {
	if cantidad <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	for attempt := 0; ; attempt++ {
		item, err := uc.addItemTx(ctx, saleID, productID, cantidad)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, domain.ErrConcurrencyConflict) || attempt >= maxConflictRetries {
			return nil, err
		}
	}
}

func (uc *UseCase) addItemTx(ctx context.Context, saleID, productID string, cantidad int64) (*dto.SaleItemResponse, error) {
	var out *dto.SaleItemResponse
	err := uc.txRunner.Run(ctx, func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila de la venta: serializa los AddItem sobre la misma venta.
		sale, err := saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrSaleNotFound
		}

		// Bloquea la fila del producto: validación y descuento ven el mismo stock.
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if err := inventory.CheckSaleEligibility(product, cantidad); err != nil {
			return err
		}

		rest := product.Stock.Units() - cantidad
		if err := productRepo.UpdateStock(productID, entity.TrackedStock(rest)); err != nil {
			return err
		}

		item := &entity.SaleItem{
			ID:        uuid.New().String(),
			SaleID:    saleID,
			ProductID: productID,
			Quantity:  cantidad,
			UnitPrice: product.Price, // snapshot: inmutable aunque el producto cambie de precio
		}
		if err := saleRepo.CreateItem(item); err != nil {
			return err
		}

		if _, err := saleRepo.RecomputeTotal(saleID); err != nil {
			return err
		}
		out = toSaleItemResponse(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID devuelve la venta con sus items y el producto de cada item
// (solo estado confirmado).
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetWithItems(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	return toSaleResponse(sale), nil
}

// List lista ventas con items, paginadas.
func (uc *UseCase) List(ctx context.Context, limit, offset int) (*dto.SaleListResponse, error) {
	list, err := uc.saleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una venta; sus items caen en cascada.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrSaleNotFound
	}
	return uc.saleRepo.Delete(id)
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for i := range s.Items {
		items = append(items, *toSaleItemResponse(&s.Items[i]))
	}
	return &dto.SaleResponse{
		ID:    s.ID,
		Date:  s.Date,
		Total: s.Total,
		Items: items,
	}
}

func toSaleItemResponse(i *entity.SaleItem) *dto.SaleItemResponse {
	out := &dto.SaleItemResponse{
		ID:        i.ID,
		SaleID:    i.SaleID,
		ProductID: i.ProductID,
		Quantity:  i.Quantity,
		UnitPrice: i.UnitPrice,
	}
	if i.Product != nil {
		out.Product = &dto.SaleItemProductRef{
			ID:          i.Product.ID,
			Name:        i.Product.Name,
			Description: i.Product.Description,
			Price:       i.Product.Price,
			Stock:       i.Product.Stock.IntPtr(),
		}
	}
	return out
}
