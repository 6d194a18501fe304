package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mitiendita-api/internal/application/sales"
	"github.com/jhoicas/mitiendita-api/internal/domain/entity"
	"github.com/jhoicas/mitiendita-api/internal/domain/repository"
	apphttp "github.com/jhoicas/mitiendita-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs mínimos: el caso de uso real de ventas sobre un almacén en memoria,
// para verificar el mapeo de la taxonomía de errores a estados HTTP.
// ──────────────────────────────────────────────────────────────────────────────

type stubStore struct {
	products map[string]*entity.Product
	ventas   map[string]*entity.Sale
	items    []entity.SaleItem
}

type stubSaleRepo struct{ s *stubStore }

func (r *stubSaleRepo) Create(sale *entity.Sale) error {
	r.s.ventas[sale.ID] = sale
	return nil
}

func (r *stubSaleRepo) GetByID(id string) (*entity.Sale, error) {
	return r.s.ventas[id], nil
}

func (r *stubSaleRepo) GetForUpdate(id string) (*entity.Sale, error) {
	return r.s.ventas[id], nil
}

func (r *stubSaleRepo) GetWithItems(id string) (*entity.Sale, error) {
	v := r.s.ventas[id]
	if v == nil {
		return nil, nil
	}
	cp := *v
	for _, it := range r.s.items {
		if it.SaleID == id {
			cp.Items = append(cp.Items, it)
		}
	}
	return &cp, nil
}

func (r *stubSaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0, len(r.s.ventas))
	for id := range r.s.ventas {
		v, _ := r.GetWithItems(id)
		out = append(out, v)
	}
	return out, nil
}

func (r *stubSaleRepo) Delete(id string) error {
	delete(r.s.ventas, id)
	return nil
}

func (r *stubSaleRepo) CreateItem(item *entity.SaleItem) error {
	r.s.items = append(r.s.items, *item)
	return nil
}

func (r *stubSaleRepo) RecomputeTotal(saleID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, it := range r.s.items {
		if it.SaleID == saleID {
			total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
		}
	}
	r.s.ventas[saleID].Total = total
	return total, nil
}

type stubProductRepo struct{ s *stubStore }

func (r *stubProductRepo) Create(p *entity.Product) error       { r.s.products[p.ID] = p; return nil }
func (r *stubProductRepo) GetByID(id string) (*entity.Product, error)      { return r.s.products[id], nil }
func (r *stubProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.s.products[id], nil }
func (r *stubProductRepo) Update(p *entity.Product) error       { r.s.products[p.ID] = p; return nil }
func (r *stubProductRepo) UpdateStock(id string, stock entity.Stock) error {
	r.s.products[id].Stock = stock
	return nil
}
func (r *stubProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) Delete(id string) error { delete(r.s.products, id); return nil }

type stubTxRunner struct{ s *stubStore }

func (r *stubTxRunner) Run(ctx context.Context, fn func(repository.SaleRepository, repository.ProductRepository) error) error {
	return fn(&stubSaleRepo{s: r.s}, &stubProductRepo{s: r.s})
}

// buildSalesApp monta las rutas de ventas (sin auth, se prueba aparte) sobre
// un store con una venta vacía y un producto vendible (stock 5, precio 10.00).
func buildSalesApp() (*stubStore, *fiber.App) {
	store := &stubStore{
		products: make(map[string]*entity.Product),
		ventas:   make(map[string]*entity.Sale),
	}
	store.ventas["v1"] = &entity.Sale{ID: "v1", Total: decimal.Zero}
	store.products["p1"] = &entity.Product{
		ID:     "p1",
		Name:   "Café molido 500g",
		Price:  decimal.RequireFromString("10.00"),
		Stock:  entity.TrackedStock(5),
		Active: true,
		Category: &entity.Category{
			ID:     "c1",
			Name:   "Abarrotes",
			Active: true,
		},
	}

	uc := sales.NewUseCase(&stubTxRunner{s: store}, &stubSaleRepo{s: store})
	h := apphttp.NewSaleHandler(uc)

	app := fiber.New()
	app.Post("/api/ventas", h.Create)
	app.Get("/api/ventas/:id", h.GetByID)
	app.Post("/api/ventas/:id/items", h.AddItem)
	return store, app
}

func postItem(t *testing.T, app *fiber.App, saleID, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/ventas/"+saleID+"/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeError(t *testing.T, resp *http.Response) (code, message string) {
	t.Helper()
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Code, body.Message
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AddItem (mapeo de errores a HTTP)
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleHandler_AddItemExitoso(t *testing.T) {
	store, app := buildSalesApp()

	resp := postItem(t, app, "v1", `{"producto_id":"p1","cantidad":3}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var item struct {
		SaleID    string `json:"venta_id"`
		ProductID string `json:"producto_id"`
		Quantity  int64  `json:"cantidad"`
		UnitPrice string `json:"precio_unitario"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&item))
	assert.Equal(t, "v1", item.SaleID)
	assert.Equal(t, "p1", item.ProductID)
	assert.Equal(t, int64(3), item.Quantity)
	assert.Equal(t, "10", item.UnitPrice)

	assert.Equal(t, int64(2), store.products["p1"].Stock.Units())
}

func TestSaleHandler_AddItemVentaNoExiste(t *testing.T) {
	_, app := buildSalesApp()

	resp := postItem(t, app, "no-existe", `{"producto_id":"p1","cantidad":1}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	code, _ := decodeError(t, resp)
	assert.Equal(t, "SALE_NOT_FOUND", code)
}

func TestSaleHandler_AddItemProductoNoExiste(t *testing.T) {
	_, app := buildSalesApp()

	resp := postItem(t, app, "v1", `{"producto_id":"no-existe","cantidad":1}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	code, _ := decodeError(t, resp)
	assert.Equal(t, "PRODUCT_NOT_FOUND", code)
}

func TestSaleHandler_AddItemStockInsuficiente(t *testing.T) {
	_, app := buildSalesApp()

	resp := postItem(t, app, "v1", `{"producto_id":"p1","cantidad":9}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	code, message := decodeError(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", code)
	assert.Contains(t, message, "disponible 5", "el mensaje debe incluir el stock disponible")
	assert.Contains(t, message, "solicitado 9", "el mensaje debe incluir la cantidad pedida")
}

func TestSaleHandler_AddItemProductoInactivo(t *testing.T) {
	store, app := buildSalesApp()
	store.products["p1"].Active = false

	resp := postItem(t, app, "v1", `{"producto_id":"p1","cantidad":1}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	code, _ := decodeError(t, resp)
	assert.Equal(t, "PRODUCT_INACTIVE", code)
}

func TestSaleHandler_AddItemCategoriaInactiva(t *testing.T) {
	store, app := buildSalesApp()
	store.products["p1"].Category.Active = false

	resp := postItem(t, app, "v1", `{"producto_id":"p1","cantidad":1}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	code, _ := decodeError(t, resp)
	assert.Equal(t, "CATEGORY_INACTIVE", code)
}

func TestSaleHandler_AddItemCantidadInvalida(t *testing.T) {
	_, app := buildSalesApp()

	resp := postItem(t, app, "v1", `{"producto_id":"p1","cantidad":0}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	code, _ := decodeError(t, resp)
	assert.Equal(t, "INVALID_QUANTITY", code)
}

func TestSaleHandler_AddItemSinProductoID(t *testing.T) {
	_, app := buildSalesApp()

	resp := postItem(t, app, "v1", `{"cantidad":1}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	code, _ := decodeError(t, resp)
	assert.Equal(t, "VALIDATION", code)
}

func TestSaleHandler_GetByIDConItems(t *testing.T) {
	_, app := buildSalesApp()

	resp := postItem(t, app, "v1", `{"producto_id":"p1","cantidad":2}`)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/ventas/v1", nil)
	getResp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer getResp.Body.Close()

	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var venta struct {
		ID    string `json:"venta_id"`
		Total string `json:"total"`
		Items []struct {
			ProductID string `json:"producto_id"`
			Quantity  int64  `json:"cantidad"`
		} `json:"items"`
	}
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&venta))
	assert.Equal(t, "v1", venta.ID)
	assert.Equal(t, "20", venta.Total)
	require.Len(t, venta.Items, 1)
	assert.Equal(t, "p1", venta.Items[0].ProductID)
}
