package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mitiendita-api/internal/application/auth"
	"github.com/jhoicas/mitiendita-api/internal/application/sales"
	"github.com/jhoicas/mitiendita-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	SalesUC    *sales.UseCase
	AuthUC     *auth.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Las lecturas son públicas; toda
// escritura exige Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Categorías
	categories := api.Group("/categorias")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Post("/", requireAuth, categoryHandler.Create)
	categories.Put("/:id", requireAuth, categoryHandler.Update)
	categories.Delete("/:id", requireAuth, categoryHandler.Delete)

	// Productos
	products := api.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", requireAuth, productHandler.Create)
	products.Put("/:id", requireAuth, productHandler.Update)
	products.Delete("/:id", requireAuth, productHandler.Delete)

	// Ventas
	salesGroup := api.Group("/ventas")
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/", requireAuth, saleHandler.Create)
	salesGroup.Post("/:id/items", requireAuth, saleHandler.AddItem)
	salesGroup.Delete("/:id", requireAuth, saleHandler.Delete)
}
