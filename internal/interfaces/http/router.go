package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/Inventario-stock/internal/application/auth"
	"github.com/jhoicas/Inventario-stock/internal/application/inventory"
	"github.com/jhoicas/Inventario-stock/internal/domain/entity"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CatalogUC     *inventory.CatalogUseCase
	StockUC       *inventory.StockUseCase
	TransactionUC *inventory.TransactionUseCase
	JWTSecret     string
	// Metrics si no es nil se expone en GET /metrics.
	Metrics prometheus.Gatherer
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api", LanguageMiddleware())

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)
	writers := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	sellers := RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor)

	// Catálogo
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	items := protected.Group("/items")
	items.Post("/", writers, catalogHandler.CreateItem)
	items.Get("/:id", catalogHandler.GetItem)
	locations := protected.Group("/locations")
	locations.Post("/", writers, catalogHandler.CreateLocation)
	locations.Get("/", catalogHandler.ListLocations)
	locations.Get("/:id", catalogHandler.GetLocation)

	// Stocks: lectura para cualquier rol, movimientos solo admin/bodeguero
	stockHandler := NewStockHandler(deps.StockUC)
	txHandler := NewTransactionHandler(deps.TransactionUC)
	stocks := protected.Group("/stocks")
	stocks.Post("/", writers, stockHandler.Create)
	stocks.Get("/", stockHandler.Find)
	stocks.Get("/:id", stockHandler.Get)
	stocks.Patch("/:id/locator", writers, stockHandler.UpdateLocator)
	stocks.Get("/:id/movements", stockHandler.ListMovements)
	stocks.Post("/:id/put", writers, stockHandler.Put)
	stocks.Post("/:id/take", writers, stockHandler.Take)
	stocks.Post("/:id/move", writers, stockHandler.Move)
	stocks.Post("/:id/rollback", writers, stockHandler.Rollback)
	stocks.Post("/:id/transactions", sellers, txHandler.Create)
	stocks.Get("/:id/transactions", txHandler.ListByStock)

	// Transacciones
	transactions := protected.Group("/transactions")
	transactions.Get("/:id", txHandler.Get)
	transactions.Get("/:id/history", txHandler.History)
	transactions.Post("/:id/:operation", sellers, txHandler.Transition)
}
