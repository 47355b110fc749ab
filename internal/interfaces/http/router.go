package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Documentos-api/internal/application/auth"
	"github.com/jhoicas/Documentos-api/internal/application/documents"
	"github.com/jhoicas/Documentos-api/internal/application/inventory"
	"github.com/jhoicas/Documentos-api/internal/application/ports"
	"github.com/jhoicas/Documentos-api/internal/application/usecase"
	"github.com/jhoicas/Documentos-api/internal/domain/document"
	"github.com/jhoicas/Documentos-api/internal/domain/rbac"
	"github.com/jhoicas/Documentos-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	DocumentUC  *documents.UseCase
	StockUC     *inventory.StockUseCase
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	CustomerUC  *usecase.CustomerUseCase
	AuthUC      *auth.AuthUseCase
	Evaluator   *rbac.Evaluator
	// Idempotency puede ser nil: sin Redis las creaciones no se deduplican.
	Idempotency ports.IdempotencyStore
	Logger      *logger.Logger
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	can := func(perms ...string) fiber.Handler { return RequirePermission(deps.Evaluator, perms...) }
	idem := Idempotency(deps.Idempotency, deps.Logger)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/register", RequireRole("admin"), authHandler.Register)
	protected.Get("/users/me", authHandler.Me)
	protected.Get("/users/me/permissions", authHandler.Permissions)

	// Documentos: mismas rutas para los cuatro tipos.
	docHandler := NewDocumentHandler(deps.DocumentUC)
	for _, t := range document.Types() {
		res := t.Resource()
		g := protected.Group("/" + t.Segment())
		g.Get("/", can(res+":view"), docHandler.List(t))
		g.Post("/", can(res+":create"), idem, docHandler.Create(t))
		g.Get("/preview-number", can(res+":view"), docHandler.PreviewNumber(t))
		g.Get("/latest-number", can(res+":view"), docHandler.LatestNumber(t))
		g.Get("/:id", can(res+":view"), docHandler.Get(t))
		for _, a := range document.Actions(t) {
			g.Post("/:id/"+string(a), can(res+":"+string(a)), docHandler.Transition(t, a))
		}
		if t == document.TypeQuotation || t == document.TypeInvoice {
			g.Get("/:id/pdf", can(res+":view"), docHandler.PDF(t))
		}
	}
	protected.Delete("/quotations/:id", can("quotation:delete"), docHandler.DeleteQuotation)

	// Stock
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	protected.Post("/stock/imports", can("stock:import"), idem, inventoryHandler.Import)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", can("product:create"), productHandler.Create)
	products.Get("/", can("product:view"), productHandler.List)
	products.Get("/:id", can("product:view"), productHandler.GetByID)
	products.Put("/:id", can("product:update"), productHandler.Update)
	products.Get("/:id/stock", can("stock:view"), inventoryHandler.ProductStock)
	products.Get("/:id/movements", can("stock:view"), inventoryHandler.Movements)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", can("warehouse:create"), warehouseHandler.Create)
	warehouses.Get("/", can("warehouse:view"), warehouseHandler.List)
	warehouses.Get("/:id", can("warehouse:view"), warehouseHandler.GetByID)
	warehouses.Get("/:id/stock", can("stock:view"), inventoryHandler.WarehouseStock)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", can("customer:create"), customerHandler.Create)
	customers.Get("/", can("customer:view"), customerHandler.List)
	customers.Get("/:id", can("customer:view"), customerHandler.GetByID)
}

// NewApp crea la app fiber con el manejador de errores y el log de peticiones de la API.
func NewApp(cfg fiber.Config, log *logger.Logger) *fiber.App {
	cfg.ErrorHandler = ErrorHandler
	app := fiber.New(cfg)
	app.Use(RequestLogger(log))
	return app
}
