package router

import (
	"time"

	"github.com/mikoypft/lztmeat/internal/config"
	"github.com/mikoypft/lztmeat/internal/handler"
	"github.com/mikoypft/lztmeat/internal/middleware"
	"github.com/mikoypft/lztmeat/internal/repository"
	"github.com/mikoypft/lztmeat/internal/service"
	"github.com/mikoypft/lztmeat/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	ingredientRepo := repository.NewIngredientRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	movementRepo := repository.NewMovementRepository(db)
	productionRepo := repository.NewProductionRepository(db)
	transferRepo := repository.NewTransferRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	ledgerSvc := service.NewLedgerService(inventoryRepo, movementRepo)
	inventorySvc := service.NewInventoryService(inventoryRepo, movementRepo, ledgerSvc, rdb)
	pricingSvc := service.NewPricingService(discountRepo)
	catalogSvc := service.NewCatalogService(productRepo, categoryRepo)
	ingredientSvc := service.NewIngredientService(ingredientRepo, db)
	storeSvc := service.NewStoreService(locationRepo)
	discountSvc := service.NewDiscountService(discountRepo)
	supplierSvc := service.NewSupplierService(supplierRepo)
	productionSvc := service.NewProductionService(productionRepo, productRepo, ingredientRepo, locationRepo, ledgerSvc, inventorySvc)
	transferSvc := service.NewTransferService(transferRepo, productRepo, locationRepo, ledgerSvc, inventorySvc)
	saleSvc := service.NewSaleService(saleRepo, productRepo, locationRepo, ledgerSvc, pricingSvc, inventorySvc, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	productsH := handler.NewProductsHandler(catalogSvc)
	categoriesH := handler.NewCategoriesHandler(catalogSvc)
	ingredientsH := handler.NewIngredientsHandler(ingredientSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	productionH := handler.NewProductionHandler(productionSvc)
	transfersH := handler.NewTransfersHandler(transferSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	discountsH := handler.NewDiscountsHandler(discountSvc)
	storesH := handler.NewStoresHandler(storeSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: cashier, manager, admin — declared per-endpoint
		v1.POST("/sales", middleware.RequireRole("cashier", "manager", "admin"), salesH.Checkout)
		v1.GET("/sales", middleware.RequireRole("cashier", "manager", "admin"), salesH.List)
		v1.DELETE("/sales/:id", middleware.RequireRole("manager", "admin"), salesH.Reverse)
		v1.PATCH("/sales/:id/reseco", middleware.RequireRole("manager", "admin"), salesH.ApplyReseco)

		// Catalog — everyone reads, admin writes
		v1.GET("/products", middleware.RequireRole("cashier", "manager", "admin"), productsH.List)
		v1.GET("/products/:id", middleware.RequireRole("cashier", "manager", "admin"), productsH.GetByID)
		products := v1.Group("/products", middleware.RequireRole("admin"))
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Deactivate)
			products.PATCH("/:id/reactivate", productsH.Reactivate)
		}

		v1.GET("/categories", middleware.RequireRole("cashier", "manager", "admin"), categoriesH.List)
		categories := v1.Group("/categories", middleware.RequireRole("admin"))
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Deactivate)
		}

		// Ingredients — production staff are managers
		v1.GET("/ingredients", middleware.RequireRole("manager", "admin"), ingredientsH.List)
		v1.GET("/ingredients/:id", middleware.RequireRole("manager", "admin"), ingredientsH.GetByID)
		v1.PATCH("/ingredients/:id/adjust", middleware.RequireRole("manager", "admin"), ingredientsH.Adjust)
		ingredients := v1.Group("/ingredients", middleware.RequireRole("admin"))
		{
			ingredients.POST("", ingredientsH.Create)
			ingredients.PUT("/:id", ingredientsH.Update)
			ingredients.DELETE("/:id", ingredientsH.Deactivate)
		}

		inv := v1.Group("/inventory", middleware.RequireRole("manager", "admin"))
		{
			inv.GET("", inventoryH.Get)
			inv.POST("/adjust", inventoryH.Adjust)
			inv.GET("/movements", inventoryH.Movements)
		}

		production := v1.Group("/production", middleware.RequireRole("manager", "admin"))
		{
			production.POST("", productionH.Record)
			production.GET("", productionH.List)
			production.GET("/:id", productionH.Get)
			production.PATCH("/:id/status", productionH.SetStatus)
			production.DELETE("/:id", productionH.Delete)
		}

		transfers := v1.Group("/transfers", middleware.RequireRole("manager", "admin"))
		{
			transfers.POST("", transfersH.Request)
			transfers.GET("", transfersH.List)
			transfers.GET("/:id", transfersH.Get)
			transfers.PATCH("/:id/status", transfersH.SetStatus)
		}

		v1.GET("/discounts", middleware.RequireRole("manager", "admin"), discountsH.Get)
		v1.PUT("/discounts", middleware.RequireRole("admin"), discountsH.Update)

		v1.GET("/stores", middleware.RequireRole("cashier", "manager", "admin"), storesH.List)
		v1.GET("/stores/:id", middleware.RequireRole("cashier", "manager", "admin"), storesH.GetByID)
		stores := v1.Group("/stores", middleware.RequireRole("admin"))
		{
			stores.POST("", storesH.Create)
			stores.PUT("/:id", storesH.Update)
		}

		suppliers := v1.Group("/suppliers", middleware.RequireRole("admin"))
		{
			suppliers.POST("", suppliersH.Create)
			suppliers.GET("", suppliersH.List)
			suppliers.GET("/:id", suppliersH.GetByID)
			suppliers.PUT("/:id", suppliersH.Update)
			suppliers.DELETE("/:id", suppliersH.Deactivate)
		}

		users := v1.Group("/users", middleware.RequireRole("admin"))
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
