package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/shop-api/internal/cache"
	"github.com/BruksfildServices01/shop-api/internal/changelog"
	"github.com/BruksfildServices01/shop-api/internal/config"
	"github.com/BruksfildServices01/shop-api/internal/handlers"
	infraRepo "github.com/BruksfildServices01/shop-api/internal/infra/repository"
	"github.com/BruksfildServices01/shop-api/internal/middleware"
	"github.com/BruksfildServices01/shop-api/internal/payment"
	"github.com/BruksfildServices01/shop-api/internal/storage"
	ucAuth "github.com/BruksfildServices01/shop-api/internal/usecase/auth"
	ucItem "github.com/BruksfildServices01/shop-api/internal/usecase/item"
	ucOrder "github.com/BruksfildServices01/shop-api/internal/usecase/order"
	"github.com/BruksfildServices01/shop-api/internal/validators"
)

// Deps are the long-lived collaborators built in main. Catalog and
// Uploader may be nil.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *logrus.Logger
	Catalog  cache.Catalog
	Uploader storage.Uploader
	Payments payment.Provider
}

func NewEngine(d Deps) *gin.Engine {
	validators.Setup()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(d.Config.AllowedOrigins()))
	r.Use(middleware.RequestLogger(d.Log))

	RegisterRoutes(r, d)
	return r
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	catalogCache := d.Catalog
	if catalogCache == nil {
		catalogCache = cache.Nop{}
	}

	itemRepo := infraRepo.NewItemGormRepository(d.DB)
	orderRepo := infraRepo.NewOrderGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)

	recorder := changelog.New(infraRepo.NewChangeLogGormRepository(d.DB))

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	catalogUC := ucItem.NewCatalog(itemRepo, catalogCache)

	listItemsUC := ucItem.NewListItems(itemRepo)
	createItemUC := ucItem.NewCreateItem(itemRepo, recorder, catalogCache, d.Log)
	updateItemUC := ucItem.NewUpdateItem(itemRepo, recorder, catalogCache, d.Log)
	deleteItemUC := ucItem.NewDeleteItem(itemRepo, recorder, catalogCache, d.Log)
	restoreItemUC := ucItem.NewRestoreItem(itemRepo, recorder, catalogCache, d.Log)
	bulkItemsUC := ucItem.NewBulkItems(itemRepo, recorder, catalogCache, d.Log)
	uploadImageUC := ucItem.NewUploadImage(
		itemRepo,
		d.Uploader,
		d.Config.ImageMaxWidth,
		recorder,
		catalogCache,
		d.Log,
	)

	checkoutUC := ucOrder.NewCheckout(orderRepo, userRepo, d.Payments, ucOrder.CheckoutSettings{
		FrontendURL: d.Config.FrontendURL,
		Currency:    d.Config.PaymentCurrency,
	}, d.Log)
	listOrdersUC := ucOrder.NewListOrders(orderRepo)

	signupUC := ucAuth.NewSignup(userRepo)
	loginUC := ucAuth.NewLogin(userRepo, ucAuth.NewTokens(d.Config.JWTSecret))

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	itemHandler := handlers.NewItemHandler(catalogUC, d.Log)
	adminItemHandler := handlers.NewAdminItemHandler(
		listItemsUC,
		createItemUC,
		updateItemUC,
		deleteItemUC,
		restoreItemUC,
		bulkItemsUC,
		uploadImageUC,
		d.Log,
	)
	orderHandler := handlers.NewOrderHandler(checkoutUC, listOrdersUC, d.Log)
	authHandler := handlers.NewAuthHandler(signupUC, loginUC, d.Log)
	meHandler := handlers.NewMeHandler(userRepo, d.Log)
	changeLogHandler := handlers.NewChangeLogHandler(recorder, d.Log)

	auth := middleware.Auth(d.Config.JWTSecret)
	adminOnly := middleware.RequireAdmin()

	// The same tree is served at the root and under /api.
	for _, g := range []*gin.RouterGroup{&r.RouterGroup, r.Group("/api")} {

		g.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// ------------------------------
		// 🌐 PUBLIC
		// ------------------------------
		g.GET("/items", itemHandler.List)
		g.GET("/items/:id", itemHandler.Get)

		g.POST("/signup", authHandler.Signup)
		g.POST("/login", authHandler.Login)

		// ------------------------------
		// 🔐 USER
		// ------------------------------
		g.GET("/me", auth, meHandler.GetMe)
		g.POST("/checkout", auth, orderHandler.Checkout)

		// ------------------------------
		// 🛡️ ADMIN
		// ------------------------------
		g.GET("/orders", auth, adminOnly, orderHandler.List)

		admin := g.Group("/admin", auth, adminOnly)
		{
			admin.GET("/items", adminItemHandler.List)
			admin.POST("/items", adminItemHandler.Create)
			admin.POST("/items/bulk", adminItemHandler.Bulk)
			admin.PATCH("/items/:id", adminItemHandler.Update)
			admin.DELETE("/items/:id", adminItemHandler.Delete)
			admin.POST("/items/:id/restore", adminItemHandler.Restore)
			admin.POST("/items/:id/image", adminItemHandler.UploadImage)

			admin.GET("/changelogs", changeLogHandler.List)
		}
	}
}
