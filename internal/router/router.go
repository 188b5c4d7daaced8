// Package router wires handlers, middleware and routes into a gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "famfinance/internal/docs" // registers the swagger docs
	"famfinance/internal/handlers"
	"famfinance/internal/middleware"
	"famfinance/internal/models"
	"famfinance/internal/services"
)

// Services groups the business services the API depends on.
type Services struct {
	User         services.UserServicer
	Category     services.CategoryServicer
	FamilyMember services.FamilyMemberServicer
	Destination  services.DestinationServicer
	Transaction  services.TransactionServicer
	Export       services.ExportServicer
	Dashboard    services.DashboardServicer
	Audit        services.AuditServicer
}

// Options tune the engine.
type Options struct {
	CORSOrigin string
	// Swagger mounts /swagger/*any.
	Swagger bool
}

// New builds the API engine.
func New(svc Services, opts Options) *gin.Engine {
	userHandler := handlers.NewUserHandler(svc.User, svc.Audit)
	categoryHandler := handlers.NewCategoryHandler(svc.Category, svc.Audit)
	familyMemberHandler := handlers.NewFamilyMemberHandler(svc.FamilyMember, svc.Audit)
	destinationHandler := handlers.NewDestinationHandler(svc.Destination, svc.Audit)
	expenseHandler := handlers.NewTransactionHandler(models.TransactionTypeExpense, svc.Transaction, svc.Export, svc.Audit)
	incomeHandler := handlers.NewTransactionHandler(models.TransactionTypeIncome, svc.Transaction, svc.Export, svc.Audit)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(opts.CORSOrigin))

	if opts.Swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(middleware.UserContext())

	users := v1.Group("/usuarios")
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)

	registerTransactionRoutes(v1.Group("/despesas"), expenseHandler)
	registerTransactionRoutes(v1.Group("/receitas"), incomeHandler)

	categories := v1.Group("/categorias")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetUserCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	members := v1.Group("/familiares")
	members.POST("", familyMemberHandler.Create)
	members.GET("", familyMemberHandler.List)
	members.GET("/:id", familyMemberHandler.Get)
	members.PUT("/:id", familyMemberHandler.Update)
	members.DELETE("/:id", familyMemberHandler.Delete)

	destinations := v1.Group("/destinos")
	destinations.POST("", destinationHandler.Create)
	destinations.GET("", destinationHandler.List)
	destinations.GET("/:id", destinationHandler.Get)
	destinations.PUT("/:id", destinationHandler.Update)
	destinations.DELETE("/:id", destinationHandler.Delete)

	v1.GET("/dashboard", dashboardHandler.GetSummary)

	return router
}

func registerTransactionRoutes(g *gin.RouterGroup, h *handlers.TransactionHandler) {
	g.POST("", h.Save)
	g.GET("", h.List)
	g.GET("/exportar", h.Export)
	g.GET("/grupo/:grupo", h.GetSeries)
	g.POST("/excluir", h.DeleteByBody)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
