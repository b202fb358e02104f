package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/roozbehm/ledger-service/internal/domain/port/core"
	"github.com/roozbehm/ledger-service/internal/domain/port/security"
	"github.com/roozbehm/ledger-service/internal/infrastructure/adapter/api/handler"
	"github.com/roozbehm/ledger-service/internal/infrastructure/adapter/api/middleware"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	accountHandler *handler.AccountHandler,
	transactionHandler *handler.TransactionHandler,
	tokens security.TokenService,
	logger coreport.Logger,
) {
	// Public routes
	router.POST("/register", accountHandler.Register)
	router.POST("/login", accountHandler.Login)

	auth := middleware.RequireAuth(tokens, logger)

	// Transaction routes
	api := router.Group("/api", auth)
	{
		// POST /api/transactions
		api.POST("/transactions", transactionHandler.CreateTransaction)

		// GET /api/transactions/:id (list by owning user)
		api.GET("/transactions/:id", transactionHandler.ListTransactions)

		// PUT /api/transactions/:id (update status by transaction id)
		api.PUT("/transactions/:id", transactionHandler.UpdateStatus)

		// GET /api/transaction/:id (single transaction by transaction id)
		api.GET("/transaction/:id", transactionHandler.GetTransaction)
	}

	// Account routes
	user := router.Group("/user", auth)
	{
		// GET /user/account
		user.GET("/account", accountHandler.GetAccount)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
