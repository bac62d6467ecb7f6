package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/AgusMolinaCode/CTS_Api.git/internal/middleware"
)

func RegisterRoutes(router *gin.Engine) {
	// Rutas públicas de autenticación
	router.POST("/register", middleware.Register)
	router.POST("/login", middleware.Login)
	router.POST("/logout", middleware.AuthMiddleware(), middleware.Logout)
	router.POST("/request-reset-password", middleware.RequestResetPassword)
	router.POST("/reset-password", middleware.ResetPassword)

	// Rutas públicas de mercado
	market := router.Group("/market")
	{
		market.GET("/coins", middleware.GetCoins)
		market.GET("/search", middleware.SearchCoins)
		market.GET("/coins/:id", middleware.GetCoin)
		market.GET("/coins/:id/history", middleware.GetPriceHistory)
		market.GET("/top-gainers", middleware.GetTopGainers)
		market.GET("/top-losers", middleware.GetTopLosers)
		market.GET("/status", middleware.GetMarketStatus)
	}

	// Rutas protegidas por JWT
	protected := router.Group("/")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/users/me", middleware.GetCurrentUser)
		protected.PUT("/users/me", middleware.UpdateUser)
		protected.DELETE("/users/me", middleware.DeleteUser)

		protected.GET("/transactions", middleware.GetUserTransactions)
		protected.GET("/transactions/export", middleware.ExportTransactions)
		protected.GET("/transactions/:id", middleware.GetTransactionDetails)
		protected.POST("/transactions/buy", middleware.BuyCoins)
		protected.POST("/transactions/sell", middleware.SellCoins)
		protected.POST("/transactions/:id/cancel", middleware.CancelTransaction)
		protected.GET("/recent-transactions", middleware.GetRecentTransactions)

		protected.POST("/orders/estimate", middleware.EstimateOrder)

		protected.GET("/portfolio", middleware.GetPortfolio)
		protected.GET("/portfolio/performance", middleware.GetPerformance)
	}

	// Rutas de admin
	admin := router.Group("/admin")
	admin.Use(middleware.AdminAuth())
	{
		admin.GET("/users", middleware.GetUsers)
		admin.GET("/users/:id", middleware.GetUser)
		admin.GET("/users/email/:email", middleware.GetUserByEmail)
		admin.DELETE("/users/:id", middleware.DeleteUserByAdmin)
		admin.POST("/coins", middleware.CreateCoin)
	}
}
