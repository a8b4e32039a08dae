package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/ledgerly/ledgerly-backend/internal/middleware"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, authHandler *AuthHandler, profileHandler *ProfileHandler, transactionHandler *TransactionHandler, reportHandler *ReportHandler, budgetHandler *BudgetHandler, goalHandler *GoalHandler, savingsHandler *SavingsHandler, currencyHandler *CurrencyHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes (public)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Currency routes (public)
	api.GET("/currencies/rates", currencyHandler.GetRates)

	// Everything below requires a valid token
	protected := api.Group("")
	protected.Use(authMiddleware.Authenticate())
	protected.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Profile routes
	protected.GET("/profile", profileHandler.GetProfile)
	protected.PUT("/profile/name", profileHandler.UpdateFullName)
	protected.PUT("/profile/password", profileHandler.UpdatePassword)
	protected.PUT("/profile/currency", profileHandler.UpdateCurrency)

	// Transaction routes
	protected.POST("/transactions", transactionHandler.CreateTransaction)
	protected.GET("/transactions", transactionHandler.GetTransactions)
	protected.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

	// Report routes
	protected.GET("/reports", reportHandler.GetReport)

	// Budget routes
	protected.POST("/budgets", budgetHandler.SetBudget)
	protected.GET("/budgets", budgetHandler.GetBudgets)
	protected.GET("/budgets/status", budgetHandler.GetBudgetStatus)
	protected.DELETE("/budgets/:id", budgetHandler.DeleteBudget)

	// Goal routes
	protected.POST("/goals", goalHandler.CreateGoal)
	protected.GET("/goals", goalHandler.GetGoals)
	protected.POST("/goals/:id/contribute", goalHandler.Contribute)
	protected.DELETE("/goals/:id", goalHandler.DeleteGoal)

	// Savings vault routes
	protected.POST("/savings/add", savingsHandler.Add)
	protected.POST("/savings/withdraw", savingsHandler.Withdraw)
}
