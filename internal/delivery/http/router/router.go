// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"novasalud/internal/delivery/http/middleware"
	"novasalud/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds every handler registered on the API, injected by Fx.
type RouterParams struct {
	fx.In

	ProductHandler      *handler.ProductHandler
	CustomerHandler     *handler.CustomerHandler
	SaleHandler         *handler.SaleHandler
	NotificationHandler *handler.NotificationHandler
	DashboardHandler    *handler.DashboardHandler
	SessionHandler      *handler.SessionHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	productHandler      *handler.ProductHandler
	customerHandler     *handler.CustomerHandler
	saleHandler         *handler.SaleHandler
	notificationHandler *handler.NotificationHandler
	dashboardHandler    *handler.DashboardHandler
	sessionHandler      *handler.SessionHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		productHandler:      params.ProductHandler,
		customerHandler:     params.CustomerHandler,
		saleHandler:         params.SaleHandler,
		notificationHandler: params.NotificationHandler,
		dashboardHandler:    params.DashboardHandler,
		sessionHandler:      params.SessionHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/login", r.sessionHandler.Login)
	}

	productGroup := e.Group("/products", r.authMiddleware.Authenticate)
	{
		productGroup.GET("", r.productHandler.ListProducts)
		productGroup.POST("", r.productHandler.AddProduct)
		productGroup.GET("/categories", r.productHandler.ListCategories)
		productGroup.GET("/:id", r.productHandler.GetProduct)
		productGroup.PATCH("/:id", r.productHandler.UpdateProduct)
		productGroup.DELETE("/:id", r.productHandler.DeleteProduct)
		productGroup.GET("/:id/label.png", r.productHandler.GetProductLabel)
	}

	customerGroup := e.Group("/customers", r.authMiddleware.Authenticate)
	{
		customerGroup.GET("", r.customerHandler.ListCustomers)
		customerGroup.POST("", r.customerHandler.AddCustomer)
		customerGroup.POST("/reconcile", r.customerHandler.ReconcilePurchases)
		customerGroup.GET("/:id", r.customerHandler.GetCustomer)
		customerGroup.PATCH("/:id", r.customerHandler.UpdateCustomer)
		customerGroup.DELETE("/:id", r.customerHandler.DeleteCustomer)
	}

	saleGroup := e.Group("/sales", r.authMiddleware.Authenticate)
	{
		saleGroup.GET("", r.saleHandler.ListSales)
		saleGroup.POST("", r.saleHandler.AddSale)
		saleGroup.GET("/:id", r.saleHandler.GetSale)
		saleGroup.PATCH("/:id", r.saleHandler.UpdateSale)
		saleGroup.DELETE("/:id", r.saleHandler.DeleteSale)
	}

	notificationGroup := e.Group("/notifications", r.authMiddleware.Authenticate)
	{
		notificationGroup.GET("", r.notificationHandler.ListNotifications)
		notificationGroup.POST("", r.notificationHandler.AddNotification)
		notificationGroup.DELETE("", r.notificationHandler.ClearNotifications)
		notificationGroup.POST("/:id/read", r.notificationHandler.MarkAsRead)
	}

	dashboardGroup := e.Group("/dashboard", r.authMiddleware.Authenticate)
	{
		dashboardGroup.GET("/metrics", r.dashboardHandler.GetMetrics)
	}
}
