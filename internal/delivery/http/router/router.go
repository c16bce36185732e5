// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"accounts/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler *handler.AccountHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler *handler.AccountHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler: params.AccountHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Prometheus scrape endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	accountGroup := e.Group("/accounts")
	{
		accountGroup.POST("", r.accountHandler.Create)
		accountGroup.GET("", r.accountHandler.List)
		accountGroup.POST("/change-password", r.accountHandler.ChangePassword)
		accountGroup.GET("/email/:email", r.accountHandler.GetByEmail)
		accountGroup.GET("/:id", r.accountHandler.GetByID)
		accountGroup.PUT("/:id", r.accountHandler.Update)
		accountGroup.DELETE("/:id", r.accountHandler.Delete)
	}
}
