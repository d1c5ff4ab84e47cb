// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"logbid/internal/delivery/http/middleware"
	"logbid/internal/delivery/http/router/handler"
	"logbid/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ShipmentHandler     *handler.ShipmentHandler
	OfferHandler        *handler.OfferHandler
	NotificationHandler *handler.NotificationHandler
	AuthMiddleware      *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	shipmentHandler     *handler.ShipmentHandler
	offerHandler        *handler.OfferHandler
	notificationHandler *handler.NotificationHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		shipmentHandler:     params.ShipmentHandler,
		offerHandler:        params.OfferHandler,
		notificationHandler: params.NotificationHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	requireImporter := r.authMiddleware.RequireRole(entity.RoleImporter.String())
	requireAgent := r.authMiddleware.RequireRole(entity.RoleAgent.String())

	// Shipment routes; mutations are importer-only, reads need any session
	shipmentGroup := e.Group("/shipments")
	shipmentGroup.Use(r.authMiddleware.Authenticate)
	{
		shipmentGroup.POST("", r.shipmentHandler.CreateShipment, requireImporter)
		shipmentGroup.GET("", r.shipmentHandler.ListShipments)
		shipmentGroup.POST("/:id/close", r.shipmentHandler.CloseBid, requireImporter)
		shipmentGroup.POST("/:id/extend", r.shipmentHandler.ExtendDeadline, requireImporter)
		shipmentGroup.PATCH("/:id/status", r.shipmentHandler.UpdateStatus, requireImporter)

		shipmentGroup.POST("/:id/offers", r.offerHandler.SubmitOffer, requireAgent)
		shipmentGroup.GET("/:id/offers", r.offerHandler.ListOffers)
	}

	// Notification feed routes, always scoped to the authenticated user
	notificationGroup := e.Group("/notifications")
	notificationGroup.Use(r.authMiddleware.Authenticate)
	{
		notificationGroup.GET("", r.notificationHandler.ListNotifications)
		notificationGroup.GET("/unread-count", r.notificationHandler.UnreadCount)
		notificationGroup.PATCH("/:id/read", r.notificationHandler.MarkRead)
		notificationGroup.POST("/read-all", r.notificationHandler.MarkAllRead)
		notificationGroup.DELETE("/:id", r.notificationHandler.DeleteNotification)
	}

	// Internal trigger endpoints, called by the scheduler rather than users
	internalGroup := e.Group("/internal")
	{
		internalGroup.POST("/shipments/:id/expiring", r.shipmentHandler.FlagExpiring)
	}
}
