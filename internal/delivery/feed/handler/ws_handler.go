package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"logbid/internal/delivery/feed/hub"
	"logbid/internal/domain/repository"
	"logbid/internal/domain/service"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// WSHandler upgrades authenticated clients onto the realtime feed.
type WSHandler struct {
	upgrader    websocket.Upgrader
	tokenSvc    service.TokenService
	profileRepo repository.ProfileRepository
	hub         *hub.Hub
	logger      *slog.Logger
}

// WSHandlerParams holds dependencies for the WSHandler
type WSHandlerParams struct {
	fx.In

	TokenSvc    service.TokenService
	ProfileRepo repository.ProfileRepository
	Hub         *hub.Hub
	Logger      *slog.Logger
}

// NewWSHandler creates a new websocket upgrade handler
func NewWSHandler(params WSHandlerParams) *WSHandler {
	return &WSHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cross-origin policy is enforced by the token, not the Origin header
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		tokenSvc:    params.TokenSvc,
		profileRepo: params.ProfileRepo,
		hub:         params.Hub,
		logger:      params.Logger,
	}
}

// HandleWS authenticates the client, resolves its market and hands the
// upgraded connection to the hub. Browsers cannot set headers on websocket
// requests, so the token may also arrive as a query parameter.
func (h *WSHandler) HandleWS(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		const bearerPrefix = "Bearer "
		if authHeader := c.Request().Header.Get("Authorization"); strings.HasPrefix(authHeader, bearerPrefix) {
			token = strings.TrimPrefix(authHeader, bearerPrefix)
		}
	}
	if token == "" {
		return c.NoContent(http.StatusUnauthorized)
	}

	claims, err := h.tokenSvc.ValidateToken(token)
	if err != nil {
		h.logger.Warn("[Feed] Rejected websocket with invalid token", slog.Any("error", err))

		return c.NoContent(http.StatusUnauthorized)
	}

	profile, err := h.profileRepo.FindProfileByID(c.Request().Context(), claims.UserID)
	if err != nil {
		h.logger.Warn("[Feed] Rejected websocket without profile",
			slog.String("userID", claims.UserID.String()), slog.Any("error", err))

		return c.NoContent(http.StatusUnauthorized)
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the handshake error to the client
		h.logger.Warn("[Feed] Websocket upgrade failed", slog.Any("error", err))

		return nil
	}

	h.hub.Register(conn, profile.ID, profile.MarketID)

	return nil
}
