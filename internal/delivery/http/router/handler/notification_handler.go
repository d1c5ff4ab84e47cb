package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"logbid/internal/delivery/http/response"
	"logbid/internal/usecase"

	"github.com/labstack/echo/v4"
)

// NotificationHandler holds dependencies for notification feed handlers
type NotificationHandler struct {
	uc     usecase.NotificationFeedUsecase
	logger *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler
func NewNotificationHandler(uc usecase.NotificationFeedUsecase, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		uc:     uc,
		logger: logger,
	}
}

// ListNotifications handles retrieving a page of the user's feed
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	// Parse pagination parameters
	limit := 20 // default limit
	offset := 0 // default offset

	if limitStr := c.QueryParam("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		if parsedOffset, err := strconv.Atoi(offsetStr); err == nil && parsedOffset >= 0 {
			offset = parsedOffset
		}
	}

	notifications, err := h.uc.ListNotifications(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, notifications, "Notifications retrieved successfully")
}

// UnreadCount handles retrieving the user's unread counter
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	count, err := h.uc.UnreadCount(c.Request().Context(), userID)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]int64{"unread_count": count}, "Unread count retrieved successfully")
}

// MarkRead handles flipping one notification's read flag
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	notificationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || notificationID <= 0 {
		return response.BadRequest(c, "VALIDATION_ERROR", "invalid notification id")
	}

	if err := h.uc.MarkRead(c.Request().Context(), userID, notificationID); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Notification marked as read")
}

// MarkAllRead handles flipping the read flag on the whole unread backlog
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	if err := h.uc.MarkAllRead(c.Request().Context(), userID); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "All notifications marked as read")
}

// DeleteNotification handles removing one notification from the feed
func (h *NotificationHandler) DeleteNotification(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	notificationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || notificationID <= 0 {
		return response.BadRequest(c, "VALIDATION_ERROR", "invalid notification id")
	}

	if err := h.uc.Delete(c.Request().Context(), userID, notificationID); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Notification deleted successfully")
}
