package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"logbid/internal/delivery/http/response"
	"logbid/internal/domain/entity"
	"logbid/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ShipmentHandler holds dependencies for shipment-related handlers
type ShipmentHandler struct {
	uc     usecase.BidUsecase
	logger *slog.Logger
}

// NewShipmentHandler is the constructor for ShipmentHandler
func NewShipmentHandler(uc usecase.BidUsecase, logger *slog.Logger) *ShipmentHandler {
	return &ShipmentHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateShipmentRequest represents the request body for opening a shipment
type CreateShipmentRequest struct {
	Origin             string    `json:"origin" validate:"required"`
	OriginCountry      string    `json:"origin_country"`
	Destination        string    `json:"destination" validate:"required"`
	DestinationCountry string    `json:"destination_country"`
	ShippingType       string    `json:"shipping_type" validate:"required"`
	Value              float64   `json:"value" validate:"gte=0"`
	Currency           string    `json:"currency" validate:"required"`
	AdditionalInfo     string    `json:"additional_info"`
	MarketID           int64     `json:"market_id" validate:"required,gt=0"`
	ExpirationDate     time.Time `json:"expiration_date" validate:"required"`
}

// CreateShipment handles opening a new shipment for quoting
func (h *ShipmentHandler) CreateShipment(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	var req CreateShipmentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shipment input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	shipment, err := h.uc.CreateShipment(c.Request().Context(), userID, usecase.CreateShipmentInput{
		Origin:             req.Origin,
		OriginCountry:      req.OriginCountry,
		Destination:        req.Destination,
		DestinationCountry: req.DestinationCountry,
		ShippingType:       entity.ShippingType(req.ShippingType),
		Value:              req.Value,
		Currency:           req.Currency,
		AdditionalInfo:     req.AdditionalInfo,
		MarketID:           req.MarketID,
		ExpirationDate:     req.ExpirationDate,
	})
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, shipment, "Shipment created successfully")
}

// ListShipments handles listing a market's shipments with optional filters
func (h *ShipmentHandler) ListShipments(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	marketID, err := strconv.ParseInt(c.QueryParam("market_id"), 10, 64)
	if err != nil || marketID <= 0 {
		return response.BadRequest(c, "VALIDATION_ERROR", "market_id is required")
	}

	input := usecase.ListShipmentsInput{MarketID: marketID}

	if statusParam := c.QueryParam("status"); statusParam != "" {
		status := entity.ShipmentStatus(statusParam)
		if !status.IsValid() {
			return response.BadRequest(c, "VALIDATION_ERROR", "unknown status filter")
		}
		input.Status = &status
	}

	if typeParam := c.QueryParam("shipping_type"); typeParam != "" {
		shippingType := entity.ShippingType(typeParam)
		if !shippingType.IsValid() {
			return response.BadRequest(c, "VALIDATION_ERROR", "unknown shipping type filter")
		}
		input.ShippingType = &shippingType
	}

	shipments, err := h.uc.ListShipmentsByMarket(c.Request().Context(), userID, input)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, shipments, "Shipments retrieved successfully")
}

// CloseBidRequest represents the request body for accepting a winning offer
type CloseBidRequest struct {
	WinningOfferID int64 `json:"winning_offer_id" validate:"required,gt=0"`
}

// CloseBid handles accepting an offer and closing the shipment
func (h *ShipmentHandler) CloseBid(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	shipmentID, err := parseShipmentID(c)
	if err != nil {
		return err
	}

	var req CloseBidRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid close input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	shipment, err := h.uc.CloseBid(c.Request().Context(), userID, shipmentID, req.WinningOfferID)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, shipment, "Bid closed successfully")
}

// ExtendDeadlineRequest represents the request body for moving the deadline
type ExtendDeadlineRequest struct {
	NewExpirationDate time.Time `json:"new_expiration_date" validate:"required"`
}

// ExtendDeadline handles moving a shipment's offer deadline forward
func (h *ShipmentHandler) ExtendDeadline(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	shipmentID, err := parseShipmentID(c)
	if err != nil {
		return err
	}

	var req ExtendDeadlineRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid deadline input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	shipment, err := h.uc.ExtendDeadline(c.Request().Context(), userID, shipmentID, req.NewExpirationDate)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, shipment, "Deadline extended successfully")
}

// UpdateStatusRequest represents the request body for a status transition
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus handles an informational status transition
func (h *ShipmentHandler) UpdateStatus(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	shipmentID, err := parseShipmentID(c)
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	status := entity.ShipmentStatus(req.Status)
	if !status.IsValid() {
		return response.BadRequest(c, "VALIDATION_ERROR", "unknown status")
	}

	if err := h.uc.UpdateStatus(c.Request().Context(), userID, shipmentID, status); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Status updated successfully")
}

// FlagExpiringRequest represents the payload of the scheduled expiry trigger
type FlagExpiringRequest struct {
	HoursUntilExpiration int `json:"hours_until_expiration" validate:"required,gt=0"`
}

// FlagExpiring handles the scheduled expiry warning trigger
func (h *ShipmentHandler) FlagExpiring(c echo.Context) error {
	shipmentID, err := parseShipmentID(c)
	if err != nil {
		return err
	}

	var req FlagExpiringRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid expiry input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.uc.FlagExpiring(c.Request().Context(), shipmentID, req.HoursUntilExpiration); err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Expiry warning delivered")
}

// parseShipmentID reads the :id path parameter.
func parseShipmentID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, response.BadRequest(c, "VALIDATION_ERROR", "invalid shipment id")
	}

	return id, nil
}
