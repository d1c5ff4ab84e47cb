package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"logbid/internal/delivery/http/response"
	"logbid/internal/domain/entity"
	"logbid/internal/usecase"

	"github.com/labstack/echo/v4"
)

// OfferHandler holds dependencies for offer-related handlers
type OfferHandler struct {
	uc     usecase.OfferUsecase
	logger *slog.Logger
}

// NewOfferHandler is the constructor for OfferHandler
func NewOfferHandler(uc usecase.OfferUsecase, logger *slog.Logger) *OfferHandler {
	return &OfferHandler{
		uc:     uc,
		logger: logger,
	}
}

// SubmitOfferRequest represents the request body for quoting a shipment.
// Details carries the raw fee breakdown; its shape depends on shipping_type
// and the server recomputes the total from it.
type SubmitOfferRequest struct {
	Price        float64         `json:"price" validate:"required,gt=0"`
	Currency     string          `json:"currency" validate:"required"`
	ShippingType string          `json:"shipping_type" validate:"required"`
	Details      json.RawMessage `json:"details" validate:"required"`
}

// SubmitOffer handles an agent quoting a shipment
func (h *OfferHandler) SubmitOffer(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return err
	}

	shipmentID, err := parseShipmentID(c)
	if err != nil {
		return err
	}

	var req SubmitOfferRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid offer input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	offer, err := h.uc.SubmitOffer(c.Request().Context(), userID, usecase.SubmitOfferInput{
		ShipmentID:   shipmentID,
		Price:        req.Price,
		Currency:     req.Currency,
		ShippingType: entity.ShippingType(req.ShippingType),
		Details:      req.Details,
	})
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, offer, "Offer submitted successfully")
}

// ListOffers handles retrieving every offer quoted against a shipment
func (h *OfferHandler) ListOffers(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return err
	}

	shipmentID, err := parseShipmentID(c)
	if err != nil {
		return err
	}

	offers, err := h.uc.ListOffersForShipment(c.Request().Context(), shipmentID)
	if err != nil {
		return handleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, offers, "Offers retrieved successfully")
}
