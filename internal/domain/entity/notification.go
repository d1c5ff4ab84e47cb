package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// NotificationType enumerates the events the dispatcher can deliver.
type NotificationType string

const (
	// NotificationNewOffer tells an importer an agent quoted their shipment.
	NotificationNewOffer NotificationType = "new_offer"
	// NotificationOfferAccepted tells an agent their offer won.
	NotificationOfferAccepted NotificationType = "offer_accepted"
	// NotificationOfferRejected tells an agent another offer won.
	NotificationOfferRejected NotificationType = "offer_rejected"
	// NotificationShipmentExpiring warns an importer the deadline is near.
	NotificationShipmentExpiring NotificationType = "shipment_expiring"
	// NotificationShipmentStatusChanged tells an importer about a status change.
	NotificationShipmentStatusChanged NotificationType = "shipment_status_changed"
	// NotificationDeadlineExtended confirms the extension to the importer.
	NotificationDeadlineExtended NotificationType = "deadline_extended"
	// NotificationDeadlineExtendedForAgents tells market agents about the extension.
	NotificationDeadlineExtendedForAgents NotificationType = "deadline_extended_for_agents"
	// NotificationNewShipment tells market agents a shipment opened.
	NotificationNewShipment NotificationType = "new_shipment"
)

// String returns the string representation of the NotificationType.
func (t NotificationType) String() string {
	return string(t)
}

// IsValid checks if the NotificationType is a valid value.
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationNewOffer, NotificationOfferAccepted, NotificationOfferRejected,
		NotificationShipmentExpiring, NotificationShipmentStatusChanged,
		NotificationDeadlineExtended, NotificationDeadlineExtendedForAgents,
		NotificationNewShipment:
		return true
	default:
		return false
	}
}

// Notification represents a single delivered event for one recipient.
// Records are immutable after creation except the Read flag and deletion.
type Notification struct {
	ID         int64            `json:"id"`          // Primary key.
	UserID     uuid.UUID        `json:"user_id"`     // Recipient profile.
	Type       NotificationType `json:"type"`        // Event discriminator for Data.
	Title      string           `json:"title"`       // Short headline.
	Message    string           `json:"message"`     // Body, may carry {{route}}-style template tokens.
	Data       json.RawMessage  `json:"data"`        // Typed payload, shape selected by Type.
	ShipmentID *int64           `json:"shipment_id"` // Related shipment, when applicable.
	OfferID    *int64           `json:"offer_id"`    // Related offer, when applicable.
	MarketID   *int64           `json:"market_id"`   // Related market, when applicable.
	Read       bool             `json:"read"`        // Flipped once by the recipient, never reverted.
	CreatedAt  time.Time        `json:"created_at"`  // Timestamp of when this record was created.
	UpdatedAt  time.Time        `json:"updated_at"`  // Timestamp of the last modification.
}

// NewOfferData is the payload for new_offer notifications.
type NewOfferData struct {
	ShipmentUUID uuid.UUID `json:"shipment_uuid"`
	OfferUUID    uuid.UUID `json:"offer_uuid"`
	AgentCode    string    `json:"agent_code"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	Route        string    `json:"route"`
}

// OfferAcceptedData is the payload for offer_accepted notifications.
type OfferAcceptedData struct {
	ShipmentUUID uuid.UUID `json:"shipment_uuid"`
	OfferUUID    uuid.UUID `json:"offer_uuid"`
	Price        float64   `json:"price"`
	Currency     string    `json:"currency"`
	Route        string    `json:"route"`
}

// OfferRejectedData is the payload for offer_rejected notifications. Price
// carries the agent's best (lowest) losing price for the shipment and
// WinningPrice the price that won the bid.
type OfferRejectedData struct {
	ShipmentUUID uuid.UUID `json:"shipment_uuid"`
	OfferUUID    uuid.UUID `json:"offer_uuid"`
	Price        float64   `json:"price"`
	WinningPrice float64   `json:"winning_price"`
	Currency     string    `json:"currency"`
	Route        string    `json:"route"`
}

// ShipmentExpiringData is the payload for shipment_expiring notifications.
type ShipmentExpiringData struct {
	ShipmentUUID         uuid.UUID `json:"shipment_uuid"`
	Route                string    `json:"route"`
	HoursUntilExpiration int       `json:"hours_until_expiration"`
	ExpirationDate       time.Time `json:"expiration_date"`
}

// StatusChangedData is the payload for shipment_status_changed notifications.
type StatusChangedData struct {
	ShipmentUUID uuid.UUID      `json:"shipment_uuid"`
	Route        string         `json:"route"`
	OldStatus    ShipmentStatus `json:"old_status"`
	NewStatus    ShipmentStatus `json:"new_status"`
}

// DeadlineExtendedData is the payload for deadline_extended and
// deadline_extended_for_agents notifications.
type DeadlineExtendedData struct {
	ShipmentUUID      uuid.UUID `json:"shipment_uuid"`
	Route             string    `json:"route"`
	NewExpirationDate time.Time `json:"new_expiration_date"`
}

// NewShipmentData is the payload for new_shipment notifications.
type NewShipmentData struct {
	ShipmentUUID   uuid.UUID    `json:"shipment_uuid"`
	Route          string       `json:"route"`
	ShippingType   ShippingType `json:"shipping_type"`
	Value          float64      `json:"value"`
	Currency       string       `json:"currency"`
	ExpirationDate time.Time    `json:"expiration_date"`
}

// ParseNewOfferData decodes the payload of a new_offer notification.
func (n *Notification) ParseNewOfferData() (*NewOfferData, error) {
	if n.Type != NotificationNewOffer {
		return nil, errors.Errorf("notification type is %s, not %s", n.Type, NotificationNewOffer)
	}
	var data NewOfferData
	if err := json.Unmarshal(n.Data, &data); err != nil {
		return nil, errors.Wrap(err, "parse new_offer data")
	}

	return &data, nil
}

// ParseOfferAcceptedData decodes the payload of an offer_accepted notification.
func (n *Notification) ParseOfferAcceptedData() (*OfferAcceptedData, error) {
	if n.Type != NotificationOfferAccepted {
		return nil, errors.Errorf("notification type is %s, not %s", n.Type, NotificationOfferAccepted)
	}
	var data OfferAcceptedData
	if err := json.Unmarshal(n.Data, &data); err != nil {
		return nil, errors.Wrap(err, "parse offer_accepted data")
	}

	return &data, nil
}

// ParseOfferRejectedData decodes the payload of an offer_rejected notification.
func (n *Notification) ParseOfferRejectedData() (*OfferRejectedData, error) {
	if n.Type != NotificationOfferRejected {
		return nil, errors.Errorf("notification type is %s, not %s", n.Type, NotificationOfferRejected)
	}
	var data OfferRejectedData
	if err := json.Unmarshal(n.Data, &data); err != nil {
		return nil, errors.Wrap(err, "parse offer_rejected data")
	}

	return &data, nil
}

// ParseNewShipmentData decodes the payload of a new_shipment notification.
func (n *Notification) ParseNewShipmentData() (*NewShipmentData, error) {
	if n.Type != NotificationNewShipment {
		return nil, errors.Errorf("notification type is %s, not %s", n.Type, NotificationNewShipment)
	}
	var data NewShipmentData
	if err := json.Unmarshal(n.Data, &data); err != nil {
		return nil, errors.Wrap(err, "parse new_shipment data")
	}

	return &data, nil
}
