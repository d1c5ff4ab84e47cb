package service

import (
	"context"
	"encoding/json"
)

// Realtime stream names, matching the tables the feed watches.
const (
	StreamShipments     = "shipments"
	StreamOffers        = "offers"
	StreamNotifications = "notifications"
)

// Realtime actions.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
)

// RealtimeEvent represents a row change pushed to connected feed clients.
type RealtimeEvent struct {
	RequestID string          `json:"request_id,omitempty"` // For distributed tracing
	Stream    string          `json:"stream"`               // Which table changed
	Action    string          `json:"action"`               // INSERT or UPDATE
	UserID    string          `json:"user_id,omitempty"`    // Recipient scope; empty broadcasts to the market
	MarketID  int64           `json:"market_id,omitempty"`  // Market scope for broadcast events
	Record    json.RawMessage `json:"record"`               // The changed row as JSON
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishRealtimeEvent publishes a row-change event for the feed to deliver
	PublishRealtimeEvent(ctx context.Context, event *RealtimeEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
