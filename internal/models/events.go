package models

import "time"

// Event types
const (
	EventTypeOrderCreated             = "ORDER_CREATED"
	EventTypeOrderStatusChanged       = "ORDER_STATUS_CHANGED"
	EventTypeReservationCreated       = "RESERVATION_CREATED"
	EventTypeReservationStatusChanged = "RESERVATION_STATUS_CHANGED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderCreatedEvent published when checkout creates an order
type OrderCreatedEvent struct {
	BaseEvent
	OrderID      int64  `json:"order_id"`
	ItemID       int64  `json:"item_id"`
	ItemName     string `json:"item_name"`
	CustomerName string `json:"customer_name"`
	TotalAmount  int64  `json:"total_amount"`
}

// OrderStatusChangedEvent published on every administrative status update
type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID   int64  `json:"order_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// ReservationCreatedEvent published when a customer books a table
type ReservationCreatedEvent struct {
	BaseEvent
	ReservationID int64     `json:"reservation_id"`
	Name          string    `json:"name"`
	Date          time.Time `json:"date"`
	PartySize     int       `json:"party_size"`
}

// ReservationStatusChangedEvent published on reservation status updates
type ReservationStatusChangedEvent struct {
	BaseEvent
	ReservationID int64  `json:"reservation_id"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
}
