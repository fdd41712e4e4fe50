package broker

import (
	"context"
	"fmt"

	"restaurant-service/internal/models"
)

// Publisher is the event sink the services write to. Satisfied by
// EventPublisher; tests substitute an in-memory recorder.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error
	PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error
	PublishReservationCreated(ctx context.Context, event *models.ReservationCreatedEvent) error
	PublishReservationStatusChanged(ctx context.Context, event *models.ReservationStatusChangedEvent) error
}

// EventPublisher publishes domain events to Kafka
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderCreated publishes an OrderCreated event
func (ep *EventPublisher) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishOrderStatusChanged publishes an OrderStatusChanged event
func (ep *EventPublisher) PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishReservationCreated publishes a ReservationCreated event
func (ep *EventPublisher) PublishReservationCreated(ctx context.Context, event *models.ReservationCreatedEvent) error {
	key := fmt.Sprintf("reservation-%d", event.ReservationID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishReservationStatusChanged publishes a ReservationStatusChanged event
func (ep *EventPublisher) PublishReservationStatusChanged(ctx context.Context, event *models.ReservationStatusChangedEvent) error {
	key := fmt.Sprintf("reservation-%d", event.ReservationID)
	return ep.producer.PublishEvent(ctx, key, event)
}
