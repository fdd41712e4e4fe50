package worker

import (
	"context"
	"encoding/json"
	"log"

	"restaurant-service/internal/broker"
	"restaurant-service/internal/models"
	"restaurant-service/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KitchenWorker consumes order events and feeds the kitchen display: new
// orders to prepare and delivery progress. It never writes back to the
// store; the admin endpoints remain the only way order state changes.
type KitchenWorker struct {
	consumer *broker.Consumer
	logger   *zap.Logger
}

// NewKitchenWorker creates a new kitchen worker
func NewKitchenWorker(consumer *broker.Consumer) *KitchenWorker {
	return &KitchenWorker{
		consumer: consumer,
		logger:   util.GetLogger(),
	}
}

// Start starts the worker
func (w *KitchenWorker) Start(ctx context.Context) error {
	log.Println("Starting kitchen worker...")
	return w.consumer.StartConsuming(ctx, w.handleMessage)
}

// Stop stops the worker
func (w *KitchenWorker) Stop() error {
	log.Println("Stopping kitchen worker...")
	return w.consumer.Close()
}

func (w *KitchenWorker) handleMessage(ctx context.Context, msg kafka.Message) error {
	var base models.BaseEvent
	if err := json.Unmarshal(msg.Value, &base); err != nil {
		w.logger.Error("Failed to unmarshal event", zap.Error(err))
		return err
	}

	util.KitchenEventsTotal.WithLabelValues(base.EventType).Inc()

	switch base.EventType {
	case models.EventTypeOrderCreated:
		var event models.OrderCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		w.logger.Info("Kitchen: new order to prepare",
			zap.Int64("order_id", event.OrderID),
			zap.String("item", event.ItemName),
			zap.String("customer", event.CustomerName),
			zap.Int64("total_amount", event.TotalAmount))

	case models.EventTypeOrderStatusChanged:
		var event models.OrderStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return err
		}
		w.logger.Info("Kitchen: order status changed",
			zap.Int64("order_id", event.OrderID),
			zap.String("old_status", event.OldStatus),
			zap.String("new_status", event.NewStatus))

	default:
		// Reservation events flow on their own topic; anything else here
		// is a producer bug worth surfacing in the logs.
		w.logger.Warn("Kitchen: unhandled event type", zap.String("type", base.EventType))
	}

	return nil
}
