package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant-service/internal/broker"
	"restaurant-service/internal/contract"
	"restaurant-service/internal/models"
	"restaurant-service/internal/store"
	"restaurant-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type orderStore interface {
	CreateOrder(ctx context.Context, input *models.InsertOrder) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) (*models.Order, error)
	GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error)
}

// OrderService handles checkout and the administrative order lifecycle
type OrderService struct {
	store          orderStore
	events         broker.Publisher
	deliveryCharge int64
	handlingCharge int64
	logger         *zap.Logger
}

// NewOrderService creates a new order service. events may be nil.
// Charges are in minor currency units.
func NewOrderService(store orderStore, events broker.Publisher, deliveryCharge, handlingCharge int64) *OrderService {
	return &OrderService{
		store:          store,
		events:         events,
		deliveryCharge: deliveryCharge,
		handlingCharge: handlingCharge,
		logger:         util.GetLogger(),
	}
}

// Total computes the amount owed for an order of the given item:
// item price plus the fixed delivery and handling charges.
func (s *OrderService) Total(itemPrice int64) int64 {
	return itemPrice + s.deliveryCharge + s.handlingCharge
}

// Create places a delivery order. The total is recomputed server-side from
// the referenced item's price plus the fixed charges; a client-submitted
// total that disagrees is rejected rather than trusted. Status is forced to
// pending and createdAt is assigned by the store.
func (s *OrderService) Create(ctx context.Context, input *models.InsertOrder) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Create")
	defer span.End()

	item, err := s.store.GetMenuItem(ctx, input.ItemID)
	if errors.Is(err, store.ErrNotFound) {
		util.OrdersFailedTotal.WithLabelValues("unknown_item").Inc()
		return nil, &contract.FieldError{Message: "menu item not found", Field: "itemId"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load menu item %d: %w", input.ItemID, err)
	}

	expected := s.Total(item.Price)
	if input.TotalAmount != 0 && input.TotalAmount != expected {
		util.OrdersFailedTotal.WithLabelValues("total_mismatch").Inc()
		s.logger.Warn("Rejected order with mismatched total",
			zap.Int64("item_id", item.ID),
			zap.Int64("submitted", input.TotalAmount),
			zap.Int64("expected", expected))
		return nil, &contract.FieldError{Message: "totalAmount does not match item price plus charges", Field: "totalAmount"}
	}
	input.TotalAmount = expected

	order, err := s.store.CreateOrder(ctx, input)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return nil, err
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("item_id", order.ItemID),
		zap.Int64("total_amount", order.TotalAmount))

	if s.events != nil {
		event := &models.OrderCreatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderCreated,
				Timestamp: time.Now(),
			},
			OrderID:      order.ID,
			ItemID:       order.ItemID,
			ItemName:     item.Name,
			CustomerName: order.CustomerName,
			TotalAmount:  order.TotalAmount,
		}
		if err := s.events.PublishOrderCreated(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
		}
	}

	return order, nil
}

// List returns all orders, each joined with the menu item it references.
// The join lives here so the store stays single-entity-focused; an order
// whose item cannot be loaded is still returned, just without the item.
func (s *OrderService) List(ctx context.Context) ([]models.OrderWithItem, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.List")
	defer span.End()

	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	result := make([]models.OrderWithItem, 0, len(orders))
	items := map[int64]*models.MenuItem{}
	for _, order := range orders {
		item, ok := items[order.ItemID]
		if !ok {
			item, err = s.store.GetMenuItem(ctx, order.ItemID)
			if err != nil {
				s.logger.Warn("Failed to load item for order",
					zap.Int64("order_id", order.ID),
					zap.Int64("item_id", order.ItemID),
					zap.Error(err))
				item = nil
			}
			items[order.ItemID] = item
		}
		result = append(result, models.OrderWithItem{Order: order, Item: item})
	}

	return result, nil
}

// UpdateStatus moves an order to the given status. Any status may move to
// any other; there is no enforced ordering.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateStatus")
	defer span.End()

	existing, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	util.OrderStatusUpdatesTotal.WithLabelValues(status).Inc()
	s.logger.Info("Order status updated",
		zap.Int64("order_id", id),
		zap.String("old_status", existing.Status),
		zap.String("new_status", status))

	if s.events != nil {
		event := &models.OrderStatusChangedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeOrderStatusChanged,
				Timestamp: time.Now(),
			},
			OrderID:   id,
			OldStatus: existing.Status,
			NewStatus: status,
		}
		if err := s.events.PublishOrderStatusChanged(ctx, event); err != nil {
			s.logger.Error("Failed to publish OrderStatusChanged event", zap.Error(err))
		}
	}

	return updated, nil
}
