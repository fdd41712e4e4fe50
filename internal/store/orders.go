package store

import (
	"context"
	"database/sql"
	"fmt"

	"restaurant-service/internal/models"
)

// CreateOrder inserts a new order. Status is forced to pending and
// created_at is assigned by the database.
func (s *Store) CreateOrder(ctx context.Context, input *models.InsertOrder) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, `
		INSERT INTO orders (item_id, customer_name, customer_email, customer_phone, delivery_address, total_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING *`,
		input.ItemID, input.CustomerName, input.CustomerEmail, input.CustomerPhone,
		input.DeliveryAddress, input.TotalAmount, models.OrderStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return &order, nil
}

// ListOrders retrieves all orders, newest first
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.SelectContext(ctx, &orders, "SELECT * FROM orders ORDER BY created_at DESC")
	return orders, err
}

// GetOrder retrieves an order by ID
func (s *Store) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus updates an order's status and returns the updated row.
// Orders are never deleted; cancellation is just another status.
func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, `
		UPDATE orders SET status = $1 WHERE id = $2
		RETURNING *`,
		status, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
