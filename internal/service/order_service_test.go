package service

import (
	"context"
	"testing"
	"time"

	"restaurant-service/internal/contract"
	"restaurant-service/internal/models"
	"restaurant-service/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderStore struct {
	items  map[int64]*models.MenuItem
	orders map[int64]*models.Order
	nextID int64
}

func newFakeOrderStore(items ...*models.MenuItem) *fakeOrderStore {
	s := &fakeOrderStore{
		items:  map[int64]*models.MenuItem{},
		orders: map[int64]*models.Order{},
	}
	for _, item := range items {
		s.items[item.ID] = item
	}
	return s
}

func (s *fakeOrderStore) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (s *fakeOrderStore) CreateOrder(ctx context.Context, input *models.InsertOrder) (*models.Order, error) {
	s.nextID++
	order := &models.Order{
		ID:              s.nextID,
		ItemID:          input.ItemID,
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		DeliveryAddress: input.DeliveryAddress,
		TotalAmount:     input.TotalAmount,
		Status:          models.OrderStatusPending,
		CreatedAt:       time.Now(),
	}
	s.orders[order.ID] = order
	copied := *order
	return &copied, nil
}

func (s *fakeOrderStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	for _, order := range s.orders {
		orders = append(orders, *order)
	}
	return orders, nil
}

func (s *fakeOrderStore) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *fakeOrderStore) UpdateOrderStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	order.Status = status
	copied := *order
	return &copied, nil
}

func validOrderInput(itemID, total int64) *models.InsertOrder {
	return &models.InsertOrder{
		ItemID:          itemID,
		CustomerName:    "Ana",
		CustomerEmail:   "ana@x.com",
		CustomerPhone:   "9876543210",
		DeliveryAddress: "12 Harbour Lane, Mumbai",
		TotalAmount:     total,
	}
}

func TestOrderTotalComposition(t *testing.T) {
	svc := NewOrderService(newFakeOrderStore(), nil, 4000, 2000)

	assert.Equal(t, int64(61000), svc.Total(55000))
	assert.Equal(t, int64(6000), svc.Total(0))
}

func TestCreateOrderRecomputesTotal(t *testing.T) {
	fake := newFakeOrderStore(&models.MenuItem{ID: 5, Name: "Butter Chicken", Price: 55000})
	svc := NewOrderService(fake, nil, 4000, 2000)

	// Client omitted the total; the server fills it in
	order, err := svc.Create(context.Background(), validOrderInput(5, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(61000), order.TotalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.False(t, order.CreatedAt.IsZero())
}

func TestCreateOrderRejectsMismatchedTotal(t *testing.T) {
	fake := newFakeOrderStore(&models.MenuItem{ID: 5, Name: "Butter Chicken", Price: 55000})
	svc := NewOrderService(fake, nil, 4000, 2000)

	_, err := svc.Create(context.Background(), validOrderInput(5, 100))
	require.Error(t, err)

	ferr, ok := err.(*contract.FieldError)
	require.True(t, ok)
	assert.Equal(t, "totalAmount", ferr.Field)

	assert.Empty(t, fake.orders, "rejected order must not be stored")
}

func TestCreateOrderAcceptsMatchingClientTotal(t *testing.T) {
	fake := newFakeOrderStore(&models.MenuItem{ID: 5, Name: "Butter Chicken", Price: 55000})
	svc := NewOrderService(fake, nil, 4000, 2000)

	order, err := svc.Create(context.Background(), validOrderInput(5, 61000))
	require.NoError(t, err)
	assert.Equal(t, int64(61000), order.TotalAmount)
}

func TestCreateOrderUnknownItem(t *testing.T) {
	svc := NewOrderService(newFakeOrderStore(), nil, 4000, 2000)

	_, err := svc.Create(context.Background(), validOrderInput(99, 0))
	require.Error(t, err)

	ferr, ok := err.(*contract.FieldError)
	require.True(t, ok)
	assert.Equal(t, "itemId", ferr.Field)
}

func TestUpdateStatusMissingOrderLeavesStoreUnchanged(t *testing.T) {
	fake := newFakeOrderStore(&models.MenuItem{ID: 5, Name: "Butter Chicken", Price: 55000})
	svc := NewOrderService(fake, nil, 4000, 2000)

	created, err := svc.Create(context.Background(), validOrderInput(5, 0))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), 999, models.OrderStatusConfirmed)
	assert.ErrorIs(t, err, store.ErrNotFound)

	unchanged, err := fake.GetOrder(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, unchanged.Status)
}

func TestUpdateStatusUnconstrainedTransitions(t *testing.T) {
	fake := newFakeOrderStore(&models.MenuItem{ID: 5, Name: "Butter Chicken", Price: 55000})
	svc := NewOrderService(fake, nil, 4000, 2000)

	created, err := svc.Create(context.Background(), validOrderInput(5, 0))
	require.NoError(t, err)

	// No state machine: delivered can move straight back to pending
	for _, status := range []string{
		models.OrderStatusDelivered,
		models.OrderStatusPending,
		models.OrderStatusCancelled,
	} {
		updated, err := svc.UpdateStatus(context.Background(), created.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestListOrdersJoinsItems(t *testing.T) {
	fake := newFakeOrderStore(&models.MenuItem{ID: 5, Name: "Butter Chicken", Price: 55000})
	svc := NewOrderService(fake, nil, 4000, 2000)

	_, err := svc.Create(context.Background(), validOrderInput(5, 0))
	require.NoError(t, err)

	orders, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].Item)
	assert.Equal(t, "Butter Chicken", orders[0].Item.Name)
	assert.Equal(t, orders[0].ItemID, orders[0].Item.ID)
}
