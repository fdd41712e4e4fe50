package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"restaurant-service/internal/models"
	"restaurant-service/internal/service"
	"restaurant-service/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory stand-in for the sqlx store, mirroring its
// semantics: server-assigned ids, forced pending status, not-found sentinels.
type memStore struct {
	categories   map[int64]*models.Category
	items        map[int64]*models.MenuItem
	reservations map[int64]*models.Reservation
	orders       map[int64]*models.Order
	nextID       int64
}

func newMemStore() *memStore {
	return &memStore{
		categories:   map[int64]*models.Category{},
		items:        map[int64]*models.MenuItem{},
		reservations: map[int64]*models.Reservation{},
		orders:       map[int64]*models.Order{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	out := []models.Category{}
	for _, c := range s.categories {
		out = append(out, *c)
	}
	return out, nil
}

func (s *memStore) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	for _, c := range s.categories {
		if c.Slug == slug {
			copied := *c
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memStore) CreateCategory(ctx context.Context, input *models.InsertCategory) (*models.Category, error) {
	c := &models.Category{ID: s.id(), Name: input.Name, Slug: input.Slug, ImageURL: input.ImageURL}
	s.categories[c.ID] = c
	copied := *c
	return &copied, nil
}

func (s *memStore) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	out := []models.MenuItem{}
	for _, i := range s.items {
		out = append(out, *i)
	}
	return out, nil
}

func (s *memStore) ListMenuItemsByCategory(ctx context.Context, categoryID int64) ([]models.MenuItem, error) {
	out := []models.MenuItem{}
	for _, i := range s.items {
		if i.CategoryID == categoryID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (s *memStore) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	i, ok := s.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *i
	return &copied, nil
}

func (s *memStore) CreateMenuItem(ctx context.Context, input *models.InsertMenuItem) (*models.MenuItem, error) {
	i := &models.MenuItem{
		ID:          s.id(),
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		IsAvailable: input.IsAvailable,
	}
	s.items[i.ID] = i
	copied := *i
	return &copied, nil
}

func (s *memStore) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	out := []models.Reservation{}
	for _, r := range s.reservations {
		out = append(out, *r)
	}
	return out, nil
}

func (s *memStore) CreateReservation(ctx context.Context, input *models.InsertReservation) (*models.Reservation, error) {
	r := &models.Reservation{
		ID:        s.id(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Date:      input.Date,
		PartySize: input.PartySize,
		Status:    models.ReservationStatusPending,
	}
	s.reservations[r.ID] = r
	copied := *r
	return &copied, nil
}

func (s *memStore) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	r, ok := s.reservations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (s *memStore) UpdateReservationStatus(ctx context.Context, id int64, status string) (*models.Reservation, error) {
	r, ok := s.reservations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	r.Status = status
	copied := *r
	return &copied, nil
}

func (s *memStore) DeleteReservation(ctx context.Context, id int64) (bool, error) {
	if _, ok := s.reservations[id]; !ok {
		return false, nil
	}
	delete(s.reservations, id)
	return true, nil
}

func (s *memStore) CreateOrder(ctx context.Context, input *models.InsertOrder) (*models.Order, error) {
	o := &models.Order{
		ID:              s.id(),
		ItemID:          input.ItemID,
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		CustomerPhone:   input.CustomerPhone,
		DeliveryAddress: input.DeliveryAddress,
		TotalAmount:     input.TotalAmount,
		Status:          models.OrderStatusPending,
		CreatedAt:       time.Now(),
	}
	s.orders[o.ID] = o
	copied := *o
	return &copied, nil
}

func (s *memStore) ListOrders(ctx context.Context) ([]models.Order, error) {
	out := []models.Order{}
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (s *memStore) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (s *memStore) UpdateOrderStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	o.Status = status
	copied := *o
	return &copied, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newMemStore()
	handler := NewHandler(
		service.NewMenuService(db, nil),
		service.NewReservationService(db, nil),
		service.NewOrderService(db, nil, 4000, 2000),
	)

	router := gin.New()
	handler.SetupRoutes(router)
	return router, db
}

func seedMenu(t *testing.T, db *memStore) (*models.Category, *models.MenuItem) {
	t.Helper()
	ctx := context.Background()

	mains, err := db.CreateCategory(ctx, &models.InsertCategory{Name: "Mains", Slug: "mains", ImageURL: "img"})
	require.NoError(t, err)

	item, err := db.CreateMenuItem(ctx, &models.InsertMenuItem{
		CategoryID:  mains.ID,
		Name:        "Butter Chicken",
		Description: "Tender chicken in a creamy tomato gravy.",
		Price:       55000,
		ImageURL:    "img",
		IsAvailable: true,
	})
	require.NoError(t, err)
	return mains, item
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateReservationForcesPending(t *testing.T) {
	router, _ := newTestRouter(t)

	// A client-supplied status is not part of the input schema and is ignored
	w := doJSON(t, router, http.MethodPost, "/api/reservations", map[string]interface{}{
		"name":      "Ana",
		"email":     "ana@x.com",
		"phone":     "9876543210",
		"date":      "2025-06-01T19:00:00Z",
		"partySize": 4,
		"status":    "confirmed",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var reservation models.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reservation))
	assert.Equal(t, models.ReservationStatusPending, reservation.Status)
	assert.NotZero(t, reservation.ID)
	assert.Equal(t, "Ana", reservation.Name)
	assert.Equal(t, "ana@x.com", reservation.Email)
	assert.Equal(t, "9876543210", reservation.Phone)
	assert.Equal(t, 4, reservation.PartySize)
	assert.Equal(t, time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC), reservation.Date.UTC())
}

func TestCreateReservationValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/reservations", map[string]interface{}{
		"name":      "",
		"email":     "not-an-email",
		"phone":     "1",
		"partySize": 0,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Message string `json:"message"`
		Field   string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "name", body.Field)
	assert.NotEmpty(t, body.Message)
}

func TestCreateReservationMalformedBody(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/reservations", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateReservationNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPatch, "/api/reservations/999", map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateReservationStatus(t *testing.T) {
	router, db := newTestRouter(t)

	r, err := db.CreateReservation(context.Background(), &models.InsertReservation{
		Name: "Ana", Email: "ana@x.com", Phone: "9876543210",
		Date: time.Now(), PartySize: 2,
	})
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPatch, "/api/reservations/1", map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, r.ID, updated.ID)
	assert.Equal(t, models.ReservationStatusConfirmed, updated.Status)
}

func TestUpdateReservationRejectsUnknownStatus(t *testing.T) {
	router, db := newTestRouter(t)

	_, err := db.CreateReservation(context.Background(), &models.InsertReservation{
		Name: "Ana", Email: "ana@x.com", Phone: "9876543210",
		Date: time.Now(), PartySize: 2,
	})
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodPatch, "/api/reservations/1", map[string]string{"status": "delivered"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "status", body.Field)
}

func TestDeleteReservationTwice(t *testing.T) {
	router, db := newTestRouter(t)

	_, err := db.CreateReservation(context.Background(), &models.InsertReservation{
		Name: "Ana", Email: "ana@x.com", Phone: "9876543210",
		Date: time.Now(), PartySize: 2,
	})
	require.NoError(t, err)

	w := doJSON(t, router, http.MethodDelete, "/api/reservations/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())

	// Deleting again is a 404, never a crash
	w = doJSON(t, router, http.MethodDelete, "/api/reservations/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNonNumericIDIsNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	// An id that fails integer coercion reads as an unknown id, not a 400
	w := doJSON(t, router, http.MethodDelete, "/api/reservations/abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/menu-items/abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCategoryWithItems(t *testing.T) {
	router, db := newTestRouter(t)
	mains, _ := seedMenu(t, db)

	w := doJSON(t, router, http.MethodGet, "/api/categories/mains", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var category models.CategoryWithItems
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &category))
	assert.Equal(t, mains.ID, category.ID)
	require.NotEmpty(t, category.Items)
	for _, item := range category.Items {
		assert.Equal(t, category.ID, item.CategoryID)
	}
}

func TestGetCategoryUnknownSlug(t *testing.T) {
	router, db := newTestRouter(t)
	seedMenu(t, db)

	w := doJSON(t, router, http.MethodGet, "/api/categories/Mains", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateOrderComputesTotalServerSide(t *testing.T) {
	router, db := newTestRouter(t)
	_, item := seedMenu(t, db)

	w := doJSON(t, router, http.MethodPost, "/api/orders", map[string]interface{}{
		"itemId":          item.ID,
		"customerName":    "Ana",
		"customerEmail":   "ana@x.com",
		"customerPhone":   "9876543210",
		"deliveryAddress": "12 Harbour Lane, Mumbai",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, int64(61000), order.TotalAmount, "55000 + 4000 delivery + 2000 handling")
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.False(t, order.CreatedAt.IsZero())
}

func TestCreateOrderRejectsTamperedTotal(t *testing.T) {
	router, db := newTestRouter(t)
	_, item := seedMenu(t, db)

	w := doJSON(t, router, http.MethodPost, "/api/orders", map[string]interface{}{
		"itemId":          item.ID,
		"customerName":    "Ana",
		"customerEmail":   "ana@x.com",
		"customerPhone":   "9876543210",
		"deliveryAddress": "12 Harbour Lane, Mumbai",
		"totalAmount":     100,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "totalAmount", body.Field)
}

func TestCreateOrderUnknownItem(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/orders", map[string]interface{}{
		"itemId":          42,
		"customerName":    "Ana",
		"customerEmail":   "ana@x.com",
		"customerPhone":   "9876543210",
		"deliveryAddress": "12 Harbour Lane, Mumbai",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "itemId", body.Field)
}

func TestListOrdersJoinsItem(t *testing.T) {
	router, db := newTestRouter(t)
	_, item := seedMenu(t, db)

	w := doJSON(t, router, http.MethodPost, "/api/orders", map[string]interface{}{
		"itemId":          item.ID,
		"customerName":    "Ana",
		"customerEmail":   "ana@x.com",
		"customerPhone":   "9876543210",
		"deliveryAddress": "12 Harbour Lane, Mumbai",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var orders []models.OrderWithItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].Item)
	assert.Equal(t, item.ID, orders[0].Item.ID)
}

func TestUpdateOrderStatusNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPatch, "/api/orders/999", map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoundTripCreateThenRead(t *testing.T) {
	router, db := newTestRouter(t)
	_, item := seedMenu(t, db)

	w := doJSON(t, router, http.MethodGet, "/api/menu-items/"+strconv.FormatInt(item.ID, 10), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got models.MenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, *item, got)
}
