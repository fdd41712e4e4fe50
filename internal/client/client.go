// Package client is a typed REST client for the restaurant API. It builds
// every request from the contract route table, decodes responses by status
// code, and keeps a small response cache for reads that mutations
// invalidate, so a read after a completed write always observes the change.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"restaurant-service/internal/contract"
	"restaurant-service/internal/models"
)

// APIError is a non-2xx response decoded from the error body shape
// {message, field?}
type APIError struct {
	Status  int
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("api error %d: %s (field %s)", e.Status, e.Message, e.Field)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client calls the restaurant API
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	cache map[string][]byte
}

// New creates a client for the API served at baseURL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   make(map[string][]byte),
	}
}

// ListCategories fetches all categories
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := c.get(ctx, contract.CategoriesList.Path, &categories)
	return categories, err
}

// GetCategory fetches one category by slug, with its items inlined
func (c *Client) GetCategory(ctx context.Context, slug string) (*models.CategoryWithItems, error) {
	url := contract.BuildURL(contract.CategoriesGet.Path, map[string]string{"slug": slug})
	var category models.CategoryWithItems
	if err := c.get(ctx, url, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// ListMenuItems fetches all menu items
func (c *Client) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := c.get(ctx, contract.MenuItemsList.Path, &items)
	return items, err
}

// GetMenuItem fetches one menu item by id
func (c *Client) GetMenuItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	url := contract.BuildURL(contract.MenuItemsGet.Path, map[string]string{"id": strconv.FormatInt(id, 10)})
	var item models.MenuItem
	if err := c.get(ctx, url, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ListReservations fetches all reservations
func (c *Client) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	var reservations []models.Reservation
	err := c.get(ctx, contract.ReservationsList.Path, &reservations)
	return reservations, err
}

// CreateReservation books a table
func (c *Client) CreateReservation(ctx context.Context, input *models.InsertReservation) (*models.Reservation, error) {
	var reservation models.Reservation
	err := c.send(ctx, contract.ReservationsCreate, nil, input, http.StatusCreated, &reservation)
	if err != nil {
		return nil, err
	}
	c.invalidate(contract.ReservationsList.Path)
	return &reservation, nil
}

// UpdateReservationStatus moves a reservation to a new status
func (c *Client) UpdateReservationStatus(ctx context.Context, id int64, status string) (*models.Reservation, error) {
	params := map[string]string{"id": strconv.FormatInt(id, 10)}
	var reservation models.Reservation
	err := c.send(ctx, contract.ReservationsUpdate, params, &models.UpdateReservationStatus{Status: status}, http.StatusOK, &reservation)
	if err != nil {
		return nil, err
	}
	c.invalidate(contract.ReservationsList.Path)
	return &reservation, nil
}

// DeleteReservation removes a reservation
func (c *Client) DeleteReservation(ctx context.Context, id int64) error {
	params := map[string]string{"id": strconv.FormatInt(id, 10)}
	if err := c.send(ctx, contract.ReservationsDelete, params, nil, http.StatusNoContent, nil); err != nil {
		return err
	}
	c.invalidate(contract.ReservationsList.Path)
	return nil
}

// CreateOrder places a delivery order
func (c *Client) CreateOrder(ctx context.Context, input *models.InsertOrder) (*models.Order, error) {
	var order models.Order
	err := c.send(ctx, contract.OrdersCreate, nil, input, http.StatusCreated, &order)
	if err != nil {
		return nil, err
	}
	c.invalidate(contract.OrdersList.Path)
	return &order, nil
}

// ListOrders fetches all orders joined with their items
func (c *Client) ListOrders(ctx context.Context) ([]models.OrderWithItem, error) {
	var orders []models.OrderWithItem
	err := c.get(ctx, contract.OrdersList.Path, &orders)
	return orders, err
}

// UpdateOrderStatus moves an order to a new status
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	params := map[string]string{"id": strconv.FormatInt(id, 10)}
	var order models.Order
	err := c.send(ctx, contract.OrdersUpdateStatus, params, &models.UpdateOrderStatus{Status: status}, http.StatusOK, &order)
	if err != nil {
		return nil, err
	}
	c.invalidate(contract.OrdersList.Path)
	return &order, nil
}

// get performs a cached GET. Successful bodies are cached by URL until a
// mutation touching the same collection invalidates them.
func (c *Client) get(ctx context.Context, url string, dest interface{}) error {
	c.mu.Lock()
	cached, ok := c.cache[url]
	c.mu.Unlock()
	if ok {
		return json.Unmarshal(cached, dest)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+url, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return decodeAPIError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	c.mu.Lock()
	c.cache[url] = body
	c.mu.Unlock()
	return nil
}

// send performs a mutating request and decodes the body when the declared
// success status carries one.
func (c *Client) send(ctx context.Context, route contract.Route, params map[string]string, input interface{}, wantStatus int, dest interface{}) error {
	url := contract.BuildURL(route.Path, params)

	var reqBody io.Reader
	if input != nil {
		data, err := json.Marshal(input)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, route.Method, c.baseURL+url, reqBody)
	if err != nil {
		return err
	}
	if input != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != wantStatus {
		return decodeAPIError(resp.StatusCode, body)
	}

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// invalidate drops cached reads whose URL starts with prefix, covering both
// the collection and its detail lookups.
func (c *Client) invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.cache {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.cache, key)
		}
	}
}

func decodeAPIError(status int, body []byte) error {
	apiErr := &APIError{Status: status, Message: http.StatusText(status)}
	if len(body) > 0 {
		_ = json.Unmarshal(body, apiErr)
	}
	return apiErr
}
