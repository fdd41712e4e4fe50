package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"restaurant-service/internal/contract"
	"restaurant-service/internal/models"
	"restaurant-service/internal/service"
	"restaurant-service/internal/store"
	"restaurant-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handler contains HTTP handlers
type Handler struct {
	menu         *service.MenuService
	reservations *service.ReservationService
	orders       *service.OrderService
	logger       *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(menu *service.MenuService, reservations *service.ReservationService, orders *service.OrderService) *Handler {
	return &Handler{
		menu:         menu,
		reservations: reservations,
		orders:       orders,
		logger:       util.GetLogger(),
	}
}

// SetupRoutes registers every contract operation plus the operational
// endpoints. Handlers are bound from the contract table so the server and
// the typed client agree on methods and paths by construction.
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	for _, binding := range []struct {
		route contract.Route
		fn    gin.HandlerFunc
	}{
		{contract.CategoriesList, h.listCategories},
		{contract.CategoriesGet, h.getCategory},
		{contract.MenuItemsList, h.listMenuItems},
		{contract.MenuItemsGet, h.getMenuItem},
		{contract.ReservationsList, h.listReservations},
		{contract.ReservationsCreate, h.createReservation},
		{contract.ReservationsUpdate, h.updateReservation},
		{contract.ReservationsDelete, h.deleteReservation},
		{contract.OrdersList, h.listOrders},
		{contract.OrdersCreate, h.createOrder},
		{contract.OrdersUpdateStatus, h.updateOrderStatus},
	} {
		router.Handle(binding.route.Method, binding.route.Path, binding.fn)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// listCategories handles GET /api/categories
func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.menu.ListCategories(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to list categories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// getCategory handles GET /api/categories/:slug, inlining the category's items
func (h *Handler) getCategory(c *gin.Context) {
	category, err := h.menu.GetCategoryBySlug(c.Request.Context(), c.Param("slug"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Failed to get category", err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// listMenuItems handles GET /api/menu-items
func (h *Handler) listMenuItems(c *gin.Context) {
	items, err := h.menu.ListMenuItems(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to list menu items", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// getMenuItem handles GET /api/menu-items/:id
func (h *Handler) getMenuItem(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Menu item not found"})
		return
	}

	item, err := h.menu.GetMenuItem(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Menu item not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Failed to get menu item", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// listReservations handles GET /api/reservations
func (h *Handler) listReservations(c *gin.Context) {
	reservations, err := h.reservations.List(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to list reservations", err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// createReservation handles POST /api/reservations
func (h *Handler) createReservation(c *gin.Context) {
	var input models.InsertReservation
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, contract.FieldError{Message: "Invalid request body"})
		return
	}
	if ferr := contract.Validate(&input); ferr != nil {
		c.JSON(http.StatusBadRequest, ferr)
		return
	}

	reservation, err := h.reservations.Create(c.Request.Context(), &input)
	if err != nil {
		h.internalError(c, "Failed to create reservation", err)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// updateReservation handles PATCH /api/reservations/:id
func (h *Handler) updateReservation(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Reservation not found"})
		return
	}

	var input models.UpdateReservationStatus
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, contract.FieldError{Message: "Invalid request body"})
		return
	}
	if ferr := contract.Validate(&input); ferr != nil {
		c.JSON(http.StatusBadRequest, ferr)
		return
	}

	reservation, err := h.reservations.UpdateStatus(c.Request.Context(), id, input.Status)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Reservation not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Failed to update reservation", err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// deleteReservation handles DELETE /api/reservations/:id
func (h *Handler) deleteReservation(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Reservation not found"})
		return
	}

	deleted, err := h.reservations.Delete(c.Request.Context(), id)
	if err != nil {
		h.internalError(c, "Failed to delete reservation", err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"message": "Reservation not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// listOrders handles GET /api/orders, each order joined with its item
func (h *Handler) listOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		h.internalError(c, "Failed to list orders", err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// createOrder handles POST /api/orders
func (h *Handler) createOrder(c *gin.Context) {
	var input models.InsertOrder
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, contract.FieldError{Message: "Invalid request body"})
		return
	}
	if ferr := contract.Validate(&input); ferr != nil {
		c.JSON(http.StatusBadRequest, ferr)
		return
	}

	order, err := h.orders.Create(c.Request.Context(), &input)
	var ferr *contract.FieldError
	if errors.As(err, &ferr) {
		c.JSON(http.StatusBadRequest, ferr)
		return
	}
	if err != nil {
		h.internalError(c, "Failed to create order", err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// updateOrderStatus handles PATCH /api/orders/:id
func (h *Handler) updateOrderStatus(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	var input models.UpdateOrderStatus
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, contract.FieldError{Message: "Invalid request body"})
		return
	}
	if ferr := contract.Validate(&input); ferr != nil {
		c.JSON(http.StatusBadRequest, ferr)
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), id, input.Status)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}
	if err != nil {
		h.internalError(c, "Failed to update order", err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// pathID parses the :id path parameter. A value that does not parse as an
// integer is treated the same as an unknown id, so callers answer 404
// instead of leaking the parameter's expected type.
func (h *Handler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// internalError answers 500 with a generic body and logs the cause
func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg,
		zap.String("path", c.FullPath()),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
