package models

import "time"

// Category is a named grouping of menu items, addressed externally by slug
type Category struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Slug     string `db:"slug" json:"slug"`
	ImageURL string `db:"image_url" json:"imageUrl"`
}

// MenuItem is a dish belonging to exactly one category.
// Price is stored in minor currency units so all money math stays integral.
type MenuItem struct {
	ID          int64  `db:"id" json:"id"`
	CategoryID  int64  `db:"category_id" json:"categoryId"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Price       int64  `db:"price" json:"price"`
	ImageURL    string `db:"image_url" json:"imageUrl"`
	IsAvailable bool   `db:"is_available" json:"isAvailable"`
}

// Reservation is a table-booking request awaiting administrative confirmation
type Reservation struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Date      time.Time `db:"date" json:"date"`
	PartySize int       `db:"party_size" json:"partySize"`
	Status    string    `db:"status" json:"status"`
}

// Order is a delivery purchase of a single menu item
type Order struct {
	ID              int64     `db:"id" json:"id"`
	ItemID          int64     `db:"item_id" json:"itemId"`
	CustomerName    string    `db:"customer_name" json:"customerName"`
	CustomerEmail   string    `db:"customer_email" json:"customerEmail"`
	CustomerPhone   string    `db:"customer_phone" json:"customerPhone"`
	DeliveryAddress string    `db:"delivery_address" json:"deliveryAddress"`
	TotalAmount     int64     `db:"total_amount" json:"totalAmount"`
	Status          string    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}

// CategoryWithItems is the composed body returned by the slug lookup
type CategoryWithItems struct {
	Category
	Items []MenuItem `json:"items"`
}

// OrderWithItem joins an order with the menu item it references
type OrderWithItem struct {
	Order
	Item *MenuItem `json:"item,omitempty"`
}

// InsertCategory is the creation input for a category (seed/admin only)
type InsertCategory struct {
	Name     string `json:"name" validate:"required"`
	Slug     string `json:"slug" validate:"required"`
	ImageURL string `json:"imageUrl" validate:"required"`
}

// InsertMenuItem is the creation input for a menu item (seed/admin only)
type InsertMenuItem struct {
	CategoryID  int64  `json:"categoryId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	Price       int64  `json:"price" validate:"gte=0"`
	ImageURL    string `json:"imageUrl" validate:"required"`
	IsAvailable bool   `json:"isAvailable"`
}

// InsertReservation is the booking input. Status is deliberately absent:
// the server forces every new reservation to pending.
type InsertReservation struct {
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Phone     string    `json:"phone" validate:"required,min=10,max=15"`
	Date      time.Time `json:"date" validate:"required"`
	PartySize int       `json:"partySize" validate:"required,gt=0"`
}

// InsertOrder is the checkout input. ID, status and createdAt are server-assigned.
type InsertOrder struct {
	ItemID          int64  `json:"itemId" validate:"required"`
	CustomerName    string `json:"customerName" validate:"required"`
	CustomerEmail   string `json:"customerEmail" validate:"required,email"`
	CustomerPhone   string `json:"customerPhone" validate:"required,min=10,max=15"`
	DeliveryAddress string `json:"deliveryAddress" validate:"required,min=10"`
	TotalAmount     int64  `json:"totalAmount" validate:"gte=0"`
}

// UpdateReservationStatus is the admin PATCH body for reservations
type UpdateReservationStatus struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

// UpdateOrderStatus is the admin PATCH body for orders
type UpdateOrderStatus struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed out_for_delivery delivered cancelled"`
}

// Reservation statuses
const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
)

// Order statuses
const (
	OrderStatusPending        = "pending"
	OrderStatusConfirmed      = "confirmed"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)
