// Package contract declares the HTTP API surface shared by the server
// handlers and the typed client: one route entry per operation, plus the
// input validation rules. Both sides consult the same table so request and
// response shapes cannot drift between them.
package contract

import (
	"net/http"
	"strings"
)

// Route describes one API operation
type Route struct {
	Method string
	Path   string
}

// API operations. Path templates use :param placeholders.
var (
	CategoriesList = Route{http.MethodGet, "/api/categories"}
	CategoriesGet  = Route{http.MethodGet, "/api/categories/:slug"}

	MenuItemsList = Route{http.MethodGet, "/api/menu-items"}
	MenuItemsGet  = Route{http.MethodGet, "/api/menu-items/:id"}

	ReservationsList   = Route{http.MethodGet, "/api/reservations"}
	ReservationsCreate = Route{http.MethodPost, "/api/reservations"}
	ReservationsUpdate = Route{http.MethodPatch, "/api/reservations/:id"}
	ReservationsDelete = Route{http.MethodDelete, "/api/reservations/:id"}

	OrdersList         = Route{http.MethodGet, "/api/orders"}
	OrdersCreate       = Route{http.MethodPost, "/api/orders"}
	OrdersUpdateStatus = Route{http.MethodPatch, "/api/orders/:id"}
)

// BuildURL substitutes named :param placeholders in a path template.
// Parameters without a matching placeholder are ignored.
func BuildURL(path string, params map[string]string) string {
	url := path
	for key, value := range params {
		url = strings.Replace(url, ":"+key, value, 1)
	}
	return url
}
