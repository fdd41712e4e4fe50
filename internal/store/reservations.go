package store

import (
	"context"
	"database/sql"
	"fmt"

	"restaurant-service/internal/models"
)

// ListReservations retrieves all reservations in creation order
func (s *Store) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	reservations := []models.Reservation{}
	err := s.db.SelectContext(ctx, &reservations, "SELECT * FROM reservations ORDER BY id ASC")
	return reservations, err
}

// CreateReservation inserts a new reservation. The status column is never
// taken from input: every new reservation starts out pending.
func (s *Store) CreateReservation(ctx context.Context, input *models.InsertReservation) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.db.GetContext(ctx, &reservation, `
		INSERT INTO reservations (name, email, phone, date, party_size, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *`,
		input.Name, input.Email, input.Phone, input.Date, input.PartySize,
		models.ReservationStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	return &reservation, nil
}

// GetReservation retrieves a reservation by ID
func (s *Store) GetReservation(ctx context.Context, id int64) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.db.GetContext(ctx, &reservation, "SELECT * FROM reservations WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// UpdateReservationStatus updates a reservation's status and returns the
// updated row. Any status may move to any other status.
func (s *Store) UpdateReservationStatus(ctx context.Context, id int64, status string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.db.GetContext(ctx, &reservation, `
		UPDATE reservations SET status = $1 WHERE id = $2
		RETURNING *`,
		status, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// DeleteReservation removes a reservation. Returns true if a row was
// removed; deleting an already-deleted id returns false, never an error.
func (s *Store) DeleteReservation(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reservations WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
