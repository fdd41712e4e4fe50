package service

import (
	"context"
	"time"

	"restaurant-service/internal/broker"
	"restaurant-service/internal/models"
	"restaurant-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type reservationStore interface {
	ListReservations(ctx context.Context) ([]models.Reservation, error)
	CreateReservation(ctx context.Context, input *models.InsertReservation) (*models.Reservation, error)
	GetReservation(ctx context.Context, id int64) (*models.Reservation, error)
	UpdateReservationStatus(ctx context.Context, id int64, status string) (*models.Reservation, error)
	DeleteReservation(ctx context.Context, id int64) (bool, error)
}

// ReservationService handles table bookings and their administrative lifecycle
type ReservationService struct {
	store  reservationStore
	events broker.Publisher
	logger *zap.Logger
}

// NewReservationService creates a new reservation service. events may be nil.
func NewReservationService(store reservationStore, events broker.Publisher) *ReservationService {
	return &ReservationService{
		store:  store,
		events: events,
		logger: util.GetLogger(),
	}
}

// List returns all reservations
func (s *ReservationService) List(ctx context.Context) ([]models.Reservation, error) {
	ctx, span := util.StartSpan(ctx, "ReservationService.List")
	defer span.End()

	return s.store.ListReservations(ctx)
}

// Create books a table. The input carries no status field; every new
// reservation is stored as pending regardless of what the client sent.
func (s *ReservationService) Create(ctx context.Context, input *models.InsertReservation) (*models.Reservation, error) {
	ctx, span := util.StartSpan(ctx, "ReservationService.Create")
	defer span.End()

	reservation, err := s.store.CreateReservation(ctx, input)
	if err != nil {
		return nil, err
	}

	util.ReservationsCreatedTotal.Inc()
	s.logger.Info("Reservation created",
		zap.Int64("reservation_id", reservation.ID),
		zap.Int("party_size", reservation.PartySize),
		zap.Time("date", reservation.Date))

	if s.events != nil {
		event := &models.ReservationCreatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeReservationCreated,
				Timestamp: time.Now(),
			},
			ReservationID: reservation.ID,
			Name:          reservation.Name,
			Date:          reservation.Date,
			PartySize:     reservation.PartySize,
		}
		if err := s.events.PublishReservationCreated(ctx, event); err != nil {
			s.logger.Error("Failed to publish ReservationCreated event", zap.Error(err))
		}
	}

	return reservation, nil
}

// UpdateStatus moves a reservation to the given status. Any status may move
// to any other; there is no enforced ordering.
func (s *ReservationService) UpdateStatus(ctx context.Context, id int64, status string) (*models.Reservation, error) {
	ctx, span := util.StartSpan(ctx, "ReservationService.UpdateStatus")
	defer span.End()

	existing, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateReservationStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	util.ReservationStatusUpdatesTotal.WithLabelValues(status).Inc()
	s.logger.Info("Reservation status updated",
		zap.Int64("reservation_id", id),
		zap.String("old_status", existing.Status),
		zap.String("new_status", status))

	if s.events != nil {
		event := &models.ReservationStatusChangedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeReservationStatusChanged,
				Timestamp: time.Now(),
			},
			ReservationID: id,
			OldStatus:     existing.Status,
			NewStatus:     status,
		}
		if err := s.events.PublishReservationStatusChanged(ctx, event); err != nil {
			s.logger.Error("Failed to publish ReservationStatusChanged event", zap.Error(err))
		}
	}

	return updated, nil
}

// Delete removes a reservation. Returns false when the id does not exist;
// deleting the same id twice is not an error.
func (s *ReservationService) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, span := util.StartSpan(ctx, "ReservationService.Delete")
	defer span.End()

	deleted, err := s.store.DeleteReservation(ctx, id)
	if err != nil {
		return false, err
	}

	if deleted {
		util.ReservationsDeletedTotal.Inc()
		s.logger.Info("Reservation deleted", zap.Int64("reservation_id", id))
	}

	return deleted, nil
}
