package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/pradyumyelame/EasyToStay/internal/errors"
	"github.com/pradyumyelame/EasyToStay/internal/events"
	"github.com/pradyumyelame/EasyToStay/internal/metrics"
	"github.com/pradyumyelame/EasyToStay/internal/model"
	"github.com/pradyumyelame/EasyToStay/internal/repository"
)

// BookingInput holds the fields of a booking request.
type BookingInput struct {
	PlaceID  string
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
	Name     string
	Mobile   string
	// Price is the total the client agreed to. When zero it is computed
	// from the place's nightly price.
	Price decimal.Decimal
}

// BookingService handles bookings. A user only ever sees their own bookings.
type BookingService interface {
	Create(ctx context.Context, userID string, in BookingInput) (*model.Booking, error)
	ListForUser(ctx context.Context, userID string) ([]model.Booking, error)
}

type bookingService struct {
	bookings  repository.BookingRepository
	places    repository.PlaceRepository
	publisher events.Publisher
	metrics   *metrics.Metrics
	log       *zap.Logger
}

// NewBookingService creates a new booking service.
func NewBookingService(
	bookings repository.BookingRepository,
	places repository.PlaceRepository,
	publisher events.Publisher,
	m *metrics.Metrics,
	log *zap.Logger,
) BookingService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &bookingService{
		bookings:  bookings,
		places:    places,
		publisher: publisher,
		metrics:   m,
		log:       log,
	}
}

func validateBooking(in BookingInput) error {
	switch {
	case strings.TrimSpace(in.PlaceID) == "":
		return fmt.Errorf("%w: place is required", apperrors.ErrInvalidInput)
	case in.CheckIn.IsZero() || in.CheckOut.IsZero():
		return fmt.Errorf("%w: checkIn and checkOut are required", apperrors.ErrInvalidInput)
	case !in.CheckOut.After(in.CheckIn):
		return fmt.Errorf("%w: checkOut must be after checkIn", apperrors.ErrInvalidInput)
	case in.Guests < 1:
		return fmt.Errorf("%w: guests must be at least 1", apperrors.ErrInvalidInput)
	case in.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", apperrors.ErrInvalidInput)
	}
	return nil
}

// Create books a place for userID.
func (s *bookingService) Create(ctx context.Context, userID string, in BookingInput) (*model.Booking, error) {
	if err := validateBooking(in); err != nil {
		return nil, err
	}

	place, err := s.places.FindByID(ctx, in.PlaceID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("place %s: %w", in.PlaceID, apperrors.ErrNotFound)
		}
		s.log.Error("find place for booking", zap.String("place_id", in.PlaceID), zap.Error(err))
		return nil, fmt.Errorf("find place: %w", err)
	}
	if place.MaxGuests > 0 && in.Guests > place.MaxGuests {
		return nil, fmt.Errorf("%w: place accepts at most %d guests", apperrors.ErrInvalidInput, place.MaxGuests)
	}

	booking := &model.Booking{
		PlaceID:  place.ID,
		UserID:   userID,
		CheckIn:  in.CheckIn.UTC(),
		CheckOut: in.CheckOut.UTC(),
		Guests:   in.Guests,
		Name:     strings.TrimSpace(in.Name),
		Mobile:   strings.TrimSpace(in.Mobile),
		Price:    in.Price,
	}
	if booking.Price.IsZero() {
		booking.Price = place.Price.Mul(decimal.NewFromInt(int64(booking.Nights())))
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		s.log.Error("create booking", zap.String("place_id", place.ID), zap.Error(err))
		return nil, fmt.Errorf("create booking: %w", err)
	}
	s.metrics.BookingCreated()

	publish(ctx, s.publisher, s.log, events.SubjectBookingCreated, events.BookingCreated{
		BookingID: booking.ID,
		PlaceID:   booking.PlaceID,
		UserID:    booking.UserID,
		CheckIn:   booking.CheckIn,
		CheckOut:  booking.CheckOut,
		Guests:    booking.Guests,
	})
	booking.Place = place
	return booking, nil
}

// ListForUser returns userID's bookings with their places populated.
func (s *bookingService) ListForUser(ctx context.Context, userID string) ([]model.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		s.log.Error("list bookings", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []model.Booking{}
	}
	return bookings, nil
}
