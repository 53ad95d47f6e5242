package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pradyumyelame/EasyToStay/internal/model"
)

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

// Create creates a new booking record.
func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Omit("Place").Create(booking).Error
}

// FindByID finds a booking by ID.
func (r *bookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error; err != nil {
		return nil, translateGormError(err)
	}
	return &booking, nil
}

// ListByUser returns the user's bookings with their place populated.
func (r *bookingRepository) ListByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	bookings := []model.Booking{}
	err := r.db.WithContext(ctx).
		Preload("Place").
		Where("user_id = ?", userID).
		Order("check_in").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// NewGormStores returns the repositories backed by a relational database.
func NewGormStores(db *gorm.DB) Stores {
	return Stores{
		Users:    NewUserRepository(db),
		Places:   NewPlaceRepository(db),
		Bookings: NewBookingRepository(db),
	}
}
