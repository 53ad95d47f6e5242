package repository

import (
	"context"

	apperrors "github.com/pradyumyelame/EasyToStay/internal/errors"
	"github.com/pradyumyelame/EasyToStay/internal/model"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = apperrors.ErrNotFound
	// ErrDuplicateEmail is returned when an insert or update collides with an existing email.
	ErrDuplicateEmail = apperrors.ErrDuplicateEmail
)

// UserRepository persists user credentials and profiles.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateByID(ctx context.Context, id string, update model.UserUpdate) (*model.User, error)
}

// PlaceRepository persists listings.
type PlaceRepository interface {
	Create(ctx context.Context, place *model.Place) error
	FindByID(ctx context.Context, id string) (*model.Place, error)
	FindByIDWithOwner(ctx context.Context, id string) (*model.Place, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Place, error)
	ListAll(ctx context.Context) ([]model.Place, error)
	Update(ctx context.Context, place *model.Place) error
	Delete(ctx context.Context, id string) error
}

// BookingRepository persists bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]model.Booking, error)
}

// Stores groups the repositories of one backing database.
type Stores struct {
	Users    UserRepository
	Places   PlaceRepository
	Bookings BookingRepository
}
