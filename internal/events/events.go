package events

import (
	"context"
	"time"
)

// Subjects, relative to the configured prefix.
const (
	SubjectUserRegistered = "user.registered"
	SubjectPlaceCreated   = "place.created"
	SubjectPlaceUpdated   = "place.updated"
	SubjectPlaceDeleted   = "place.deleted"
	SubjectBookingCreated = "booking.created"
)

// Publisher emits domain events. Delivery is best effort: callers log
// failures and never fail the request because of them.
type Publisher interface {
	Publish(ctx context.Context, subject string, payload any) error
	Close()
}

// UserRegistered is published after a successful registration.
type UserRegistered struct {
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	At     time.Time `json:"at"`
}

// PlaceChanged is published when a listing is created, updated or deleted.
type PlaceChanged struct {
	PlaceID string    `json:"place_id"`
	OwnerID string    `json:"owner_id"`
	Title   string    `json:"title,omitempty"`
	At      time.Time `json:"at"`
}

// BookingCreated is published after a booking is stored.
type BookingCreated struct {
	BookingID string    `json:"booking_id"`
	PlaceID   string    `json:"place_id"`
	UserID    string    `json:"user_id"`
	CheckIn   time.Time `json:"check_in"`
	CheckOut  time.Time `json:"check_out"`
	Guests    int       `json:"guests"`
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }

func (Nop) Close() {}
