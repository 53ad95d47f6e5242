package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Booking is a reservation of a Place, readable only by the user who made it.
type Booking struct {
	ID        string          `json:"_id" gorm:"type:char(36);primaryKey"`
	PlaceID   string          `json:"placeId" gorm:"type:char(36);not null;index"`
	Place     *Place          `json:"place,omitempty" gorm:"foreignKey:PlaceID;references:ID"`
	UserID    string          `json:"user" gorm:"type:char(36);not null;index"`
	CheckIn   time.Time       `json:"checkIn" gorm:"not null"`
	CheckOut  time.Time       `json:"checkOut" gorm:"not null"`
	Guests    int             `json:"guests" gorm:"not null"`
	Name      string          `json:"name" gorm:"size:255;not null"`
	Mobile    string          `json:"mobile" gorm:"size:64;not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time       `json:"createdAt"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Nights returns the number of nights between check-in and check-out.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}
