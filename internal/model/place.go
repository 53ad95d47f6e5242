package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Prices are written as JSON numbers; the web client does arithmetic on them.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Place is a rental listing. Only the user recorded in OwnerID may change it.
type Place struct {
	ID          string          `json:"_id" gorm:"type:char(36);primaryKey"`
	OwnerID     string          `json:"owner" gorm:"type:char(36);not null;index"`
	Owner       *User           `json:"ownerInfo,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
	Title       string          `json:"title" gorm:"size:255"`
	Address     string          `json:"address" gorm:"size:512"`
	Photos      []string        `json:"photos" gorm:"serializer:json"`
	Description string          `json:"description" gorm:"type:text"`
	Perks       []string        `json:"perks" gorm:"serializer:json"`
	ExtraInfo   string          `json:"extraInfo" gorm:"type:text"`
	CheckIn     string          `json:"checkIn" gorm:"size:32"`
	CheckOut    string          `json:"checkOut" gorm:"size:32"`
	MaxGuests   int             `json:"maxGuests"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Place) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PlaceFields are the owner-editable fields of a listing.
type PlaceFields struct {
	Title       string
	Address     string
	Photos      []string
	Description string
	Perks       []string
	ExtraInfo   string
	CheckIn     string
	CheckOut    string
	MaxGuests   int
	Price       decimal.Decimal
}

// Apply overwrites the editable fields of p with f.
func (p *Place) Apply(f PlaceFields) {
	p.Title = f.Title
	p.Address = f.Address
	p.Photos = f.Photos
	p.Description = f.Description
	p.Perks = f.Perks
	p.ExtraInfo = f.ExtraInfo
	p.CheckIn = f.CheckIn
	p.CheckOut = f.CheckOut
	p.MaxGuests = f.MaxGuests
	p.Price = f.Price
}
