package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"_id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"`
	ProfilePic   string    `json:"profilePic,omitempty" gorm:"size:512"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserUpdate carries the mutable profile fields. Nil fields are left untouched.
type UserUpdate struct {
	Name         *string
	Email        *string
	ProfilePic   *string
	PasswordHash *string
}

// Profile is the public view returned by GET /profile.
type Profile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	ID         string `json:"id"`
	ProfilePic string `json:"profilePic"`
}

// ToProfile returns the public profile view of u.
func (u *User) ToProfile() Profile {
	return Profile{
		Name:       u.Name,
		Email:      u.Email,
		ID:         u.ID,
		ProfilePic: u.ProfilePic,
	}
}
