package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceIsJSONNumber(t *testing.T) {
	place := Place{ID: "p-1", Title: "Cabin", Price: decimal.RequireFromString("120.50")}
	booking := Booking{ID: "b-1", Price: decimal.NewFromInt(300), Place: &place}

	data, err := json.Marshal(booking)
	require.NoError(t, err)

	var out struct {
		Price float64 `json:"price"`
		Place struct {
			Price float64 `json:"price"`
		} `json:"place"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, 300.0, out.Price)
	assert.Equal(t, 120.5, out.Place.Price)

	var back Place
	require.NoError(t, json.Unmarshal([]byte(`{"price":99.99}`), &back))
	assert.True(t, decimal.RequireFromString("99.99").Equal(back.Price))
}

func TestUserJSONHidesPasswordHash(t *testing.T) {
	data, err := json.Marshal(User{ID: "u-1", Email: "a@example.com", PasswordHash: "$2a$10$hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "$2a$")
	assert.NotContains(t, string(data), "password")
}

func TestBookingNights(t *testing.T) {
	in := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	b := Booking{CheckIn: in, CheckOut: in.AddDate(0, 0, 3)}
	assert.Equal(t, 3, b.Nights())
}
