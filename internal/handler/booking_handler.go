package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/pradyumyelame/EasyToStay/internal/service"
)

// BookingHandler handles booking endpoints.
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// BookingRequest represents a booking request. Dates are either plain dates
// (2006-01-02) or RFC 3339 timestamps.
type BookingRequest struct {
	Place    string          `json:"place" validate:"required"`
	CheckIn  string          `json:"checkIn" validate:"required"`
	CheckOut string          `json:"checkOut" validate:"required"`
	Guests   int             `json:"guests" validate:"gte=1"`
	Name     string          `json:"name" validate:"required"`
	Mobile   string          `json:"mobile" validate:"required"`
	Price    decimal.Decimal `json:"price" swaggertype:"number"`
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range []string{time.DateOnly, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Create godoc
// @Summary Book a place
// @Tags bookings
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body BookingRequest true "Booking"
// @Success 200 {object} model.Booking
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var req BookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	checkIn, ok := parseDate(req.CheckIn)
	if !ok {
		return badRequest("invalid checkIn", "INVALID_DATE")
	}
	checkOut, ok := parseDate(req.CheckOut)
	if !ok {
		return badRequest("invalid checkOut", "INVALID_DATE")
	}

	booking, err := h.bookingService.Create(c.Request().Context(), id.UserID, service.BookingInput{
		PlaceID:  req.Place,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   req.Guests,
		Name:     req.Name,
		Mobile:   req.Mobile,
		Price:    req.Price,
	})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, booking)
}

// List godoc
// @Summary The caller's bookings with their places
// @Tags bookings
// @Produce json
// @Security CookieAuth
// @Success 200 {array} model.Booking
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	bookings, err := h.bookingService.ListForUser(c.Request().Context(), id.UserID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, bookings)
}
