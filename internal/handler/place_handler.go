package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/pradyumyelame/EasyToStay/internal/model"
	"github.com/pradyumyelame/EasyToStay/internal/service"
)

// PlaceHandler handles listing endpoints.
type PlaceHandler struct {
	placeService service.PlaceService
}

// NewPlaceHandler creates a new place handler.
func NewPlaceHandler(placeService service.PlaceService) *PlaceHandler {
	return &PlaceHandler{placeService: placeService}
}

// PlaceRequest represents a listing create or update request. Photos are
// sent as addedPhotos by the web client; photos is accepted as well.
type PlaceRequest struct {
	Title       string          `json:"title" validate:"max=255"`
	Address     string          `json:"address" validate:"max=512"`
	AddedPhotos []string        `json:"addedPhotos" validate:"max=50"`
	Photos      []string        `json:"photos" validate:"max=50"`
	Description string          `json:"description"`
	Perks       []string        `json:"perks"`
	ExtraInfo   string          `json:"extraInfo"`
	CheckIn     string          `json:"checkIn"`
	CheckOut    string          `json:"checkOut"`
	MaxGuests   int             `json:"maxGuests" validate:"gte=0"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

func (r PlaceRequest) fields() model.PlaceFields {
	photos := r.AddedPhotos
	if photos == nil {
		photos = r.Photos
	}
	return model.PlaceFields{
		Title:       r.Title,
		Address:     r.Address,
		Photos:      photos,
		Description: r.Description,
		Perks:       r.Perks,
		ExtraInfo:   r.ExtraInfo,
		CheckIn:     r.CheckIn,
		CheckOut:    r.CheckOut,
		MaxGuests:   r.MaxGuests,
		Price:       r.Price,
	}
}

// Create godoc
// @Summary Create a listing owned by the caller
// @Tags places
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body PlaceRequest true "Listing"
// @Success 200 {object} model.Place
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /places [post]
func (h *PlaceHandler) Create(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var req PlaceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	place, err := h.placeService.Create(c.Request().Context(), id.UserID, req.fields())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, place)
}

// ListMine godoc
// @Summary Listings owned by the caller
// @Tags places
// @Produce json
// @Security CookieAuth
// @Success 200 {array} model.Place
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /user-places [get]
func (h *PlaceHandler) ListMine(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	places, err := h.placeService.ListByOwner(c.Request().Context(), id.UserID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, places)
}

// ListAll godoc
// @Summary All listings
// @Tags places
// @Produce json
// @Success 200 {array} model.Place
// @Failure 500 {object} errors.ErrorResponse
// @Router /places [get]
func (h *PlaceHandler) ListAll(c echo.Context) error {
	places, err := h.placeService.ListAll(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, places)
}

// Get godoc
// @Summary Get a listing
// @Tags places
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} model.Place
// @Failure 404 {object} errors.ErrorResponse
// @Router /places/{id} [get]
func (h *PlaceHandler) Get(c echo.Context) error {
	place, err := h.placeService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, place)
}

// GetWithOwner godoc
// @Summary Get a listing with its owner's public profile
// @Tags places
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} model.Place
// @Failure 404 {object} errors.ErrorResponse
// @Router /place/{id} [get]
func (h *PlaceHandler) GetWithOwner(c echo.Context) error {
	place, err := h.placeService.GetWithOwner(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, place)
}

// Update godoc
// @Summary Update a listing
// @Description Only the owner may update a listing; anyone else gets 403 and nothing is written.
// @Tags places
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Place ID"
// @Param request body PlaceRequest true "Listing"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /places/{id} [put]
func (h *PlaceHandler) Update(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var req PlaceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.placeService.Update(c.Request().Context(), id.UserID, c.Param("id"), req.fields()); err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Place updated successfully"})
}

// Delete godoc
// @Summary Delete a listing
// @Tags places
// @Produce json
// @Security CookieAuth
// @Param id path string true "Place ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /places/{id} [delete]
func (h *PlaceHandler) Delete(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	if err := h.placeService.Delete(c.Request().Context(), id.UserID, c.Param("id")); err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Place deleted successfully"})
}
