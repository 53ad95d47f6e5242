package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pradyumyelame/EasyToStay/internal/service"
)

// UploadHandler handles listing photo uploads.
type UploadHandler struct {
	uploadService service.UploadService
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(uploadService service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadByLinkRequest represents a request to fetch a photo from a url.
type UploadByLinkRequest struct {
	Link string `json:"link" validate:"required,url"`
}

// Upload godoc
// @Summary Upload listing photos
// @Description Requires a session cookie. Earlier releases accepted anonymous uploads; those now get 401.
// @Description Files keep a jpg, png, webp or gif extension only.
// @Tags uploads
// @Accept mpfd
// @Produce json
// @Security CookieAuth
// @Param photos formData file true "Photos (up to 50)"
// @Success 200 {array} string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) Upload(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest("expected multipart form", "INVALID_REQUEST")
	}
	headers := form.File["photos"]
	if len(headers) > service.MaxPhotosPerUpload {
		return badRequest("too many photos", "TOO_MANY_FILES")
	}

	uploads := make([]service.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return badRequest("invalid photo file", "INVALID_FILE")
		}
		defer f.Close()
		uploads = append(uploads, service.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Size:        fh.Size,
			Body:        f,
		})
	}

	keys, err := h.uploadService.SavePhotos(c.Request().Context(), uploads)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, keys)
}

// UploadByLink godoc
// @Summary Fetch a listing photo from a url
// @Description Requires a session cookie. Earlier releases accepted anonymous uploads; those now get 401.
// @Description The stored extension follows the response media type, never the link path.
// @Tags uploads
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body UploadByLinkRequest true "Image url"
// @Success 200 {string} string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /upload-by-link [post]
func (h *UploadHandler) UploadByLink(c echo.Context) error {
	var req UploadByLinkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	key, err := h.uploadService.SaveFromLink(c.Request().Context(), req.Link)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, key)
}
