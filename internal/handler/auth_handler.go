package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/pradyumyelame/EasyToStay/internal/auth"
	"github.com/pradyumyelame/EasyToStay/internal/service"
)

// AuthHandler handles registration, session and profile endpoints.
type AuthHandler struct {
	authService  service.AuthService
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{authService: authService, cookieSecure: cookieSecure}
}

// RegisterRequest represents a user registration request. It is accepted as
// JSON or as multipart form data with an optional profilePic file.
type RegisterRequest struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ProfileRequest represents a profile update. Omitted fields are unchanged.
type ProfileRequest struct {
	Name       *string `json:"name"`
	Email      *string `json:"email" validate:"omitempty,email"`
	ProfilePic *string `json:"profilePic"`
	Password   string  `json:"password"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json,mpfd
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Param profilePic formData file false "Profile picture"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	in := service.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password}

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		if fh, err := c.FormFile("profilePic"); err == nil {
			f, err := fh.Open()
			if err != nil {
				return badRequest("invalid profilePic file", "INVALID_FILE")
			}
			defer f.Close()
			in.ProfilePic = &service.Upload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get(echo.HeaderContentType),
				Size:        fh.Size,
				Body:        f,
			}
		}
	}

	user, err := h.authService.Register(c.Request().Context(), in)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Login user
// @Description Sets the httpOnly `token` session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return errorResponse(err)
	}

	auth.SetSessionCookie(c, token, h.cookieSecure)
	return c.JSON(http.StatusOK, user)
}

// Logout godoc
// @Summary Logout user
// @Description Overwrites the session cookie with an empty value. The token is not revoked.
// @Tags auth
// @Produce json
// @Success 200 {boolean} boolean
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	auth.ClearSessionCookie(c, h.cookieSecure)
	return c.JSON(http.StatusOK, true)
}

// Profile godoc
// @Summary Current user's profile
// @Tags profile
// @Produce json
// @Security CookieAuth
// @Success 200 {object} model.Profile
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	user, err := h.authService.Profile(c.Request().Context(), id.UserID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, user.ToProfile())
}

// UpdateProfile godoc
// @Summary Update current user's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body ProfileRequest true "Profile fields"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	var req ProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.UpdateProfile(c.Request().Context(), id.UserID, service.ProfileUpdate{
		Name:       req.Name,
		Email:      req.Email,
		ProfilePic: req.ProfilePic,
		Password:   req.Password,
	})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, user)
}
