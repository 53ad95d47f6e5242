package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pradyumyelame/EasyToStay/internal/auth"
	"github.com/pradyumyelame/EasyToStay/internal/errors"
)

// errorResponse converts a service error into an echo HTTP error carrying an
// errors.ErrorResponse body.
func errorResponse(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message, code string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// bindAndValidate binds the request body into req and runs the validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}
	return nil
}

// identity returns the authenticated subject. Routes using it sit behind the
// session middleware, so a missing identity is a wiring error.
func identity(c echo.Context) (auth.Identity, error) {
	id, ok := auth.CurrentIdentity(c)
	if !ok {
		return auth.Identity{}, errorResponse(errors.ErrUnauthorized)
	}
	return id, nil
}
