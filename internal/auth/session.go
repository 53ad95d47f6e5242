package auth

import (
	"context"
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "github.com/pradyumyelame/EasyToStay/internal/errors"
)

const (
	// CookieName is the cookie carrying the session token.
	CookieName = "token"

	claimsContextKey = "session_claims"
)

// Rejection reasons reported to the OnReject hook.
const (
	ReasonMissing          = "missing"
	ReasonExpired          = "expired"
	ReasonInvalidSignature = "invalid_signature"
	ReasonMalformed        = "malformed"
)

// Identity is the authenticated subject attached to a request.
type Identity struct {
	UserID string
	Email  string
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by the session middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// CurrentIdentity returns the identity of the request handled by c.
func CurrentIdentity(c echo.Context) (Identity, bool) {
	return IdentityFromContext(c.Request().Context())
}

type sessionOptions struct {
	onReject func(reason string)
}

// SessionOption customises the session middleware.
type SessionOption func(*sessionOptions)

// OnReject registers a hook called with the reason of every rejected request.
func OnReject(fn func(reason string)) SessionOption {
	return func(o *sessionOptions) {
		o.onReject = fn
	}
}

// Session authenticates requests from the token cookie. A missing or empty
// cookie is rejected with 401, a token failing verification with 403. On
// success the Identity is attached to the request context.
func Session(tokens *TokenService, opts ...SessionOption) echo.MiddlewareFunc {
	o := sessionOptions{onReject: func(string) {}}
	for _, opt := range opts {
		opt(&o)
	}

	verify := echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + CookieName,
		ContextKey:  claimsContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			if token == "" {
				return nil, apperrors.ErrUnauthorized
			}
			claims, err := tokens.Verify(token)
			if err != nil {
				o.onReject(rejectReason(err))
				return nil, err
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if !hasSessionCookie(c) {
				o.onReject(ReasonMissing)
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
					Error: "Unauthorized: No token provided",
					Code:  "UNAUTHORIZED",
				})
			}
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "Invalid token",
				Code:  "INVALID_TOKEN",
			})
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(bindIdentity(next))
	}
}

func bindIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(claimsContextKey).(*Claims)
		if !ok {
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "Invalid token",
				Code:  "INVALID_TOKEN",
			})
		}
		id := Identity{UserID: claims.UserID, Email: claims.Email}
		c.SetRequest(c.Request().WithContext(WithIdentity(c.Request().Context(), id)))
		return next(c)
	}
}

func hasSessionCookie(c echo.Context) bool {
	cookie, err := c.Cookie(CookieName)
	return err == nil && cookie.Value != ""
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return ReasonExpired
	case errors.Is(err, ErrInvalidSignature):
		return ReasonInvalidSignature
	default:
		return ReasonMalformed
	}
}

// SetSessionCookie stores token in the httpOnly session cookie.
func SetSessionCookie(c echo.Context, token string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie overwrites the session cookie with an empty value. The
// token itself stays valid until it expires.
func ClearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
