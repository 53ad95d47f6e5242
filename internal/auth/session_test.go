package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionServer(t *testing.T, tokens *TokenService, rejected *[]string) (*echo.Echo, *int) {
	t.Helper()
	calls := 0
	e := echo.New()
	e.GET("/whoami", func(c echo.Context) error {
		calls++
		id, ok := CurrentIdentity(c)
		if !ok {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.JSON(http.StatusOK, map[string]string{"id": id.UserID, "email": id.Email})
	}, Session(tokens, OnReject(func(reason string) { *rejected = append(*rejected, reason) })))
	return e, &calls
}

func TestSession(t *testing.T) {
	tokens, clock := newTestTokens("secret", time.Hour)
	valid, err := tokens.Issue("user-1", "alice@example.com")
	require.NoError(t, err)
	otherSecret, err := NewTokenService("other", time.Hour, WithClock(clock.Now)).Issue("user-1", "alice@example.com")
	require.NoError(t, err)

	tests := []struct {
		name       string
		cookie     *http.Cookie
		advance    time.Duration
		wantStatus int
		wantReason string
		wantID     string
	}{
		{name: "valid cookie", cookie: &http.Cookie{Name: CookieName, Value: valid}, wantStatus: http.StatusOK, wantID: "user-1"},
		{name: "no cookie", wantStatus: http.StatusUnauthorized, wantReason: ReasonMissing},
		{name: "empty cookie after logout", cookie: &http.Cookie{Name: CookieName, Value: ""}, wantStatus: http.StatusUnauthorized, wantReason: ReasonMissing},
		{name: "other cookie only", cookie: &http.Cookie{Name: "theme", Value: "dark"}, wantStatus: http.StatusUnauthorized, wantReason: ReasonMissing},
		{name: "garbage token", cookie: &http.Cookie{Name: CookieName, Value: "garbage"}, wantStatus: http.StatusForbidden, wantReason: ReasonMalformed},
		{name: "foreign signature", cookie: &http.Cookie{Name: CookieName, Value: otherSecret}, wantStatus: http.StatusForbidden, wantReason: ReasonInvalidSignature},
		{name: "expired token", cookie: &http.Cookie{Name: CookieName, Value: valid}, advance: 2 * time.Hour, wantStatus: http.StatusForbidden, wantReason: ReasonExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := clock.now
			clock.Advance(tt.advance)
			defer func() { clock.now = start }()

			var rejected []string
			e, calls := newSessionServer(t, tokens, &rejected)

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, 1, *calls)
				assert.Equal(t, tt.wantID, body["id"])
				assert.Equal(t, "alice@example.com", body["email"])
				assert.Empty(t, rejected)
				return
			}
			assert.Equal(t, 0, *calls, "handler must not run for rejected requests")
			assert.NotEmpty(t, body["error"])
			assert.Equal(t, []string{tt.wantReason}, rejected)
		})
	}
}

func TestSessionCookies(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/login", nil), rec)
	SetSessionCookie(c, "signed-token", true)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, "signed-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/logout", nil), rec)
	ClearSessionCookie(c, false)

	cookies = rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, "", cookies[0].Value)
}
