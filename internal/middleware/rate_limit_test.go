package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func newLimitedServer(r rate.Limit, burst int) *echo.Echo {
	e := echo.New()
	rl := NewRateLimiter(r, burst)
	e.POST("/nelson-chat", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, rl.Middleware())
	return e
}

func doRequest(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/nelson-chat", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	e := newLimitedServer(1, 3)

	for i := 0; i < 3; i++ {
		rec := doRequest(e, "10.0.0.1")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i)
	}
}

func TestRateLimiter_RejectsBeyondBurst(t *testing.T) {
	e := newLimitedServer(1, 2)

	doRequest(e, "10.0.0.2")
	doRequest(e, "10.0.0.2")
	rec := doRequest(e, "10.0.0.2")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimiter_IsolatesClients(t *testing.T) {
	e := newLimitedServer(1, 1)

	doRequest(e, "10.0.0.3")
	rec := doRequest(e, "10.0.0.4")

	assert.Equal(t, http.StatusOK, rec.Code, "one client's burst must not starve another")
}
