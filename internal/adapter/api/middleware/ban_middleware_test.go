package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"campuslink/internal/domain/entity"
	"campuslink/pkg/errors"
)

type stubUserRepo struct {
	users map[string]*entity.User
}

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func banGuardContext(uid string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/messages", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid != "" {
		c.Set("uid", uid)
	}
	return c, rec
}

func TestBanGuardRejectsBannedUser(t *testing.T) {
	guard := NewBanMiddleware(&stubUserRepo{users: map[string]*entity.User{
		"mallory": {ID: "mallory", Status: "banned"},
	}})

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	c, _ := banGuardContext("mallory")

	err := guard.BanGuard(next)(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestBanGuardPassesActiveUser(t *testing.T) {
	guard := NewBanMiddleware(&stubUserRepo{users: map[string]*entity.User{
		"alice": {ID: "alice", Status: "active"},
	}})

	called := false
	next := func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}
	c, rec := banGuardContext("alice")

	assert.NoError(t, guard.BanGuard(next)(c))
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBanGuardRequiresAuthentication(t *testing.T) {
	guard := NewBanMiddleware(&stubUserRepo{})

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	c, _ := banGuardContext("")

	err := guard.BanGuard(next)(c)

	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}
