package middleware

import (
	"net/http"

	"campuslink/internal/domain/repository"

	"github.com/labstack/echo/v4"
)

type BanMiddleware struct {
	userRepo repository.UserRepository
}

func NewBanMiddleware(userRepo repository.UserRepository) *BanMiddleware {
	return &BanMiddleware{
		userRepo: userRepo,
	}
}

// BanGuard rejects banned users after authentication. Runs on every mutating
// route so a ban takes effect on the next request, not the next login.
func (m *BanMiddleware) BanGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to verify account status")
		}

		if user.Banned() {
			return echo.NewHTTPError(http.StatusForbidden, "Account is banned")
		}

		return next(c)
	}
}
