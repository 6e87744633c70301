package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// UserChecker is the lookup the VerifyUser gate needs; satisfied by
// *repository.UserRepo.
type UserChecker interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// VerifyUser returns a middleware that confirms the username named by the
// request exists before the handler runs.  GET requests carry the username
// in the query string; other methods carry it in the JSON body, which is
// re-buffered so the handler can still bind it.  Unknown users stop the
// request with 404.
func VerifyUser(users UserChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var username string
			if c.Request().Method == http.MethodGet {
				username = c.QueryParam("username")
			} else {
				body, err := io.ReadAll(c.Request().Body)
				if err != nil {
					return c.JSON(http.StatusInternalServerError, echo.Map{"error": "authentication error"})
				}
				// Restore the body for the handler's own bind.
				c.Request().Body = io.NopCloser(bytes.NewReader(body))
				var peek struct {
					Username string `json:"username"`
				}
				_ = json.Unmarshal(body, &peek)
				username = peek.Username
			}
			if username == "" {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "can't find user"})
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()

			exists, err := users.UsernameExists(ctx, username)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "authentication error"})
			}
			if !exists {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "can't find user"})
			}
			return next(c)
		}
	}
}
