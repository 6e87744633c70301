package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/repository"
)

// UserHandler serves profile reads and updates.
type UserHandler struct {
	Users UserStore
}

func NewUserHandler(users UserStore) *UserHandler { return &UserHandler{Users: users} }

// userData is the public view of a user record.  There is deliberately no
// password field here: the hash can never reach a response body.
type userData struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Mobile    string `json:"mobile,omitempty"`
	Address   string `json:"address,omitempty"`
	Profile   string `json:"profile,omitempty"`
}

func toUserData(u model.User) userData {
	return userData{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Mobile:    u.Mobile,
		Address:   u.Address,
		Profile:   u.Profile,
	}
}

type updateReq struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Mobile    *string `json:"mobile"`
	Address   *string `json:"address"`
	Profile   *string `json:"profile"`
}

// GetUser returns the record for a username with the password stripped.
func (h *UserHandler) GetUser(c echo.Context) error {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid username"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, username)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toUserData(u))
}

// UpdateUser merges the supplied profile fields into the caller's own
// record.  The target user id comes from the verified token set by the JWT
// middleware, never from the request body, so cross-user updates are not
// expressible.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	uid, ok := c.Get("user_id").(uint64)
	if !ok || uid == 0 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not found"})
	}

	var req updateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	err := h.Users.UpdateProfile(ctx, uid, repository.ProfileUpdate{
		Email:     normalizeEmail(req.Email),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Mobile:    req.Mobile,
		Address:   req.Address,
		Profile:   req.Profile,
	})
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "please use a unique email"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"msg": "record updated"})
}

func normalizeEmail(e *string) *string {
	if e == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*e))
	return &v
}
