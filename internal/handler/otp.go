package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/config"
	"github.com/iliyamo/user-account-service/internal/queue"
	"github.com/iliyamo/user-account-service/internal/repository"
	"github.com/iliyamo/user-account-service/internal/session"
	"github.com/iliyamo/user-account-service/internal/utils"
)

// statusSessionExpired is the non-standard code the reset flow uses when the
// reset window is not open (the "login time-out" convention).
const statusSessionExpired = 440

// OTPHandler drives the password-reset flow: generate a code, verify it,
// probe the reset window, and finally reset the password.  The sequencing
// lives in session.Store; this handler only translates it to HTTP.
type OTPHandler struct {
	Cfg      config.Config
	Users    UserStore
	Sessions *session.Store
	Publish  func(ctx context.Context, ev queue.AccountEvent) error
}

func NewOTPHandler(cfg config.Config, users UserStore, sessions *session.Store, publish func(context.Context, queue.AccountEvent) error) *OTPHandler {
	return &OTPHandler{Cfg: cfg, Users: users, Sessions: sessions, Publish: publish}
}

type resetReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GenerateOTP mints a fresh numeric code, stores it as the single pending
// one and returns it in the response body.  In-band delivery is a known
// simplification of this service; the generate/verify/consume contract does
// not depend on how the code reaches the user.
func (h *OTPHandler) GenerateOTP(c echo.Context) error {
	code, err := utils.NewOTP(h.Cfg.OTPDigits)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generate OTP failed"})
	}
	h.Sessions.PutOTP(code)
	return c.JSON(http.StatusCreated, echo.Map{"code": code})
}

// VerifyOTP checks the submitted code against the pending one.  A match
// consumes the code and opens the reset window; anything else, including a
// second submission of an already-consumed code, is rejected.
func (h *OTPHandler) VerifyOTP(c echo.Context) error {
	code := c.QueryParam("code")
	if !h.Sessions.VerifyOTP(code) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid OTP"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"msg": "verified successfully"})
}

// CreateResetSession reports whether the reset window is open.  It is a
// read-only probe for the front end's redirect logic and does not consume
// the window.
func (h *OTPHandler) CreateResetSession(c echo.Context) error {
	if !h.Sessions.ResetOpen() {
		return c.JSON(statusSessionExpired, echo.Map{"error": "session expired"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"flag": true})
}

// ResetPassword replaces a user's password while the reset window is open,
// then closes the window: one verified OTP authorises exactly one reset.
func (h *OTPHandler) ResetPassword(c echo.Context) error {
	if !h.Sessions.ResetOpen() {
		return c.JSON(statusSessionExpired, echo.Map{"error": "session expired"})
	}

	var req resetReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "username not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unable to hash password"})
	}
	if err := h.Users.UpdatePassword(ctx, u.Username, hash); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "username not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unable to reset password"})
	}

	h.Sessions.CloseReset()

	if h.Publish != nil {
		_ = h.Publish(ctx, queue.AccountEvent{
			Type:       queue.EventPasswordReset,
			UserID:     u.ID,
			Username:   u.Username,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{"msg": "record updated"})
}
