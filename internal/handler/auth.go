package handler

import (
	"context"  // provides context with cancellation for DB calls
	"net/http" // HTTP status codes and primitives
	"strings"  // string manipulation utilities
	"sync"     // parallel existence lookups during registration
	"time"     // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/user-account-service/internal/config" // app configuration
	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/queue"
	"github.com/iliyamo/user-account-service/internal/repository"
	"github.com/iliyamo/user-account-service/internal/utils" // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for the register and login endpoints.
// Publish is optional; when set, successful registrations emit an account
// event on the message queue.  Failures to publish never fail the request.
type AuthHandler struct {
	Cfg     config.Config
	Users   UserStore
	Publish func(ctx context.Context, ev queue.AccountEvent) error
}

func NewAuthHandler(cfg config.Config, users UserStore, publish func(context.Context, queue.AccountEvent) error) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Publish: publish}
}

// ----- DTOs -----

type registerReq struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	Profile   string `json:"profile"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Mobile    string `json:"mobile"`
	Address   string `json:"address"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register: create a user with a hashed password.
//
// Username and email are checked in parallel so the caller learns which of
// the two is taken, but the INSERT itself is what enforces uniqueness: two
// concurrent registrations racing past the checks still cannot both commit,
// the users table rejects the second via its unique keys.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/email required"})
	}
	if req.Password == "" {
		if h.Cfg.CompatSilentRegister {
			// Legacy behavior: a password-less registration writes nothing
			// and reports nothing.  201 with no record is the closest HTTP
			// rendering of the original's silent drop.
			return c.JSON(http.StatusCreated, echo.Map{"msg": "user registered successfully"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var (
		wg                     sync.WaitGroup
		userTaken, emailTaken  bool
		userLookup, mailLookup error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		userTaken, userLookup = h.Users.UsernameExists(ctx, req.Username)
	}()
	go func() {
		defer wg.Done()
		emailTaken, mailLookup = h.Users.EmailExists(ctx, req.Email)
	}()
	wg.Wait()
	if userLookup != nil || mailLookup != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if userTaken {
		return c.JSON(http.StatusConflict, echo.Map{"error": "please use a unique username"})
	}
	if emailTaken {
		return c.JSON(http.StatusConflict, echo.Map{"error": "please use a unique email"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unable to hash password"})
	}

	uid, err := h.Users.Create(ctx, model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Mobile:       req.Mobile,
		Address:      req.Address,
		Profile:      req.Profile,
	})
	switch err {
	case nil:
	case repository.ErrUsernameExists:
		return c.JSON(http.StatusConflict, echo.Map{"error": "please use a unique username"})
	case repository.ErrEmailExists:
		return c.JSON(http.StatusConflict, echo.Map{"error": "please use a unique email"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	if h.Publish != nil {
		_ = h.Publish(ctx, queue.AccountEvent{
			Type:       queue.EventUserRegistered,
			UserID:     uid,
			Username:   req.Username,
			Email:      req.Email,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{"msg": "user registered successfully"})
}

// Login: verify the password and return a signed access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username required"})
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
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password does not match"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Username, h.Cfg.AccessTTLHours)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"msg":      "login successful",
		"username": u.Username,
		"token":    access.Token,
	})
}
