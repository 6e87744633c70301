package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/user-account-service/internal/config"
	"github.com/iliyamo/user-account-service/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/user-account-service/internal/middleware" // import middleware for JWT auth and user verification
)

// RegisterRoutes registers routes that do not belong to the /api surface:
// the health check used by load balancers and the root probe the single-page
// client fires on load.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
	e.GET("/", handler.Home)
}

// RegisterAPI wires the account API under /api.  The whole group shares the
// Redis token bucket (a pass-through when Redis is absent).  Route-level
// middleware mirrors the flow contracts:
//
//   - login and resetPassword sit behind the VerifyUser gate, which 404s
//     before the handler when the named username does not exist;
//   - updateuser requires a valid bearer token, and the handler takes the
//     target user id from the token claims only.
//
// The OTP trio (generateOTP, verifyOTP, createResetSession) is deliberately
// unauthenticated: possession of the code is the credential.
func RegisterAPI(e *echo.Echo, a *handler.AuthHandler, u *handler.UserHandler, o *handler.OTPHandler,
	users middleware.UserChecker, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {

	api := e.Group("/api", middleware.NewTokenBucket(rlCfg, rdb))

	api.POST("/register", a.Register)
	api.POST("/login", a.Login, middleware.VerifyUser(users))

	api.GET("/user/:username", u.GetUser)
	api.PUT("/updateuser", u.UpdateUser, middleware.JWTAuth(jwtSecret))

	api.GET("/generateOTP", o.GenerateOTP)
	api.GET("/verifyOTP", o.VerifyOTP)
	api.GET("/createResetSession", o.CreateResetSession)
	api.PUT("/resetPassword", o.ResetPassword, middleware.VerifyUser(users))
}
