package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"                     // .env loader for local development
	"github.com/labstack/echo/v4"                  // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware" // Echo's built-in middleware (CORS, body limit, recover)

	"github.com/iliyamo/user-account-service/internal/config" // Internal config loader
	"github.com/iliyamo/user-account-service/internal/database"
	"github.com/iliyamo/user-account-service/internal/handler"
	"github.com/iliyamo/user-account-service/internal/queue"
	"github.com/iliyamo/user-account-service/internal/repository"
	"github.com/iliyamo/user-account-service/internal/router" // Internal router setup
	queue_publisher "github.com/iliyamo/user-account-service/internal/service"
	"github.com/iliyamo/user-account-service/internal/session"
)

func main() {
	_ = godotenv.Load() // best-effort .env load; real env vars win

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	sessions := session.New()

	a := handler.NewAuthHandler(cfg, users, queue_publisher.PublishAccountEvent)
	u := handler.NewUserHandler(users)
	o := handler.NewOTPHandler(cfg, users, sessions, queue_publisher.PublishAccountEvent)

	e := echo.New() // Create Echo instance
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.BodyLimit("10M")) // profile images may arrive inline base64-encoded

	router.RegisterRoutes(e)
	router.RegisterAPI(e, a, u, o, users, cfg.JWTSecret, config.LoadRateLimitConfig(), config.NewRedisClient())

	// Background audit-log consumer; reconnects on its own.
	go func() {
		if err := queue.StartAccountConsumer(); err != nil {
			log.Printf("account consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
