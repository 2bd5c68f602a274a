package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/quizforge/quizforge-go/internal/config"
	"github.com/quizforge/quizforge-go/internal/database"
	"github.com/quizforge/quizforge-go/internal/handler"
	"github.com/quizforge/quizforge-go/internal/queue"
	"github.com/quizforge/quizforge-go/internal/repository"
	"github.com/quizforge/quizforge-go/internal/router"
	"github.com/quizforge/quizforge-go/internal/service"
)

func main() {
	// Load .env when present; in containers the variables come from the
	// environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	// The user store backend is selectable; the quiz store is the
	// in-memory implementation until the nested aggregate gets a schema.
	var users repository.UserStore
	switch cfg.StoreDriver {
	case "mysql":
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Fatalf("mysql connect failed: %v", err)
		}
		users = repository.NewMySQLUserStore(db, cfg.BcryptCost)
	default:
		users = repository.NewMemoryUserStore(cfg.BcryptCost)
	}
	quizzes := repository.NewMemoryQuizStore()

	// Redis is optional: a nil client disables the response cache.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, response cache disabled")
	}
	cacheCfg := config.LoadCacheConfig()

	// The submission-event consumer runs for the lifetime of the process
	// and reconnects on its own; a missing broker must not block startup.
	go func() {
		if err := queue.StartResultConsumer(); err != nil {
			log.Printf("result consumer stopped: %v", err)
		}
	}()

	auth := service.NewAuthService(users, cfg)
	ai := service.NewAIGenerator(cfg.GroqAPIKey, cfg.GroqAPIURL)

	e := echo.New()
	e.Validator = handler.NewValidator()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(auth), cfg.AccessSecret)
	router.RegisterQuiz(e, handler.NewQuizHandler(quizzes, ai), cfg.AccessSecret, rdb, cacheCfg)
	router.RegisterUsers(e, handler.NewUserHandler(users), cfg.AccessSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, store=%s)", addr, cfg.Env, cfg.StoreDriver)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
