package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/mateen/socialnet/internal/config"
	"github.com/mateen/socialnet/internal/database"
	"github.com/mateen/socialnet/internal/handler"
	"github.com/mateen/socialnet/internal/middleware"
	"github.com/mateen/socialnet/internal/queue"
	"github.com/mateen/socialnet/internal/repository"
	"github.com/mateen/socialnet/internal/router"
	queue_publisher "github.com/mateen/socialnet/internal/service"
	"github.com/mateen/socialnet/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, rate limiting disabled")
	}
	limiter := middleware.NewRateLimiter(config.LoadRateLimitConfig(), rdb)

	users := repository.NewUserRepo(db)
	friends := repository.NewFriendRepo(db)
	rooms := repository.NewRoomRepo(db)
	members := repository.NewMemberRepo(db)
	stories := repository.NewStoryRepo(db)
	messages := repository.NewMessageRepo(db)
	files := &storage.FileStore{BaseDir: cfg.UploadDir}

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users),
		Users:    handler.NewUserHandler(users, cfg.BcryptCost),
		Friends:  handler.NewFriendHandler(friends, queue_publisher.NewPublisher()),
		Rooms:    handler.NewRoomHandler(rooms, members, users, files),
		Stories:  handler.NewStoryHandler(stories, files),
		Messages: handler.NewMessageHandler(rooms, members, messages),
	}

	// Background consumer: appends friend.accepted events to the
	// activity log. Runs its own reconnect loop for the process lifetime.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	router.Register(e, h, cfg.JWTSecret, users, limiter)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
