package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/VitaminP8/bloggery/internal/cache"
	"github.com/VitaminP8/bloggery/internal/comment"
	"github.com/VitaminP8/bloggery/internal/config"
	"github.com/VitaminP8/bloggery/internal/logger"
	"github.com/VitaminP8/bloggery/internal/post"
	"github.com/VitaminP8/bloggery/internal/session"
	"github.com/VitaminP8/bloggery/internal/storage/memory"
	"github.com/VitaminP8/bloggery/internal/storage/postgres"
	"github.com/VitaminP8/bloggery/internal/user"
	"github.com/VitaminP8/bloggery/internal/web"
)

func main() {
	storageType := flag.String("storage", "", "storage backend: memory or postgres (overrides $STORAGE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Error.Fatalf("failed to load config: %v", err)
	}
	if *storageType != "" {
		cfg.Storage = *storageType
	}

	var postStore post.PostStorage
	var commentStore comment.CommentStorage
	var userStore user.UserStorage

	switch cfg.Storage {
	case "postgres":
		if err := postgres.InitDB(cfg); err != nil {
			logger.Error.Fatalf("failed to connect to postgres: %v", err)
		}
		if err := postgres.Migrate(); err != nil {
			logger.Error.Fatalf("failed to migrate database: %v", err)
		}

		logger.Info.Println("using PostgreSQL storage")
		userStore = postgres.NewUserPostgresStorage()
		postStore = postgres.NewPostPostgresStorage()
		commentStore = postgres.NewCommentPostgresStorage()

	case "memory":
		logger.Info.Println("using in-memory storage")
		users := memory.NewUserMemoryStorage()
		posts := memory.NewPostMemoryStorage(users)
		userStore = users
		postStore = posts
		commentStore = memory.NewCommentMemoryStorage(posts)

	default:
		logger.Error.Fatalf("unknown storage backend: %s", cfg.Storage)
	}

	var pageCache cache.Cache
	switch cfg.CacheBackend {
	case "redis":
		pageCache, err = cache.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		if err != nil {
			logger.Error.Fatalf("failed to connect to redis: %v", err)
		}
		logger.Info.Println("using redis page cache")
	case "memory":
		pageCache = cache.NewMemoryCache(cfg.CacheTTL)
		logger.Info.Println("using in-memory page cache")
	default:
		logger.Error.Fatalf("unknown cache backend: %s", cfg.CacheBackend)
	}

	renderer, err := web.NewHTMLRenderer(cfg.TemplatesGlob)
	if err != nil {
		logger.Error.Fatalf("failed to load templates: %v", err)
	}

	sessions := session.NewManager(cfg.SessionSecret, 0)
	app := web.NewApp(cfg, userStore, postStore, commentStore, pageCache, sessions, renderer)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: app.Router(),
	}

	go func() {
		logger.Info.Printf("server listening on %s", cfg.Addr)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info.Println("shutting down...")

	if err := server.Shutdown(context.Background()); err != nil {
		logger.Error.Fatalf("failed to shut down server: %v", err)
	}

	if cfg.Storage == "postgres" {
		if err := postgres.CloseDB(); err != nil {
			logger.Error.Printf("failed to close database: %v", err)
		}
	}

	logger.Info.Println("server stopped")
}
