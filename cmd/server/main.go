package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VitaminP8/yatube/internal/comment"
	"github.com/VitaminP8/yatube/internal/config"
	"github.com/VitaminP8/yatube/internal/feed"
	"github.com/VitaminP8/yatube/internal/feedcache"
	"github.com/VitaminP8/yatube/internal/follow"
	"github.com/VitaminP8/yatube/internal/group"
	"github.com/VitaminP8/yatube/internal/media"
	"github.com/VitaminP8/yatube/internal/post"
	"github.com/VitaminP8/yatube/internal/seed"
	"github.com/VitaminP8/yatube/internal/storage/memory"
	"github.com/VitaminP8/yatube/internal/storage/postgres"
	"github.com/VitaminP8/yatube/internal/user"
	"github.com/VitaminP8/yatube/web"
	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/handlers"
)

func main() {
	storageType := flag.String("storage", "memory", "Тип хранилища: memory или postgres")
	seedFile := flag.String("seed", "", "YAML-файл с группами (по умолчанию SEED_FILE)")
	flag.Parse()

	// загружаем .env из нашего config.go
	config.LoadEnv()
	cfg := config.Load()

	var postStore post.PostStorage
	var commentStore comment.CommentStorage
	var userStore user.UserStorage
	var groupStore group.GroupStorage
	var followStore follow.FollowStorage

	switch *storageType {
	case "postgres":
		if err := postgres.InitDB(config.LoadDB()); err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		if err := postgres.Migrate(); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}

		log.Println("Используется PostgreSQL хранилище")
		postStore = postgres.NewPostPostgresStorage()
		commentStore = postgres.NewCommentPostgresStorage()
		userStore = postgres.NewUserPostgresStorage()
		groupStore = postgres.NewGroupPostgresStorage()
		followStore = postgres.NewFollowPostgresStorage()

	case "memory":
		log.Println("Используется in-memory хранилище")
		store := memory.New()
		postStore = store.Posts
		commentStore = store.Comments
		userStore = store.Users
		groupStore = store.Groups
		followStore = store.Follows

	default:
		log.Fatalf("неизвестный тип хранилища: %s", *storageType)
	}

	if *seedFile == "" {
		*seedFile = cfg.SeedFile
	}
	if *seedFile != "" {
		data, err := seed.Load(*seedFile)
		if err != nil {
			log.Fatalf("failed to load seed: %v", err)
		}
		if _, err := seed.Apply(groupStore, data); err != nil {
			log.Fatalf("failed to apply seed: %v", err)
		}
	} else if *storageType == "memory" {
		log.Println("Seed file is not set, the in-memory store starts without groups")
	}

	if cfg.JWTSecret == "" {
		log.Println("JWT_SECRET is not set, bearer tokens are disabled")
	}

	sessions := scs.New()
	sessions.Lifetime = cfg.SessionLifetime
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode

	h := &web.Handler{
		PostStore:    postStore,
		CommentStore: commentStore,
		UserStore:    userStore,
		GroupStore:   groupStore,
		FollowStore:  followStore,
		Feed:         feed.NewService(postStore, cfg.PageSize),
		Cache:        feedcache.New(feedcache.DefaultPrefix, cfg.CacheSize, cfg.CacheTTL),
		Media:        media.NewStorage(cfg.MediaRoot),
		Sessions:     sessions,
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     cfg.TokenTTL,
	}

	// HTTP сервер
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handlers.CombinedLoggingHandler(os.Stdout, h.Routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ListenAndServe блокирует до Shutdown, поэтому запускаем в goroutine
	go func() {
		log.Printf("Сервер запущен на %s", cfg.Addr)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Ошибка сервера: %v", err)
		}
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Завершение...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Ошибка при завершении сервера: %v", err)
	}

	if *storageType == "postgres" {
		if err := postgres.CloseDB(); err != nil {
			log.Printf("failed to close database: %v", err)
		}
	}

	log.Println("Сервер остановлен корректно")
}
