package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"snapwall/internal/config"
	"snapwall/internal/database"
	"snapwall/internal/middleware"
	"snapwall/internal/modules/auth"
	"snapwall/internal/modules/mailin"
	"snapwall/internal/modules/upload"
	"snapwall/internal/notify"
	"snapwall/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(&upload.Upload{}); err != nil {
		log.Fatal(err)
	}

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal(err)
	}

	hub := notify.NewHub()
	fanout := notify.NewFanout(notify.NewWebhookSink(cfg.WebhookURL, cfg.WebhookTimeout), hub)

	uploadRepo := upload.NewRepository(db)
	uploadService := upload.NewService(uploadRepo, store, fanout)
	uploadHandler := upload.NewHandler(uploadService)

	identity := auth.NewClient(cfg.OAuthClientID, cfg.OAuthClientSecret,
		cfg.OAuthBaseURL, cfg.IdentityAPIURL, cfg.SelfBaseURL)
	states := auth.NewStateStore(cfg.StateTTL)
	authHandler := auth.NewHandler(identity, states, cfg.OAuthRedirectURL)

	mailService := mailin.NewService(uploadService, store)
	mailHandler := mailin.NewHandler(mailService)

	r := gin.Default()
	r.Use(middleware.CORS())

	auth.RegisterPublicRoutes(r, authHandler)
	upload.RegisterPublicRoutes(r, uploadHandler)
	r.GET("/ws", hub.HandleWebSocket)
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.Static("/attachments", store.Root())

	protected := r.Group("/")
	protected.Use(middleware.Authenticate(identity))
	{
		auth.RegisterProtectedRoutes(protected, authHandler)
		upload.RegisterProtectedRoutes(protected, uploadHandler)
	}

	internal := r.Group("/")
	internal.Use(middleware.InternalTokenAuth(cfg.InboundMailToken))
	{
		mailin.RegisterRoutes(internal, mailHandler)
	}

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Println("shutdown:", err)
	}
}
