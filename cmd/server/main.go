package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bpapp "github.com/erp/addrconfirm/internal/application/businesspartner"
	countryapp "github.com/erp/addrconfirm/internal/application/country"
	"github.com/erp/addrconfirm/internal/infrastructure/config"
	"github.com/erp/addrconfirm/internal/infrastructure/erp"
	"github.com/erp/addrconfirm/internal/infrastructure/event"
	"github.com/erp/addrconfirm/internal/infrastructure/logger"
	"github.com/erp/addrconfirm/internal/infrastructure/mail"
	"github.com/erp/addrconfirm/internal/infrastructure/security"
	"github.com/erp/addrconfirm/internal/interfaces/http/handler"
	"github.com/erp/addrconfirm/internal/interfaces/http/middleware"
	"github.com/erp/addrconfirm/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting address confirmation service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Token crypto
	keys, err := security.LoadKeyPair(cfg.Security.PrivateKeyPath)
	if err != nil {
		log.Fatal("Failed to load token key pair", zap.Error(err))
	}
	cipher := security.NewTokenCipher(keys)

	// ERP access through the service credential
	tokens := security.NewClientCredentialsTokenSource(
		cfg.ERP.TokenURL, cfg.ERP.ClientID, cfg.ERP.ClientSecret, nil)
	erpClient := erp.NewClient(cfg.ERP, tokens, log.Named("erp"))
	partnerRepo := erp.NewBusinessPartnerRepository(erpClient)
	countryRepo := erp.NewCountryRepository(erpClient)

	notifier := mail.NewSMTPNotifier(cfg.Mail, log.Named("mail"))

	// Application services
	confirmationService := bpapp.NewConfirmationService(
		partnerRepo, notifier, cipher, cfg.Confirmation, log.Named("confirmation"))
	countryService := countryapp.NewService(countryRepo)

	// HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.CORS(cfg.HTTP))
	engine.Use(middleware.Secure())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "time": time.Now().Format(time.RFC3339)})
	})

	router.NewRouter(engine).
		Register(handler.NewAddressHandler(confirmationService)).
		Register(handler.NewCountryHandler(countryService, confirmationService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Event consumer
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()

	consumerDone := make(chan struct{})
	if cfg.Event.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Event.Addr(),
			Password: cfg.Event.Password,
			DB:       cfg.Event.DB,
		})
		defer redisClient.Close()

		consumer := event.NewConsumer(redisClient, cfg.Event,
			func(ctx context.Context, e event.BusinessPartnerEvent) error {
				return confirmationService.ConfirmAddress(ctx, e.BusinessPartnerKey)
			},
			log.Named("events"))

		go func() {
			defer close(consumerDone)
			if err := consumer.Run(consumerCtx); err != nil {
				log.Error("Event consumer terminated", zap.Error(err))
			}
		}()
	} else {
		close(consumerDone)
		log.Warn("Event consumer disabled, address changes will not be picked up")
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	stopConsumer()
	<-consumerDone

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
