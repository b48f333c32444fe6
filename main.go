package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	controller "go-order-panel/controllers"
	"go-order-panel/helpers"
	"go-order-panel/hostbridge"
	"go-order-panel/middleware"
	"go-order-panel/panel"
	"go-order-panel/routes"
)

func main() {
	found, err := helpers.LoadEnv(".env")
	if err != nil {
		log.Fatalf("Error loading .env file: %v", err)
	}

	cfg, err := helpers.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := helpers.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logger.Sync()

	if !found {
		logger.Info(".env file does not exist in the current working directory")
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialCtx, cancelDial := context.WithTimeout(ctx, cfg.HostRequestTimeout)
	bridge, err := hostbridge.Dial(dialCtx, cfg.HostBridgeURL, hostbridge.Options{
		Timeout: cfg.HostRequestTimeout,
		Logger:  logger.Named("hostbridge"),
	})
	cancelDial()
	if err != nil {
		logger.Fatal("could not reach host", zap.String("url", cfg.HostBridgeURL), zap.Error(err))
	}
	defer bridge.Close()

	session := panel.NewSession(bridge,
		panel.WithLogger(logger.Named("panel")),
		panel.WithNotificationTTL(cfg.NotificationTTL),
	)
	dispatcher := panel.NewDispatcher(logger.Named("dispatcher"))
	session.Register(dispatcher)
	go func() {
		if err := dispatcher.Run(ctx, bridge.Inbox()); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("dispatcher stopped", zap.Error(err))
		}
	}()

	hub := controller.NewHub(logger.Named("hub"), cfg.AllowedOrigins)
	pc := controller.NewPanelController(session, dispatcher, hub, logger.Named("http"), cfg.HostRequestTimeout)

	router := gin.New()
	router.Use(middleware.RequestLogger(logger.Named("http")))
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Page not found"})
	})

	routes.Register(router, session, pc, hub, cfg.HostEventToken)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		logger.Info("panel listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case <-bridge.Done():
		logger.Error("host connection lost, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
}
