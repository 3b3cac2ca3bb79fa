package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	deliveryHTTP "github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/delivery/http"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/config"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/database"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/jwt"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/logger"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/pkg/redis"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/repository/cached"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/repository/postgres"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/usecase/auth"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/usecase/customer"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/usecase/inventory"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/usecase/mechanic"
	"github.com/SabrinaLamprecht/Mechanic-Shop-API-Development/internal/usecase/ticket"
)

func main() {
	// =========================================================================
	// Configuration
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Logger
	// =========================================================================

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Output)
	log.Info("Starting Mechanic Shop API server", map[string]interface{}{
		"version": "1.0.0",
	})

	// =========================================================================
	// PostgreSQL
	// =========================================================================

	ctx := context.Background()
	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer database.Close(db)

	log.Info("Connected to PostgreSQL", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Database,
	})

	// =========================================================================
	// Redis
	// =========================================================================

	cache, err := redis.NewClient(redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal("Failed to connect to Redis", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer cache.Close()

	log.Info("Connected to Redis", map[string]interface{}{
		"host": cfg.Redis.Host,
		"port": cfg.Redis.Port,
	})

	// =========================================================================
	// Repositories
	// =========================================================================

	customerRepo := cached.NewCustomerRepository(
		postgres.NewCustomerRepository(db), cache, cfg.Cache.CustomersTTL,
	)
	mechanicRepo := cached.NewMechanicRepository(
		postgres.NewMechanicRepository(db), cache, cfg.Cache.MechanicsTTL,
	)
	partRepo := cached.NewInventoryPartRepository(
		postgres.NewInventoryPartRepository(db), cache, cfg.Cache.InventoryTTL,
	)
	ticketRepo := postgres.NewServiceTicketRepository(db)
	ticketMechanicRepo := postgres.NewTicketMechanicRepository(db)
	ticketPartRepo := postgres.NewTicketPartRepository(db)

	log.Info("Repositories initialized")

	// =========================================================================
	// JWT token service
	// =========================================================================

	tokenService := jwt.NewTokenService(cfg.JWT.SecretKey, cfg.JWT.TokenExpiry)

	log.Info("JWT token service initialized")

	// =========================================================================
	// Use case services
	// =========================================================================

	authService := auth.NewService(customerRepo, mechanicRepo, tokenService, log)
	customerService := customer.NewService(customerRepo, log)
	mechanicService := mechanic.NewService(mechanicRepo, ticketRepo, ticketMechanicRepo, log)
	inventoryService := inventory.NewService(partRepo, log)
	ticketService := ticket.NewService(
		ticketRepo, customerRepo, mechanicRepo,
		ticketMechanicRepo, ticketPartRepo, partRepo, log,
	)

	log.Info("Use case services initialized")

	// =========================================================================
	// HTTP handlers and router
	// =========================================================================

	customerHandler := deliveryHTTP.NewCustomerHandler(customerService, authService, log)
	mechanicHandler := deliveryHTTP.NewMechanicHandler(mechanicService, authService, log)
	inventoryHandler := deliveryHTTP.NewInventoryHandler(inventoryService, log)
	ticketHandler := deliveryHTTP.NewTicketHandler(ticketService, log)

	router := deliveryHTTP.NewRouter(
		customerHandler,
		mechanicHandler,
		inventoryHandler,
		ticketHandler,
		tokenService,
		cache,
		cfg,
		log,
	)

	handler := router.Setup()

	log.Info("HTTP router configured")

	// =========================================================================
	// HTTP server
	// =========================================================================

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("API server listening", map[string]interface{}{
			"address": srv.Addr,
		})
		serverErrors <- srv.ListenAndServe()
	}()

	// =========================================================================
	// Graceful shutdown
	// =========================================================================

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		log.Fatal("Server error", map[string]interface{}{
			"error": err.Error(),
		})

	case sig := <-shutdown:
		log.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})

			if err := srv.Close(); err != nil {
				log.Fatal("Failed to close server", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		log.Info("Server stopped gracefully")
	}
}
