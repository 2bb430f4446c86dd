package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"inventory/cmd"
	"inventory/internal/archive"
	"inventory/internal/core/container"
	"inventory/internal/core/logger"
	"inventory/internal/core/routes"
	"inventory/internal/middleware"
	"inventory/internal/seed"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	// Execute migration CMD
	cmd.Execute(ctx)
}

func main() {
	zapLogger := logger.NewLogger()
	defer zapLogger.Sync()

	appContainer := container.NewAppContainer(zapLogger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The archive is optional: without DATABASE_URL the store is purely
	// in-memory and starts empty.
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		db, err := archive.Open(dbURL)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		arc := archive.New(db, appContainer.Guard, appContainer.Assets, appContainer.Locations, appContainer.Parts, appContainer.Stocks, zapLogger)
		if err := arc.Restore(); err != nil {
			log.Fatalf("Error restoring archive snapshot: %v", err)
		}
		go arc.Run(ctx, 5*time.Minute)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seed.Load(appContainer); err != nil {
			log.Fatalf("Error seeding demo data: %v", err)
		}
	}

	go appContainer.LoginLimiter.SweepLoop(ctx, time.Minute)

	router := gin.Default()
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.TimeoutMiddleware(zapLogger, 30*time.Second))

	routes.RegisterUtilityRoutes(router)
	routes.RegisterPublicRoutes(router, appContainer)
	routes.RegisterProtectedRoutes(router, appContainer)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
