package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booksapi/internal/config"
	"github.com/mrlokans/booksapi/internal/database"
	"github.com/mrlokans/booksapi/internal/database/books"
	"github.com/mrlokans/booksapi/internal/database/pairings"
	http_controllers "github.com/mrlokans/booksapi/internal/http"
)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts it down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the database, repositories and router together and serves HTTP.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Books API v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	pairingRepo := pairings.NewRepository(db.DB)
	bookRepo := books.NewRepository(db.DB)

	routerCfg := http_controllers.RouterConfig{
		Database:     db,
		PairingStore: pairingRepo,
		BookStore:    bookRepo,
		Version:      version,
	}

	router := http_controllers.NewRouter(routerCfg)

	Serve(router, cfg)
}
