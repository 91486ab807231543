package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booksapi/internal/database"
)

// RouterConfig carries every dependency the router needs, so the full set of
// endpoints can be assembled in tests without a real process around them.
type RouterConfig struct {
	Database     *database.Database
	PairingStore PairingStore
	BookStore    BookStore
	Version      string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	pairingsController := NewPairingsController(cfg.PairingStore)
	booksController := NewBooksController(cfg.BookStore)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the books api!"})
	})

	// Book endpoints
	router.POST("/book/", pairingsController.CreatePairing)
	router.GET("/book/:id", pairingsController.GetBook)
	router.PUT("/book/:id", booksController.UpdateBook)
	router.DELETE("/book/:id", booksController.DeleteBook)
	router.GET("/books", pairingsController.GetAllBooks)
	router.GET("/books/search", pairingsController.SearchBooks)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	return router
}
