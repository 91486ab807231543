package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booksapi/internal/database/pairings"
	"github.com/mrlokans/booksapi/internal/entities"
)

// PairingStore defines the pairing operations used by the controller.
type PairingStore interface {
	AddPairing(book *entities.Book, author *entities.Author) (*pairings.PairingView, error)
	GetByBookID(bookID uint) (*pairings.PairingView, error)
	GetAll() ([]pairings.PairingView, error)
	SearchByTitle(keyword string) ([]pairings.PairingView, error)
}

type PairingsController struct {
	store PairingStore
}

func NewPairingsController(store PairingStore) *PairingsController {
	return &PairingsController{store: store}
}

type pairingRequest struct {
	Book struct {
		Title         string `json:"title" binding:"required"`
		NumberOfPages int    `json:"number_of_pages"`
	} `json:"book" binding:"required"`
	Author struct {
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
	} `json:"author" binding:"required"`
}

// CreatePairing creates a book together with its author pairing
// POST /book/
func (pc *PairingsController) CreatePairing(c *gin.Context) {
	var req pairingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "book title and author names are required")
		return
	}

	book := entities.Book{
		Title:         req.Book.Title,
		NumberOfPages: req.Book.NumberOfPages,
	}
	author := entities.Author{
		FirstName: req.Author.FirstName,
		LastName:  req.Author.LastName,
	}

	view, err := pc.store.AddPairing(&book, &author)
	if errors.Is(err, pairings.ErrDuplicateBook) || errors.Is(err, pairings.ErrDuplicatePairing) {
		respondBadRequest(c, err.Error())
		return
	}
	if err != nil {
		respondInternalError(c, err, "add pairing")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "New book and author added",
		"book":    view.Book,
		"author":  view.Author,
	})
}

// GetBook returns the combined view for a single book
// GET /book/:id
func (pc *PairingsController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := pc.store.GetByBookID(id)
	if errors.Is(err, pairings.ErrPairingNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "get book")
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetAllBooks returns the combined view for every pairing
// GET /books
func (pc *PairingsController) GetAllBooks(c *gin.Context) {
	views, err := pc.store.GetAll()
	if err != nil {
		respondInternalError(c, err, "get all books")
		return
	}
	c.JSON(http.StatusOK, views)
}

// SearchBooks returns every pairing whose book title contains the keyword
// GET /books/search?title=keyword
func (pc *PairingsController) SearchBooks(c *gin.Context) {
	keyword := c.Query("title")

	views, err := pc.store.SearchByTitle(keyword)
	if err != nil {
		respondInternalError(c, err, "search books")
		return
	}
	c.JSON(http.StatusOK, views)
}
