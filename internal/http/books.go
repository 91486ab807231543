package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/booksapi/internal/database/books"
	"github.com/mrlokans/booksapi/internal/database/pairings"
	"github.com/mrlokans/booksapi/internal/entities"
)

// BookStore defines the book-level operations used by the controller.
type BookStore interface {
	UpdateBook(id uint, title string, numberOfPages int) (*entities.Book, *entities.Author, error)
	DeleteBook(id uint) error
}

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

type bookUpdateRequest struct {
	Title         string `json:"title" binding:"required"`
	NumberOfPages int    `json:"number_of_pages"`
}

// updateResponse mirrors the combined view but with a nullable author, for
// books that have no pairing.
type updateResponse struct {
	Book   pairings.BookView    `json:"book"`
	Author *pairings.AuthorView `json:"author"`
}

// UpdateBook overwrites a book's title and page count
// PUT /book/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bookUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "title is required")
		return
	}

	book, author, err := bc.store.UpdateBook(id, req.Title, req.NumberOfPages)
	if errors.Is(err, books.ErrBookNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "update book")
		return
	}

	resp := updateResponse{
		Book: pairings.BookView{
			Title:         book.Title,
			NumberOfPages: book.NumberOfPages,
		},
	}
	if author != nil {
		resp.Author = &pairings.AuthorView{
			FirstName: author.FirstName,
			LastName:  author.LastName,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteBook removes a book and its pairings
// DELETE /book/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := bc.store.DeleteBook(id)
	if errors.Is(err, books.ErrBookNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "delete book")
		return
	}

	respondSuccess(c, fmt.Sprintf("Book %d deleted successfully", id))
}
