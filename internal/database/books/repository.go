// Package books provides the book-level store operations: update in place
// and delete with pairing cleanup.
package books

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/booksapi/internal/entities"
)

// ErrBookNotFound is returned when the requested book id does not exist.
var ErrBookNotFound = errors.New("book not found")

// Repository handles book update and deletion.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetBookByID retrieves a book row by its id.
func (r *Repository) GetBookByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// UpdateBook overwrites the title and page count of an existing book and
// returns it together with the author of its first pairing (nil when the
// book has no pairing). Unlike creation there is no lookup against other
// books first; the unique index is the only duplicate guard on this path.
func (r *Repository) UpdateBook(id uint, title string, numberOfPages int) (*entities.Book, *entities.Author, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrBookNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	book.Title = title
	book.NumberOfPages = numberOfPages
	if err := r.db.Save(&book).Error; err != nil {
		return nil, nil, err
	}

	var pairing entities.BookAuthor
	err = r.db.Preload("Author").Where("book_id = ?", id).First(&pairing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &book, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return &book, &pairing.Author, nil
}

// DeleteBook removes the book and every pairing referencing it in one
// transaction, pairings first so no dangling link survives. Author rows are
// left in place for reuse by future pairings.
func (r *Repository) DeleteBook(id uint) error {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrBookNotFound
	}
	if err != nil {
		return err
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&entities.BookAuthor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Book{}, id).Error
	})
}
