// Package pairings holds the transactional logic linking books to authors
// and the read side producing combined book+author views.
//
// Uniqueness of books (title + page count), authors (first + last name) and
// pairings (book + author) is pre-checked inside the transaction for precise
// error reporting, but the composite unique indexes remain the authoritative
// guard: a constraint violation from a concurrent writer is mapped to the
// same sentinel errors.
package pairings

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/booksapi/internal/entities"
)

var (
	// ErrDuplicateBook is returned when a book with the same title and
	// page count already exists.
	ErrDuplicateBook = errors.New("book already exists")

	// ErrDuplicatePairing is returned when the book is already linked to
	// the author.
	ErrDuplicatePairing = errors.New("this book-author pair already exists")

	// ErrPairingNotFound is returned when no pairing references the
	// requested book.
	ErrPairingNotFound = errors.New("pairing not found")
)

// Repository handles book-author pairing creation and lookups.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddPairing creates the book, reuses or creates the author, and links the
// two, all inside a single transaction. On any failure no rows persist.
//
// An existing book with the same title and page count always fails the call
// with ErrDuplicateBook; only authors are reused across calls.
func (r *Repository) AddPairing(book *entities.Book, author *entities.Author) (*PairingView, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existingBook entities.Book
		result := tx.Where("title = ? AND number_of_pages = ?", book.Title, book.NumberOfPages).
			First(&existingBook)
		if result.Error == nil {
			return ErrDuplicateBook
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		// The insert makes book.ID visible to the pairing step below,
		// before the transaction commits.
		if err := tx.Create(book).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateBook
			}
			return err
		}

		authorID, err := resolveAuthor(tx, author)
		if err != nil {
			return err
		}

		return createPairing(tx, book.ID, authorID)
	})
	if err != nil {
		return nil, err
	}

	view := viewOf(book, author)
	return &view, nil
}

// resolveAuthor reuses an existing author row matching the natural key or
// inserts a new one, returning the resolved id.
func resolveAuthor(tx *gorm.DB, author *entities.Author) (uint, error) {
	var existing entities.Author
	result := tx.Where("first_name = ? AND last_name = ?", author.FirstName, author.LastName).
		First(&existing)
	if result.Error == nil {
		author.ID = existing.ID
		return existing.ID, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return 0, result.Error
	}

	if err := tx.Create(author).Error; err != nil {
		return 0, err
	}
	return author.ID, nil
}

// createPairing inserts the link row unless the pair is already linked.
func createPairing(tx *gorm.DB, bookID, authorID uint) error {
	var existing entities.BookAuthor
	result := tx.Where("book_id = ? AND author_id = ?", bookID, authorID).First(&existing)
	if result.Error == nil {
		return ErrDuplicatePairing
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	pairing := entities.BookAuthor{BookID: bookID, AuthorID: authorID}
	if err := tx.Create(&pairing).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePairing
		}
		return err
	}
	return nil
}

// GetByBookID returns the combined view for the first pairing referencing
// the book. A book with several authors is reported through a single
// pairing only; callers wanting all co-authors go through GetAll.
func (r *Repository) GetByBookID(bookID uint) (*PairingView, error) {
	var pairing entities.BookAuthor
	err := r.db.Preload("Book").Preload("Author").
		Where("book_id = ?", bookID).First(&pairing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPairingNotFound
	}
	if err != nil {
		return nil, err
	}

	view := viewOf(&pairing.Book, &pairing.Author)
	return &view, nil
}

// GetAll returns the combined view for every pairing, in insertion order.
func (r *Repository) GetAll() ([]PairingView, error) {
	var pairings []entities.BookAuthor
	err := r.db.Preload("Book").Preload("Author").
		Order("id ASC").Find(&pairings).Error
	if err != nil {
		return nil, err
	}
	return viewsOf(pairings), nil
}

// SearchByTitle returns the combined view for every pairing whose book
// title contains the keyword (case-insensitive). An empty keyword matches
// every row.
func (r *Repository) SearchByTitle(keyword string) ([]PairingView, error) {
	var pairings []entities.BookAuthor
	searchPattern := "%" + keyword + "%"
	err := r.db.Preload("Book").Preload("Author").
		Joins("JOIN books ON books.id = book_authors.book_id").
		Where("LOWER(books.title) LIKE LOWER(?)", searchPattern).
		Order("book_authors.id ASC").
		Find(&pairings).Error
	if err != nil {
		return nil, err
	}
	return viewsOf(pairings), nil
}
