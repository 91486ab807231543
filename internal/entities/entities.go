package entities

import (
	"time"
)

// Book is a physical edition identified by its title and page count.
// The composite unique index is the authoritative duplicate guard; the
// repository pre-checks are only a fast path (see internal/database/pairings).
type Book struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Title         string    `gorm:"size:255;uniqueIndex:idx_books_title_pages" json:"title"`
	NumberOfPages int       `gorm:"uniqueIndex:idx_books_title_pages" json:"number_of_pages"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:50;uniqueIndex:idx_authors_name" json:"first_name"`
	LastName  string    `gorm:"size:50;uniqueIndex:idx_authors_name" json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// BookAuthor links one book to one author. A book may have several authors
// and an author several books, but a given pair is linked at most once.
type BookAuthor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookID    uint      `gorm:"uniqueIndex:idx_pairings_book_author;index" json:"book_id"`
	AuthorID  uint      `gorm:"uniqueIndex:idx_pairings_book_author" json:"author_id"`
	Book      Book      `gorm:"foreignKey:BookID" json:"-"`
	Author    Author    `gorm:"foreignKey:AuthorID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (Book) TableName() string {
	return "books"
}

func (Author) TableName() string {
	return "authors"
}

func (BookAuthor) TableName() string {
	return "book_authors"
}
