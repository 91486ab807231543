package pairings

import (
	"github.com/mrlokans/booksapi/internal/entities"
)

// BookView is the wire representation of a book inside a combined view.
type BookView struct {
	Title         string `json:"title"`
	NumberOfPages int    `json:"number_of_pages"`
}

// AuthorView is the wire representation of an author inside a combined view.
type AuthorView struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// PairingView is the combined book+author shape returned by every
// book-bearing endpoint.
type PairingView struct {
	Book   BookView   `json:"book"`
	Author AuthorView `json:"author"`
}

func viewOf(book *entities.Book, author *entities.Author) PairingView {
	return PairingView{
		Book: BookView{
			Title:         book.Title,
			NumberOfPages: book.NumberOfPages,
		},
		Author: AuthorView{
			FirstName: author.FirstName,
			LastName:  author.LastName,
		},
	}
}

func viewsOf(pairings []entities.BookAuthor) []PairingView {
	views := make([]PairingView, 0, len(pairings))
	for i := range pairings {
		views = append(views, viewOf(&pairings[i].Book, &pairings[i].Author))
	}
	return views
}
