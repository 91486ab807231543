// Command seed populates a books-api database with a set of classic
// book/author pairings for local development and manual testing.
package main

import (
	"errors"
	"flag"
	"log"

	"github.com/mrlokans/booksapi/internal/config"
	"github.com/mrlokans/booksapi/internal/database"
	"github.com/mrlokans/booksapi/internal/database/pairings"
	"github.com/mrlokans/booksapi/internal/entities"
)

type seedPairing struct {
	title     string
	pages     int
	firstName string
	lastName  string
}

var seedData = []seedPairing{
	{"Dune", 412, "Frank", "Herbert"},
	{"War and Peace", 1225, "Leo", "Tolstoy"},
	{"Anna Karenina", 864, "Leo", "Tolstoy"},
	{"The Hobbit", 310, "John", "Tolkien"},
	{"The Fellowship of the Ring", 423, "John", "Tolkien"},
	{"Good Omens", 288, "Terry", "Pratchett"},
	{"Good Omens", 289, "Neil", "Gaiman"},
	{"Brave New World", 311, "Aldous", "Huxley"},
}

func main() {
	dbPath := flag.String("db", config.DefaultDatabasePath, "path to the SQLite database")
	flag.Parse()

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repo := pairings.NewRepository(db.DB)

	created := 0
	for _, s := range seedData {
		book := entities.Book{Title: s.title, NumberOfPages: s.pages}
		author := entities.Author{FirstName: s.firstName, LastName: s.lastName}

		_, err := repo.AddPairing(&book, &author)
		if errors.Is(err, pairings.ErrDuplicateBook) || errors.Is(err, pairings.ErrDuplicatePairing) {
			log.Printf("Skipping %q by %s %s: %v", s.title, s.firstName, s.lastName, err)
			continue
		}
		if err != nil {
			log.Fatalf("Failed to seed %q: %v", s.title, err)
		}
		created++
	}

	log.Printf("Seeded %d pairings into %s", created, *dbPath)
}
