package pairings

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/booksapi/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_pairings_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.Author{},
		&entities.BookAuthor{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func TestAddPairing(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	t.Run("creates book, author and pairing", func(t *testing.T) {
		book := entities.Book{Title: "Dune", NumberOfPages: 412}
		author := entities.Author{FirstName: "Frank", LastName: "Herbert"}

		view, err := repo.AddPairing(&book, &author)
		require.NoError(t, err)
		assert.NotZero(t, book.ID)
		assert.NotZero(t, author.ID)

		assert.Equal(t, "Dune", view.Book.Title)
		assert.Equal(t, 412, view.Book.NumberOfPages)
		assert.Equal(t, "Frank", view.Author.FirstName)
		assert.Equal(t, "Herbert", view.Author.LastName)

		assert.EqualValues(t, 1, countRows(t, db, &entities.Book{}))
		assert.EqualValues(t, 1, countRows(t, db, &entities.Author{}))
		assert.EqualValues(t, 1, countRows(t, db, &entities.BookAuthor{}))
	})

	t.Run("identical second call fails with duplicate book", func(t *testing.T) {
		book := entities.Book{Title: "Dune", NumberOfPages: 412}
		author := entities.Author{FirstName: "Frank", LastName: "Herbert"}

		_, err := repo.AddPairing(&book, &author)
		assert.ErrorIs(t, err, ErrDuplicateBook)

		// Nothing new was written
		assert.EqualValues(t, 1, countRows(t, db, &entities.Book{}))
		assert.EqualValues(t, 1, countRows(t, db, &entities.Author{}))
		assert.EqualValues(t, 1, countRows(t, db, &entities.BookAuthor{}))
	})

	t.Run("reuses existing author for a new book", func(t *testing.T) {
		book := entities.Book{Title: "Children of Dune", NumberOfPages: 444}
		author := entities.Author{FirstName: "Frank", LastName: "Herbert"}

		_, err := repo.AddPairing(&book, &author)
		require.NoError(t, err)

		assert.EqualValues(t, 2, countRows(t, db, &entities.Book{}))
		assert.EqualValues(t, 1, countRows(t, db, &entities.Author{}))
		assert.EqualValues(t, 2, countRows(t, db, &entities.BookAuthor{}))

		var pairing entities.BookAuthor
		require.NoError(t, db.Where("book_id = ?", book.ID).First(&pairing).Error)
		assert.Equal(t, author.ID, pairing.AuthorID)
	})

	t.Run("creates new author when names differ", func(t *testing.T) {
		book := entities.Book{Title: "Dune Messiah", NumberOfPages: 256}
		author := entities.Author{FirstName: "Brian", LastName: "Herbert"}

		_, err := repo.AddPairing(&book, &author)
		require.NoError(t, err)

		assert.EqualValues(t, 2, countRows(t, db, &entities.Author{}))
	})

	t.Run("same title with different page count is a distinct book", func(t *testing.T) {
		book := entities.Book{Title: "Dune", NumberOfPages: 600}
		author := entities.Author{FirstName: "Frank", LastName: "Herbert"}

		_, err := repo.AddPairing(&book, &author)
		assert.NoError(t, err)
	})
}

func TestAddPairingRollsBackOnFailure(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	// Sabotage the final step so the transaction has to unwind the book
	// and author inserts.
	require.NoError(t, db.Migrator().DropTable(&entities.BookAuthor{}))

	book := entities.Book{Title: "Dune", NumberOfPages: 412}
	author := entities.Author{FirstName: "Frank", LastName: "Herbert"}

	_, err := repo.AddPairing(&book, &author)
	require.Error(t, err)

	assert.EqualValues(t, 0, countRows(t, db, &entities.Book{}))
	assert.EqualValues(t, 0, countRows(t, db, &entities.Author{}))
}

func TestCreatePairingRejectsDuplicateLink(t *testing.T) {
	db, _, cleanup := setupTestDB(t)
	defer cleanup()

	book := entities.Book{Title: "Good Omens", NumberOfPages: 288}
	require.NoError(t, db.Create(&book).Error)
	author := entities.Author{FirstName: "Terry", LastName: "Pratchett"}
	require.NoError(t, db.Create(&author).Error)

	require.NoError(t, createPairing(db, book.ID, author.ID))

	err := createPairing(db, book.ID, author.ID)
	assert.ErrorIs(t, err, ErrDuplicatePairing)

	// A second distinct author can still be linked to the same book
	coauthor := entities.Author{FirstName: "Neil", LastName: "Gaiman"}
	require.NoError(t, db.Create(&coauthor).Error)
	assert.NoError(t, createPairing(db, book.ID, coauthor.ID))
}

func TestGetByBookID(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := entities.Book{Title: "War and Peace", NumberOfPages: 1225}
	author := entities.Author{FirstName: "Leo", LastName: "Tolstoy"}
	_, err := repo.AddPairing(&book, &author)
	require.NoError(t, err)

	t.Run("returns the combined view", func(t *testing.T) {
		view, err := repo.GetByBookID(book.ID)
		require.NoError(t, err)
		assert.Equal(t, "War and Peace", view.Book.Title)
		assert.Equal(t, 1225, view.Book.NumberOfPages)
		assert.Equal(t, "Leo", view.Author.FirstName)
		assert.Equal(t, "Tolstoy", view.Author.LastName)
	})

	t.Run("unknown book id is not found", func(t *testing.T) {
		_, err := repo.GetByBookID(99999)
		assert.ErrorIs(t, err, ErrPairingNotFound)
	})

	t.Run("book with two authors reports only the first pairing", func(t *testing.T) {
		translator := entities.Author{FirstName: "Constance", LastName: "Garnett"}
		require.NoError(t, db.Create(&translator).Error)
		require.NoError(t, createPairing(db, book.ID, translator.ID))

		view, err := repo.GetByBookID(book.ID)
		require.NoError(t, err)
		assert.Equal(t, "Leo", view.Author.FirstName)
	})
}

func TestGetAll(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	t.Run("empty store yields empty slice", func(t *testing.T) {
		views, err := repo.GetAll()
		require.NoError(t, err)
		assert.Empty(t, views)
		assert.NotNil(t, views)
	})

	t.Run("returns every pairing in insertion order", func(t *testing.T) {
		first := entities.Book{Title: "Dune", NumberOfPages: 412}
		_, err := repo.AddPairing(&first, &entities.Author{FirstName: "Frank", LastName: "Herbert"})
		require.NoError(t, err)

		second := entities.Book{Title: "The Hobbit", NumberOfPages: 310}
		_, err = repo.AddPairing(&second, &entities.Author{FirstName: "John", LastName: "Tolkien"})
		require.NoError(t, err)

		views, err := repo.GetAll()
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "Dune", views[0].Book.Title)
		assert.Equal(t, "The Hobbit", views[1].Book.Title)
	})
}

func TestSearchByTitle(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	seed := []struct {
		title string
		pages int
		first string
		last  string
	}{
		{"War and Peace", 1225, "Leo", "Tolstoy"},
		{"Anna Karenina", 864, "Leo", "Tolstoy"},
		{"The Art of War", 96, "Sun", "Tzu"},
	}
	for _, s := range seed {
		book := entities.Book{Title: s.title, NumberOfPages: s.pages}
		author := entities.Author{FirstName: s.first, LastName: s.last}
		_, err := repo.AddPairing(&book, &author)
		require.NoError(t, err)
	}

	t.Run("empty keyword matches every pairing", func(t *testing.T) {
		views, err := repo.SearchByTitle("")
		require.NoError(t, err)
		assert.Len(t, views, 3)
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		views, err := repo.SearchByTitle("XYZ_NOMATCH")
		require.NoError(t, err)
		assert.Empty(t, views)
		assert.NotNil(t, views)
	})

	t.Run("match is case-insensitive", func(t *testing.T) {
		views, err := repo.SearchByTitle("war")
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "War and Peace", views[0].Book.Title)
		assert.Equal(t, "The Art of War", views[1].Book.Title)
	})

	t.Run("substring in the middle matches", func(t *testing.T) {
		views, err := repo.SearchByTitle("karenina")
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Anna Karenina", views[0].Book.Title)
	})
}
