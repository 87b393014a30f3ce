package books

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bookeater/bookeater/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	dbPath := "./test_books_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.LibraryEntry{},
		&entities.Review{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, db, cleanup
}

func TestRepository_CreateWithEntry(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{Title: "Dune", Genre: "SciFi", Author: "Herbert", Rating: 5}
	err := repo.CreateWithEntry(book, "user-a", "Favourites")

	require.NoError(t, err)
	assert.NotZero(t, book.ID)

	var entries []entities.LibraryEntry
	require.NoError(t, db.Where("book_id = ?", book.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, "user-a", entries[0].UserID)
	assert.Equal(t, "Favourites", entries[0].ListName)
}

func TestRepository_CreateWithEntry_DefaultsListName(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{Title: "Dune", Genre: "SciFi", Author: "Herbert", Rating: 5}
	require.NoError(t, repo.CreateWithEntry(book, "user-a", ""))

	var entry entities.LibraryEntry
	require.NoError(t, db.Where("book_id = ?", book.ID).First(&entry).Error)
	assert.Equal(t, "General", entry.ListName)
}

func TestRepository_GetByIDWithReviews(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{Title: "Dune", Genre: "SciFi", Author: "Herbert"}
	require.NoError(t, repo.CreateWithEntry(book, "user-a", ""))

	require.NoError(t, db.Exec(
		`INSERT INTO reviews (book_id, user_id, rating, content, date_posted) VALUES
		 (?, 'user-a', 4, 'older', '2024-01-01 10:00:00'),
		 (?, 'user-b', 5, 'newer', '2024-06-01 10:00:00')`,
		book.ID, book.ID).Error)

	got, reviews, err := repo.GetByIDWithReviews(book.ID)

	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	require.Len(t, reviews, 2)
	// Newest review first
	assert.Equal(t, "newer", reviews[0].Content)
	assert.Equal(t, "older", reviews[1].Content)
}

func TestRepository_GetByIDWithReviews_NotFound(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	_, _, err := repo.GetByIDWithReviews(999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_Update(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{Title: "Dune", Genre: "SciFi", Author: "Herbert", Rating: 5}
	require.NoError(t, repo.CreateWithEntry(book, "user-a", ""))

	book.Title = "Dune Messiah"
	book.Rating = 4
	require.NoError(t, repo.Update(book))

	got, err := repo.GetByID(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", got.Title)
	assert.Equal(t, 4, got.Rating)
}

func TestRepository_Update_ConflictWhenRowGone(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Update(&entities.Book{ID: 42, Title: "Ghost", Genre: "x", Author: "y"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRepository_DeleteCascade(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{Title: "Dune", Genre: "SciFi", Author: "Herbert"}
	require.NoError(t, repo.CreateWithEntry(book, "user-a", ""))
	require.NoError(t, db.Create(&entities.LibraryEntry{UserID: "user-b", BookID: book.ID, ListName: "General"}).Error)
	require.NoError(t, db.Create(&entities.Review{BookID: book.ID, UserID: "user-b", Rating: 3, Content: "ok"}).Error)

	require.NoError(t, repo.DeleteCascade(book.ID))

	var bookCount, entryCount, reviewCount int64
	db.Model(&entities.Book{}).Where("id = ?", book.ID).Count(&bookCount)
	db.Model(&entities.LibraryEntry{}).Where("book_id = ?", book.ID).Count(&entryCount)
	db.Model(&entities.Review{}).Where("book_id = ?", book.ID).Count(&reviewCount)
	assert.Zero(t, bookCount)
	assert.Zero(t, entryCount)
	assert.Zero(t, reviewCount)
}

func TestRepository_DeleteCascade_MissingBookIsNoop(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	other := &entities.Book{Title: "Keep me", Genre: "SciFi", Author: "Herbert"}
	require.NoError(t, repo.CreateWithEntry(other, "user-a", ""))

	require.NoError(t, repo.DeleteCascade(999))

	var count int64
	db.Model(&entities.Book{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRepository_Exists(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()

	book := &entities.Book{Title: "Dune", Genre: "SciFi", Author: "Herbert"}
	require.NoError(t, repo.CreateWithEntry(book, "user-a", ""))

	exists, err := repo.Exists(book.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(999)
	require.NoError(t, err)
	assert.False(t, exists)
}
