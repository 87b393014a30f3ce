package library

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
	dbPath := "./test_library_" + t.Name() + ".db"

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

func seedBook(t *testing.T, db *gorm.DB, title string) *entities.Book {
	t.Helper()
	book := &entities.Book{Title: title, Genre: "SciFi", Author: "Author"}
	require.NoError(t, db.Create(book).Error)
	return book
}

func TestRepository_ListForUser_OrderedByListName(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	b1 := seedBook(t, db, "Zebra")
	b2 := seedBook(t, db, "Alpha")
	b3 := seedBook(t, db, "Middle")

	require.NoError(t, db.Create(&entities.LibraryEntry{UserID: "user-a", BookID: b1.ID, ListName: "Wishlist"}).Error)
	require.NoError(t, db.Create(&entities.LibraryEntry{UserID: "user-a", BookID: b2.ID, ListName: "General"}).Error)
	require.NoError(t, db.Create(&entities.LibraryEntry{UserID: "user-a", BookID: b3.ID, ListName: "General"}).Error)
	// Another user's entry must not leak in
	require.NoError(t, db.Create(&entities.LibraryEntry{UserID: "user-b", BookID: b1.ID, ListName: "Aardvark"}).Error)

	entries, err := repo.ListForUser("user-a")

	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "General", entries[0].ListName)
	assert.Equal(t, "General", entries[1].ListName)
	assert.Equal(t, "Wishlist", entries[2].ListName)
	// Ties keep insertion order
	assert.Equal(t, "Alpha", entries[0].Book.Title)
	assert.Equal(t, "Middle", entries[1].Book.Title)
}

func TestRepository_GetForUserAndBook(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := seedBook(t, db, "Dune")
	require.NoError(t, db.Create(&entities.LibraryEntry{UserID: "user-a", BookID: book.ID, ListName: "Favourites"}).Error)

	entry, err := repo.GetForUserAndBook("user-a", book.ID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "Favourites", entry.ListName)
}

func TestRepository_GetForUserAndBook_AbsentIsNil(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := seedBook(t, db, "Dune")

	entry, err := repo.GetForUserAndBook("user-a", book.ID)
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestRepository_UpdateListName(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := seedBook(t, db, "Dune")
	require.NoError(t, db.Create(&entities.LibraryEntry{UserID: "user-a", BookID: book.ID, ListName: "General"}).Error)

	require.NoError(t, repo.UpdateListName("user-a", book.ID, "Classics"))

	entry, err := repo.GetForUserAndBook("user-a", book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Classics", entry.ListName)
}

func TestRepository_UpdateListName_EmptyBecomesGeneral(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := seedBook(t, db, "Dune")
	require.NoError(t, db.Create(&entities.LibraryEntry{UserID: "user-a", BookID: book.ID, ListName: "Classics"}).Error)

	require.NoError(t, repo.UpdateListName("user-a", book.ID, ""))

	entry, err := repo.GetForUserAndBook("user-a", book.ID)
	require.NoError(t, err)
	assert.Equal(t, "General", entry.ListName)
}

func TestRepository_UpdateListName_NoEntryIsNoop(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()

	book := seedBook(t, db, "Dune")

	require.NoError(t, repo.UpdateListName("user-a", book.ID, "Classics"))

	var count int64
	db.Model(&entities.LibraryEntry{}).Count(&count)
	assert.Zero(t, count)
}
