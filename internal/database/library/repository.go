// Package library provides database operations for a user's library
// entries: the rows linking users to books within named lists.
package library

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bookeater/bookeater/internal/entities"
)

// Repository handles all library entry database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new library repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListForUser retrieves all library entries for a user with their books
// preloaded, ordered by list name. Ties keep insertion order.
func (r *Repository) ListForUser(userID string) ([]entities.LibraryEntry, error) {
	var entries []entities.LibraryEntry
	err := r.db.Preload("Book").
		Where("user_id = ?", userID).
		Order("list_name ASC, id ASC").
		Find(&entries).Error
	return entries, err
}

// GetForUserAndBook retrieves the entry linking a user to a book, or
// nil when the user has no entry for that book.
func (r *Repository) GetForUserAndBook(userID string, bookID uint) (*entities.LibraryEntry, error) {
	var entry entities.LibraryEntry
	err := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateListName sets the list name on the user's entry for a book.
// The name is canonicalized first; a user without an entry for the
// book is a no-op.
func (r *Repository) UpdateListName(userID string, bookID uint, listName string) error {
	return r.db.Model(&entities.LibraryEntry{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Update("list_name", entities.NormalizeListName(listName)).Error
}
