// Package books provides database operations for the book catalog,
// including the multi-row writes that must commit as a single unit.
package books

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bookeater/bookeater/internal/entities"
)

// ErrConflict is returned when an update targets a row that changed
// between read and write. Callers re-check existence to distinguish a
// deleted row from a genuine write-write conflict.
var ErrConflict = errors.New("book was modified concurrently")

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByID retrieves a book by ID.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetByIDWithReviews retrieves a book together with all of its reviews,
// newest first. Reviews are fetched explicitly rather than lazily on
// access.
func (r *Repository) GetByIDWithReviews(id uint) (*entities.Book, []entities.Review, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		return nil, nil, err
	}

	var reviews []entities.Review
	err := r.db.Where("book_id = ?", id).
		Order("date_posted DESC, id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, nil, err
	}
	return &book, reviews, nil
}

// Exists reports whether a book with the given ID is present.
func (r *Repository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// CreateWithEntry inserts a book and a library entry linking the given
// user to it. Both rows are committed together; a failure on either
// side rolls the whole operation back.
func (r *Repository) CreateWithEntry(book *entities.Book, userID, listName string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(book).Error; err != nil {
			return err
		}
		entry := &entities.LibraryEntry{
			UserID:   userID,
			BookID:   book.ID,
			ListName: entities.NormalizeListName(listName),
		}
		return tx.Create(entry).Error
	})
}

// Update writes the book's stored fields by primary key. Returns
// ErrConflict when no row matched, which happens when the record
// changed or disappeared between read and write.
func (r *Repository) Update(book *entities.Book) error {
	result := r.db.Model(&entities.Book{}).
		Where("id = ?", book.ID).
		Select("Title", "Genre", "Author", "Rating").
		Updates(book)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

// DeleteCascade removes a book together with every library entry and
// review referencing it, as one transaction. Deleting a book that does
// not exist is a silent no-op, not an error.
func (r *Repository) DeleteCascade(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		err := tx.First(&book, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Where("book_id = ?", id).Delete(&entities.LibraryEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", id).Delete(&entities.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&book).Error
	})
}
