// Package reviews provides database operations for book reviews.
//
// A review's author identifier is set once at insert time and is the
// sole authorization key for deletion.
package reviews

import (
	"time"

	"gorm.io/gorm"

	"github.com/bookeater/bookeater/internal/entities"
)

// Repository handles all review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a review, stamping DatePosted with the current server
// time. The referenced book is not checked for existence.
func (r *Repository) Create(review *entities.Review) error {
	review.DatePosted = time.Now()
	return r.db.Create(review).Error
}

// GetByID retrieves a review with its book preloaded.
func (r *Repository) GetByID(id uint) (*entities.Review, error) {
	var review entities.Review
	err := r.db.Preload("Book").First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListForUser retrieves all reviews authored by a user with their books
// preloaded, newest first.
func (r *Repository) ListForUser(userID string) ([]entities.Review, error) {
	var reviews []entities.Review
	err := r.db.Preload("Book").
		Where("user_id = ?", userID).
		Order("date_posted DESC, id DESC").
		Find(&reviews).Error
	return reviews, err
}

// DeleteOwned removes a review only when it exists and its stored
// author matches userID. Anything else leaves the store unchanged.
func (r *Repository) DeleteOwned(id uint, userID string) error {
	return r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&entities.Review{}).Error
}
