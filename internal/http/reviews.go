package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookeater/bookeater/internal/entities"
)

// ReviewStore defines the database operations for reviews.
type ReviewStore interface {
	Create(review *entities.Review) error
	GetByID(id uint) (*entities.Review, error)
	ListForUser(userID string) ([]entities.Review, error)
	DeleteOwned(id uint, userID string) error
}

// ReviewBookGetter is the slice of the book store the review
// controller needs for the review form.
type ReviewBookGetter interface {
	GetByID(id uint) (*entities.Book, error)
}

type ReviewsController struct {
	reviews ReviewStore
	books   ReviewBookGetter
}

func NewReviewsController(reviews ReviewStore, books ReviewBookGetter) *ReviewsController {
	return &ReviewsController{
		reviews: reviews,
		books:   books,
	}
}

// WriteForm shows the review form for a book.
// GET /books/:id/review
func (rc *ReviewsController) WriteForm(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := rc.books.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		renderNotFound(c, "book")
		return
	}
	if err != nil {
		renderServerError(c, err, "review form")
		return
	}

	c.HTML(http.StatusOK, "review-form", gin.H{
		"Book":      book,
		"CSRFField": csrfField(c),
	})
}

// Submit inserts a review for the book id in the path, stamped with
// the server time. The book is deliberately not checked for existence
// at this layer.
// POST /books/:id/review
func (rc *ReviewsController) Submit(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var form ReviewForm
	if err := c.ShouldBind(&form); err != nil {
		renderServerError(c, err, "bind review")
		return
	}

	review := &entities.Review{
		BookID:  id,
		UserID:  userID,
		Rating:  form.Rating,
		Content: form.Content,
	}
	if err := rc.reviews.Create(review); err != nil {
		renderServerError(c, err, "submit review")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// MyReviews lists the current user's reviews, newest first.
// GET /reviews
func (rc *ReviewsController) MyReviews(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	reviews, err := rc.reviews.ListForUser(userID)
	if err != nil {
		renderServerError(c, err, "my reviews")
		return
	}

	c.HTML(http.StatusOK, "my-reviews", gin.H{
		"Reviews": reviews,
		"Total":   len(reviews),
	})
}

// DeleteConfirm shows the delete confirmation for a review the current
// user authored. Someone else's review silently redirects to the
// library instead.
// GET /reviews/:id/delete
func (rc *ReviewsController) DeleteConfirm(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	review, err := rc.reviews.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		renderNotFound(c, "review")
		return
	}
	if err != nil {
		renderServerError(c, err, "delete review confirm")
		return
	}

	if review.UserID != userID {
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "review-delete", gin.H{
		"Review":    review,
		"CSRFField": csrfField(c),
	})
}

// Delete removes a review only when the current user is its author;
// anything else leaves the store untouched. Redirects to the user's
// reviews either way.
// POST /reviews/:id/delete
func (rc *ReviewsController) Delete(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := rc.reviews.DeleteOwned(id, userID); err != nil {
		renderServerError(c, err, "delete review")
		return
	}

	c.Redirect(http.StatusFound, "/reviews")
}
