package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookeater/bookeater/internal/database/books"
	"github.com/bookeater/bookeater/internal/entities"
	"github.com/bookeater/bookeater/internal/identity"
)

// BookStore defines the database operations the library controller
// needs for books.
type BookStore interface {
	GetByID(id uint) (*entities.Book, error)
	GetByIDWithReviews(id uint) (*entities.Book, []entities.Review, error)
	Exists(id uint) (bool, error)
	CreateWithEntry(book *entities.Book, userID, listName string) error
	Update(book *entities.Book) error
	DeleteCascade(id uint) error
}

// LibraryStore defines the database operations for library entries.
type LibraryStore interface {
	ListForUser(userID string) ([]entities.LibraryEntry, error)
	GetForUserAndBook(userID string, bookID uint) (*entities.LibraryEntry, error)
	UpdateListName(userID string, bookID uint, listName string) error
}

// ReviewAuthorView pairs a review with its author's resolved display
// name for the detail page.
type ReviewAuthorView struct {
	entities.Review
	AuthorName string
}

type LibraryController struct {
	books     BookStore
	library   LibraryStore
	directory identity.Directory
}

func NewLibraryController(books BookStore, library LibraryStore, directory identity.Directory) *LibraryController {
	if directory == nil {
		directory = identity.SelfDirectory{}
	}
	return &LibraryController{
		books:     books,
		library:   library,
		directory: directory,
	}
}

// Index lists the current user's library entries grouped by list name.
// GET /
func (lc *LibraryController) Index(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	entries, err := lc.library.ListForUser(userID)
	if err != nil {
		renderServerError(c, err, "list library")
		return
	}

	c.HTML(http.StatusOK, "library", gin.H{
		"Entries": entries,
		"Total":   len(entries),
	})
}

// Detail shows a book together with all its reviews, each author
// resolved to a display name.
// GET /books/:id
func (lc *LibraryController) Detail(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, reviews, err := lc.books.GetByIDWithReviews(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		renderNotFound(c, "book")
		return
	}
	if err != nil {
		renderServerError(c, err, "book detail")
		return
	}

	views := make([]ReviewAuthorView, 0, len(reviews))
	for _, review := range reviews {
		views = append(views, ReviewAuthorView{
			Review:     review,
			AuthorName: lc.directory.DisplayName(review.UserID),
		})
	}

	c.HTML(http.StatusOK, "book-detail", gin.H{
		"Book":    book,
		"Reviews": views,
	})
}

// CreateForm renders an empty book form. No data access.
// GET /books/create
func (lc *LibraryController) CreateForm(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	c.HTML(http.StatusOK, "book-form", gin.H{
		"Form":      BookForm{},
		"Action":    "/books/create",
		"Title":     "Add a book",
		"CSRFField": csrfField(c),
	})
}

// Create validates the submitted book and, on success, inserts the
// book and the creator's library entry as one unit.
// POST /books/create
func (lc *LibraryController) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var form BookForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "book-form", gin.H{
			"Form":      form,
			"Errors":    formErrors(err),
			"Action":    "/books/create",
			"Title":     "Add a book",
			"CSRFField": csrfField(c),
		})
		return
	}

	book := &entities.Book{
		Title:  form.Title,
		Genre:  form.Genre,
		Author: form.Author,
		Rating: form.Rating,
	}
	if err := lc.books.CreateWithEntry(book, userID, form.ListName); err != nil {
		renderServerError(c, err, "create book")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// EditForm shows the edit form for a book, pre-filling the current
// user's list name when they have an entry for it.
// GET /books/:id/edit
func (lc *LibraryController) EditForm(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := lc.books.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		renderNotFound(c, "book")
		return
	}
	if err != nil {
		renderServerError(c, err, "edit form")
		return
	}

	form := BookForm{
		BookID: book.ID,
		Title:  book.Title,
		Genre:  book.Genre,
		Author: book.Author,
		Rating: book.Rating,
	}

	entry, err := lc.library.GetForUserAndBook(userID, id)
	if err != nil {
		renderServerError(c, err, "edit form entry lookup")
		return
	}
	if entry != nil {
		form.ListName = entry.ListName
	}

	c.HTML(http.StatusOK, "book-form", gin.H{
		"Form":      form,
		"Action":    "/books/" + c.Param("id") + "/edit",
		"Title":     "Edit book",
		"CSRFField": csrfField(c),
	})
}

// Edit validates and stores the updated book fields, and moves the
// user's entry to the submitted list. A write that matches no row is
// re-checked: a vanished book is NotFound, anything else is fatal.
// POST /books/:id/edit
func (lc *LibraryController) Edit(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var form BookForm
	bindErr := c.ShouldBind(&form)

	if form.BookID != id {
		renderNotFound(c, "book")
		return
	}

	if bindErr != nil {
		c.HTML(http.StatusOK, "book-form", gin.H{
			"Form":      form,
			"Errors":    formErrors(bindErr),
			"Action":    "/books/" + c.Param("id") + "/edit",
			"Title":     "Edit book",
			"CSRFField": csrfField(c),
		})
		return
	}

	book := &entities.Book{
		ID:     id,
		Title:  form.Title,
		Genre:  form.Genre,
		Author: form.Author,
		Rating: form.Rating,
	}
	if err := lc.books.Update(book); err != nil {
		if errors.Is(err, books.ErrConflict) {
			exists, existsErr := lc.books.Exists(id)
			if existsErr == nil && !exists {
				renderNotFound(c, "book")
				return
			}
			renderServerError(c, err, "edit book conflict")
			return
		}
		renderServerError(c, err, "edit book")
		return
	}

	if err := lc.library.UpdateListName(userID, id, form.ListName); err != nil {
		renderServerError(c, err, "edit list name")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// DeleteConfirm shows the delete confirmation for a book.
// GET /books/:id/delete
func (lc *LibraryController) DeleteConfirm(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := lc.books.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		renderNotFound(c, "book")
		return
	}
	if err != nil {
		renderServerError(c, err, "delete confirm")
		return
	}

	c.HTML(http.StatusOK, "book-delete", gin.H{
		"Book":      book,
		"CSRFField": csrfField(c),
	})
}

// Delete removes the book and everything referencing it. Deleting a
// book that is already gone is a silent no-op; the redirect happens
// either way.
// POST /books/:id/delete
func (lc *LibraryController) Delete(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := lc.books.DeleteCascade(id); err != nil {
		renderServerError(c, err, "delete book")
		return
	}

	c.Redirect(http.StatusFound, "/")
}
