package http

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/bookeater/bookeater/internal/database"
	"github.com/bookeater/bookeater/internal/database/books"
	"github.com/bookeater/bookeater/internal/database/library"
	"github.com/bookeater/bookeater/internal/database/reviews"
	"github.com/bookeater/bookeater/internal/identity"
)

func setupTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

// newTestRouter builds a router with all library and review routes,
// with userID injected as the resolved identity. An empty userID
// leaves requests anonymous.
func newTestRouter(db *database.Database, userID string) *gin.Engine {
	router := gin.New()
	tmpl := template.Must(template.New("").ParseGlob("../../templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	if userID != "" {
		router.Use(func(c *gin.Context) {
			c.Set(identity.ContextKeyUserID, userID)
			c.Next()
		})
	}

	libraryController := NewLibraryController(
		books.NewRepository(db.DB),
		library.NewRepository(db.DB),
		nil,
	)
	reviewsController := NewReviewsController(
		reviews.NewRepository(db.DB),
		books.NewRepository(db.DB),
	)

	router.GET("/", libraryController.Index)
	router.GET("/books/create", libraryController.CreateForm)
	router.POST("/books/create", libraryController.Create)
	router.GET("/books/:id", libraryController.Detail)
	router.GET("/books/:id/edit", libraryController.EditForm)
	router.POST("/books/:id/edit", libraryController.Edit)
	router.GET("/books/:id/delete", libraryController.DeleteConfirm)
	router.POST("/books/:id/delete", libraryController.Delete)
	router.GET("/books/:id/review", reviewsController.WriteForm)
	router.POST("/books/:id/review", reviewsController.Submit)
	router.GET("/reviews", reviewsController.MyReviews)
	router.GET("/reviews/:id/delete", reviewsController.DeleteConfirm)
	router.POST("/reviews/:id/delete", reviewsController.Delete)

	return router
}

func doGet(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	router.ServeHTTP(w, req)
	return w
}

func doPostForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}
