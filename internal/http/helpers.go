package http

import (
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bookeater/bookeater/internal/identity"
)

// requireUser returns the current user's identifier. Anonymous
// requests are redirected to the login entry point; the second return
// value is false in that case and the handler must stop.
func requireUser(c *gin.Context) (string, bool) {
	userID, ok := identity.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login?next="+c.Request.URL.Path)
		c.Abort()
		return "", false
	}
	return userID, true
}

// parseIDParam extracts an unsigned integer ID from URL parameters. A
// missing or malformed ID renders the not-found page, matching the
// contract that a bad identifier and an absent row look the same.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		renderNotFound(c, "book")
		return 0, false
	}
	return uint(id), true
}

// renderNotFound renders the 404 page for a missing resource.
func renderNotFound(c *gin.Context, resource string) {
	c.HTML(http.StatusNotFound, "error", gin.H{
		"Status":  http.StatusNotFound,
		"Message": resource + " not found",
	})
}

// renderServerError logs the error and renders the 500 page. The
// actual error is logged but not exposed to the client.
func renderServerError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.HTML(http.StatusInternalServerError, "error", gin.H{
		"Status":  http.StatusInternalServerError,
		"Message": "internal server error",
	})
}

// csrfField returns the hidden CSRF input for POST forms, pre-marked
// as safe HTML for the template engine.
func csrfField(c *gin.Context) template.HTML {
	return template.HTML(identity.CSRFTokenField(c))
}
