package identity

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// LoginController exposes the login entry point that anonymous users
// are redirected to. It stands in for the hand-off from the external
// identity provider: the provider's callback would land here with a
// verified identifier, which is stored in the session.
type LoginController struct {
	sessions *SessionManager
}

// NewLoginController creates a login controller bound to the session
// manager.
func NewLoginController(sessions *SessionManager) *LoginController {
	return &LoginController{sessions: sessions}
}

// RegisterRoutes attaches the login routes to the router.
func (lc *LoginController) RegisterRoutes(router *gin.Engine) {
	router.GET("/login", lc.LoginPage)
	router.POST("/login", lc.Login)
	router.POST("/logout", lc.Logout)
}

// LoginPage renders the login form.
// GET /login
func (lc *LoginController) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login", gin.H{
		"Next":      c.Query("next"),
		"CSRFField": CSRFTokenField(c),
	})
}

// Login accepts the identity provider's user identifier and
// establishes a session for it.
// POST /login
func (lc *LoginController) Login(c *gin.Context) {
	userID := strings.TrimSpace(c.PostForm("user_id"))
	if userID == "" {
		c.HTML(http.StatusOK, "login", gin.H{
			"Error":     "A user identifier is required",
			"Next":      c.PostForm("next"),
			"CSRFField": CSRFTokenField(c),
		})
		return
	}

	if err := lc.sessions.CreateSession(c.Request, userID); err != nil {
		c.String(http.StatusInternalServerError, "could not establish session")
		return
	}

	c.Redirect(http.StatusFound, safeRedirectPath(c.PostForm("next")))
}

// safeRedirectPath rejects anything that could leave the site:
// protocol-relative URLs, absolute URLs and backslash tricks all fall
// back to the library root.
func safeRedirectPath(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") {
		return "/"
	}
	if strings.HasPrefix(next, "//") || strings.ContainsAny(next, "\\") || strings.Contains(next, "://") {
		return "/"
	}
	return next
}

// Logout destroys the current session.
// POST /logout
func (lc *LoginController) Logout(c *gin.Context) {
	_ = lc.sessions.DestroySession(c.Request)
	c.Redirect(http.StatusFound, "/login")
}
