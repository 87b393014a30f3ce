// Package identity resolves the current user at the request boundary.
//
// The application does not implement authentication itself: user
// identifiers are opaque strings owned by an external identity
// provider. This package supplies the plumbing around that contract: a
// session-backed provider, a gin middleware that resolves the identity
// once per request, and a directory for turning identifiers into
// display values.
package identity

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKeyUserID is the gin context key holding the resolved user
// identifier for the current request.
const ContextKeyUserID = "identity_user_id"

// Provider yields the current user's opaque identifier for a request.
// An empty string means anonymous.
type Provider interface {
	CurrentUserID(r *http.Request) string
}

// Middleware resolves the current user once at the boundary and stores
// the identifier in the gin context. Handlers read it back with
// CurrentUser instead of reaching into the session themselves.
func Middleware(p Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := p.CurrentUserID(c.Request); id != "" {
			c.Set(ContextKeyUserID, id)
		}
		c.Next()
	}
}

// CurrentUser returns the resolved user identifier for the request.
// The second return value is false for anonymous requests.
func CurrentUser(c *gin.Context) (string, bool) {
	v, exists := c.Get(ContextKeyUserID)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Directory resolves opaque user identifiers to display values for
// rendered views. The identity provider owns user records; this is the
// read-side join.
type Directory interface {
	DisplayName(userID string) string
}

// SelfDirectory is the fallback directory: an identifier is its own
// display value.
type SelfDirectory struct{}

func (SelfDirectory) DisplayName(userID string) string {
	return userID
}
