package http

import (
	"github.com/bookeater/bookeater/internal/database"
	"github.com/bookeater/bookeater/internal/identity"
)

// RouterConfig contains all dependencies and configuration needed to
// create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Books    BookStore
	Library  LibraryStore
	Reviews  ReviewStore

	// Identity
	Directory      identity.Directory
	SessionManager *identity.SessionManager
	CSRFSecret     []byte
	SecureCookies  bool

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string
}
