package entities

import (
	"time"
)

// DefaultListName is the grouping a library entry falls back to when the
// user does not supply one.
const DefaultListName = "General"

// Book is an independent catalog record. It exists regardless of any
// user's library; users reference it through LibraryEntry rows.
type Book struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"index;size:512" json:"title"`
	Genre     string    `gorm:"size:100" json:"genre"`
	Author    string    `gorm:"index;size:256" json:"author"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LibraryEntry links a user to a book within a named list. One row per
// (user, book) membership. UserID is the opaque identifier supplied by
// the identity provider; no user table exists in this schema.
type LibraryEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;size:64" json:"user_id"`
	BookID    uint      `gorm:"index" json:"book_id"`
	ListName  string    `gorm:"size:100;default:'General'" json:"list_name"`
	Book      Book      `gorm:"foreignKey:BookID" json:"book,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Review is a user-authored rating and comment on a book. UserID is
// immutable after creation and is the sole authorization key for
// deletion. DatePosted is assigned by the server at insert time.
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BookID     uint      `gorm:"index" json:"book_id"`
	UserID     string    `gorm:"index;size:64" json:"user_id"`
	Rating     int       `json:"rating"`
	Content    string    `gorm:"type:text" json:"content"`
	DatePosted time.Time `json:"date_posted"`
	Book       Book      `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

// NormalizeListName canonicalizes a list name before it is stored:
// empty input becomes DefaultListName. ListName is never stored empty.
func NormalizeListName(name string) string {
	if name == "" {
		return DefaultListName
	}
	return name
}

func (Book) TableName() string {
	return "books"
}

func (LibraryEntry) TableName() string {
	return "library_entries"
}

func (Review) TableName() string {
	return "reviews"
}
