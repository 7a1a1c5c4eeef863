package model

import (
	"strings"
	"time"
)

// Bookmark represents a saved URL with metadata.
type Bookmark struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Description string     `json:"description,omitempty"`
	FolderID    *string    `json:"folderId"` // nil = root level
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	VisitedAt   *time.Time `json:"visitedAt"` // nil = never visited
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	Title       string
	URL         string
	Description string
	FolderID    *string
	Tags        []string
}

// NewBookmark creates a Bookmark with generated UUID and timestamps.
func NewBookmark(params NewBookmarkParams) Bookmark {
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	return Bookmark{
		ID:          NewID(),
		Title:       params.Title,
		URL:         params.URL,
		Description: params.Description,
		FolderID:    params.FolderID,
		Tags:        tags,
		CreatedAt:   time.Now(),
		VisitedAt:   nil,
	}
}

// HasTag reports whether the bookmark carries the tag, ignoring case.
func (b Bookmark) HasTag(name string) bool {
	for _, t := range b.Tags {
		if strings.EqualFold(t, name) {
			return true
		}
	}
	return false
}

// SearchableText joins url, title, description and tag names.
func (b Bookmark) SearchableText() string {
	parts := make([]string, 0, 3+len(b.Tags))
	parts = append(parts, b.URL, b.Title, b.Description)
	parts = append(parts, b.Tags...)
	return strings.Join(parts, " ")
}
