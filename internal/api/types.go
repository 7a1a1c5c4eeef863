// Package api holds the JSON shapes exchanged by the search server and its
// clients.
package api

import (
	"strings"

	"github.com/nikbrunner/pouch/internal/model"
	"github.com/nikbrunner/pouch/internal/query"
)

// TagSuggestion is one autocomplete result. Order encodes rank.
type TagSuggestion struct {
	Name string `json:"name"`
}

// SearchRequest carries free text and committed tags. GeneralText never
// contains '#' tag fragments.
type SearchRequest struct {
	GeneralText string   `json:"generalText"`
	Tags        []string `json:"tags"`
}

// SearchResponse lists the matched bookmarks and the tag cloud over them.
type SearchResponse struct {
	Query     string           `json:"query"`
	Bookmarks []model.Bookmark `json:"bookmarks"`
	Tags      []model.TagCount `json:"tags"`
}

// AddBookmarkRequest creates a bookmark. Folder is a "/"-separated path from
// the root; missing folders are created.
type AddBookmarkRequest struct {
	URL         string   `json:"url"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Folder      string   `json:"folder,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewSearchRequest builds a request from raw input, stripping any '#' spans
// from the text and normalizing tag names.
func NewSearchRequest(text string, tags []string) SearchRequest {
	req := SearchRequest{
		GeneralText: query.StripTags(text),
		Tags:        query.Query{}.WithTags(tags...).TagFilters,
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}
	return req
}

// Query parses the request into a structured query. Any '#' fragment that
// slipped into GeneralText is ignored.
func (r SearchRequest) Query() query.Query {
	q := query.Parse(query.StripTags(r.GeneralText))
	return q.WithTags(r.Tags...)
}

// NormalizeNames splits comma-separated lists, normalizes each name and
// drops empty ones.
func NormalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		for _, part := range strings.Split(n, ",") {
			if name := query.NormalizeTag(part); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}
