package search

import (
	"context"

	"github.com/nikbrunner/pouch/internal/api"
	"github.com/nikbrunner/pouch/internal/model"
)

// Catalog supplies the bookmarks and tag names an Engine works on.
type Catalog interface {
	Bookmarks() []model.Bookmark
	TagNames() ([]string, error)
}

// Engine answers autocomplete and search requests against a Catalog. It is
// the in-process counterpart of the HTTP client.
type Engine struct {
	catalog Catalog
	limit   int
}

// NewEngine creates an engine. A non-positive limit uses
// DefaultSuggestionLimit.
func NewEngine(catalog Catalog, limit int) *Engine {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	return &Engine{catalog: catalog, limit: limit}
}

// Suggest returns ranked tag names for fragment, skipping exclude.
func (e *Engine) Suggest(ctx context.Context, fragment string, exclude []string) ([]string, error) {
	if fragment == "" {
		return []string{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	names, err := e.catalog.TagNames()
	if err != nil {
		return nil, err
	}
	return Names(Suggest(fragment, names, exclude, e.limit)), nil
}

// Search parses the request and runs it over the catalog.
func (e *Engine) Search(ctx context.Context, req api.SearchRequest) (*api.SearchResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := req.Query()
	results := Execute(q, e.catalog.Bookmarks())
	return &api.SearchResponse{
		Query:     q.String(),
		Bookmarks: results,
		Tags:      model.CountTags(results),
	}, nil
}
