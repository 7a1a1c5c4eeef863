package search

import (
	"context"
	"errors"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/pouch/internal/api"
	"github.com/nikbrunner/pouch/internal/model"
)

type sliceCatalog struct {
	bookmarks []model.Bookmark
	err       error
}

func (c sliceCatalog) Bookmarks() []model.Bookmark { return c.bookmarks }

func (c sliceCatalog) TagNames() ([]string, error) {
	if c.err != nil {
		return nil, c.err
	}
	s := model.Store{Bookmarks: c.bookmarks}
	return s.TagNames(), nil
}

func TestEngine_Suggest(t *testing.T) {
	e := NewEngine(sliceCatalog{bookmarks: fixture()}, 0)

	got, err := e.Suggest(context.Background(), "ru", nil)
	assert.NilError(t, err)
	assert.Equal(t, got[0], "rust")

	got, err = e.Suggest(context.Background(), "ru", []string{"rust"})
	assert.NilError(t, err)
	for _, name := range got {
		assert.Assert(t, name != "rust")
	}
}

func TestEngine_SuggestEmptyFragment(t *testing.T) {
	e := NewEngine(sliceCatalog{bookmarks: fixture()}, 0)

	got, err := e.Suggest(context.Background(), "", nil)
	assert.NilError(t, err)
	assert.Equal(t, len(got), 0)
}

func TestEngine_SuggestCatalogError(t *testing.T) {
	boom := errors.New("boom")
	e := NewEngine(sliceCatalog{err: boom}, 0)

	_, err := e.Suggest(context.Background(), "ru", nil)
	assert.ErrorIs(t, err, boom)
}

func TestEngine_SuggestRespectsLimit(t *testing.T) {
	e := NewEngine(sliceCatalog{bookmarks: fixture()}, 1)

	got, err := e.Suggest(context.Background(), "r", nil)
	assert.NilError(t, err)
	assert.Equal(t, len(got), 1)
}

func TestEngine_Search(t *testing.T) {
	e := NewEngine(sliceCatalog{bookmarks: fixture()}, 0)

	resp, err := e.Search(context.Background(), api.NewSearchRequest("axum react", []string{"Web Dev"}))
	assert.NilError(t, err)
	assert.DeepEqual(t, ids(resp.Bookmarks), []string{"b3", "b2"})
	assert.Equal(t, resp.Query, `#"web dev" axum react`)

	var names []string
	for _, tc := range resp.Tags {
		names = append(names, tc.Name)
	}
	assert.DeepEqual(t, names, []string{"axum", "react", "rust", "web dev"})
}

func TestEngine_SearchCanceled(t *testing.T) {
	e := NewEngine(sliceCatalog{bookmarks: fixture()}, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Search(ctx, api.SearchRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}
