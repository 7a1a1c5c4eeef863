package model_test

import (
	"testing"
	"time"

	"github.com/nikbrunner/pouch/internal/model"
	"gotest.tools/v3/assert"
)

func stringPtr(s string) *string { return &s }

func TestStore_TagCounts(t *testing.T) {
	store := model.Store{
		Bookmarks: []model.Bookmark{
			{ID: "b1", Tags: []string{"rust", "web"}},
			{ID: "b2", Tags: []string{"Rust", "axum"}},
			{ID: "b3", Tags: []string{"web", "web"}},
			{ID: "b4", Tags: nil},
		},
	}

	got := store.TagCounts()
	want := []model.TagCount{
		{Name: "axum", Count: 1},
		{Name: "rust", Count: 2},
		{Name: "web", Count: 2},
	}
	assert.DeepEqual(t, got, want)
	assert.DeepEqual(t, store.TagNames(), []string{"axum", "rust", "web"})
}

func TestStore_TagNames_Empty(t *testing.T) {
	store := model.NewStore()
	assert.Equal(t, len(store.TagNames()), 0)
}

func TestBookmark_HasTag(t *testing.T) {
	b := model.Bookmark{Tags: []string{"Web Dev", "go"}}

	assert.Assert(t, b.HasTag("web dev"))
	assert.Assert(t, b.HasTag("GO"))
	assert.Assert(t, !b.HasTag("web"))
}

func TestBookmark_SearchableText(t *testing.T) {
	b := model.Bookmark{
		URL:         "https://go.dev",
		Title:       "Go",
		Description: "The Go language",
		Tags:        []string{"lang"},
	}
	assert.Equal(t, b.SearchableText(), "https://go.dev Go The Go language lang")
}

func TestNewBookmark_InitializesTags(t *testing.T) {
	b := model.NewBookmark(model.NewBookmarkParams{Title: "x", URL: "https://x.dev"})

	assert.Assert(t, b.ID != "")
	assert.Assert(t, b.Tags != nil)
	assert.Assert(t, time.Since(b.CreatedAt) < time.Minute)
}

func TestStore_ImportMerge(t *testing.T) {
	existingFolderID := "existing-folder"
	store := model.Store{
		Folders: []model.Folder{
			{ID: existingFolderID, Name: "Development"},
		},
		Bookmarks: []model.Bookmark{
			{ID: "existing", URL: "https://example.com"},
		},
	}

	added, skipped := store.ImportMerge(
		[]model.Folder{{ID: "imported", Name: "Development"}},
		[]model.Bookmark{
			{ID: "n1", URL: "https://example.com"},
			{ID: "n2", URL: "https://new.dev", FolderID: stringPtr("imported")},
		},
	)

	assert.Equal(t, added, 1)
	assert.Equal(t, skipped, 1)
	assert.Equal(t, len(store.Folders), 1)
	assert.Equal(t, *store.GetBookmarkByID("n2").FolderID, existingFolderID)
}

func TestStore_RemoveBookmark(t *testing.T) {
	store := model.NewStore()
	store.AddBookmark(model.Bookmark{ID: "b1"})

	assert.NilError(t, store.RemoveBookmark("b1"))
	assert.ErrorIs(t, store.RemoveBookmark("b1"), model.ErrBookmarkNotFound)
}

func TestStore_FolderPath(t *testing.T) {
	dev := model.NewFolder("Dev", nil)
	rust := model.NewFolder("Rust", &dev.ID)
	loop := model.Folder{ID: "loop", Name: "Loop", ParentID: stringPtr("loop")}
	store := model.Store{Folders: []model.Folder{dev, rust, loop}}

	assert.Equal(t, store.FolderPath(&rust.ID), "Dev / Rust")
	assert.Equal(t, store.FolderPath(&dev.ID), "Dev")
	assert.Equal(t, store.FolderPath(nil), "")
	assert.Equal(t, store.FolderPath(stringPtr("missing")), "")
	assert.Equal(t, store.FolderPath(&loop.ID), "Loop")
	assert.Assert(t, dev.ID != rust.ID)
}

func TestStore_Insert(t *testing.T) {
	store := model.NewStore()
	dev := model.NewFolder("Dev", nil)
	store.AddFolder(dev)

	b, err := store.Insert(model.NewBookmarkParams{
		URL:  "https://go.dev",
		Tags: []string{"Go", " web  dev ", "go", ""},
	}, "Dev / Lang")
	assert.NilError(t, err)

	assert.Equal(t, b.Title, "https://go.dev")
	assert.DeepEqual(t, b.Tags, []string{"go", "web dev"})
	assert.Equal(t, store.FolderPath(b.FolderID), "Dev / Lang")
	assert.Equal(t, len(store.Folders), 2)
	assert.Equal(t, store.GetBookmarkByID(b.ID).URL, "https://go.dev")

	_, err = store.Insert(model.NewBookmarkParams{URL: "https://go.dev"}, "")
	assert.ErrorIs(t, err, model.ErrDuplicateURL)
}

func TestStore_EnsureFolderPath(t *testing.T) {
	store := model.NewStore()

	assert.Assert(t, store.EnsureFolderPath("") == nil)
	assert.Assert(t, store.EnsureFolderPath(" / ") == nil)

	first := store.EnsureFolderPath("Dev/Rust")
	again := store.EnsureFolderPath(" Dev / Rust ")
	assert.Equal(t, *first, *again)
	assert.Equal(t, len(store.Folders), 2)
}

func TestStore_RenameTag(t *testing.T) {
	store := model.Store{
		Bookmarks: []model.Bookmark{
			{ID: "b1", Tags: []string{"js", "web"}},
			{ID: "b2", Tags: []string{"JS", "javascript"}},
			{ID: "b3", Tags: []string{"go"}},
		},
	}

	assert.Equal(t, store.RenameTag("Js", "javascript"), 2)
	assert.DeepEqual(t, store.GetBookmarkByID("b1").Tags, []string{"javascript", "web"})
	assert.DeepEqual(t, store.GetBookmarkByID("b2").Tags, []string{"javascript"})
	assert.DeepEqual(t, store.GetBookmarkByID("b3").Tags, []string{"go"})

	assert.Equal(t, store.RenameTag("go", "go"), 0)
	assert.Equal(t, store.RenameTag("missing", "x"), 0)
}
