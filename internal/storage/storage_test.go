package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"gotest.tools/v3/assert"

	"github.com/nikbrunner/pouch/internal/model"
	"github.com/nikbrunner/pouch/internal/storage"
)

func sampleStore() *model.Store {
	return &model.Store{
		Folders: []model.Folder{
			{ID: "f1", Name: "Development", ParentID: nil},
		},
		Bookmarks: []model.Bookmark{
			{ID: "b1", Title: "Rust", URL: "https://rust-lang.org", Description: "A language", Tags: []string{"rust", "Lang"}},
			{ID: "b2", Title: "Go", URL: "https://go.dev", Tags: []string{"go", "lang", "lang"}},
		},
	}
}

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bookmarks.json")

	s := storage.NewJSONStorage(path)
	assert.NilError(t, s.Save(sampleStore()))

	_, err := os.Stat(path)
	assert.NilError(t, err)

	loaded, err := s.Load()
	assert.NilError(t, err)
	assert.Equal(t, len(loaded.Folders), 1)
	assert.Equal(t, len(loaded.Bookmarks), 2)
	assert.Equal(t, loaded.Bookmarks[0].Description, "A language")
	assert.Equal(t, loaded.Folders[0].Name, "Development")
}

func TestJSONStorage_LoadNonexistent(t *testing.T) {
	s := storage.NewJSONStorage(filepath.Join(t.TempDir(), "nonexistent.json"))

	store, err := s.Load()
	assert.NilError(t, err)
	assert.Assert(t, store.Folders != nil)
	assert.Assert(t, store.Bookmarks != nil)
	assert.Equal(t, len(store.Bookmarks), 0)
}

func TestJSONStorage_LoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	assert.NilError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := storage.NewJSONStorage(path).Load()
	assert.ErrorContains(t, err, "decode")
}

func TestJSONStorage_NullTagsBecomeEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	data := `{"folders":null,"bookmarks":[{"id":"b1","title":"x","url":"u","tags":null}]}`
	assert.NilError(t, os.WriteFile(path, []byte(data), 0644))

	store, err := storage.NewJSONStorage(path).Load()
	assert.NilError(t, err)
	assert.Assert(t, store.Folders != nil)
	assert.Assert(t, store.Bookmarks[0].Tags != nil)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := storage.Open(storage.StorageConfig{Backend: storage.BackendJSON, Path: filepath.Join(dir, "b.json")})
	assert.NilError(t, err)
	_, ok := s.(*storage.JSONStorage)
	assert.Assert(t, ok)

	s, err = storage.Open(storage.StorageConfig{Backend: storage.BackendSQLite, Path: filepath.Join(dir, "b.db")})
	assert.NilError(t, err)
	_, ok = s.(*storage.SQLiteStorage)
	assert.Assert(t, ok)
	assert.NilError(t, storage.Close(s))

	_, err = storage.Open(storage.StorageConfig{Backend: "postgres"})
	assert.Assert(t, errors.Is(err, storage.ErrUnknownBackend))
}

func TestCache(t *testing.T) {
	s := storage.NewJSONStorage(filepath.Join(t.TempDir(), "bookmarks.json"))
	assert.NilError(t, s.Save(sampleStore()))

	c, err := storage.NewCache(s)
	assert.NilError(t, err)
	assert.Equal(t, c.Len(), 2)

	names, err := c.TagNames()
	assert.NilError(t, err)
	assert.DeepEqual(t, names, []string{"go", "lang", "rust"})

	counts, err := c.TagCounts()
	assert.NilError(t, err)
	assert.DeepEqual(t, counts, []model.TagCount{{Name: "go", Count: 1}, {Name: "lang", Count: 2}, {Name: "rust", Count: 1}})

	b, err := c.Bookmark("b2")
	assert.NilError(t, err)
	assert.Equal(t, b.Title, "Go")

	_, err = c.Bookmark("missing")
	assert.Assert(t, errors.Is(err, storage.ErrNotFound))

	// copies are detached from the cache
	all := c.Bookmarks()
	all[0].Title = "changed"
	again, _ := c.Bookmark("b1")
	assert.Equal(t, again.Title, "Rust")
}

func TestCache_ReloadKeepsPreviousOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	s := storage.NewJSONStorage(path)
	assert.NilError(t, s.Save(sampleStore()))

	c, err := storage.NewCache(s)
	assert.NilError(t, err)

	assert.NilError(t, os.WriteFile(path, []byte("garbage"), 0644))
	assert.Assert(t, c.Reload() != nil)
	assert.Equal(t, c.Len(), 2)
}

func TestCache_Update(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	s := storage.NewJSONStorage(path)
	assert.NilError(t, s.Save(sampleStore()))

	c, err := storage.NewCache(s)
	assert.NilError(t, err)

	assert.NilError(t, c.Update(func(st *model.Store) error {
		return st.RemoveBookmark("b1")
	}))
	assert.Equal(t, c.Len(), 1)

	saved, err := s.Load()
	assert.NilError(t, err)
	assert.Equal(t, len(saved.Bookmarks), 1)

	// a failing edit leaves both copies alone
	err = c.Update(func(st *model.Store) error {
		st.Bookmarks = nil
		return st.RemoveBookmark("missing")
	})
	assert.ErrorIs(t, err, model.ErrBookmarkNotFound)
	assert.Equal(t, c.Len(), 1)
	saved, err = s.Load()
	assert.NilError(t, err)
	assert.Equal(t, len(saved.Bookmarks), 1)
}

func TestWatchCache_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	s := storage.NewJSONStorage(path)
	assert.NilError(t, s.Save(sampleStore()))

	c, err := storage.NewCache(s)
	assert.NilError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w, err := storage.WatchCache(ctx, c, path, zap.NewNop())
	assert.NilError(t, err)
	defer w.Stop()

	store := sampleStore()
	store.AddBookmark(model.Bookmark{ID: "b3", Title: "Zig", URL: "https://ziglang.org"})
	assert.NilError(t, s.Save(store))

	deadline := time.Now().Add(5 * time.Second)
	for c.Len() != 3 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	assert.Equal(t, c.Len(), 3)
}

func TestWatcher_DebouncesAndIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bookmarks.json")
	fired := make(chan struct{}, 10)

	w := storage.NewWatcher(path, func() { fired <- struct{}{} }, storage.WithDebounce(50*time.Millisecond))
	assert.NilError(t, w.Start(context.Background()))
	defer w.Stop()

	assert.NilError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))
	for i := 0; i < 3; i++ {
		assert.NilError(t, os.WriteFile(path, []byte("{}"), 0644))
	}

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not fire")
	}

	select {
	case <-fired:
		t.Fatal("writes were not coalesced")
	case <-time.After(300 * time.Millisecond):
	}
}
