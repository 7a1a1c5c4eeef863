package linkcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/pouch/internal/model"
)

func newSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/get-only", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func bookmark(id, url string) model.Bookmark {
	return model.Bookmark{ID: id, Title: id, URL: url, Tags: []string{}}
}

func TestCheck_Statuses(t *testing.T) {
	srv := newSite(t)
	c := New(Options{Concurrency: 2})

	results := c.Check(context.Background(), []model.Bookmark{
		bookmark("ok", srv.URL+"/ok"),
		bookmark("missing", srv.URL+"/missing"),
		bookmark("gone", srv.URL+"/gone"),
		bookmark("broken", srv.URL+"/broken"),
		bookmark("get", srv.URL+"/get-only"),
	}, nil)

	assert.Equal(t, len(results), 5)
	assert.Equal(t, results[0].Status, Healthy)
	assert.Equal(t, results[1].Status, Dead)
	assert.Equal(t, results[1].StatusCode, http.StatusNotFound)
	assert.Equal(t, results[2].Status, Dead)
	assert.Equal(t, results[3].Status, Unreachable)
	assert.Equal(t, results[3].Reason, "Internal Server Error")
	assert.Equal(t, results[4].Status, Healthy)
	assert.DeepEqual(t, DeadIDs(results), []string{"missing", "gone"})
}

func TestCheck_PrivateDomain(t *testing.T) {
	srv := newSite(t)
	c := New(Options{PrivateDomains: []string{"127.0.0.1"}})

	results := c.Check(context.Background(), []model.Bookmark{bookmark("p", srv.URL+"/missing")}, nil)
	assert.Equal(t, results[0].Status, Unreachable)
	assert.Equal(t, results[0].Reason, "Possibly private (auth required)")
}

func TestCheck_Unreachable(t *testing.T) {
	srv := newSite(t)
	url := srv.URL + "/ok"
	srv.Close()

	results := New(Options{}).Check(context.Background(), []model.Bookmark{bookmark("x", url)}, nil)
	assert.Equal(t, results[0].Status, Unreachable)
	assert.Equal(t, results[0].StatusCode, 0)
}

func TestCheck_Progress(t *testing.T) {
	srv := newSite(t)
	var calls atomic.Int32
	var last atomic.Int32

	New(Options{Concurrency: 3}).Check(context.Background(), []model.Bookmark{
		bookmark("a", srv.URL+"/ok"),
		bookmark("b", srv.URL+"/ok"),
		bookmark("c", srv.URL+"/ok"),
		bookmark("d", srv.URL+"/ok"),
	}, func(done, total int) {
		calls.Add(1)
		assert.Check(t, total == 4)
		last.Store(int32(done))
	})

	assert.Equal(t, calls.Load(), int32(4))
	assert.Equal(t, last.Load(), int32(4))
}

func TestCheck_Canceled(t *testing.T) {
	srv := newSite(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := New(Options{}).Check(ctx, []model.Bookmark{bookmark("a", srv.URL+"/ok")}, nil)
	assert.Equal(t, results[0].Status, Unreachable)
	assert.Equal(t, results[0].Reason, "Canceled")
}

func TestIsPrivate_ParentDomain(t *testing.T) {
	c := New(Options{PrivateDomains: []string{"GitHub.com"}})
	assert.Assert(t, c.isPrivate("https://api.github.com/repos/x"))
	assert.Assert(t, c.isPrivate("https://github.com/me/private"))
	assert.Assert(t, !c.isPrivate("https://notgithub.com/"))
}

func TestTagDead(t *testing.T) {
	store := model.NewStore()
	store.AddBookmark(bookmark("a", "https://a"))
	store.AddBookmark(model.Bookmark{ID: "b", URL: "https://b", Tags: []string{"dead"}})

	assert.Equal(t, TagDead(store, []string{"a", "b", "zzz"}), 1)
	assert.DeepEqual(t, store.GetBookmarkByID("a").Tags, []string{"dead"})
	assert.DeepEqual(t, store.GetBookmarkByID("b").Tags, []string{"dead"})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, Dead.String(), "dead")
	assert.Equal(t, Status(9).String(), "unknown")
}
