// Package linkcheck requests bookmark URLs and sorts them into healthy, dead
// and unreachable.
package linkcheck

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nikbrunner/pouch/internal/model"
)

// DeadTag is the tag "pouch check --tag-dead" puts on dead bookmarks.
const DeadTag = "dead"

// Status is the health of one URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx
	Dead                      // 404 or 410
	Unreachable               // network failure, timeout, other status
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Dead:
		return "dead"
	case Unreachable:
		return "unreachable"
	}
	return "unknown"
}

// Result is the check outcome for one bookmark.
type Result struct {
	BookmarkID string
	Title      string
	URL        string
	Status     Status
	StatusCode int    // 0 when no response arrived
	Reason     string // short explanation for Unreachable
}

// ProgressFunc is called after each URL is checked.
type ProgressFunc func(done, total int)

// Options configures a Checker. Zero fields take defaults.
type Options struct {
	Concurrency int
	Timeout     time.Duration
	// PrivateDomains turn 404s into Unreachable, since hosts like private
	// git forges answer 404 when auth is missing.
	PrivateDomains []string
	Client         *http.Client
	Logger         *zap.Logger
}

// Checker runs URL checks over a worker pool.
type Checker struct {
	client      *http.Client
	concurrency int
	private     map[string]bool
	logger      *zap.Logger
}

// New creates a Checker.
func New(opts Options) *Checker {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	private := make(map[string]bool, len(opts.PrivateDomains))
	for _, d := range opts.PrivateDomains {
		private[strings.ToLower(strings.TrimSpace(d))] = true
	}

	return &Checker{
		client:      client,
		concurrency: opts.Concurrency,
		private:     private,
		logger:      logger,
	}
}

// Check requests every bookmark and returns results in input order. Bookmarks
// left unchecked when ctx ends are reported Unreachable.
func (c *Checker) Check(ctx context.Context, bookmarks []model.Bookmark, onProgress ProgressFunc) []Result {
	if len(bookmarks) == 0 {
		return nil
	}

	results := make([]Result, len(bookmarks))
	jobs := make(chan int)
	var wg sync.WaitGroup

	var mu sync.Mutex
	done := 0

	workers := c.concurrency
	if workers > len(bookmarks) {
		workers = len(bookmarks)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = c.checkOne(ctx, bookmarks[idx])
				if onProgress != nil {
					mu.Lock()
					done++
					onProgress(done, len(bookmarks))
					mu.Unlock()
				}
			}
		}()
	}

	sent := 0
feed:
	for ; sent < len(bookmarks); sent++ {
		select {
		case jobs <- sent:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	for i := sent; i < len(bookmarks); i++ {
		results[i] = newResult(bookmarks[i])
		results[i].Status = Unreachable
		results[i].Reason = "Canceled"
	}
	return results
}

func newResult(b model.Bookmark) Result {
	return Result{BookmarkID: b.ID, Title: b.Title, URL: b.URL}
}

func (c *Checker) checkOne(ctx context.Context, b model.Bookmark) Result {
	r := newResult(b)

	// HEAD first; some servers reject it, so fall back to GET.
	resp, err := c.do(ctx, http.MethodHead, b.URL)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed {
		if resp != nil {
			resp.Body.Close()
		}
		resp, err = c.do(ctx, http.MethodGet, b.URL)
	}
	if err != nil {
		r.Status = Unreachable
		r.Reason = reason(err)
		c.logger.Debug("link unreachable", zap.String("url", b.URL), zap.Error(err))
		return r
	}
	defer resp.Body.Close()

	r.StatusCode = resp.StatusCode
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		r.Status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		if c.isPrivate(b.URL) {
			r.Status = Unreachable
			r.Reason = "Possibly private (auth required)"
		} else {
			r.Status = Dead
		}
	default:
		r.Status = Unreachable
		r.Reason = http.StatusText(resp.StatusCode)
	}
	return r
}

func (c *Checker) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "pouch-linkcheck/1")
	return c.client.Do(req)
}

// isPrivate matches the URL host and its parent domains.
func (c *Checker) isPrivate(rawURL string) bool {
	if len(c.private) == 0 {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for host != "" {
		if c.private[host] {
			return true
		}
		i := strings.IndexByte(host, '.')
		if i < 0 {
			break
		}
		host = host[i+1:]
	}
	return false
}

// reason maps transport errors onto short labels.
func reason(err error) string {
	if errors.Is(err, context.Canceled) {
		return "Canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "Timeout"
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no such host"):
		return "DNS failure"
	case strings.Contains(msg, "timeout"):
		return "Timeout"
	case strings.Contains(msg, "connection refused"):
		return "Connection refused"
	case strings.Contains(msg, "certificate"), strings.Contains(msg, "tls:"):
		return "TLS error"
	case strings.Contains(msg, "network is unreachable"):
		return "Network unreachable"
	}
	return err.Error()
}

// DeadIDs returns the IDs of results with status Dead.
func DeadIDs(results []Result) []string {
	var ids []string
	for _, r := range results {
		if r.Status == Dead {
			ids = append(ids, r.BookmarkID)
		}
	}
	return ids
}

// TagDead adds DeadTag to the listed bookmarks in store and reports how many
// changed.
func TagDead(store *model.Store, ids []string) int {
	changed := 0
	for _, id := range ids {
		b := store.GetBookmarkByID(id)
		if b == nil || hasTag(b.Tags, DeadTag) {
			continue
		}
		b.Tags = append(b.Tags, DeadTag)
		changed++
	}
	return changed
}

func hasTag(tags []string, name string) bool {
	for _, t := range tags {
		if t == name {
			return true
		}
	}
	return false
}
