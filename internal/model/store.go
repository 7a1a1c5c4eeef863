package model

import (
	"errors"
	"sort"
	"strings"

	"github.com/nikbrunner/pouch/internal/query"
)

var (
	// ErrBookmarkNotFound is returned when a bookmark ID is unknown.
	ErrBookmarkNotFound = errors.New("bookmark not found")
	// ErrDuplicateURL is returned when a new bookmark's URL is already stored.
	ErrDuplicateURL = errors.New("URL already bookmarked")
)

// Store holds all bookmarks and folders.
type Store struct {
	Folders   []Folder   `json:"folders"`
	Bookmarks []Bookmark `json:"bookmarks"`
}

// TagCount pairs a tag name with the number of bookmarks carrying it.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// NewStore creates an empty Store with initialized slices.
func NewStore() *Store {
	return &Store{
		Folders:   []Folder{},
		Bookmarks: []Bookmark{},
	}
}

// AddBookmark appends a bookmark to the store.
func (s *Store) AddBookmark(b Bookmark) {
	if b.Tags == nil {
		b.Tags = []string{}
	}
	s.Bookmarks = append(s.Bookmarks, b)
}

// RemoveBookmark deletes the bookmark with the given ID.
func (s *Store) RemoveBookmark(id string) error {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].ID == id {
			s.Bookmarks = append(s.Bookmarks[:i], s.Bookmarks[i+1:]...)
			return nil
		}
	}
	return ErrBookmarkNotFound
}

// AddFolder appends a folder to the store.
func (s *Store) AddFolder(f Folder) {
	s.Folders = append(s.Folders, f)
}

// Insert creates a bookmark from params inside the folder at folderPath,
// creating missing folders on the way. Tags are normalized and an empty
// title falls back to the URL.
func (s *Store) Insert(params NewBookmarkParams, folderPath string) (Bookmark, error) {
	if s.HasBookmarkURL(params.URL) {
		return Bookmark{}, ErrDuplicateURL
	}
	if strings.TrimSpace(params.Title) == "" {
		params.Title = params.URL
	}
	params.Tags = NormalizeTags(params.Tags)
	params.FolderID = s.EnsureFolderPath(folderPath)

	b := NewBookmark(params)
	s.AddBookmark(b)
	return b, nil
}

// RenameTag replaces from with to on every bookmark carrying it, merging
// with to where both are present. Returns the number of bookmarks changed.
func (s *Store) RenameTag(from, to string) int {
	from, to = query.NormalizeTag(from), query.NormalizeTag(to)
	if from == "" || to == "" || from == to {
		return 0
	}
	changed := 0
	for i := range s.Bookmarks {
		b := &s.Bookmarks[i]
		if !b.HasTag(from) {
			continue
		}
		tags := make([]string, 0, len(b.Tags))
		for _, t := range b.Tags {
			if query.NormalizeTag(t) == from {
				t = to
			}
			tags = append(tags, t)
		}
		b.Tags = NormalizeTags(tags)
		changed++
	}
	return changed
}

// NormalizeTags normalizes names and drops empty and repeated ones, keeping
// first-seen order.
func NormalizeTags(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		name := query.NormalizeTag(n)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// GetBookmarksInFolder returns bookmarks with the given folder ID.
// Pass nil for root level bookmarks.
func (s *Store) GetBookmarksInFolder(folderID *string) []Bookmark {
	var result []Bookmark
	for _, b := range s.Bookmarks {
		if ptrEqual(b.FolderID, folderID) {
			result = append(result, b)
		}
	}
	return result
}

// GetFoldersInFolder returns folders with the given parent ID.
// Pass nil for root level folders.
func (s *Store) GetFoldersInFolder(parentID *string) []Folder {
	var result []Folder
	for _, f := range s.Folders {
		if ptrEqual(f.ParentID, parentID) {
			result = append(result, f)
		}
	}
	return result
}

// GetBookmarkByID finds a bookmark by ID, returns nil if not found.
func (s *Store) GetBookmarkByID(id string) *Bookmark {
	for i := range s.Bookmarks {
		if s.Bookmarks[i].ID == id {
			return &s.Bookmarks[i]
		}
	}
	return nil
}

// HasBookmarkURL reports whether a bookmark with this URL already exists.
func (s *Store) HasBookmarkURL(url string) bool {
	for _, b := range s.Bookmarks {
		if b.URL == url {
			return true
		}
	}
	return false
}

// ImportMerge adds imported folders and bookmarks, skipping URLs already
// present and reusing same-named folders at the same level.
// Returns the number of bookmarks added and skipped.
func (s *Store) ImportMerge(folders []Folder, bookmarks []Bookmark) (added, skipped int) {
	remap := make(map[string]string)
	for _, f := range folders {
		parent := f.ParentID
		if parent != nil {
			if mapped, ok := remap[*parent]; ok {
				parent = &mapped
			}
		}
		if existing := s.findFolder(f.Name, parent); existing != nil {
			remap[f.ID] = existing.ID
			continue
		}
		f.ParentID = parent
		s.Folders = append(s.Folders, f)
	}

	for _, b := range bookmarks {
		if s.HasBookmarkURL(b.URL) {
			skipped++
			continue
		}
		if b.FolderID != nil {
			if mapped, ok := remap[*b.FolderID]; ok {
				b.FolderID = &mapped
			}
		}
		s.AddBookmark(b)
		added++
	}
	return added, skipped
}

func (s *Store) findFolder(name string, parentID *string) *Folder {
	for i := range s.Folders {
		if s.Folders[i].Name == name && ptrEqual(s.Folders[i].ParentID, parentID) {
			return &s.Folders[i]
		}
	}
	return nil
}

// TagNames returns every distinct tag name, lowercased and sorted.
func (s *Store) TagNames() []string {
	counts := s.TagCounts()
	names := make([]string, len(counts))
	for i, c := range counts {
		names[i] = c.Name
	}
	return names
}

// TagCounts returns the number of bookmarks per tag, ordered by name.
func (s *Store) TagCounts() []TagCount {
	return CountTags(s.Bookmarks)
}

// CountTags tallies tags over the given bookmarks, ordered by name.
// A tag listed twice on the same bookmark counts once.
func CountTags(bookmarks []Bookmark) []TagCount {
	counts := make(map[string]int)
	for _, b := range bookmarks {
		seen := make(map[string]bool, len(b.Tags))
		for _, t := range b.Tags {
			name := strings.ToLower(strings.TrimSpace(t))
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			counts[name]++
		}
	}

	result := make([]TagCount, 0, len(counts))
	for name, n := range counts {
		result = append(result, TagCount{Name: name, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// ptrEqual compares two string pointers for equality.
func ptrEqual(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
