package model

import (
	"strings"

	"github.com/google/uuid"
)

// Folder groups bookmarks the way the browser they came from did. Search
// ignores folders; tags do the filtering.
type Folder struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"` // nil = root level
}

// NewID returns a fresh random identifier for bookmarks and folders.
func NewID() string {
	return uuid.NewString()
}

// NewFolder creates a folder under parentID, nil meaning the root.
func NewFolder(name string, parentID *string) Folder {
	return Folder{ID: NewID(), Name: name, ParentID: parentID}
}

// FolderPath joins folder names from the root down to id with " / ". The
// root, an unknown id and a parent cycle all end the walk.
func (s *Store) FolderPath(id *string) string {
	var names []string
	seen := make(map[string]bool)
	for id != nil && !seen[*id] {
		seen[*id] = true
		f := s.folderByID(*id)
		if f == nil {
			break
		}
		names = append(names, f.Name)
		id = f.ParentID
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, " / ")
}

// EnsureFolderPath returns the ID of the folder at path, a "/"-separated
// list of names from the root, adding any folder that is missing. An empty
// path is the root and yields nil.
func (s *Store) EnsureFolderPath(path string) *string {
	var parent *string
	for _, name := range strings.Split(path, "/") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if f := s.findFolder(name, parent); f != nil {
			id := f.ID
			parent = &id
			continue
		}
		f := NewFolder(name, parent)
		s.AddFolder(f)
		id := f.ID
		parent = &id
	}
	return parent
}

func (s *Store) folderByID(id string) *Folder {
	for i := range s.Folders {
		if s.Folders[i].ID == id {
			return &s.Folders[i]
		}
	}
	return nil
}
