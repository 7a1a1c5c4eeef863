package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/pouch/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/pouch-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("pouch-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the store to Netscape bookmark HTML format. Tags go to
// the TAGS attribute and descriptions to a DD line, which the importer reads
// back.
func ExportHTML(store *model.Store) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	writeItems(&b, store, nil, 1)

	b.WriteString("</DL><p>\n")

	return b.String()
}

// writeItems recursively writes folders and bookmarks for a given parent.
func writeItems(b *strings.Builder, store *model.Store, parentID *string, indent int) {
	prefix := strings.Repeat("    ", indent)

	for _, folder := range store.GetFoldersInFolder(parentID) {
		fmt.Fprintf(b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(folder.Name))
		fmt.Fprintf(b, "%s<DL><p>\n", prefix)

		folderID := folder.ID
		writeItems(b, store, &folderID, indent+1)

		fmt.Fprintf(b, "%s</DL><p>\n", prefix)
	}

	for _, bookmark := range store.GetBookmarksInFolder(parentID) {
		tags := ""
		if len(bookmark.Tags) > 0 {
			tags = fmt.Sprintf(" TAGS=\"%s\"", html.EscapeString(strings.Join(bookmark.Tags, ",")))
		}
		fmt.Fprintf(b,
			"%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\"%s>%s</A>\n",
			prefix,
			html.EscapeString(bookmark.URL),
			bookmark.CreatedAt.Unix(),
			tags,
			html.EscapeString(bookmark.Title),
		)
		if bookmark.Description != "" {
			fmt.Fprintf(b, "%s<DD>%s\n", prefix, html.EscapeString(bookmark.Description))
		}
	}
}
