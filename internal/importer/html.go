package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/nikbrunner/pouch/internal/model"
	"github.com/nikbrunner/pouch/internal/query"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML and returns folders + bookmarks.
// A TAGS attribute on an anchor becomes normalized tags and a DD right after
// it becomes the description.
func ParseHTMLBookmarks(r io.Reader) ([]model.Folder, []model.Bookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil, err
	}

	var folders []model.Folder
	var bookmarks []model.Bookmark

	// Track current folder stack for hierarchy
	var folderStack []*string // stack of folder IDs, nil = root
	var pendingFolder *model.Folder // folder waiting to be pushed on next DL
	lastBookmark := -1              // bookmark a following DD describes

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Folder definition - get name from text content
				name := getTextContent(n)
				if name != "" {
					// Get parent folder ID (current top of stack)
					var parentID *string
					if len(folderStack) > 0 {
						parentID = folderStack[len(folderStack)-1]
					}

					folder := model.NewFolder(name, parentID)
					folders = append(folders, folder)

					// Mark this folder as pending - will be pushed when we see the next DL
					pendingFolder = &folders[len(folders)-1]
				}
				lastBookmark = -1
				return // Don't recurse into H3

			case "a":
				// Bookmark definition
				href := getAttr(n, "href")
				if href == "" {
					// Skip bookmarks without URL
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href // fallback to URL as title
				}

				// Get parent folder ID (current top of stack)
				var folderID *string
				if len(folderStack) > 0 {
					folderID = folderStack[len(folderStack)-1]
				}

				// Parse ADD_DATE timestamp
				createdAt := time.Now()
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						createdAt = time.Unix(ts, 0)
					}
				}

				bookmark := model.Bookmark{
					ID:        model.NewID(),
					Title:     title,
					URL:       href,
					FolderID:  folderID,
					Tags:      parseTags(getAttr(n, "tags")),
					CreatedAt: createdAt,
					VisitedAt: nil,
				}
				bookmarks = append(bookmarks, bookmark)
				lastBookmark = len(bookmarks) - 1
				return // Don't recurse into A

			case "dd":
				if lastBookmark >= 0 {
					bookmarks[lastBookmark].Description = getOwnText(n)
					lastBookmark = -1
				}
				// A folder's DD may wrap its DL
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.ElementNode {
						parse(c)
					}
				}
				return

			case "dl":
				// Definition list - marks folder contents
				// If we have a pending folder, push it now
				pushedFolder := false
				lastBookmark = -1
				if pendingFolder != nil {
					id := pendingFolder.ID
					folderStack = append(folderStack, &id)
					pendingFolder = nil
					pushedFolder = true
				}

				// Process children
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				// Pop if we pushed
				if pushedFolder && len(folderStack) > 0 {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return // Don't recurse further, we handled children
			}
		}

		// Recurse into children
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return folders, bookmarks, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getOwnText returns the text directly inside n, ignoring child elements.
func getOwnText(n *html.Node) string {
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	return strings.Join(strings.Fields(text.String()), " ")
}

// parseTags splits a comma separated TAGS attribute into normalized names.
func parseTags(raw string) []string {
	tags := []string{}
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		name := query.NormalizeTag(part)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		tags = append(tags, name)
	}
	return tags
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
