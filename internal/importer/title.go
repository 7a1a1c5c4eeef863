package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// maxTitleBytes bounds how much of a page is read looking for its title.
const maxTitleBytes = 512 << 10

// FetchTitle downloads rawURL and returns the text of its <title> element
// with whitespace collapsed. A page without a title yields "".
func FetchTitle(ctx context.Context, client *http.Client, rawURL string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "pouch/1")
	req.Header.Set("Accept", "text/html")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("fetch %s: %s", rawURL, resp.Status)
	}
	return ParseTitle(io.LimitReader(resp.Body, maxTitleBytes)), nil
}

// ParseTitle scans an HTML document for the first <title> outside of <svg>
// and returns its collapsed text.
func ParseTitle(r io.Reader) string {
	z := html.NewTokenizer(r)
	svgDepth := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Svg:
				svgDepth++
			case atom.Title:
				if svgDepth == 0 {
					return readTitle(z)
				}
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) == atom.Svg && svgDepth > 0 {
				svgDepth--
			}
		}
	}
}

func readTitle(z *html.Tokenizer) string {
	var text strings.Builder
	for {
		switch z.Next() {
		case html.TextToken:
			text.Write(z.Text())
		case html.ErrorToken, html.EndTagToken, html.StartTagToken:
			return strings.Join(strings.Fields(text.String()), " ")
		}
	}
}
