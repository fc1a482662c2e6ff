package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// urlPattern matches absolute http/https URLs in plain text.
// Whitespace, closing parentheses, and closing brackets terminate a match
// so that Markdown link syntax does not leak into the address.
var urlPattern = regexp.MustCompile(`https?://[^\s)\]]+`)

// htmlExtensions are file extensions routed to the DOM-based extractor.
var htmlExtensions = map[string]bool{
	".html":  true,
	".htm":   true,
	".xhtml": true,
}

// FromFile reads the document at path and extracts all absolute web
// addresses from it. HTML documents are parsed as a DOM; everything else
// is scanned as plain text. The returned slice is deduplicated and sorted.
func FromFile(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // document path comes from the user
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	if htmlExtensions[strings.ToLower(filepath.Ext(path))] {
		return HTML(f)
	}
	return Text(f)
}

// Text extracts absolute http/https addresses from plain text.
func Text(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return dedupe(urlPattern.FindAllString(string(data), -1)), nil
}

// HTML extracts absolute addresses from an HTML document.
// It collects href and src attribute values from the parsed DOM and
// additionally scans text nodes for bare URLs. The reader's charset is
// detected and converted to UTF-8 before parsing.
func HTML(r io.Reader) ([]string, error) {
	decoded, err := charset.NewReader(r, "text/html")
	if err != nil {
		return nil, fmt.Errorf("failed to detect document charset: %w", err)
	}

	doc, err := html.Parse(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML document: %w", err)
	}

	var addresses []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			for _, attr := range n.Attr {
				if attr.Key != "href" && attr.Key != "src" {
					continue
				}
				if isAbsolute(attr.Val) {
					addresses = append(addresses, strings.TrimSpace(attr.Val))
				}
			}
		case html.TextNode:
			addresses = append(addresses, urlPattern.FindAllString(n.Data, -1)...)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return dedupe(addresses), nil
}

// isAbsolute reports whether the value is an absolute http/https URL.
func isAbsolute(v string) bool {
	v = strings.TrimSpace(v)
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://")
}

// dedupe removes duplicates and sorts the addresses lexically.
// Sorting makes repeated extraction of the same document stable, which
// keeps run-to-run output diffable.
func dedupe(addresses []string) []string {
	seen := make(map[string]bool, len(addresses))
	unique := make([]string, 0, len(addresses))
	for _, addr := range addresses {
		if seen[addr] {
			continue
		}
		seen[addr] = true
		unique = append(unique, addr)
	}
	sort.Strings(unique)
	return unique
}
