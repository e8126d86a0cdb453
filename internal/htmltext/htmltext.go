// Package htmltext turns a raw, possibly non-UTF-8 HTML payload into
// its visible text: the words a browser would actually render, with
// script, style, and document metadata stripped out.
package htmltext

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gogs/chardet"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// excludedTags are never considered visible text, mirroring a browser's
// treatment of metadata and non-rendered script/style content. "html"
// itself is deliberately absent: it wraps the entire document, so
// pruning it would discard every real page's text.
var excludedTags = map[string]struct{}{
	"style":  {},
	"script": {},
	"head":   {},
	"meta":   {},
}

// Extract decodes raw bytes to UTF-8 and returns the visible text of the
// HTML document it contains. Charset is auto-detected as described on
// decode.
func Extract(raw []byte) (string, error) {
	decoded, err := decode(raw)
	if err != nil {
		return "", fmt.Errorf("htmltext: decode: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(decoded))
	if err != nil {
		return "", fmt.Errorf("htmltext: parse: %w", err)
	}
	doc.Find("script, style, head, meta").Remove()

	var parts []string
	if len(doc.Nodes) > 0 {
		collectText(doc.Nodes[0], &parts)
	}
	return strings.Join(parts, " "), nil
}

// decode picks a charset for raw and returns it re-encoded as UTF-8. It
// uses the x/net charset sniffer first: a byte-order mark or a declared
// <meta> charset wins, and without either the text is read as UTF-8 when
// it is valid UTF-8 and as windows-1252 otherwise. The statistical
// detector runs only if reading through that first decoder fails.
func decode(raw []byte) (string, error) {
	if utf8Reader, err := charset.NewReader(strings.NewReader(string(raw)), ""); err == nil {
		if buf, readErr := io.ReadAll(utf8Reader); readErr == nil {
			return string(buf), nil
		}
	}

	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(raw)
	if err != nil || result == nil {
		return string(raw), nil
	}

	reader, err := charset.NewReaderLabel(result.Charset, strings.NewReader(string(raw)))
	if err != nil {
		return string(raw), nil
	}
	buf, err := io.ReadAll(reader)
	if err != nil {
		return string(raw), nil
	}
	return string(buf), nil
}

// collectText walks n's subtree in document order, appending the data
// of every text node whose immediate parent element is not excluded.
// goquery has already removed script/style/head/meta subtrees before
// this runs; the parent check here is a second line of defense rather
// than the primary filter, so a text node is never dropped because
// some unrelated ancestor further up the tree (like <html> itself)
// happens to be in excludedTags.
func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		if n.Parent == nil || !excluded(n.Parent.Data) {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				*parts = append(*parts, text)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

func excluded(tag string) bool {
	_, skip := excludedTags[tag]
	return skip
}
