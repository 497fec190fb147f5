package proxy

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// bodyTextXPath selects visible text nodes under <body> in document order
const bodyTextXPath = `//body//text()[not(ancestor::script) and not(ancestor::style)]`

// Document owns one parsed HTML tree for the duration of a request.
// It is not safe for concurrent use and must not be shared between requests.
type Document struct {
	doc *goquery.Document
}

// Element is a handle on a single element of a Document
type Element struct {
	sel *goquery.Selection
}

// TextNode is a handle on a single text node of a Document
type TextNode struct {
	node *html.Node
}

// ParseDocument parses raw HTML. The parser is permissive, so malformed
// markup is repaired rather than rejected. Scripting is disabled so that
// <noscript> content is parsed as elements rather than raw text.
func ParseDocument(raw string) (*Document, error) {
	root, err := html.ParseWithOptions(strings.NewReader(raw), html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{doc: goquery.NewDocumentFromNode(root)}, nil
}

// EachElement calls fn for every element in document order
func (d *Document) EachElement(fn func(Element)) {
	d.doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		fn(Element{sel: s})
	})
}

// TextNodes returns the visible text nodes of the body in document order
func (d *Document) TextNodes() []TextNode {
	root := d.root()
	if root == nil {
		return nil
	}

	nodes := htmlquery.Find(root, bodyTextXPath)
	out := make([]TextNode, 0, len(nodes))
	for _, n := range nodes {
		if n.Type == html.TextNode {
			out = append(out, TextNode{node: n})
		}
	}
	return out
}

// Title returns the text of the document title
func (d *Document) Title() string {
	return d.doc.Find("title").Text()
}

// SetTitle replaces the text of every title element
func (d *Document) SetTitle(title string) {
	d.doc.Find("title").SetText(title)
}

// HTML serializes the whole tree
func (d *Document) HTML() (string, error) {
	out, err := d.doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}
	return out, nil
}

func (d *Document) root() *html.Node {
	if len(d.doc.Nodes) == 0 {
		return nil
	}
	return d.doc.Nodes[0]
}

// Attr returns the attribute value and whether it exists
func (e Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// SetAttr overwrites an attribute value
func (e Element) SetAttr(name, value string) {
	e.sel.SetAttr(name, value)
}

// Text returns the character data
func (t TextNode) Text() string {
	return t.node.Data
}

// SetText replaces the character data
func (t TextNode) SetText(text string) {
	t.node.Data = text
}
