package proxy

import (
	"net/url"
	"strings"
)

// urlAttributes are rewritten to absolute form on every element
var urlAttributes = []string{"href", "src"}

// TransformStats counts what a transformation changed
type TransformStats struct {
	URLsRewritten      int
	StyleURLsRewritten int
	TextNodesRewritten int
}

// TransformResult is the serialized tree and the rewritten title
type TransformResult struct {
	HTML  string
	Title string
	Stats TransformStats
}

// Transformer rewrites fetched documents
type Transformer struct {
	subs Substitutions
}

// NewTransformer creates a transformer using the default substitution table
func NewTransformer() *Transformer {
	return &Transformer{subs: DefaultSubstitutions}
}

// Transform parses raw, absolutizes URL-bearing attributes against base, then
// substitutes text in body text nodes and the title. URL rewriting always runs
// first and only touches attributes; substitution only touches text nodes.
func (t *Transformer) Transform(raw string, base *url.URL) (*TransformResult, error) {
	doc, err := ParseDocument(raw)
	if err != nil {
		return nil, err
	}

	var stats TransformStats
	t.absolutize(doc, base, &stats)
	title := t.substitute(doc, &stats)

	out, err := doc.HTML()
	if err != nil {
		return nil, err
	}

	return &TransformResult{
		HTML:  out,
		Title: title,
		Stats: stats,
	}, nil
}

func (t *Transformer) absolutize(doc *Document, base *url.URL, stats *TransformStats) {
	doc.EachElement(func(el Element) {
		for _, attr := range urlAttributes {
			value, exists := el.Attr(attr)
			if !exists || value == "" {
				continue
			}
			if absolute, ok := Resolve(base, value); ok {
				el.SetAttr(attr, absolute)
				stats.URLsRewritten++
			}
		}

		style, exists := el.Attr("style")
		if !exists || !strings.Contains(style, "url(") {
			return
		}
		updated, n := RewriteStyleURLs(style, base)
		if n > 0 {
			el.SetAttr("style", updated)
			stats.StyleURLsRewritten += n
		}
	})
}

func (t *Transformer) substitute(doc *Document, stats *TransformStats) string {
	for _, node := range doc.TextNodes() {
		text := node.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		if replaced := t.subs.Apply(text); replaced != text {
			node.SetText(replaced)
			stats.TextNodesRewritten++
		}
	}

	title := t.subs.Apply(doc.Title())
	doc.SetTitle(title)
	return title
}
