package proxy

import (
	"net/url"
	"regexp"
	"strings"
)

// styleURLPattern matches url(...) with an optionally quoted target
var styleURLPattern = regexp.MustCompile(`url\(['"]?([^'")]+)['"]?\)`)

// RewriteStyleURLs resolves every url(...) reference in an inline style value
// against base. Each match is replaced in place; a reference that cannot be
// resolved keeps its original text. The second return is the number of
// references rewritten.
func RewriteStyleURLs(style string, base *url.URL) (string, int) {
	if !strings.Contains(style, "url(") {
		return style, 0
	}

	rewritten := 0
	out := styleURLPattern.ReplaceAllStringFunc(style, func(match string) string {
		sub := styleURLPattern.FindStringSubmatch(match)
		if len(sub) < 2 {
			return match
		}
		absolute, ok := Resolve(base, sub[1])
		if !ok {
			return match
		}
		rewritten++
		return "url('" + absolute + "')"
	})
	return out, rewritten
}
