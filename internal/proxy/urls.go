package proxy

import (
	"net/url"
	"strings"
)

// ParseAbsolute validates a caller-supplied URL. It must be non-empty, parse,
// and carry an http(s) scheme and a host.
func ParseAbsolute(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, ErrURLRequired
	}

	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, &Error{Kind: KindInvalidURL, Message: MsgInvalidURL, Cause: err}
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil, ErrInvalidURL
	}

	if u.Host == "" {
		return nil, ErrInvalidURL
	}

	return u, nil
}

// Resolve resolves ref against base. The boolean is false when ref cannot be
// parsed, in which case the caller leaves the original value in place.
func Resolve(base *url.URL, ref string) (string, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", false
	}

	parsed, err := url.Parse(ref)
	if err != nil {
		return "", false
	}

	return base.ResolveReference(parsed).String(), true
}
