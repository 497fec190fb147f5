package proxy

import "strings"

// HTMLMediaType is the token a declared content type must contain
const HTMLMediaType = "text/html"

// CheckContentType accepts only HTML payloads. A missing header is rejected.
func CheckContentType(contentType string) error {
	if contentType == "" {
		return ErrInvalidContentType
	}
	if !strings.Contains(strings.ToLower(contentType), HTMLMediaType) {
		return ErrInvalidContentType
	}
	return nil
}
