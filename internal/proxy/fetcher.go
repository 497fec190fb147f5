package proxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"

	"github.com/GriffinCanCode/faleproxy/backend/internal/providers/http/client"
)

// MaxBodySize limits upstream documents to 10MB
const MaxBodySize = 10 * 1024 * 1024

// FetchedDocument is the unprocessed result of a retrieval
type FetchedDocument struct {
	RawHTML     string
	ContentType string
	StatusCode  int
	FinalURL    string
}

// Fetcher retrieves a remote document. Implementations make a single attempt.
type Fetcher interface {
	Fetch(ctx context.Context, target *url.URL) (*FetchedDocument, error)
}

// HTTPFetcher fetches documents through the shared HTTP client
type HTTPFetcher struct {
	client  *client.Client
	maxBody int
}

// NewHTTPFetcher creates a fetcher. maxBody <= 0 uses MaxBodySize.
func NewHTTPFetcher(c *client.Client, maxBody int) *HTTPFetcher {
	if maxBody <= 0 {
		maxBody = MaxBodySize
	}
	return &HTTPFetcher{client: c, maxBody: maxBody}
}

// Fetch retrieves target. Transport failures, non-2xx statuses and bodies over
// the limit are returned as errors; the content type is not checked here. The
// limit is enforced while reading, so oversized bodies are never fully buffered.
func (f *HTTPFetcher) Fetch(ctx context.Context, target *url.URL) (*FetchedDocument, error) {
	urlStr := target.String()

	req, err := f.client.Request(ctx)
	if err != nil {
		return nil, err
	}
	req.SetResponseBodyLimit(f.maxBody)

	resp, err := f.client.ExecuteWithBreaker(target.Host, func() (*resty.Response, error) {
		return req.Get(urlStr)
	})
	if errors.Is(err, resty.ErrResponseBodyTooLarge) {
		return nil, fmt.Errorf("response body exceeds maximum of %d bytes", f.maxBody)
	}
	if err != nil {
		return nil, err
	}

	statusCode := resp.StatusCode()
	if statusCode < 200 || statusCode >= 300 {
		return nil, fmt.Errorf("request failed with status code %d", statusCode)
	}

	body := resp.Body()
	contentType := resp.Header().Get("Content-Type")

	finalURL := urlStr
	if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		finalURL = raw.Request.URL.String()
	}

	return &FetchedDocument{
		RawHTML:     DecodeBody(body, contentType),
		ContentType: contentType,
		StatusCode:  statusCode,
		FinalURL:    finalURL,
	}, nil
}

// DecodeBody converts body to UTF-8. The charset parameter of contentType wins;
// otherwise the encoding is detected from the bytes.
func DecodeBody(body []byte, contentType string) string {
	if len(body) == 0 {
		return ""
	}

	label := declaredCharset(contentType)
	if label == "" {
		label = DetectCharset(body)
	}

	r, err := charset.NewReaderLabel(label, bytes.NewReader(body))
	if err != nil {
		return string(body)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return string(body)
	}
	return string(decoded)
}

// DetectCharset detects the charset of data, defaulting to utf-8
func DetectCharset(data []byte) string {
	detector := chardet.NewTextDetector()
	result, err := detector.DetectBest(data)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

func declaredCharset(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return strings.ToLower(params["charset"])
}
