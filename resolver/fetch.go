package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/erraggy/apidef"
	"github.com/erraggy/apidef/internal/httputil"
)

// DefaultMaxFileSize is the largest document fetched when no limit is configured.
const DefaultMaxFileSize = 10 * 1024 * 1024 // 10MB

// Fetcher retrieves the raw bytes of a document.
type Fetcher interface {
	Fetch(ctx context.Context, loc Locator) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, loc Locator) ([]byte, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, loc Locator) ([]byte, error) {
	return f(ctx, loc)
}

// SizeError is returned when a document exceeds the configured size limit.
type SizeError struct {
	Limit int64
	Size  int64 // -1 when the size was not known up front
}

func (e *SizeError) Error() string {
	if e.Size < 0 {
		return fmt.Sprintf("document exceeds maximum size of %d bytes", e.Limit)
	}
	return fmt.Sprintf("document size %d bytes exceeds maximum of %d bytes", e.Size, e.Limit)
}

// FileFetcher reads documents from the local filesystem.
type FileFetcher struct {
	// MaxFileSize limits the document size; 0 means DefaultMaxFileSize
	MaxFileSize int64
}

// Fetch implements Fetcher.
func (f *FileFetcher) Fetch(ctx context.Context, loc Locator) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit := limitOrDefault(f.MaxFileSize)

	info, err := os.Stat(string(loc))
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", loc)
	}
	if info.Size() > limit {
		return nil, &SizeError{Limit: limit, Size: info.Size()}
	}
	return os.ReadFile(string(loc))
}

// HTTPFetcher downloads documents with GET requests. Redirects are followed
// by the client; any final status outside 2xx is an error.
type HTTPFetcher struct {
	// Client performs the requests; nil means httputil.NewClient(0, false)
	Client *http.Client
	// UserAgent is sent with every request; empty means apidef.UserAgent()
	UserAgent string
	// MaxFileSize limits the body size; 0 means DefaultMaxFileSize
	MaxFileSize int64
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, loc Locator) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, string(loc), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	userAgent := f.UserAgent
	if userAgent == "" {
		userAgent = apidef.UserAgent()
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", httputil.AcceptHeader)

	client := f.Client
	if client == nil {
		client = httputil.NewClient(0, false)
	}
	resp, err := client.Do(req) //nolint:gosec // URL comes from the document being resolved
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if !httputil.IsSuccessStatus(resp.StatusCode) {
		return nil, &httputil.StatusError{URL: string(loc), StatusCode: resp.StatusCode, Status: resp.Status}
	}

	limit := limitOrDefault(f.MaxFileSize)
	if resp.ContentLength > limit {
		return nil, &SizeError{Limit: limit, Size: resp.ContentLength}
	}
	// read one byte past the limit to detect oversized bodies without a Content-Length
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, &SizeError{Limit: limit, Size: -1}
	}
	return data, nil
}

// SourceFetcher dispatches to File or HTTP by locator kind. A nil HTTP
// fetcher disables remote documents.
type SourceFetcher struct {
	File Fetcher
	HTTP Fetcher
}

// Fetch implements Fetcher.
func (s *SourceFetcher) Fetch(ctx context.Context, loc Locator) ([]byte, error) {
	if loc.IsURL() {
		if s.HTTP == nil {
			return nil, fmt.Errorf("remote documents are disabled")
		}
		return s.HTTP.Fetch(ctx, loc)
	}
	if s.File == nil {
		return nil, fmt.Errorf("local documents are disabled")
	}
	return s.File.Fetch(ctx, loc)
}

func limitOrDefault(limit int64) int64 {
	if limit <= 0 {
		return DefaultMaxFileSize
	}
	return limit
}
