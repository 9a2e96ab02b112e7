package resolver

import (
	"net/http"
	"time"

	"github.com/erraggy/apidef"
	"github.com/erraggy/apidef/apierrors"
	"github.com/erraggy/apidef/internal/httputil"
)

// Resolver defaults
const (
	// DefaultMaxDocuments bounds the number of documents in one resolved set,
	// root included.
	DefaultMaxDocuments = 100

	// DefaultConcurrency is the number of documents fetched at once.
	DefaultConcurrency = 8
)

// Option configures a Resolver.
type Option func(*config) error

type config struct {
	fetcher            Fetcher
	httpClient         *http.Client
	userAgent          string
	insecureSkipVerify bool
	timeout            time.Duration
	httpEnabled        bool
	maxFileSize        int64
	maxDocuments       int
	concurrency        int
	logger             Logger
}

func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		userAgent:    apidef.UserAgent(),
		httpEnabled:  true,
		maxFileSize:  DefaultMaxFileSize,
		maxDocuments: DefaultMaxDocuments,
		concurrency:  DefaultConcurrency,
		logger:       NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.httpClient != nil && cfg.insecureSkipVerify {
		cfg.logger.Warn("InsecureSkipVerify ignored when an HTTP client is provided; configure TLS on the client's transport")
	}
	return cfg, nil
}

// fetcherFor builds the default source fetcher unless one was injected.
func (c *config) fetcherFor() Fetcher {
	if c.fetcher != nil {
		return c.fetcher
	}
	src := &SourceFetcher{File: &FileFetcher{MaxFileSize: c.maxFileSize}}
	if c.httpEnabled {
		client := c.httpClient
		if client == nil {
			client = httputil.NewClient(c.timeout, c.insecureSkipVerify)
		}
		src.HTTP = &HTTPFetcher{Client: client, UserAgent: c.userAgent, MaxFileSize: c.maxFileSize}
	}
	return src
}

// WithFetcher replaces the file and HTTP fetchers. The size, timeout and
// client options do not apply to a custom fetcher.
func WithFetcher(f Fetcher) Option {
	return func(cfg *config) error {
		if f == nil {
			return &apierrors.ConfigError{Option: "fetcher", Message: "cannot be nil"}
		}
		cfg.fetcher = f
		return nil
	}
}

// WithHTTPClient sets the client used for http(s) documents.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) error {
		if client == nil {
			return &apierrors.ConfigError{Option: "HTTP client", Message: "cannot be nil"}
		}
		cfg.httpClient = client
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent with HTTP requests.
func WithUserAgent(ua string) Option {
	return func(cfg *config) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithInsecureSkipVerify disables TLS certificate verification for HTTP
// documents. It has no effect together with WithHTTPClient.
func WithInsecureSkipVerify(enabled bool) Option {
	return func(cfg *config) error {
		cfg.insecureSkipVerify = enabled
		return nil
	}
}

// WithTimeout sets the per-request HTTP timeout (default 30s).
func WithTimeout(d time.Duration) Option {
	return func(cfg *config) error {
		if d < 0 {
			return &apierrors.ConfigError{Option: "timeout", Value: d, Message: "must not be negative"}
		}
		cfg.timeout = d
		return nil
	}
}

// WithHTTP enables or disables fetching http(s) documents (enabled by default).
func WithHTTP(enabled bool) Option {
	return func(cfg *config) error {
		cfg.httpEnabled = enabled
		return nil
	}
}

// WithMaxFileSize limits the size of every fetched document. 0 restores the default.
func WithMaxFileSize(n int64) Option {
	return func(cfg *config) error {
		if n < 0 {
			return &apierrors.ConfigError{Option: "max file size", Value: n, Message: "must not be negative"}
		}
		if n == 0 {
			n = DefaultMaxFileSize
		}
		cfg.maxFileSize = n
		return nil
	}
}

// WithMaxDocuments limits the number of documents in a resolved set. 0
// restores the default.
func WithMaxDocuments(n int) Option {
	return func(cfg *config) error {
		if n < 0 {
			return &apierrors.ConfigError{Option: "max documents", Value: n, Message: "must not be negative"}
		}
		if n == 0 {
			n = DefaultMaxDocuments
		}
		cfg.maxDocuments = n
		return nil
	}
}

// WithConcurrency sets how many documents are fetched at once.
func WithConcurrency(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return &apierrors.ConfigError{Option: "concurrency", Value: n, Message: "must be at least 1"}
		}
		cfg.concurrency = n
		return nil
	}
}

// WithLogger sets the logger for resolution events.
func WithLogger(l Logger) Option {
	return func(cfg *config) error {
		if l == nil {
			l = NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}
