package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/erraggy/apidef/definition"
	"github.com/erraggy/apidef/resolver"
)

// definitionInput represents the two ways a definition can be provided to a tool.
// Exactly one of File or URL must be set.
type definitionInput struct {
	File string `json:"file,omitempty" jsonschema:"Path to an OpenAPI or AsyncAPI file on disk"`
	URL  string `json:"url,omitempty"  jsonschema:"URL to fetch an OpenAPI or AsyncAPI document from"`
}

// definitionCacheStore caches loaded definitions for the session. File inputs
// are keyed by (absolutePath, modTime) of the root document and URL inputs by
// URL string; each kind has its own LRU with its own TTL.
type definitionCacheStore struct {
	files *expirable.LRU[string, *definition.APIDefinition]
	urls  *expirable.LRU[string, *definition.APIDefinition]
}

const (
	fileKeyPrefix = "file:"
	urlKeyPrefix  = "url:"
)

func newDefinitionCache(size int, fileTTL, urlTTL time.Duration) *definitionCacheStore {
	return &definitionCacheStore{
		files: expirable.NewLRU[string, *definition.APIDefinition](size, nil, fileTTL),
		urls:  expirable.NewLRU[string, *definition.APIDefinition](size, nil, urlTTL),
	}
}

var defCache = newDefinitionCache(cfg.CacheMaxSize, cfg.CacheFileTTL, cfg.CacheURLTTL)

// inflight collapses concurrent loads of the same locator into one.
var inflight singleflight.Group

func (c *definitionCacheStore) lru(key string) *expirable.LRU[string, *definition.APIDefinition] {
	if strings.HasPrefix(key, urlKeyPrefix) {
		return c.urls
	}
	return c.files
}

// get returns a cached definition or nil.
func (c *definitionCacheStore) get(key string) *definition.APIDefinition {
	def, ok := c.lru(key).Get(key)
	if !ok {
		return nil
	}
	return def
}

// put stores a definition, evicting the least recently used entry of its kind
// when that LRU is full.
func (c *definitionCacheStore) put(key string, def *definition.APIDefinition) {
	c.lru(key).Add(key, def)
}

// reset clears all cached entries. Used in tests.
func (c *definitionCacheStore) reset() {
	c.files.Purge()
	c.urls.Purge()
}

// size returns the number of cached entries, expired ones included until the
// LRU drops them.
func (c *definitionCacheStore) size() int {
	return c.files.Len() + c.urls.Len()
}

// locator returns the single locator the input names.
func (s definitionInput) locator() (string, error) {
	switch {
	case s.File != "" && s.URL != "":
		return "", fmt.Errorf("exactly one of file or url must be provided (got 2)")
	case s.File != "":
		return s.File, nil
	case s.URL != "":
		if !resolver.Locator(s.URL).IsURL() {
			return "", fmt.Errorf("url must start with http:// or https://, got %q", s.URL)
		}
		return s.URL, nil
	default:
		return "", fmt.Errorf("exactly one of file or url must be provided (got 0)")
	}
}

// makeCacheKey creates a cache key for the given input. Changes to files
// referenced by the root are not detected; they expire with the TTL.
func makeCacheKey(s definitionInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "" // Can't stat, don't cache.
		}
		return fmt.Sprintf("%s%s:%d", fileKeyPrefix, absPath, info.ModTime().UnixNano())
	case s.URL != "":
		return urlKeyPrefix + s.URL
	default:
		return ""
	}
}

// resolverOptions applies the server configuration to every load.
func resolverOptions() []resolver.Option {
	opts := []resolver.Option{
		resolver.WithTimeout(cfg.FetchTimeout),
		resolver.WithMaxDocuments(cfg.MaxDocuments),
		resolver.WithMaxFileSize(cfg.MaxFileSize),
	}
	// SSRF-safe client for the root and every referenced URL unless private IPs are allowed.
	if !cfg.AllowPrivateIPs {
		opts = append(opts, resolver.WithHTTPClient(newSafeHTTPClient()))
	}
	return opts
}

// load resolves and classifies the definition, using the cache when enabled.
func (s definitionInput) load(ctx context.Context) (*definition.APIDefinition, error) {
	loc, err := s.locator()
	if err != nil {
		return nil, err
	}

	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
	}
	if key != "" {
		if cached := defCache.get(key); cached != nil {
			return cached, nil
		}
	}

	flightKey := key
	if flightKey == "" {
		flightKey = "locator:" + loc
	}
	v, err, _ := inflight.Do(flightKey, func() (any, error) {
		// shared by every waiting caller, so it must not die with the first one
		def, err := definition.Load(context.WithoutCancel(ctx), loc,
			definition.WithResolverOptions(resolverOptions()...))
		if err != nil {
			return nil, err
		}
		if key != "" {
			defCache.put(key, def)
		}
		return def, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*definition.APIDefinition), nil
}
