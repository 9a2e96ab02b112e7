package resolver

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apidef/apierrors"
)

func TestApplyOptionsDefaults(t *testing.T) {
	cfg, err := applyOptions()
	require.NoError(t, err)

	assert.True(t, cfg.httpEnabled)
	assert.Equal(t, int64(DefaultMaxFileSize), cfg.maxFileSize)
	assert.Equal(t, DefaultMaxDocuments, cfg.maxDocuments)
	assert.Equal(t, DefaultConcurrency, cfg.concurrency)
	assert.IsType(t, NopLogger{}, cfg.logger)
	assert.NotEmpty(t, cfg.userAgent)

	src, ok := cfg.fetcherFor().(*SourceFetcher)
	require.True(t, ok)
	assert.NotNil(t, src.File)
	assert.NotNil(t, src.HTTP)
}

func TestApplyOptionsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		option Option
		field  string
	}{
		{"nil fetcher", WithFetcher(nil), "fetcher"},
		{"nil client", WithHTTPClient(nil), "HTTP client"},
		{"negative timeout", WithTimeout(-time.Second), "timeout"},
		{"negative file size", WithMaxFileSize(-1), "max file size"},
		{"negative documents", WithMaxDocuments(-1), "max documents"},
		{"zero concurrency", WithConcurrency(0), "concurrency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := applyOptions(tt.option)
			var cfgErr *apierrors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Option)

			_, err = New(tt.option)
			assert.ErrorIs(t, err, apierrors.ErrConfig)
		})
	}
}

func TestApplyOptionsValues(t *testing.T) {
	client := &http.Client{Timeout: time.Second}
	fetcher := FetcherFunc(func(context.Context, Locator) ([]byte, error) { return nil, nil })

	cfg, err := applyOptions(
		WithHTTPClient(client),
		WithUserAgent("custom/1.0"),
		WithMaxFileSize(1024),
		WithMaxDocuments(5),
		WithConcurrency(2),
		WithLogger(nil),
	)
	require.NoError(t, err)
	assert.Equal(t, "custom/1.0", cfg.userAgent)
	assert.Equal(t, int64(1024), cfg.maxFileSize)
	assert.Equal(t, 5, cfg.maxDocuments)
	assert.Equal(t, 2, cfg.concurrency)
	assert.IsType(t, NopLogger{}, cfg.logger)

	src := cfg.fetcherFor().(*SourceFetcher)
	httpFetcher := src.HTTP.(*HTTPFetcher)
	assert.Same(t, client, httpFetcher.Client)
	assert.Equal(t, "custom/1.0", httpFetcher.UserAgent)
	assert.Equal(t, int64(1024), httpFetcher.MaxFileSize)

	t.Run("zero restores defaults", func(t *testing.T) {
		cfg, err := applyOptions(WithMaxFileSize(0), WithMaxDocuments(0))
		require.NoError(t, err)
		assert.Equal(t, int64(DefaultMaxFileSize), cfg.maxFileSize)
		assert.Equal(t, DefaultMaxDocuments, cfg.maxDocuments)
	})

	t.Run("http disabled", func(t *testing.T) {
		cfg, err := applyOptions(WithHTTP(false))
		require.NoError(t, err)
		assert.Nil(t, cfg.fetcherFor().(*SourceFetcher).HTTP)
	})

	t.Run("custom fetcher", func(t *testing.T) {
		cfg, err := applyOptions(WithFetcher(fetcher))
		require.NoError(t, err)
		_, isSource := cfg.fetcherFor().(*SourceFetcher)
		assert.False(t, isSource)
	})

	t.Run("insecure client", func(t *testing.T) {
		cfg, err := applyOptions(WithInsecureSkipVerify(true), WithTimeout(5*time.Second))
		require.NoError(t, err)
		httpFetcher := cfg.fetcherFor().(*SourceFetcher).HTTP.(*HTTPFetcher)
		assert.Equal(t, 5*time.Second, httpFetcher.Client.Timeout)
		transport, ok := httpFetcher.Client.Transport.(*http.Transport)
		require.True(t, ok)
		assert.True(t, transport.TLSClientConfig.InsecureSkipVerify)
	})
}
