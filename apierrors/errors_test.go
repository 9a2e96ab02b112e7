package apierrors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestLoadError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &LoadError{
			Locator: "params/light.json",
			Message: "failed to read file",
			Cause:   errors.New("no such file or directory"),
		}
		want := "load error: params/light.json: failed to read file: no such file or directory"
		if err.Error() != want {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &LoadError{}
		if err.Error() != "load error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &LoadError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrLoad only", func(t *testing.T) {
		err := &LoadError{Locator: "x.json"}
		if !errors.Is(err, ErrLoad) {
			t.Error("LoadError should match ErrLoad")
		}
		if errors.Is(err, ErrUnsupportedFormat) {
			t.Error("LoadError should not match ErrUnsupportedFormat")
		}
	})

	t.Run("As extracts LoadError through wrapping", func(t *testing.T) {
		err := fmt.Errorf("loading: %w", &LoadError{Locator: "http://example.org/a.json"})
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			t.Fatal("errors.As should succeed")
		}
		if loadErr.Locator != "http://example.org/a.json" {
			t.Errorf("unexpected locator: %s", loadErr.Locator)
		}
	})

	t.Run("Is reaches wrapped cause", func(t *testing.T) {
		sentinel := errors.New("sentinel")
		err := &LoadError{Cause: fmt.Errorf("ctx: %w", sentinel)}
		if !errors.Is(err, sentinel) {
			t.Error("errors.Is should reach the cause chain")
		}
	})
}

func TestUnsupportedFormatError(t *testing.T) {
	supported := []SupportedVersions{
		{Family: "OpenAPI", Keys: []string{"2.0.x", "3.0.x", "3.1.x"}},
		{Family: "AsyncAPI", Keys: []string{"2.0.0", "2.1.0"}},
	}

	t.Run("Error message lists supported versions", func(t *testing.T) {
		err := &UnsupportedFormatError{
			Reason:    "AsyncAPI 3.0.0",
			Family:    "AsyncAPI",
			Version:   "3.0.0",
			Supported: supported,
		}
		want := "Unsupported API specification (AsyncAPI 3.0.0)\n" +
			"Please try again with an OpenAPI 2.0.x, 3.0.x, 3.1.x or AsyncAPI 2.0.0, 2.1.0 format."
		if err.Error() != want {
			t.Errorf("unexpected error message:\n%s", err.Error())
		}
	})

	t.Run("Error message without registry", func(t *testing.T) {
		err := &UnsupportedFormatError{Reason: "no version key"}
		if err.Error() != "Unsupported API specification (no version key)" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("field \"openapi\": expected string, got number")
		err := &UnsupportedFormatError{Reason: cause.Error(), Cause: cause}
		if !errors.Is(err, cause) {
			t.Error("errors.Is should reach the cause")
		}
	})

	t.Run("Is matches ErrUnsupportedFormat", func(t *testing.T) {
		err := fmt.Errorf("classify: %w", &UnsupportedFormatError{Supported: supported})
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Error("should match ErrUnsupportedFormat")
		}
		if errors.Is(err, ErrLoad) {
			t.Error("should not match ErrLoad")
		}
		if !strings.HasPrefix(err.Error(), "classify: Unsupported API specification") {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})
}

func TestConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigError
		want string
	}{
		{"empty", &ConfigError{}, "configuration error"},
		{"option only", &ConfigError{Option: "concurrency"}, "configuration error for concurrency"},
		{
			"all fields",
			&ConfigError{Option: "max documents", Value: -1, Message: "must not be negative"},
			"configuration error for max documents (value: -1): must not be negative",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, ErrConfig) {
				t.Error("ConfigError should match ErrConfig")
			}
		})
	}
}
