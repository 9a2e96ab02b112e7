package definition

import (
	"github.com/erraggy/apidef/apierrors"
	"github.com/erraggy/apidef/resolver"
)

// Option configures Load.
type Option func(*loadConfig) error

type loadConfig struct {
	registry        *Registry
	resolverOptions []resolver.Option
}

func applyOptions(opts ...Option) (*loadConfig, error) {
	cfg := &loadConfig{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.registry == nil {
		cfg.registry = DefaultRegistry()
	}
	return cfg, nil
}

// WithRegistry classifies against registry instead of DefaultRegistry().
func WithRegistry(registry *Registry) Option {
	return func(cfg *loadConfig) error {
		if registry == nil {
			return &apierrors.ConfigError{Option: "registry", Message: "cannot be nil"}
		}
		cfg.registry = registry
		return nil
	}
}

// WithResolverOptions passes options to the resolver, such as
// resolver.WithTimeout or resolver.WithLogger.
func WithResolverOptions(opts ...resolver.Option) Option {
	return func(cfg *loadConfig) error {
		cfg.resolverOptions = append(cfg.resolverOptions, opts...)
		return nil
	}
}
