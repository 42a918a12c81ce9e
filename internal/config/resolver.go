package config

// Resolver hands out the SummerDB API base address captured at startup.
// The value never changes after construction, so any number of goroutines
// may call ResolveAPIBase concurrently.
type Resolver struct {
	apiBase string
}

// NewResolver captures the configured base address.
func NewResolver(cfg *Config) *Resolver {
	return &Resolver{apiBase: cfg.Upstream.BaseURL}
}

// StaticResolver returns a Resolver holding base as-is. Useful for tests and
// for embedding the forwarder without a Config.
func StaticResolver(base string) *Resolver {
	return &Resolver{apiBase: base}
}

// ResolveAPIBase returns the base address, or "" when it was never set.
// Callers decide whether an empty value is fatal.
func (r *Resolver) ResolveAPIBase() string {
	return r.apiBase
}
