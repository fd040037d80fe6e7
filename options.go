package rsvped

import "time"

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver   string // "redis" or "postgres"
	addrs    []string
	password string
	url      string

	keyPrefix string
	readiness time.Duration
	now       func() time.Time
}

// WithRedis configures the client to read from (and import into) a Redis or Valkey instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithPostgres configures the client to read candidates from the RSVPed Postgres schema.
// Import is not available with this driver.
func WithPostgres(url string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = driverPostgres
		c.url = url
	})
}

// WithKeyPrefix sets the Redis namespace (default "rsvped:").
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithReadinessTimeout bounds how long New waits for the store.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readiness = d
	})
}

// WithClock overrides the time source used for recency scoring.
func WithClock(now func() time.Time) Option {
	return optionFunc(func(c *clientConfig) {
		c.now = now
	})
}
