package termii

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the public Termii API host. Config does not fall back to
// it; callers pass it explicitly when they want it.
const DefaultBaseURL = "https://api.ng.termii.com"

// Config holds the values every request is built from. It is copied once
// into the client and never modified afterwards.
type Config struct {
	BaseURL string
	APIKey  string
}

type options struct {
	httpClient *resty.Client
	timeout    time.Duration
}

// Option customises the transport used by a Client.
type Option func(*options)

// WithHTTPClient makes the client issue requests through c instead of a
// freshly created resty client. Retry settings on c are left untouched.
func WithHTTPClient(c *resty.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithTimeout bounds every request with a context deadline of d. The HTTP
// client itself is not modified, so a client passed to WithHTTPClient keeps
// its own settings.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}
