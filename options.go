package go_facturacom

import (
	"net/http"
	"strings"
	"time"

	"github.com/stremovskyy/recorder"

	internalhttp "github.com/stremovskyy/go-facturacom/internal/http"
)

type clientConfig struct {
	apiKey    string
	secretKey string
	mode      Mode

	// baseURL overrides the mode-derived host. Mostly for tests and proxies.
	baseURL string

	userAgent string

	httpOptions *internalhttp.Options
	httpClient  *http.Client

	rec recorder.Recorder
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		mode:        ModeProduction,
		userAgent:   clientUserAgent(),
		httpOptions: internalhttp.DefaultOptions(),
	}
}

// Option configures the Facturacom client.
type Option func(*clientConfig)

// WithAPIKey sets the F-API-KEY credential.
func WithAPIKey(key string) Option {
	return func(c *clientConfig) {
		c.apiKey = strings.TrimSpace(key)
	}
}

// WithSecretKey sets the F-SECRET-KEY credential.
func WithSecretKey(secret string) Option {
	return func(c *clientConfig) {
		c.secretKey = strings.TrimSpace(secret)
	}
}

// WithMode selects sandbox or production. The mode is stored as given;
// an unrecognized value surfaces as InvalidModeError on the first request.
func WithMode(mode Mode) Option {
	return func(c *clientConfig) {
		c.mode = mode
	}
}

// WithBaseURL overrides the host derived from the mode.
func WithBaseURL(baseURL string) Option {
	return func(c *clientConfig) {
		baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.httpOptions.Timeout = d
	}
}

func WithKeepAlive(d time.Duration) Option {
	return func(c *clientConfig) {
		c.httpOptions.KeepAlive = d
	}
}

func WithMaxIdleConns(n int) Option {
	return func(c *clientConfig) {
		c.httpOptions.MaxIdleConns = n
	}
}

func WithIdleConnTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.httpOptions.IdleConnTimeout = d
	}
}

// WithClient overrides the underlying net/http client.
func WithClient(cl *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = cl
		if cl != nil {
			c.httpOptions.Timeout = cl.Timeout
		}
	}
}

// WithRecorder attaches a request/response recorder. Every API call then
// records its request, response or error payload tagged with the operation
// name and, where known, the record uid.
func WithRecorder(rec recorder.Recorder) Option {
	return func(c *clientConfig) {
		c.rec = rec
	}
}

// NewClient creates a Facturacom client with custom options.
func NewClient(opts ...Option) Facturacom {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	hc := internalhttp.NewClient(cfg.httpOptions)
	if cfg.httpClient != nil {
		hc.SetClient(cfg.httpClient)
	}

	return &client{
		http: hc,
		cfg:  cfg,
	}
}

// NewSandboxClient returns a client pointed at the sandbox host.
func NewSandboxClient(apiKey, secretKey string) Facturacom {
	return NewClient(WithAPIKey(apiKey), WithSecretKey(secretKey), WithMode(ModeSandbox))
}

// NewProductionClient returns a client pointed at the production host.
func NewProductionClient(apiKey, secretKey string) Facturacom {
	return NewClient(WithAPIKey(apiKey), WithSecretKey(secretKey), WithMode(ModeProduction))
}
