package ecommerce

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/stockmesh/backend/internal/domain/integration"
)

// Adapter kinds understood by the factory table
const (
	KindSandbox = "sandbox"
	KindREST    = "rest"
)

// DefaultTimeout is the HTTP request timeout used when none is configured
const DefaultTimeout = 30 * time.Second

// Errors for channel configuration
var (
	ErrConfigMissingCode      = errors.New("ecommerce: channel code is required")
	ErrConfigUnknownKind      = errors.New("ecommerce: unknown adapter kind")
	ErrConfigMissingBaseURL   = errors.New("ecommerce: base url is required")
	ErrConfigMissingAPIKey    = errors.New("ecommerce: api key is required")
	ErrConfigMissingAPISecret = errors.New("ecommerce: api secret is required")
)

// ChannelConfig holds configuration for one sales channel
type ChannelConfig struct {
	// Code identifies the channel (e.g. "ebay")
	Code integration.ChannelCode
	// Kind selects the adapter implementation
	Kind string
	// BaseURL is the channel API root (REST) or listing URL root (sandbox)
	BaseURL string
	// APIKey is sent with every REST request
	APIKey string
	// APISecret signs REST requests
	APISecret string
	// Timeout bounds a single HTTP request
	Timeout time.Duration
	// Enabled channels are registered at startup
	Enabled bool
}

// Validate validates the configuration and fills defaults
func (c *ChannelConfig) Validate() error {
	if c.Code == "" {
		return ErrConfigMissingCode
	}
	if !c.Code.IsValid() {
		return integration.ErrInvalidChannelCode
	}
	c.Kind = strings.ToLower(strings.TrimSpace(c.Kind))
	if c.Kind == "" {
		c.Kind = KindSandbox
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}

	switch c.Kind {
	case KindSandbox:
		return nil
	case KindREST:
		if c.BaseURL == "" {
			return ErrConfigMissingBaseURL
		}
		if c.APIKey == "" {
			return ErrConfigMissingAPIKey
		}
		if c.APISecret == "" {
			return ErrConfigMissingAPISecret
		}
		c.BaseURL = strings.TrimRight(c.BaseURL, "/")
		return nil
	default:
		return ErrConfigUnknownKind
	}
}

// Sign returns the hex HMAC-SHA256 of a request using the API secret.
// The signed string is METHOD\nPATH\nTIMESTAMP\nBODY.
func (c *ChannelConfig) Sign(method, path, timestamp string, body []byte) string {
	var builder strings.Builder
	builder.WriteString(strings.ToUpper(method))
	builder.WriteByte('\n')
	builder.WriteString(path)
	builder.WriteByte('\n')
	builder.WriteString(timestamp)
	builder.WriteByte('\n')
	builder.Write(body)

	h := hmac.New(sha256.New, []byte(c.APISecret))
	h.Write([]byte(builder.String()))
	return hex.EncodeToString(h.Sum(nil))
}
