package quickbooks

import (
	"fmt"
	"time"
)

const (
	authorizeURL = "https://appcenter.intuit.com/connect/oauth2"
	tokenURL     = "https://oauth.platform.intuit.com/oauth2/v1/tokens/bearer"

	sandboxAPIBaseURL    = "https://sandbox-quickbooks.api.intuit.com"
	productionAPIBaseURL = "https://quickbooks.api.intuit.com"

	accountingScope = "com.intuit.quickbooks.accounting"

	// minorVersion pins the QuickBooks API minor version we are tested against
	minorVersion = "65"
)

// Config holds the QuickBooks app credentials and endpoints
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Environment  string // "sandbox" or "production"
	Timeout      time.Duration

	// overridable in tests
	AuthorizeURL string
	TokenURL     string
	APIBaseURL   string
}

// Validate checks required fields and fills endpoint defaults
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("quickbooks: client id is required")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("quickbooks: client secret is required")
	}
	if c.RedirectURI == "" {
		return fmt.Errorf("quickbooks: redirect uri is required")
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.AuthorizeURL == "" {
		c.AuthorizeURL = authorizeURL
	}
	if c.TokenURL == "" {
		c.TokenURL = tokenURL
	}
	if c.APIBaseURL == "" {
		switch c.Environment {
		case "production":
			c.APIBaseURL = productionAPIBaseURL
		case "", "sandbox":
			c.APIBaseURL = sandboxAPIBaseURL
		default:
			return fmt.Errorf("quickbooks: unknown environment %q", c.Environment)
		}
	}
	return nil
}
