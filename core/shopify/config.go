package shopify

import (
	"fmt"
	"strings"
)

// Config holds the credentials and transport settings for one store.
type Config struct {
	// StoreName is the myshopify subdomain, e.g. "acme" for acme.myshopify.com.
	StoreName string `mapstructure:"store_name" default:""`
	// AccessToken is the Admin API access token.
	AccessToken string `mapstructure:"access_token" default:""`
	// APIVersion is the Admin API version used in the endpoint path.
	APIVersion string `mapstructure:"api_version" default:"2025-01"`
	// TimeoutSeconds bounds a single GraphQL request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxRetries is how many times a throttled request is retried.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
}

// Validate reports missing credentials. Commands call it before any item is processed.
func (c Config) Validate() error {
	var missing []string
	if c.StoreName == "" {
		missing = append(missing, "store_name")
	}
	if c.AccessToken == "" {
		missing = append(missing, "access_token")
	}
	if len(missing) > 0 {
		return fmt.Errorf("shopify config is missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// Endpoint returns the Admin GraphQL URL for the store.
func (c Config) Endpoint() string {
	version := c.APIVersion
	if version == "" {
		version = "2025-01"
	}
	return fmt.Sprintf("https://%s.myshopify.com/admin/api/%s/graphql.json", c.StoreName, version)
}
