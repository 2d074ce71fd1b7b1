package server

import "fmt"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// ArchiveReports uploads each finished run summary to object storage.
	ArchiveReports bool `mapstructure:"archive_reports" default:"false"`
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	return ":" + c.Port
}

// Validate checks the settings the server cannot start without.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("server port is not set")
	}
	return nil
}
