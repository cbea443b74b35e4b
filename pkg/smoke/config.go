/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package smoke

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/nscale/foody-smoke/pkg/foody"
)

const (
	// DefaultUsername is the fixture account the workflow logs in as.
	DefaultUsername = "IvaG1"

	// DefaultPassword is the fixture account password.
	DefaultPassword = "123456"
)

// defaultEnvPaths are searched in order for a .env file.
//
//nolint:gochecknoglobals
var defaultEnvPaths = []string{
	"../../.env", // From test/api/suites directory
	"test/.env",  // From the repository root
}

type Config struct {
	// BaseURL is the API root. When empty the suite starts an in-memory twin.
	BaseURL           string
	Username          string
	Password          string
	RequestTimeout    time.Duration
	ValidateResponses bool
	SkipIntegration   bool
	LogRequests       bool
	LogResponses      bool
}

// LoadConfig loads configuration from environment variables and .env files.
// Returns an error if required configuration values are missing.
func LoadConfig(envPaths ...string) (*Config, error) {
	if len(envPaths) == 0 {
		envPaths = defaultEnvPaths
	}

	loadEnvFile(envPaths)

	config := &Config{
		BaseURL:           strings.TrimSuffix(os.Getenv("FOODY_BASE_URL"), "/"),
		Username:          getStringWithDefault("FOODY_USERNAME", DefaultUsername),
		Password:          getStringWithDefault("FOODY_PASSWORD", DefaultPassword),
		RequestTimeout:    getDurationWithDefault("FOODY_REQUEST_TIMEOUT", 30*time.Second),
		ValidateResponses: getBoolWithDefault("FOODY_VALIDATE_RESPONSES", false),
		SkipIntegration:   getBoolWithDefault("SKIP_INTEGRATION", false),
		LogRequests:       getBoolWithDefault("FOODY_LOG_REQUESTS", false),
		LogResponses:      getBoolWithDefault("FOODY_LOG_RESPONSES", false),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// AddFlags registers flags that override the environment.
func (c *Config) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&c.BaseURL, "base-url", c.BaseURL, "Foody API root, e.g. http://localhost:86. Empty runs against an in-memory twin.")
	f.StringVar(&c.Username, "username", c.Username, "Account to authenticate as.")
	f.StringVar(&c.Password, "password", c.Password, "Password of the account.")
	f.DurationVar(&c.RequestTimeout, "request-timeout", c.RequestTimeout, "Per request timeout.")
	f.BoolVar(&c.ValidateResponses, "validate-responses", c.ValidateResponses, "Validate responses against the OpenAPI document.")
	f.BoolVar(&c.LogRequests, "log-requests", c.LogRequests, "Log every request line.")
	f.BoolVar(&c.LogResponses, "log-responses", c.LogResponses, "Log every response body.")
}

// Credentials returns the login fixture.
func (c *Config) Credentials() foody.Credentials {
	return foody.Credentials{
		Username: c.Username,
		Password: c.Password,
	}
}

// UseTwin reports whether no remote API is configured.
func (c *Config) UseTwin() bool {
	return c.BaseURL == ""
}

// Validate checks that all required configuration values are set.
func (c *Config) Validate() error {
	var missing []string

	required := map[string]string{
		"FOODY_USERNAME": c.Username,
		"FOODY_PASSWORD": c.Password,
	}

	for envVar, value := range required {
		if value == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s. Please set these environment variables or add them to a .env file", ErrConfiguration, strings.Join(missing, ", "))
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: FOODY_REQUEST_TIMEOUT must be positive", ErrConfiguration)
	}

	return nil
}

// getStringWithDefault gets a string from environment variable or returns default.
func getStringWithDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return defaultValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func loadEnvFile(envPaths []string) {
	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	// Existing environment variables win over the file.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}
