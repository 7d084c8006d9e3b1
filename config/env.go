package config

import "os"

// Environment is the runtime environment, derived from ENV. CI is detected
// automatically from the conventional CI variable.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment resolves the current environment. Unknown ENV values fall
// back to development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch os.Getenv("ENV") {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// IsProduction reports whether the service runs in production, where
// configuration validation refuses development credentials.
func IsProduction() bool {
	return GetEnvironment() == Production
}
