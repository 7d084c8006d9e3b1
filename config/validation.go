package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the configuration for the current environment.
// Development and test run fine on defaults; production refuses to start
// without a provider key and a real JWT secret.
func ValidateConfig(cfg *Config) error {
	var errs []string

	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, ValidationError{
			Field:   "database.driver",
			Message: fmt.Sprintf("unsupported driver %q (postgres or sqlite)", cfg.Database.Driver),
		}.Error())
	}

	switch cfg.AI.Provider {
	case "gemini", "deepseek":
	default:
		errs = append(errs, ValidationError{
			Field:   "ai.provider",
			Message: fmt.Sprintf("unsupported provider %q (gemini or deepseek)", cfg.AI.Provider),
		}.Error())
	}

	if cfg.AI.MaxAttempts < 1 {
		errs = append(errs, ValidationError{
			Field:   "ai.max_attempts",
			Message: "must be at least 1",
		}.Error())
	}

	if IsProduction() {
		switch cfg.AI.Provider {
		case "gemini":
			if cfg.AI.GeminiAPIKey == "" {
				errs = append(errs, ValidationError{
					Field:   "ai.gemini_api_key",
					Message: "GEMINI_API_KEY is required in production",
				}.Error())
			}
		case "deepseek":
			if cfg.AI.DeepSeekAPIKey == "" {
				errs = append(errs, ValidationError{
					Field:   "ai.deepseek_api_key",
					Message: "DEEPSEEK_API_KEY is required in production",
				}.Error())
			}
		}

		if cfg.Auth.JWTSecret == "" || strings.HasPrefix(cfg.Auth.JWTSecret, "dev-secret") {
			errs = append(errs, ValidationError{
				Field:   "auth.jwt_secret",
				Message: "JWT_SECRET must be set to a non-default value in production",
			}.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
