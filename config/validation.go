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

// ValidationErrors collects every problem found in a configuration.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "is required"})
	}

	switch cfg.DBDriver {
	case "sqlite":
		if cfg.SQLitePath == "" {
			errs = append(errs, ValidationError{"SQLITE_PATH", "is required for the sqlite driver"})
		}
	case "postgres":
		if cfg.DBHost == "" || cfg.DBName == "" || cfg.DBUser == "" {
			errs = append(errs, ValidationError{"DB_HOST", "host, name and user are required for the postgres driver"})
		}
	default:
		errs = append(errs, ValidationError{"DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver)})
	}

	if cfg.SearchResultCount <= 0 {
		errs = append(errs, ValidationError{"SEARCH_RESULT_COUNT", "must be positive"})
	}
	if cfg.CarbonMinEstimate < 0 || cfg.CarbonMaxEstimate <= cfg.CarbonMinEstimate {
		errs = append(errs, ValidationError{"CARBON_MAX_ESTIMATE", "must be greater than CARBON_MIN_ESTIMATE"})
	}
	if cfg.DefaultMaxPrepTime <= 0 {
		errs = append(errs, ValidationError{"DEFAULT_MAX_PREP_TIME", "must be positive"})
	}
	if cfg.DefaultMaxCarbonFootprint <= 0 {
		errs = append(errs, ValidationError{"DEFAULT_MAX_CARBON_FOOTPRINT", "must be positive"})
	}
	if len(cfg.FoodKeywords) == 0 {
		errs = append(errs, ValidationError{"FOOD_KEYWORDS", "at least one keyword is required"})
	}

	if cfg.Environment == Production {
		if cfg.JWTSecret == "" || cfg.JWTSecret == DefaultJWTSecret {
			errs = append(errs, ValidationError{"JWT_SECRET", "jwt_secret secret is required"})
		}
		if cfg.SpoonacularAPIKey == "" {
			errs = append(errs, ValidationError{"SPOONACULAR_API_KEY", "spoonacular_api_key secret is required"})
		}
		if cfg.LLMAPIKey == "" {
			errs = append(errs, ValidationError{"LLM_API_KEY", "llm_api_key secret is required"})
		}
		if cfg.DBDriver == "postgres" && cfg.DBPassword == "" {
			errs = append(errs, ValidationError{"DB_PASSWORD", "db_password secret is required"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
