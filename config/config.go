package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultJWTSecret signs tokens when no secret is configured. Production
// configuration is rejected while it is still in use.
const DefaultJWTSecret = "SECRET_KEY"

// DefaultFoodKeywords are the words a dictionary definition must mention for
// a novel ingredient to count as food-related.
var DefaultFoodKeywords = []string{"food", "ingredient", "cooking", "recipe"}

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost     string
	ServerPort     string
	AllowedOrigins []string

	// Logging configuration
	LogLevel  string
	LogFormat string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Upstream APIs
	SpoonacularAPIKey  string
	SpoonacularBaseURL string
	DictionaryBaseURL  string
	LLMAPIKey          string
	LLMAPIURL          string
	LLMModel           string
	LLMTemperature     float64
	HTTPTimeout        time.Duration

	// Recipe pipeline
	SearchResultCount         int
	SearchRateLimit           int
	UpstreamRequestsPerSecond float64
	CarbonMinEstimate         float64
	CarbonMaxEstimate         float64
	CarbonPlaceholder         float64
	CarbonProbe               bool
	DefaultMaxPrepTime        int
	DefaultMaxCarbonFootprint float64
	FoodKeywords              []string
	CacheTTL                  time.Duration
	PantryTTL                 time.Duration

	// Meal plan export
	S3BucketName string
	AWSRegion    string
}

// secretKeys are the values that may be supplied as Docker secret files
// instead of environment variables.
var secretKeys = []string{
	"db_password",
	"redis_password",
	"jwt_secret",
	"spoonacular_api_key",
	"llm_api_key",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "5000")
	v.SetDefault("allowed_origins", "http://localhost:5173,http://localhost:8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_name", "greenmeal")
	v.SetDefault("db_ssl_mode", "disable")
	v.SetDefault("sqlite_path", "users.db")

	v.SetDefault("redis_port", "6379")
	v.SetDefault("redis_db", 0)

	v.SetDefault("jwt_secret", DefaultJWTSecret)

	v.SetDefault("spoonacular_base_url", "https://api.spoonacular.com")
	v.SetDefault("dictionary_base_url", "https://api.dictionaryapi.dev/api/v2")
	v.SetDefault("llm_api_url", "https://generativelanguage.googleapis.com/v1beta/openai/chat/completions")
	v.SetDefault("llm_model", "gemini-2.0-flash")
	v.SetDefault("llm_temperature", 0.9)
	v.SetDefault("http_timeout", "30s")

	v.SetDefault("search_result_count", 5)
	v.SetDefault("search_rate_limit", 30)
	v.SetDefault("upstream_requests_per_second", 5.0)
	v.SetDefault("carbon_min_estimate", 0.1)
	v.SetDefault("carbon_max_estimate", 10.0)
	v.SetDefault("carbon_placeholder", 5.0)
	v.SetDefault("carbon_probe", true)
	v.SetDefault("default_max_prep_time", 120)
	v.SetDefault("default_max_carbon_footprint", 20.0)
	v.SetDefault("food_keywords", strings.Join(DefaultFoodKeywords, ","))
	v.SetDefault("cache_ttl", "24h")
	v.SetDefault("pantry_ttl", "24h")

	v.SetDefault("s3_bucket_name", "")
	v.SetDefault("aws_region", "us-east-1")
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	// Docker secrets fill sensitive values the environment left empty
	for _, key := range secretKeys {
		if os.Getenv(strings.ToUpper(key)) != "" {
			continue
		}
		if secret := readSecret(key); secret != "" {
			v.Set(key, secret)
		}
	}

	httpTimeout, err := time.ParseDuration(v.GetString("http_timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cacheTTL, err := time.ParseDuration(v.GetString("cache_ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	pantryTTL, err := time.ParseDuration(v.GetString("pantry_ttl"))
	if err != nil {
		return nil, fmt.Errorf("invalid PANTRY_TTL: %w", err)
	}

	cfg := &Config{
		Environment:    GetEnvironment(),
		ServerHost:     v.GetString("server_host"),
		ServerPort:     v.GetString("server_port"),
		AllowedOrigins: splitList(v.GetString("allowed_origins")),
		LogLevel:       v.GetString("log_level"),
		LogFormat:      v.GetString("log_format"),

		DBDriver:   strings.ToLower(v.GetString("db_driver")),
		DBHost:     v.GetString("db_host"),
		DBPort:     v.GetString("db_port"),
		DBUser:     v.GetString("db_user"),
		DBPassword: v.GetString("db_password"),
		DBName:     v.GetString("db_name"),
		DBSSLMode:  v.GetString("db_ssl_mode"),
		SQLitePath: v.GetString("sqlite_path"),

		RedisHost:     v.GetString("redis_host"),
		RedisPort:     v.GetString("redis_port"),
		RedisPassword: v.GetString("redis_password"),
		RedisDB:       v.GetInt("redis_db"),
		RedisURL:      v.GetString("redis_url"),

		JWTSecret: v.GetString("jwt_secret"),

		SpoonacularAPIKey:  v.GetString("spoonacular_api_key"),
		SpoonacularBaseURL: strings.TrimRight(v.GetString("spoonacular_base_url"), "/"),
		DictionaryBaseURL:  strings.TrimRight(v.GetString("dictionary_base_url"), "/"),
		LLMAPIKey:          v.GetString("llm_api_key"),
		LLMAPIURL:          v.GetString("llm_api_url"),
		LLMModel:           v.GetString("llm_model"),
		LLMTemperature:     v.GetFloat64("llm_temperature"),
		HTTPTimeout:        httpTimeout,

		SearchResultCount:         v.GetInt("search_result_count"),
		SearchRateLimit:           v.GetInt("search_rate_limit"),
		UpstreamRequestsPerSecond: v.GetFloat64("upstream_requests_per_second"),
		CarbonMinEstimate:         v.GetFloat64("carbon_min_estimate"),
		CarbonMaxEstimate:         v.GetFloat64("carbon_max_estimate"),
		CarbonPlaceholder:         v.GetFloat64("carbon_placeholder"),
		CarbonProbe:               v.GetBool("carbon_probe"),
		DefaultMaxPrepTime:        v.GetInt("default_max_prep_time"),
		DefaultMaxCarbonFootprint: v.GetFloat64("default_max_carbon_footprint"),
		FoodKeywords:              splitList(v.GetString("food_keywords")),
		CacheTTL:                  cacheTTL,
		PantryTTL:                 pantryTTL,

		S3BucketName: v.GetString("s3_bucket_name"),
		AWSRegion:    v.GetString("aws_region"),
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// RedisEnabled reports whether a Redis endpoint was configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
