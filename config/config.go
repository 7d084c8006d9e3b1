package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	AI        AIConfig        `mapstructure:"ai"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Search    SearchConfig    `mapstructure:"search"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Cleanup   CleanupConfig   `mapstructure:"cleanup"`
	LogLevel  string          `mapstructure:"log_level"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

// DatabaseConfig selects the GORM dialect. Driver is postgres in deployments;
// sqlite keeps the single-file portability the project started with.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
	Path     string `mapstructure:"path"`
}

// DSN builds the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig locates the cache. URL wins over the host/port pair when set,
// which is how hosted Redis providers hand out credentials.
type RedisConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the host:port pair for the Redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// AIConfig configures the generation provider port. Provider selects the
// adapter; the attempt count and backoff apply to every upstream call.
type AIConfig struct {
	Provider       string        `mapstructure:"provider"`
	GeminiAPIKey   string        `mapstructure:"gemini_api_key"`
	GeminiModel    string        `mapstructure:"gemini_model"`
	DeepSeekAPIKey string        `mapstructure:"deepseek_api_key"`
	DeepSeekAPIURL string        `mapstructure:"deepseek_api_url"`
	DeepSeekModel  string        `mapstructure:"deepseek_model"`
	Timeout        time.Duration `mapstructure:"timeout"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
	RetryBackoff   time.Duration `mapstructure:"retry_backoff"`
	CallsPerMinute int           `mapstructure:"calls_per_minute"`
}

type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type SearchConfig struct {
	MaxIngredients int `mapstructure:"max_ingredients"`
	MaxResults     int `mapstructure:"max_results"`
	CandidateLimit int `mapstructure:"candidate_limit"`
}

type CacheConfig struct {
	SuggestionCapacity int           `mapstructure:"suggestion_capacity"`
	ResponseTTL        time.Duration `mapstructure:"response_ttl"`
}

type RateLimitConfig struct {
	SearchPerHour int `mapstructure:"search_per_hour"`
}

type CleanupConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// LoadConfig builds the configuration from defaults and environment
// variables and validates it for the current environment.
func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "nileplate")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.path", "data/nileplate.db")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.gemini_model", "gemini-2.0-flash")
	v.SetDefault("ai.deepseek_model", "deepseek-chat")
	v.SetDefault("ai.timeout", 30*time.Second)
	v.SetDefault("ai.max_attempts", 2)
	v.SetDefault("ai.retry_backoff", 2*time.Second)
	v.SetDefault("ai.calls_per_minute", 15)

	v.SetDefault("auth.jwt_secret", "dev-secret-change-in-production")
	v.SetDefault("auth.session_ttl", 24*time.Hour)

	v.SetDefault("search.max_ingredients", 10)
	v.SetDefault("search.max_results", 10)
	v.SetDefault("search.candidate_limit", 10)

	v.SetDefault("cache.suggestion_capacity", 100)
	v.SetDefault("cache.response_ttl", 30*time.Minute)

	v.SetDefault("rate_limit.search_per_hour", 100)

	v.SetDefault("cleanup.interval", time.Hour)

	v.SetDefault("log_level", "info")
}

func bindEnvs(v *viper.Viper) {
	v.BindEnv("server.host", "SERVER_HOST")
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.cors_origins", "CORS_ORIGINS")

	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.name", "DB_NAME")
	v.BindEnv("database.ssl_mode", "DB_SSL_MODE")
	v.BindEnv("database.path", "DB_PATH")

	v.BindEnv("redis.url", "REDIS_URL")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")

	v.BindEnv("ai.provider", "AI_PROVIDER")
	v.BindEnv("ai.gemini_api_key", "GEMINI_API_KEY")
	v.BindEnv("ai.gemini_model", "GEMINI_MODEL")
	v.BindEnv("ai.deepseek_api_key", "DEEPSEEK_API_KEY")
	v.BindEnv("ai.deepseek_api_url", "DEEPSEEK_API_URL")
	v.BindEnv("ai.deepseek_model", "DEEPSEEK_MODEL")
	v.BindEnv("ai.timeout", "AI_TIMEOUT")
	v.BindEnv("ai.max_attempts", "AI_MAX_ATTEMPTS")
	v.BindEnv("ai.retry_backoff", "AI_RETRY_BACKOFF")
	v.BindEnv("ai.calls_per_minute", "AI_CALLS_PER_MINUTE")

	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.session_ttl", "SESSION_TTL")

	v.BindEnv("search.max_ingredients", "SEARCH_MAX_INGREDIENTS")
	v.BindEnv("search.max_results", "SEARCH_MAX_RESULTS")
	v.BindEnv("search.candidate_limit", "SEARCH_CANDIDATE_LIMIT")

	v.BindEnv("cache.suggestion_capacity", "CACHE_SUGGESTION_CAPACITY")
	v.BindEnv("cache.response_ttl", "CACHE_RESPONSE_TTL")

	v.BindEnv("rate_limit.search_per_hour", "RATE_LIMIT_SEARCH_PER_HOUR")

	v.BindEnv("cleanup.interval", "CLEANUP_INTERVAL")

	v.BindEnv("log_level", "LOG_LEVEL")
}

// MaskKey hides the middle of an API key for startup logging.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
