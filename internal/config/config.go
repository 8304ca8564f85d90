package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port"       validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level"  validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=json text"`

	// AllowedOrigins is the CORS allow list. Accepts a comma separated string
	// when supplied through the environment.
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"required,min=1,dive,required"`

	// Per-IP limit applied to the credential endpoints.
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"   validate:"gt=0"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"       validate:"required,url"`
	MaxConns int32  `mapstructure:"max_conns" validate:"gte=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=43200"` // Max 30 days
	BCryptCost           int    `mapstructure:"bcrypt_cost"            validate:"gte=4,lte=31"`
}

// RedisConfig configures the optional Redis backend for revoked tokens.
// When URL is empty an in-process store is used instead.
type RedisConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}
