package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Parser   ParserConfig   `mapstructure:"parser"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	SLA      SLAConfig      `mapstructure:"sla"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsDir   string        `mapstructure:"migrations_dir"`
}

// ParserConfig holds import parser configuration
type ParserConfig struct {
	// Provider selects the parse backend: HEURISTIC or OPENAI.
	// OPENAI falls back to the heuristic parser when the API fails.
	Provider        string              `mapstructure:"provider"`
	DefaultBrand    string              `mapstructure:"default_brand"`
	DefaultChannels []string            `mapstructure:"default_channels"`
	BrandChannels   map[string][]string `mapstructure:"brand_channels"`
	MaxUploadBytes  int64               `mapstructure:"max_upload_bytes"`
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SLAConfig holds the per-stage time budgets in hours
type SLAConfig struct {
	Roteiro     int `mapstructure:"roteiro"`
	Audio       int `mapstructure:"audio"`
	Captacao    int `mapstructure:"captacao"`
	Edicao      int `mapstructure:"edicao"`
	Revisao     int `mapstructure:"revisao"`
	Aprovacao   int `mapstructure:"aprovacao"`
	Agendamento int `mapstructure:"agendamento"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)

	// Database defaults
	viper.SetDefault("database.path", "data/ostracker.db")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	viper.SetDefault("database.migrations_dir", "migrations")

	// Parser defaults
	viper.SetDefault("parser.provider", "HEURISTIC")
	viper.SetDefault("parser.default_channels", []string{"instagram"})
	viper.SetDefault("parser.max_upload_bytes", int64(10<<20))

	// OpenAI defaults
	viper.SetDefault("openai.model", "gpt-4o-mini")
	viper.SetDefault("openai.timeout", 60*time.Second)

	// SLA defaults, in hours per stage
	viper.SetDefault("sla.roteiro", 48)
	viper.SetDefault("sla.audio", 24)
	viper.SetDefault("sla.captacao", 72)
	viper.SetDefault("sla.edicao", 48)
	viper.SetDefault("sla.revisao", 24)
	viper.SetDefault("sla.aprovacao", 24)
	viper.SetDefault("sla.agendamento", 24)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	viper.BindEnv("openai.api_key", "OPENAI_API_KEY")
	viper.BindEnv("database.path", "DATABASE_PATH")
	viper.BindEnv("server.port", "SERVER_PORT")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Parser.Provider {
	case "HEURISTIC":
	case "OPENAI":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("openai.api_key is required when parser.provider is OPENAI")
		}
	default:
		return fmt.Errorf("parser.provider must be HEURISTIC or OPENAI, got %q", c.Parser.Provider)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	return nil
}
