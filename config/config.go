package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Assessment core
	Thresholds ThresholdConfig
	Validation ValidationConfig

	// Collaborators
	Storage StorageConfig
	AutoGrap AutoGrapConfig
	Email    EmailConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port         int
	Mode         string
	RateLimitRPS int
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// ThresholdConfig carries the total-loss threshold fraction per policy type.
// Default is used when a policy type has no explicit entry.
type ThresholdConfig struct {
	PerPolicyType map[string]float64
	Default       float64
}

// ValidationConfig carries the monetary bounds and enumerations used by the
// input validator.
type ValidationConfig struct {
	MinPolicyValue      float64
	MaxPolicyValue      float64
	MinSalvageValue     float64
	MinRepairQuote      float64
	MaxRepairQuoteRatio float64
	PolicyTypes         []string
}

type StorageConfig struct {
	DecisionsPath string
	OutputDir     string
}

type AutoGrapConfig struct {
	APIKey             string
	BaseURL            string
	TimeoutSec         int
	MaxRetries         int
	RetryDelaySec      int
	RateLimitCalls     int
	RateLimitWindowSec int
	CacheSize          int
}

type EmailConfig struct {
	User       string
	Password   string
	SMTPServer string
	SMTPPort   int
	UseTLS     bool
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/crashify360/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/crashify360/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.HTTPServer.RateLimitRPS = viper.GetInt("http_server.rate_limit_rps")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Thresholds
	cfg.Thresholds.Default = viper.GetFloat64("thresholds.default")
	cfg.Thresholds.PerPolicyType = map[string]float64{}
	for policyType, fraction := range viper.GetStringMap("thresholds.per_policy_type") {
		if f, ok := toFloat(fraction); ok {
			cfg.Thresholds.PerPolicyType[strings.ToLower(policyType)] = f
		}
	}

	// Validation rules
	cfg.Validation.MinPolicyValue = viper.GetFloat64("validation.min_policy_value")
	cfg.Validation.MaxPolicyValue = viper.GetFloat64("validation.max_policy_value")
	cfg.Validation.MinSalvageValue = viper.GetFloat64("validation.min_salvage_value")
	cfg.Validation.MinRepairQuote = viper.GetFloat64("validation.min_repair_quote")
	cfg.Validation.MaxRepairQuoteRatio = viper.GetFloat64("validation.max_repair_quote_ratio")
	cfg.Validation.PolicyTypes = viper.GetStringSlice("validation.policy_types")

	// Storage
	cfg.Storage.DecisionsPath = viper.GetString("storage.decisions_path")
	cfg.Storage.OutputDir = viper.GetString("storage.output_dir")

	// Auto Grap valuation API
	cfg.AutoGrap.APIKey = viper.GetString("autograp.api_key")
	cfg.AutoGrap.BaseURL = viper.GetString("autograp.base_url")
	cfg.AutoGrap.TimeoutSec = viper.GetInt("autograp.timeout_sec")
	cfg.AutoGrap.MaxRetries = viper.GetInt("autograp.max_retries")
	cfg.AutoGrap.RetryDelaySec = viper.GetInt("autograp.retry_delay_sec")
	cfg.AutoGrap.RateLimitCalls = viper.GetInt("autograp.rate_limit_calls")
	cfg.AutoGrap.RateLimitWindowSec = viper.GetInt("autograp.rate_limit_window_sec")
	cfg.AutoGrap.CacheSize = viper.GetInt("autograp.cache_size")
	if key := viper.GetString("auto_grap_key"); key != "" {
		cfg.AutoGrap.APIKey = key
	}

	// Email
	cfg.Email.User = viper.GetString("email.user")
	cfg.Email.Password = viper.GetString("email.password")
	cfg.Email.SMTPServer = viper.GetString("email.smtp_server")
	cfg.Email.SMTPPort = viper.GetInt("email.smtp_port")
	cfg.Email.UseTLS = viper.GetBool("email.use_tls")
	if user := viper.GetString("email_user"); user != "" {
		cfg.Email.User = user
	}
	if pass := viper.GetString("email_pass"); pass != "" {
		cfg.Email.Password = pass
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("http_server.rate_limit_rps", 5)
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// Threshold fractions per policy type. Default covers any type without
	// an explicit entry.
	viper.SetDefault("thresholds.default", 0.70)
	viper.SetDefault("thresholds.per_policy_type", map[string]float64{
		"comprehensive":          0.70,
		"third_party_property":   0.70,
		"third_party_fire_theft": 0.70,
		"commercial":             0.65,
		"luxury":                 0.75,
	})

	viper.SetDefault("validation.min_policy_value", 1000.0)
	viper.SetDefault("validation.max_policy_value", 500000.0)
	viper.SetDefault("validation.min_salvage_value", 0.0)
	viper.SetDefault("validation.min_repair_quote", 0.0)
	viper.SetDefault("validation.max_repair_quote_ratio", 2.0)
	viper.SetDefault("validation.policy_types", []string{
		"comprehensive",
		"third_party_property",
		"third_party_fire_theft",
		"commercial",
	})

	viper.SetDefault("storage.decisions_path", "data/decisions.json")
	viper.SetDefault("storage.output_dir", "output")

	viper.SetDefault("autograp.base_url", "https://api.autograp.com.au/v2")
	viper.SetDefault("autograp.timeout_sec", 30)
	viper.SetDefault("autograp.max_retries", 3)
	viper.SetDefault("autograp.retry_delay_sec", 2)
	viper.SetDefault("autograp.rate_limit_calls", 100)
	viper.SetDefault("autograp.rate_limit_window_sec", 3600)
	viper.SetDefault("autograp.cache_size", 256)

	viper.SetDefault("email.smtp_server", "smtp.gmail.com")
	viper.SetDefault("email.smtp_port", 587)
	viper.SetDefault("email.use_tls", true)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
