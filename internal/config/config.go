package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/speechai/speechai-go/gateway"
)

// Config holds everything the example programs need to reach the
// gateway. The credential is read exactly once here and handed to the
// client at construction; nothing reads the process environment
// mid-call.
type Config struct {
	BaseURL        string        `mapstructure:"speech_ai_base_url"`
	APIKey         string        `mapstructure:"speech_ai_api_key"`
	AuthScheme     string        `mapstructure:"speech_ai_auth_scheme"`
	TimeoutSeconds int64         `mapstructure:"speech_ai_timeout_seconds"`
	Timeout        time.Duration `mapstructure:"-"`
	LogLevel       string        `mapstructure:"log_level"`
}

// Load reads configuration from the environment, with an optional .env
// file in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("speech_ai_base_url", "https://apim-ai-apis.azure-api.net")
	v.SetDefault("speech_ai_auth_scheme", "subscription-key")
	v.SetDefault("speech_ai_timeout_seconds", 30)
	v.SetDefault("log_level", "info")

	v.AutomaticEnv()
	// no default for the credential, so bind it explicitly
	_ = v.BindEnv("speech_ai_api_key", "SPEECH_AI_API_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("SPEECH_AI_API_KEY is not set")
	}
	if cfg.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid speech_ai_timeout_seconds (must be positive)")
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	return &cfg, nil
}

// Scheme maps the configured auth scheme name onto the gateway enum.
func (c *Config) Scheme() (gateway.AuthScheme, error) {
	switch c.AuthScheme {
	case "", "subscription-key":
		return gateway.AuthSubscriptionKey, nil
	case "bearer":
		return gateway.AuthBearer, nil
	case "api-key":
		return gateway.AuthAPIKey, nil
	default:
		return 0, fmt.Errorf("unknown auth scheme %q (must be subscription-key, bearer, or api-key)", c.AuthScheme)
	}
}

// Client builds a gateway client from the loaded configuration.
func (c *Config) Client() (*gateway.Client, error) {
	scheme, err := c.Scheme()
	if err != nil {
		return nil, err
	}

	return gateway.NewClient(gateway.NewConfig(
		c.BaseURL,
		c.APIKey,
		gateway.WithAuthScheme(scheme),
		gateway.WithTimeout(c.Timeout),
	))
}
