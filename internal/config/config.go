package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/thywilljoshua/secsum/internal/ai"
)

const EnvPrefix = "SECSUM"

// Config holds the settings of a summarize run. Keys match the CLI flag names.
type Config struct {
	Provider  string        `mapstructure:"ai"`
	Model     string        `mapstructure:"model"`
	BaseURL   string        `mapstructure:"base-url"`
	APIKey    string        `mapstructure:"api-key"`
	Timeout   time.Duration `mapstructure:"timeout"`
	MaxLength int           `mapstructure:"max-length"`
	MinLength int           `mapstructure:"min-length"`
	Out       string        `mapstructure:"out"`
}

// Defaults registers every key so env and config file values are seen by Unmarshal
// even when no flag is bound.
func Defaults(v *viper.Viper) {
	opts := ai.DefaultOptions()
	v.SetDefault("ai", string(ai.ProviderHuggingFace))
	v.SetDefault("model", "")
	v.SetDefault("base-url", "")
	v.SetDefault("api-key", "")
	v.SetDefault("timeout", 2*time.Minute)
	v.SetDefault("max-length", opts.MaxLength)
	v.SetDefault("min-length", opts.MinLength)
	v.SetDefault("out", "summarized_output.txt")
	v.SetDefault("config", "")
}

// LoadDotEnv loads .env files if present. Existing environment wins.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// Load resolves configuration from, lowest to highest precedence: defaults,
// config file (key "config"), SECSUM_* environment, bound flags.
func Load(v *viper.Viper) (*Config, error) {
	Defaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = providerKey(cfg.Provider)
	}
	return &cfg, cfg.Validate()
}

// providerKey falls back to the variable each provider's own tooling uses.
func providerKey(provider string) string {
	switch ai.Provider(strings.ToLower(provider)) {
	case ai.ProviderGemini:
		return os.Getenv("GOOGLE_API_KEY")
	case ai.ProviderHuggingFace:
		return os.Getenv("HF_TOKEN")
	}
	return ""
}

func (c *Config) Options() ai.Options {
	return ai.Options{MaxLength: c.MaxLength, MinLength: c.MinLength}
}

func (c *Config) Settings() ai.Settings {
	return ai.Settings{APIKey: c.APIKey, Model: c.Model, BaseURL: c.BaseURL, Timeout: c.Timeout}
}

func (c *Config) Validate() error {
	p, err := ai.ParseProvider(c.Provider)
	if err != nil {
		return &Error{Field: "ai", Message: err.Error()}
	}
	c.Provider = string(p)
	if err := c.Options().Validate(); err != nil {
		return &Error{Field: "min-length/max-length", Message: err.Error()}
	}
	if p == ai.ProviderGemini && c.APIKey == "" {
		return &Error{Field: "GOOGLE_API_KEY", Message: "Gemini API key is required"}
	}
	if c.Out == "" {
		return &Error{Field: "out", Message: "output path is required"}
	}
	return nil
}

type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Field + ": " + e.Message
}
