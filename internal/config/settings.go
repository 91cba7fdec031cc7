package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/itrgo/tax-estimator/internal/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings configures the service around the engine
type Settings struct {
	Server     ServerSettings     `mapstructure:"server" validate:"required"`
	Logging    LoggingSettings    `mapstructure:"logging" validate:"required"`
	Store      StoreSettings      `mapstructure:"store" validate:"required"`
	Rules      RulesSettings      `mapstructure:"rules"`
	AdvanceTax AdvanceTaxSettings `mapstructure:"advance_tax"`
}

type ServerSettings struct {
	Address      string        `mapstructure:"address" validate:"required"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type LoggingSettings struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

type StoreSettings struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=memory postgres"`
	DSN    string `mapstructure:"dsn" validate:"required_if=Driver postgres"`
}

type RulesSettings struct {
	// File is an optional YAML rule file merged over the built-in tables
	File string `mapstructure:"file"`
}

type AdvanceTaxSettings struct {
	ExcludePastDue bool `mapstructure:"exclude_past_due"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.dsn", "")
	v.SetDefault("rules.file", "")
	v.SetDefault("advance_tax.exclude_past_due", false)
}

// LoadSettings reads itrcalc.yaml (or configFile when given), a .env file and
// ITRCALC_* environment variables, in increasing order of precedence
func LoadSettings(configFile string) (*Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("itrcalc")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/itrcalc")
	}

	v.SetEnvPrefix("ITRCALC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("failed to read settings: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks the settings
func (s Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// DefaultSettings returns settings for local use without any file
func DefaultSettings() *Settings {
	return &Settings{
		Server:  ServerSettings{Address: ":8080", ReadTimeout: 10 * time.Second, WriteTimeout: 10 * time.Second},
		Logging: LoggingSettings{Level: "info"},
		Store:   StoreSettings{Driver: "memory"},
	}
}

// LoadRules returns the rule book named by the settings, or the built-in one
func (s Settings) LoadRules() (*domain.RuleBook, error) {
	if s.Rules.File == "" {
		return DefaultRuleBook(), nil
	}
	return LoadRuleBook(s.Rules.File)
}
