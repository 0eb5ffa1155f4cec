// Package config loads the configuration of the infix command.
package config

import (
	"errors"

	"github.com/spf13/viper"

	"github.com/zephyrtronium/infix/internal/logger"
)

// Config is the contents of infix.yaml.
type Config struct {
	// Mode is math, logic, or any.
	Mode string `mapstructure:"mode"`
	// Locale is a BCP 47 language tag selecting the decimal separator and
	// the collation of culture-aware comparisons.
	Locale string `mapstructure:"locale"`
	// Compare is the policy for matching function names.
	Compare string `mapstructure:"compare"`
	// Tables is a YAML file of lookup tables to expose as functions.
	Tables string `mapstructure:"tables"`
	// Standard enables the standard functions.
	Standard bool           `mapstructure:"standard"`
	Log      *logger.Config `mapstructure:"log"`
	Server   *ServerConfig  `mapstructure:"server"`
}

// ServerConfig configures the HTTP evaluator.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	// Rate and Burst limit each client's requests per second.
	Rate  float64 `mapstructure:"rate"`
	Burst int     `mapstructure:"burst"`
	// CacheSize is the number of compiled expressions to keep.
	CacheSize int `mapstructure:"cachesize"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Mode:     "any",
		Compare:  "ordinal",
		Standard: true,
		Log:      logger.DefaultConfig(),
		Server: &ServerConfig{
			Addr:      "127.0.0.1:8080",
			Rate:      50,
			Burst:     100,
			CacheSize: 1000,
		},
	}
}

// Load reads a configuration file over the defaults. If file is empty, Load
// looks for infix.yaml in the working directory and in $HOME/.config/infix,
// and it is not an error for none to exist.
func Load(file string) (*Config, error) {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("infix")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/infix")
	}
	v.SetEnvPrefix("infix")
	v.AutomaticEnv()

	cfg := Default()
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &nf) {
			return nil, err
		}
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
