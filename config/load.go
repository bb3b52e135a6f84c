package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/motifminer/motifminer/errors"
)

// Load reads the configuration from defaults and MOTIFMINER-prefixed
// environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MOTIFMINER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return LoadWithViper(v)
}

// LoadFromFile loads configuration from a specific TOML file path, layered
// over the defaults.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", configPath)
	}
	return LoadWithViper(v)
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}
	return &config, nil
}
