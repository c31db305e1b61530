package config

import (
	"fmt"

	"github.com/spf13/viper"

	"pursuit/internal/game"
)

// Load reads pursuit.cfg.json from the working directory, layered over the
// built-in defaults. A missing file is not an error; a malformed one is.
func Load() (game.Config, error) {
	cfg := game.DefaultConfig()

	v := viper.New()
	v.SetConfigName("pursuit.cfg")
	v.SetConfigType("json")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
