package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything read from config.yaml and the environment.
type Config struct {
	Telegram struct {
		Token string `mapstructure:"token"`
	} `mapstructure:"telegram"`
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
}

// Load reads config.yaml from the working directory. Environment
// variables (TELEGRAM_TOKEN, SERVER_ADDR, DATABASE_PATH) override file
// values; a missing file is fine as long as the token is set some way.
func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Registering the key is what lets AutomaticEnv see TELEGRAM_TOKEN
	// when no config file exists.
	v.SetDefault("telegram.token", "")
	v.SetDefault("server.addr", ":3000")
	v.SetDefault("database.path", "./data/telemanbot.db")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
