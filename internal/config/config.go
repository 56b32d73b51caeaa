// Package config loads cubesync settings from config.yaml, CUBESYNC_*
// environment variables and built-in defaults, in increasing order of
// precedence from defaults to environment.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Server  ServerConfig  `mapstructure:"server"`
	Oracle  OracleConfig  `mapstructure:"oracle"`
	Log     LogConfig     `mapstructure:"log"`
}

type StorageConfig struct {
	Path string `mapstructure:"path"` // empty means ~/.cubesync/cubesync.db
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// OracleConfig selects the solver. Kind is "search" for the built-in
// two-phase solver, "bounded" for a shortest-path search of at most
// MaxDepth moves, or "remote" for an HTTP solver service at URL.
type OracleConfig struct {
	Kind     string        `mapstructure:"kind"`
	MaxDepth int           `mapstructure:"max_depth"`
	URL      string        `mapstructure:"url"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.path", "")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("oracle.kind", "search")
	v.SetDefault("oracle.max_depth", 7)
	v.SetDefault("oracle.url", "")
	v.SetDefault("oracle.timeout", 30*time.Second)
	v.SetDefault("log.level", "warn")
}

// LoadConfig reads config.yaml from path when present. A missing file is
// not an error; a malformed one is. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("cubesync")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.AddConfigPath(path)
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
