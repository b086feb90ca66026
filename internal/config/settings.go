package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. CARDSTMT_LISTEN.
const EnvPrefix = "CARDSTMT"

// Settings are the runtime options shared by the CLI and the HTTP server.
type Settings struct {
	BanksFile string `mapstructure:"banks_file"`
	DBPath    string `mapstructure:"db_path"`
	Listen    string `mapstructure:"listen"`
	LogLevel  string `mapstructure:"log_level"`
	OutputDir string `mapstructure:"output_dir"`
	Format    string `mapstructure:"format"`
}

// LoadSettings reads settings from an optional file plus CARDSTMT_* variables.
// An empty path skips the file.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetDefault("banks_file", "")
	v.SetDefault("db_path", "")
	v.SetDefault("listen", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("output_dir", "")
	v.SetDefault("format", "csv")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				return nil, fmt.Errorf("settings file not found: %w", err)
			}
			return nil, fmt.Errorf("reading settings: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	return &s, nil
}

// Banks returns the registry described by the settings.
func (s *Settings) Banks() (*Registry, error) {
	if s.BanksFile == "" {
		return DefaultRegistry(), nil
	}
	return LoadBanks(s.BanksFile)
}
