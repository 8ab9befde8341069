package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	MaxDirs         int           `mapstructure:"max_dirs"`
	Output          string        `mapstructure:"output"`
	DBPath          string        `mapstructure:"db_path"`
	StatusPort      int           `mapstructure:"status_port"`
	IgnoreList      []string      `mapstructure:"ignore_list"`
	PollTimeout     time.Duration `mapstructure:"poll_timeout"`
	IncludeUserDirs bool          `mapstructure:"include_user_dirs"`
}

var Default = Config{
	MaxDirs:         50,
	DBPath:          "ubuntu-hooks.db",
	StatusPort:      9610,
	IgnoreList:      []string{"*.swp", "*.swx", "*.tmp", "*~", ".#*"},
	PollTimeout:     500 * time.Millisecond,
	IncludeUserDirs: true,
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home dir: %w", err)
	}

	configDir := filepath.Join(home, ".ubuntu-hooks")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	viper.SetDefault("max_dirs", Default.MaxDirs)
	viper.SetDefault("output", Default.Output)
	viper.SetDefault("db_path", filepath.Join(configDir, Default.DBPath))
	viper.SetDefault("status_port", Default.StatusPort)
	viper.SetDefault("ignore_list", Default.IgnoreList)
	viper.SetDefault("poll_timeout", Default.PollTimeout)
	viper.SetDefault("include_user_dirs", Default.IncludeUserDirs)

	viper.SetEnvPrefix("UBUNTU_HOOKS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
