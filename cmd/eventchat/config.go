package main

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix = "EVENTCHAT"
	dotDir    = ".eventchat"
)

// config is the resolved runtime configuration.
type config struct {
	BaseURL    string
	OnlyFuture bool
	SessionDir string
	LogFile    string
	Debug      bool
}

func defaultConfig(home string) config {
	dir := filepath.Join(home, dotDir)
	return config{
		BaseURL:    "http://localhost:8000",
		OnlyFuture: true,
		SessionDir: filepath.Join(dir, "sessions"),
		LogFile:    filepath.Join(dir, "eventchat.log"),
	}
}

// initViper creates a viper instance with defaults, the optional
// config.toml in ~/.eventchat and EVENTCHAT_* environment variables.
//
// Precedence (highest to lowest):
//  1. CLI flags (once bound via bindFlags)
//  2. Environment variables (EVENTCHAT_BASE_URL, EVENTCHAT_ONLY_FUTURE, ...)
//  3. config.toml values
//  4. Defaults
func initViper(home string) (*viper.Viper, error) {
	v := viper.New()

	d := defaultConfig(home)
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("only_future", d.OnlyFuture)
	v.SetDefault("session_dir", d.SessionDir)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("debug", d.Debug)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(filepath.Join(home, dotDir))
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v, nil
}

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"base-url":    "base_url",
	"only-future": "only_future",
	"session-dir": "session_dir",
	"log-file":    "log_file",
	"debug":       "debug",
}

func addFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("base-url", "", "Base URL of the event site")
	f.Bool("only-future", true, "Recommend only upcoming events")
	f.String("session-dir", "", "Directory for conversation history")
	f.String("log-file", "", "Log file path")
	f.Bool("debug", false, "Enable debug logging")
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		// Unchanged flags must not shadow config file and env values.
		if !flag.Changed {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func loadConfig(v *viper.Viper) (config, error) {
	cfg := config{
		BaseURL:    strings.TrimRight(v.GetString("base_url"), "/"),
		OnlyFuture: v.GetBool("only_future"),
		SessionDir: v.GetString("session_dir"),
		LogFile:    v.GetString("log_file"),
		Debug:      v.GetBool("debug"),
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return config{}, fmt.Errorf("invalid base_url %q", cfg.BaseURL)
	}
	return cfg, nil
}
