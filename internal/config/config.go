package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents ~/.tchat/config.toml. Every field has a default so a
// missing file yields a fully working configuration.
type Config struct {
	User      UserConfig      `toml:"user"`
	Transport TransportConfig `toml:"transport"`
	Renderer  RendererConfig  `toml:"renderer"`
	Seed      SeedConfig      `toml:"seed"`
}

// UserConfig identifies the local user.
type UserConfig struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// TransportConfig holds the simulated channel timings, in milliseconds.
type TransportConfig struct {
	DeliveredDelayMs  int `toml:"delivered_delay_ms"`
	ReadDelayMs       int `toml:"read_delay_ms"`
	ReplyDelayMs      int `toml:"reply_delay_ms"`
	IdleTimeoutMs     int `toml:"idle_timeout_ms"`
	AutoIntervalMinMs int `toml:"auto_interval_min_ms"`
	AutoIntervalMaxMs int `toml:"auto_interval_max_ms"`
}

// RendererConfig tunes the virtualized message window.
type RendererConfig struct {
	EstimatedRowHeight  int `toml:"estimated_row_height"`
	Overscan            int `toml:"overscan"`
	NearBottomThreshold int `toml:"near_bottom_threshold"`
}

// SeedConfig sizes the generated dataset and the simulated fetch latency.
type SeedConfig struct {
	Chats            int `toml:"chats"`
	MinMessages      int `toml:"min_messages"`
	ExtraMessages    int `toml:"extra_messages"`
	ChatsDelayMinMs  int `toml:"chats_delay_min_ms"`
	ChatsDelayMaxMs  int `toml:"chats_delay_max_ms"`
	MsgsDelayMinMs   int `toml:"msgs_delay_min_ms"`
	MsgsDelayMaxMs   int `toml:"msgs_delay_max_ms"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		User: UserConfig{
			ID:   "current-user",
			Name: "Вы",
		},
		Transport: TransportConfig{
			DeliveredDelayMs:  500,
			ReadDelayMs:       1500,
			ReplyDelayMs:      2000,
			IdleTimeoutMs:     30000,
			AutoIntervalMinMs: 5000,
			AutoIntervalMaxMs: 10000,
		},
		Renderer: RendererConfig{
			EstimatedRowHeight:  60,
			Overscan:            10,
			NearBottomThreshold: 100,
		},
		Seed: SeedConfig{
			Chats:           8,
			MinMessages:     5000,
			ExtraMessages:   1000,
			ChatsDelayMinMs: 300,
			ChatsDelayMaxMs: 500,
			MsgsDelayMinMs:  400,
			MsgsDelayMaxMs:  600,
		},
	}
}

// Load reads config from the given path, filling unset fields with defaults.
// A missing file is not an error: the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}

// Dir returns the application state directory (~/.tchat).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".tchat")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// LogPath returns the log file location.
func LogPath() string {
	return filepath.Join(Dir(), "tchat.log")
}
