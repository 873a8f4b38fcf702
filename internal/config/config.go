package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jask/safechat/internal/device"
	"github.com/jask/safechat/internal/route"
)

// Config holds application configuration.
type Config struct {
	Tabs    []TabConfig   `mapstructure:"tabs"`
	Bar     BarConfig     `mapstructure:"bar"`
	Spring  SpringConfig  `mapstructure:"spring"`
	Alert   AlertConfig   `mapstructure:"alert"`
	Device  DeviceConfig  `mapstructure:"device"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TabConfig describes one tab of the bar.
type TabConfig struct {
	Name  string `mapstructure:"name"`
	Route string `mapstructure:"route"`
	Icon  string `mapstructure:"icon"`
	Label string `mapstructure:"label"`
}

// BarConfig holds tab bar geometry in terminal cells.
type BarConfig struct {
	ContainerWidth float64 `mapstructure:"container_width"`
	Padding        float64 `mapstructure:"padding"`
	FrameRate      int     `mapstructure:"frame_rate"`
}

// SpringConfig holds indicator motion parameters.
type SpringConfig struct {
	Damping   float64 `mapstructure:"damping"`
	Stiffness float64 `mapstructure:"stiffness"`
	Mass      float64 `mapstructure:"mass"`
	Epsilon   float64 `mapstructure:"epsilon"`
}

// AlertConfig holds emergency workflow settings. A zero Timeout leaves
// permission and location calls unbounded.
type AlertConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// DeviceConfig drives the simulated platform capabilities.
type DeviceConfig struct {
	Permission string        `mapstructure:"permission"`
	Location   string        `mapstructure:"location"`
	Latitude   float64       `mapstructure:"latitude"`
	Longitude  float64       `mapstructure:"longitude"`
	Latency    time.Duration `mapstructure:"latency"`
	Haptics    bool          `mapstructure:"haptics"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Dark      bool   `mapstructure:"dark"`
	StartPath string `mapstructure:"start_path"`
}

// LoggingConfig controls the diagnostic log file. Empty disables logging.
type LoggingConfig struct {
	File string `mapstructure:"file"`
}

func defaultTabs() []map[string]any {
	return []map[string]any{
		{"name": "(home)", "route": "/(tabs)/(home)/", "icon": "message.fill", "label": "Chats"},
		{"name": "directory", "route": "/(tabs)/directory", "icon": "person.2.fill", "label": "Directory"},
		{"name": "profile", "route": "/(tabs)/profile", "icon": "person.fill", "label": "Profile"},
	}
}

// Load reads configuration from file and env. Env var overrides use prefix SAFECHAT_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("tabs", defaultTabs())
	v.SetDefault("bar.container_width", 60.0)
	v.SetDefault("bar.padding", 4.0)
	v.SetDefault("bar.frame_rate", 60)
	v.SetDefault("spring.damping", 20.0)
	v.SetDefault("spring.stiffness", 120.0)
	v.SetDefault("spring.mass", 1.0)
	v.SetDefault("spring.epsilon", 0.01)
	v.SetDefault("alert.timeout", "0s")
	v.SetDefault("device.permission", string(device.PermissionGrant))
	v.SetDefault("device.location", string(device.LocationFixed))
	v.SetDefault("device.latitude", -26.2)
	v.SetDefault("device.longitude", 28.0)
	v.SetDefault("device.latency", "600ms")
	v.SetDefault("device.haptics", true)
	v.SetDefault("ui.dark", true)
	v.SetDefault("ui.start_path", "/")
	v.SetDefault("logging.file", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("SAFECHAT_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "safechat"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SAFECHAT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects settings the tab bar cannot run with.
func (c Config) Validate() error {
	if len(c.Tabs) == 0 {
		return errors.New("config: at least one tab is required")
	}
	for i, t := range c.Tabs {
		if strings.TrimSpace(t.Route) == "" {
			return fmt.Errorf("config: tab %d has no route", i)
		}
	}
	if c.Bar.ContainerWidth <= c.Bar.Padding || c.Bar.Padding < 0 {
		return fmt.Errorf("config: bar.container_width %.1f must exceed bar.padding %.1f", c.Bar.ContainerWidth, c.Bar.Padding)
	}
	if c.Bar.FrameRate <= 0 {
		return fmt.Errorf("config: bar.frame_rate must be positive, got %d", c.Bar.FrameRate)
	}
	if c.Spring.Damping <= 0 || c.Spring.Stiffness <= 0 || c.Spring.Mass <= 0 {
		return errors.New("config: spring damping, stiffness and mass must be positive")
	}
	if c.Alert.Timeout < 0 {
		return fmt.Errorf("config: alert.timeout must not be negative, got %s", c.Alert.Timeout)
	}
	if _, err := device.ParsePermissionMode(c.Device.Permission); err != nil {
		return fmt.Errorf("config: device.permission: %w", err)
	}
	if _, err := device.ParseLocationMode(c.Device.Location); err != nil {
		return fmt.Errorf("config: device.location: %w", err)
	}
	return nil
}

// RouteTabs converts the configured tabs into matcher descriptors.
func (c Config) RouteTabs() []route.Tab {
	out := make([]route.Tab, 0, len(c.Tabs))
	for _, t := range c.Tabs {
		out = append(out, route.Tab{Name: t.Name, Route: t.Route, Icon: t.Icon, Label: t.Label})
	}
	return out
}

// FrameInterval is the animation tick period.
func (b BarConfig) FrameInterval() time.Duration {
	if b.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(b.FrameRate)
}
