package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/safechat/internal/route"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SAFECHAT_CONFIG", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	require.Len(t, cfg.Tabs, 3)
	require.Equal(t, "/(tabs)/directory", cfg.Tabs[1].Route)
	require.Equal(t, 60.0, cfg.Bar.ContainerWidth)
	require.Equal(t, 4.0, cfg.Bar.Padding)
	require.Equal(t, time.Second/60, cfg.Bar.FrameInterval())
	require.Equal(t, SpringConfig{Damping: 20, Stiffness: 120, Mass: 1, Epsilon: 0.01}, cfg.Spring)
	require.Zero(t, cfg.Alert.Timeout)
	require.Equal(t, "granted", cfg.Device.Permission)
	require.Equal(t, 600*time.Millisecond, cfg.Device.Latency)
	require.True(t, cfg.Device.Haptics)
	require.True(t, cfg.UI.Dark)
	require.Equal(t, "/", cfg.UI.StartPath)

	tabs := cfg.RouteTabs()
	require.Equal(t, route.Tab{Name: "profile", Route: "/(tabs)/profile", Icon: "person.fill", Label: "Profile"}, tabs[2])
}

func TestLoadFileAndEnv(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, "safechat.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[tabs]]
name = "home"
route = "/home"
label = "Home"

[[tabs]]
name = "dir"
route = "/dir"
label = "Dir"

[bar]
container_width = 40
padding = 2

[alert]
timeout = "5s"

[device]
permission = "denied"
`), 0o600))
	t.Setenv("SAFECHAT_CONFIG", path)
	t.Setenv("SAFECHAT_DEVICE_LOCATION", "fail")
	t.Setenv("SAFECHAT_LOGGING_FILE", "/tmp/safechat.log")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, []route.Tab{{Name: "home", Route: "/home", Label: "Home"}, {Name: "dir", Route: "/dir", Label: "Dir"}}, cfg.RouteTabs())
	require.Equal(t, 40.0, cfg.Bar.ContainerWidth)
	require.Equal(t, 5*time.Second, cfg.Alert.Timeout)
	require.Equal(t, "denied", cfg.Device.Permission)
	require.Equal(t, "fail", cfg.Device.Location)
	require.Equal(t, "/tmp/safechat.log", cfg.Logging.File)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)
	t.Setenv("SAFECHAT_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))
	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	isolate(t)
	base, err := Load()
	require.NoError(t, err)
	require.NoError(t, base.Validate())

	cases := map[string]func(c *Config){
		"no tabs":        func(c *Config) { c.Tabs = nil },
		"empty route":    func(c *Config) { c.Tabs = []TabConfig{{Name: "x"}} },
		"narrow bar":     func(c *Config) { c.Bar.ContainerWidth = 2 },
		"zero frame":     func(c *Config) { c.Bar.FrameRate = 0 },
		"zero damping":   func(c *Config) { c.Spring.Damping = 0 },
		"neg timeout":    func(c *Config) { c.Alert.Timeout = -time.Second },
		"bad permission": func(c *Config) { c.Device.Permission = "sometimes" },
		"bad location":   func(c *Config) { c.Device.Location = "mars" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base
			c.Tabs = append([]TabConfig(nil), base.Tabs...)
			mutate(&c)
			require.Error(t, c.Validate())
		})
	}
}
