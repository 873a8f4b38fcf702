package main

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/safechat/internal/config"
	"github.com/jask/safechat/internal/device"
	"github.com/jask/safechat/internal/emergency"
	"github.com/jask/safechat/internal/indicator"
	"github.com/jask/safechat/internal/logging"
	"github.com/jask/safechat/internal/metrics"
	"github.com/jask/safechat/internal/tabbar"
	"github.com/jask/safechat/internal/tui"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	closer, err := logging.Setup(cfg.Logging.File, "safechat")
	if err != nil {
		log.Fatalf("log file: %v", err)
	}
	defer closer.Close()

	// Validate has already accepted both modes.
	permMode, _ := device.ParsePermissionMode(cfg.Device.Permission)
	locMode, _ := device.ParseLocationMode(cfg.Device.Location)

	executor := emergency.Executor{
		Permissions: device.Permissions{Mode: permMode, Latency: cfg.Device.Latency},
		Locator: device.Locator{
			Mode:        locMode,
			Coordinates: emergency.Coordinates{Latitude: cfg.Device.Latitude, Longitude: cfg.Device.Longitude},
			Latency:     cfg.Device.Latency,
		},
		Haptics: device.Haptics{Supported: cfg.Device.Haptics},
		Timeout: cfg.Alert.Timeout,
	}

	alerts := metrics.NewAlerts()
	router := tui.NewRouter(cfg.UI.StartPath)

	ctrl := tabbar.New(tabbar.Options{
		StartPath: cfg.UI.StartPath,
		Tabs:      cfg.RouteTabs(),
		Layout:    indicator.Layout{ContainerWidth: cfg.Bar.ContainerWidth, Padding: cfg.Bar.Padding},
		Spring: indicator.Spring{
			Damping:   cfg.Spring.Damping,
			Stiffness: cfg.Spring.Stiffness,
			Mass:      cfg.Spring.Mass,
		},
		Epsilon:       cfg.Spring.Epsilon,
		FrameInterval: cfg.Bar.FrameInterval(),
		Executor:      executor,
		Navigator:     router,
		Notifier:      tui.LogNotifier{},
		Metrics:       alerts,
		Context:       ctx,
	})

	p := tea.NewProgram(tui.New(cfg, ctrl, router), tea.WithAltScreen(), tea.WithContext(ctx))
	router.Attach(p.Send)
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	logging.Logf("session summary: %s", alerts.Summary())
}
