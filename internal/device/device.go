// Package device provides simulated platform capabilities for the alert
// workflow. Behaviour is configured up front; nothing here touches
// hardware.
package device

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jask/safechat/internal/emergency"
	"github.com/jask/safechat/internal/logging"
)

type PermissionMode string

const (
	PermissionGrant PermissionMode = "granted"
	PermissionDeny  PermissionMode = "denied"
	PermissionError PermissionMode = "error"
)

type LocationMode string

const (
	LocationFixed LocationMode = "fixed"
	LocationFail  LocationMode = "fail"
)

var (
	ErrPlatform = errors.New("platform location service error")
	ErrNoFix    = errors.New("no position fix")
)

// ParsePermissionMode accepts the config spellings of a permission mode.
func ParsePermissionMode(s string) (PermissionMode, error) {
	switch PermissionMode(strings.ToLower(strings.TrimSpace(s))) {
	case PermissionGrant, "grant", "":
		return PermissionGrant, nil
	case PermissionDeny, "deny":
		return PermissionDeny, nil
	case PermissionError:
		return PermissionError, nil
	}
	return "", fmt.Errorf("unknown permission mode %q", s)
}

// ParseLocationMode accepts the config spellings of a location mode.
func ParseLocationMode(s string) (LocationMode, error) {
	switch LocationMode(strings.ToLower(strings.TrimSpace(s))) {
	case LocationFixed, "":
		return LocationFixed, nil
	case LocationFail, "failed", "error":
		return LocationFail, nil
	}
	return "", fmt.Errorf("unknown location mode %q", s)
}

// Permissions answers permission requests after Latency.
type Permissions struct {
	Mode    PermissionMode
	Latency time.Duration
}

func (p Permissions) RequestPermission(ctx context.Context) (bool, error) {
	if err := wait(ctx, p.Latency); err != nil {
		return false, err
	}
	switch p.Mode {
	case PermissionDeny:
		return false, nil
	case PermissionError:
		return false, ErrPlatform
	}
	return true, nil
}

// Locator reports a fixed position after Latency.
type Locator struct {
	Mode        LocationMode
	Coordinates emergency.Coordinates
	Latency     time.Duration
}

func (l Locator) CurrentLocation(ctx context.Context) (emergency.Coordinates, error) {
	if err := wait(ctx, l.Latency); err != nil {
		return emergency.Coordinates{}, err
	}
	if l.Mode == LocationFail {
		return emergency.Coordinates{}, ErrNoFix
	}
	return l.Coordinates, nil
}

// Haptics records cues. Unsupported platforms report emergency.ErrUnsupported.
type Haptics struct {
	Supported bool
	// OnCue is called for each cue on supported platforms.
	OnCue func()
}

func (h Haptics) Cue() error {
	if !h.Supported {
		return emergency.ErrUnsupported
	}
	logging.Logf("haptics: error notification cue")
	if h.OnCue != nil {
		h.OnCue()
	}
	return nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
