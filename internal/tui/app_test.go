package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/safechat/internal/config"
	"github.com/jask/safechat/internal/device"
	"github.com/jask/safechat/internal/emergency"
	"github.com/jask/safechat/internal/indicator"
	"github.com/jask/safechat/internal/tabbar"
)

type recordingNotifier struct{ alerts []emergency.Alert }

func (r *recordingNotifier) Notify(a emergency.Alert) { r.alerts = append(r.alerts, a) }

type harness struct {
	app      *App
	router   *Router
	notifier *recordingNotifier
	routed   []tea.Msg
}

func testConfig() config.Config {
	return config.Config{
		Tabs: []config.TabConfig{
			{Name: "(home)", Route: "/(tabs)/(home)/", Icon: "message.fill", Label: "Chats"},
			{Name: "directory", Route: "/(tabs)/directory", Icon: "person.2.fill", Label: "Directory"},
			{Name: "profile", Route: "/(tabs)/profile", Icon: "person.fill", Label: "Profile"},
		},
		Bar: config.BarConfig{ContainerWidth: 60, Padding: 4, FrameRate: 60},
		UI:  config.UIConfig{Dark: true, StartPath: "/"},
	}
}

func newHarness(t *testing.T, perm device.PermissionMode, loc device.LocationMode) *harness {
	t.Helper()
	cfg := testConfig()
	h := &harness{router: NewRouter(cfg.UI.StartPath), notifier: &recordingNotifier{}}
	h.router.Attach(func(m tea.Msg) { h.routed = append(h.routed, m) })

	ctrl := tabbar.New(tabbar.Options{
		StartPath:     cfg.UI.StartPath,
		Tabs:          cfg.RouteTabs(),
		Layout:        indicator.Layout{ContainerWidth: cfg.Bar.ContainerWidth, Padding: cfg.Bar.Padding},
		Spring:        indicator.DefaultSpring(),
		FrameInterval: time.Millisecond,
		Executor: emergency.Executor{
			Permissions: device.Permissions{Mode: perm},
			Locator:     device.Locator{Mode: loc, Coordinates: emergency.Coordinates{Latitude: -26.2, Longitude: 28.0}},
			Haptics:     device.Haptics{Supported: true},
		},
		Navigator: h.router,
		Notifier:  h.notifier,
	})
	h.app = New(cfg, ctrl, h.router)
	h.run(t, h.app.Init())
	return h
}

// run executes cmd and everything it leads to. Animation frames are
// dropped; the controller tests cover motion.
func (h *harness) run(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 1000, "command loop did not settle")
		next := queue[0]
		queue = queue[1:]
		if next != nil {
			switch msg := next().(type) {
			case nil, tabbar.FrameMsg:
			case tea.BatchMsg:
				queue = append(queue, msg...)
			default:
				_, c := h.app.Update(msg)
				queue = append(queue, c)
			}
		}
		for len(h.routed) > 0 {
			msg := h.routed[0]
			h.routed = h.routed[1:]
			_, c := h.app.Update(msg)
			queue = append(queue, c)
		}
	}
}

func (h *harness) press(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, cmd := h.app.Update(keyMsg(k))
		h.run(t, cmd)
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestInitSelectsFirstTab(t *testing.T) {
	h := newHarness(t, device.PermissionGrant, device.LocationFixed)

	st := h.app.ctrl.State()
	require.Equal(t, "/", st.Path)
	require.Equal(t, 0, st.Index)
	require.False(t, st.Active.Matched())
	require.Contains(t, h.app.View(), "Chats")
	require.Contains(t, h.app.View(), "PANIC")
}

func TestTabKeysNavigateThroughRouter(t *testing.T) {
	h := newHarness(t, device.PermissionGrant, device.LocationFixed)

	h.press(t, "2")
	require.Equal(t, "/(tabs)/directory", h.router.Current())
	require.Equal(t, 1, h.app.ctrl.State().Index)

	h.press(t, "right")
	require.Equal(t, "/(tabs)/profile", h.router.Current())
	require.Equal(t, 2, h.app.ctrl.State().Index)
	require.Equal(t, 3, h.router.Depth())

	// Already on the last tab.
	h.press(t, "right")
	require.Equal(t, 3, h.router.Depth())

	h.press(t, "b")
	require.Equal(t, "/(tabs)/directory", h.router.Current())
	require.Equal(t, 1, h.app.ctrl.State().Index)

	h.press(t, "left")
	require.Equal(t, "/(tabs)/(home)/", h.router.Current())
	require.Equal(t, 0, h.app.ctrl.State().Index)

	h.press(t, "9")
	require.Equal(t, "/(tabs)/(home)/", h.router.Current())
}

func TestGotoUnmatchedPathShowsHint(t *testing.T) {
	h := newHarness(t, device.PermissionGrant, device.LocationFixed)

	h.press(t, "2", ":", "p", "r", "o", "f", "l", "e", "enter")
	require.Equal(t, modalNone, h.app.modal)
	require.Equal(t, "profle", h.router.Current())

	st := h.app.ctrl.State()
	require.False(t, st.Active.Matched())
	require.Equal(t, 0, st.Index)
	require.Contains(t, h.app.hint, "did you mean /(tabs)/profile?")
	require.Contains(t, h.app.View(), "no tab matches profle")

	h.press(t, "b")
	require.Empty(t, h.app.hint)
	require.Equal(t, 1, h.app.ctrl.State().Index)
}

func TestGotoEscapeKeepsPath(t *testing.T) {
	h := newHarness(t, device.PermissionGrant, device.LocationFixed)

	h.press(t, "g", "x", "esc")
	require.Equal(t, modalNone, h.app.modal)
	require.Equal(t, 1, h.router.Depth())
}

func TestPanicConfirmDispatchesWithLocation(t *testing.T) {
	h := newHarness(t, device.PermissionGrant, device.LocationFixed)

	h.press(t, "p")
	st := h.app.ctrl.State()
	require.Equal(t, emergency.StatusAwaitingConfirmation, st.Alert)
	require.NotNil(t, st.Prompt)
	view := h.app.View()
	require.Contains(t, view, "Latitude: -26.200000")
	require.Contains(t, view, "Longitude: 28.000000")
	require.Contains(t, view, "[y] Confirm Emergency")
	require.Empty(t, h.notifier.alerts)

	// Navigation keys are inert while the prompt is up.
	h.press(t, "2")
	require.Equal(t, 1, h.router.Depth())

	h.press(t, "y")
	require.Len(t, h.notifier.alerts, 1)
	require.True(t, h.notifier.alerts[0].HasLocation)
	require.Equal(t, modalNotice, h.app.modal)
	require.Contains(t, h.app.View(), "Help is on the way")
	require.Equal(t, emergency.StatusIdle, h.app.ctrl.State().Alert)

	h.press(t, "enter")
	require.Equal(t, modalNone, h.app.modal)
	require.Nil(t, h.app.notice)
}

func TestPanicCancelSendsNothing(t *testing.T) {
	h := newHarness(t, device.PermissionGrant, device.LocationFixed)

	h.press(t, "p", "n")
	require.Empty(t, h.notifier.alerts)
	require.Equal(t, "alert cancelled", h.app.status)
	require.Equal(t, modalNone, h.app.modal)
	require.NotContains(t, h.app.View(), "Confirm Emergency")
}

func TestPanicDeniedNotifiesWithoutLocation(t *testing.T) {
	h := newHarness(t, device.PermissionDeny, device.LocationFixed)

	h.press(t, "p")
	require.Len(t, h.notifier.alerts, 1)
	require.Equal(t, emergency.ReasonPermissionDenied, h.notifier.alerts[0].Reason)
	require.Contains(t, h.app.View(), "Emergency Alert Activated")

	// A second press while the notice is open is swallowed by the modal.
	h.press(t, "p")
	require.Len(t, h.notifier.alerts, 1)
}

func TestPanicLocationFailure(t *testing.T) {
	h := newHarness(t, device.PermissionGrant, device.LocationFail)

	h.press(t, "!")
	require.Len(t, h.notifier.alerts, 1)
	require.Equal(t, emergency.ReasonLocationUnavailable, h.notifier.alerts[0].Reason)
	require.Contains(t, h.app.View(), "Unable to get your location")
}

func TestQuit(t *testing.T) {
	h := newHarness(t, device.PermissionGrant, device.LocationFixed)

	_, cmd := h.app.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
}

func TestRouterDropsWhenDetached(t *testing.T) {
	r := NewRouter("")
	r.Navigate("/anywhere")
	require.Equal(t, "/", r.Current())
	require.False(t, r.back())

	r.push("/a")
	r.push("/a")
	require.Equal(t, 2, r.Depth())
	require.True(t, r.back())
	require.Equal(t, "/", r.Current())
}

func TestOverlayCenter(t *testing.T) {
	require.Equal(t, "aaaa\nbXXb\ncccc", overlayCenter("aaaa\nbbbb\ncccc", "XX", 4))
	require.Equal(t, "XXXXXX", overlayCenter("ab", "XXXXXX", 2))
	require.Equal(t, "Q \n  ", overlayCenter("", "Q\n ", 2))
}
