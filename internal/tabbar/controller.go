// Package tabbar wires route matching, the indicator animation and the
// emergency workflow into the host event loop.
package tabbar

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/safechat/internal/emergency"
	"github.com/jask/safechat/internal/indicator"
	"github.com/jask/safechat/internal/logging"
	"github.com/jask/safechat/internal/metrics"
	"github.com/jask/safechat/internal/route"
)

// DefaultFrameInterval is a 60Hz display cadence.
const DefaultFrameInterval = time.Second / 60

// Navigator receives navigation commands. Calls are fire-and-forget.
type Navigator interface {
	Navigate(route string)
}

// Notifier receives dispatched alerts.
type Notifier interface {
	Notify(alert emergency.Alert)
}

type PathChangedMsg struct{ Path string }

type TabPressedMsg struct{ Index int }

type PanicPressedMsg struct{}

type DecisionMsg struct{ Confirm bool }

// OutcomeMsg reports what a workflow step produced for the presentation
// layer: an alert handed to the notifier, a session that closed, or both.
type OutcomeMsg struct {
	Alert  *emergency.Alert
	Closed *emergency.Session
}

// FrameMsg is one display refresh. The controller schedules these itself
// while the indicator is moving.
type FrameMsg struct{ At time.Time }

type workflowMsg struct{ event emergency.Event }

type Options struct {
	// StartPath is laid out without animation.
	StartPath     string
	Tabs          []route.Tab
	Layout        indicator.Layout
	Spring        indicator.Spring
	Epsilon       float64
	FrameInterval time.Duration
	Workflow      *emergency.Workflow
	Executor      emergency.Executor
	Navigator     Navigator
	Notifier      Notifier
	Metrics       *metrics.Alerts
	Context       context.Context
	Now           func() time.Time
}

type Controller struct {
	ctx     context.Context
	tabs    []route.Tab
	layout  indicator.Layout
	anim    *indicator.Animator
	frame   time.Duration
	now     func() time.Time
	flow    *emergency.Workflow
	exec    emergency.Executor
	nav     Navigator
	notify  Notifier
	metrics *metrics.Alerts

	path      string
	active    route.Active
	index     int
	ticking   bool
	lastFrame time.Time

	prompt    *emergency.Coordinates
	lastAlert *emergency.Alert
}

func New(opts Options) *Controller {
	tabs := append([]route.Tab(nil), opts.Tabs...)
	layout := opts.Layout
	layout.Tabs = len(tabs)
	frame := opts.FrameInterval
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	flow := opts.Workflow
	if flow == nil {
		flow = emergency.New()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	c := &Controller{
		ctx:     ctx,
		tabs:    tabs,
		layout:  layout,
		anim:    indicator.NewAnimator(opts.Spring, opts.Epsilon),
		frame:   frame,
		now:     now,
		flow:    flow,
		exec:    opts.Executor,
		nav:     opts.Navigator,
		notify:  opts.Notifier,
		metrics: opts.Metrics,
		active:  route.Active{Index: -1},
		index:   route.Match("", tabs),
	}
	if opts.StartPath != "" {
		c.path = opts.StartPath
		c.active = route.Resolve(c.path, tabs)
		c.index = route.Match(c.path, tabs)
	}
	c.anim.Jump(layout.Position(c.index))
	flow.Subscribe(func(s emergency.Session) {
		logging.Logf("alert %s: %s", s.ID, s.Status)
	})
	return c
}

// State is everything the presentation layer needs for one frame.
type State struct {
	Tabs       []route.Tab
	Path       string
	Active     route.Active
	Index      int
	Position   float64
	Target     float64
	SlotWidth  float64
	Animating  bool
	Alert      emergency.Status
	Prompt     *emergency.Coordinates
	LastAlert  *emergency.Alert
	// LastClosed is the most recent session to reach a terminal status.
	LastClosed *emergency.Session
}

func (c *Controller) State() State {
	var closed *emergency.Session
	if s, ok := c.flow.Last(); ok {
		closed = &s
	}
	return State{
		Tabs:       c.tabs,
		Path:       c.path,
		Active:     c.active,
		Index:      c.index,
		Position:   c.anim.Position(),
		Target:     c.anim.Target(),
		SlotWidth:  c.layout.SlotWidth(),
		Animating:  c.ticking,
		Alert:      c.flow.Status(),
		Prompt:     c.prompt,
		LastAlert:  c.lastAlert,
		LastClosed: closed,
	}
}

// Update handles the controller's messages and ignores the rest.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PathChangedMsg:
		return c.setPath(msg.Path)
	case TabPressedMsg:
		return c.press(msg.Index)
	case PanicPressedMsg:
		return c.trigger()
	case DecisionMsg:
		return c.run(c.flow.Dispatch(emergency.Decide{Confirm: msg.Confirm}))
	case workflowMsg:
		return c.run(c.flow.Dispatch(msg.event))
	case FrameMsg:
		return c.step(msg.At)
	}
	return nil
}

// setPath re-matches and retargets within the same update.
func (c *Controller) setPath(path string) tea.Cmd {
	c.path = path
	c.active = route.Resolve(path, c.tabs)
	c.index = route.Match(path, c.tabs)
	if !c.anim.SetTarget(c.layout.Position(c.index)) || c.ticking {
		return nil
	}
	c.ticking = true
	c.lastFrame = c.now()
	return c.tick()
}

func (c *Controller) tick() tea.Cmd {
	return tea.Tick(c.frame, func(t time.Time) tea.Msg { return FrameMsg{At: t} })
}

func (c *Controller) step(at time.Time) tea.Cmd {
	if !c.ticking {
		return nil
	}
	dt := at.Sub(c.lastFrame)
	// Cap the step after a stalled loop so the indicator does not leap.
	if dt <= 0 || dt > 4*c.frame {
		dt = c.frame
	}
	c.lastFrame = at
	c.metrics.Frame()
	if c.anim.Step(dt) {
		c.ticking = false
		return nil
	}
	return c.tick()
}

func (c *Controller) press(index int) tea.Cmd {
	if index < 0 || index >= len(c.tabs) || c.nav == nil {
		return nil
	}
	target := c.tabs[index].Route
	nav := c.nav
	return func() tea.Msg {
		nav.Navigate(target)
		return nil
	}
}

func (c *Controller) trigger() tea.Cmd {
	if c.flow.Busy() {
		c.metrics.Trigger(false)
		logging.Logf("panic ignored: alert already %s", c.flow.Status())
		return nil
	}
	c.metrics.Trigger(true)
	return c.run(c.flow.Dispatch(emergency.Trigger{}))
}

// run performs workflow effects. Asynchronous ones become commands whose
// result is fed back as a workflowMsg.
func (c *Controller) run(effects []emergency.Effect) tea.Cmd {
	var (
		cmds    []tea.Cmd
		outcome OutcomeMsg
	)
	for _, eff := range effects {
		switch e := eff.(type) {
		case emergency.Cue:
			c.exec.Cue()
		case emergency.PromptConfirmation:
			coords := e.Coordinates
			c.prompt = &coords
		case emergency.Notify:
			alert := e.Alert
			c.lastAlert = &alert
			outcome.Alert = &alert
			c.metrics.Dispatched(string(alert.Reason))
			if c.notify != nil {
				c.notify.Notify(alert)
			}
		case emergency.Closed:
			c.prompt = nil
			session := e.Session
			outcome.Closed = &session
			if session.Status == emergency.StatusCancelled {
				c.metrics.Cancelled()
			}
		default:
			job, ok := c.exec.Job(eff)
			if !ok {
				continue
			}
			ctx := c.ctx
			cmds = append(cmds, func() tea.Msg { return workflowMsg{event: job(ctx)} })
		}
	}
	if outcome.Alert != nil || outcome.Closed != nil {
		cmds = append(cmds, func() tea.Msg { return outcome })
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}
