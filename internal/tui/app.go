package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/safechat/internal/config"
	"github.com/jask/safechat/internal/emergency"
	"github.com/jask/safechat/internal/route"
	"github.com/jask/safechat/internal/tabbar"
)

// App hosts the tab bar and the panic flow in the terminal.
type App struct {
	cfg    config.Config
	ctrl   *tabbar.Controller
	router *Router
	keys   keyMap
	styles styles

	spinner spinner.Model
	input   textinput.Model

	modal  modalState
	notice *emergency.Alert
	status string
	hint   string
	width  int
	height int
}

type modalState string

const (
	modalNone   modalState = ""
	modalNotice modalState = "notice"
	modalGoto   modalState = "goto"
)

func New(cfg config.Config, ctrl *tabbar.Controller, router *Router) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	in := textinput.New()
	in.Prompt = "go to: "
	in.Placeholder = "/(tabs)/profile"
	in.CharLimit = 256
	in.Cursor.SetMode(cursor.CursorStatic)

	s := newStyles(ThemeFor(cfg.UI.Dark))
	sp.Style = s.danger

	return &App{
		cfg:     cfg,
		ctrl:    ctrl,
		router:  router,
		keys:    defaultKeys(),
		styles:  s,
		spinner: sp,
		input:   in,
	}
}

func (a *App) Init() tea.Cmd {
	return a.ctrl.Update(tabbar.PathChangedMsg{Path: a.router.Current()})
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case tea.KeyMsg:
		if a.awaitingDecision() {
			return a.handleDecisionKey(m)
		}
		if a.modal != modalNone {
			return a.handleModalKey(m)
		}
		return a.handleKey(m)
	case routeMsg:
		return a, a.navigate(string(m))
	case tabbar.OutcomeMsg:
		a.handleOutcome(m)
		return a, nil
	case spinner.TickMsg:
		if !a.busy() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	}
	return a, a.ctrl.Update(msg)
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := a.ctrl.State()
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Prev):
		if st.Index > 0 {
			return a, a.ctrl.Update(tabbar.TabPressedMsg{Index: st.Index - 1})
		}
	case key.Matches(m, a.keys.Next):
		if st.Index < len(st.Tabs)-1 {
			return a, a.ctrl.Update(tabbar.TabPressedMsg{Index: st.Index + 1})
		}
	case key.Matches(m, a.keys.Jump):
		n, err := strconv.Atoi(m.String())
		if err != nil || n > len(st.Tabs) {
			return a, nil
		}
		return a, a.ctrl.Update(tabbar.TabPressedMsg{Index: n - 1})
	case key.Matches(m, a.keys.Panic):
		return a, a.panicPressed()
	case key.Matches(m, a.keys.Back):
		if a.router.back() {
			return a, a.setPath(a.router.Current())
		}
	case key.Matches(m, a.keys.Goto):
		a.modal = modalGoto
		a.input.SetValue("")
		return a, a.input.Focus()
	}
	return a, nil
}

func (a *App) handleDecisionKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.String() == "ctrl+c":
		return a, tea.Quit
	case key.Matches(m, a.keys.Confirm):
		a.status = "sending alert..."
		return a, a.ctrl.Update(tabbar.DecisionMsg{Confirm: true})
	case key.Matches(m, a.keys.Cancel):
		return a, a.ctrl.Update(tabbar.DecisionMsg{Confirm: false})
	}
	return a, nil
}

func (a *App) handleModalKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.modal {
	case modalNotice:
		if key.Matches(m, a.keys.Dismiss) {
			a.modal = modalNone
			a.notice = nil
		}
		return a, nil
	case modalGoto:
		switch m.Type {
		case tea.KeyEsc:
			a.modal = modalNone
			a.input.Blur()
			return a, nil
		case tea.KeyEnter:
			path := strings.TrimSpace(a.input.Value())
			a.modal = modalNone
			a.input.Blur()
			if path == "" {
				return a, nil
			}
			return a, a.navigate(path)
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(m)
		return a, cmd
	}
	return a, nil
}

func (a *App) panicPressed() tea.Cmd {
	if a.busy() {
		a.status = "alert already in progress"
		return a.ctrl.Update(tabbar.PanicPressedMsg{})
	}
	a.status = ""
	cmd := a.ctrl.Update(tabbar.PanicPressedMsg{})
	if !a.busy() {
		return cmd
	}
	return tea.Batch(cmd, a.spinner.Tick)
}

func (a *App) handleOutcome(m tabbar.OutcomeMsg) {
	if m.Alert != nil {
		a.notice = m.Alert
		a.modal = modalNotice
		a.status = "alert sent " + m.Alert.Session.String()[:8]
	}
	if m.Closed != nil && m.Closed.Status == emergency.StatusCancelled {
		a.status = "alert cancelled"
	}
}

// navigate pushes a history entry and reports the path change.
func (a *App) navigate(path string) tea.Cmd {
	a.router.push(path)
	return a.setPath(path)
}

func (a *App) setPath(path string) tea.Cmd {
	cmd := a.ctrl.Update(tabbar.PathChangedMsg{Path: path})
	st := a.ctrl.State()
	a.hint = ""
	if st.Active.Matched() || path == "/" || path == "" {
		return cmd
	}
	if i, ok := route.Nearest(path, st.Tabs); ok {
		a.hint = fmt.Sprintf("no tab matches %s (did you mean %s?)", path, st.Tabs[i].Route)
	} else {
		a.hint = fmt.Sprintf("no tab matches %s", path)
	}
	return cmd
}

func (a *App) busy() bool {
	switch a.ctrl.State().Alert {
	case emergency.StatusRequestingPermission, emergency.StatusAcquiringLocation:
		return true
	}
	return false
}

func (a *App) awaitingDecision() bool {
	return a.ctrl.State().Prompt != nil
}
