package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/safechat/internal/emergency"
	"github.com/jask/safechat/internal/route"
	"github.com/jask/safechat/internal/tabbar"
)

var iconGlyphs = map[string]string{
	"message.fill":  "✉",
	"person.2.fill": "☷",
	"person.fill":   "☺",
}

// screenHeight is the minimum number of rows above the tab bar.
const screenHeight = 14

func (a *App) View() string {
	st := a.ctrl.State()
	screen := a.renderScreen(st)
	width := int(math.Round(a.cfg.Bar.ContainerWidth)) + 2
	switch {
	case st.Prompt != nil:
		screen = overlayCenter(screen, a.renderPrompt(*st.Prompt), width)
	case a.modal == modalNotice && a.notice != nil:
		screen = overlayCenter(screen, a.renderNotice(*a.notice), width)
	case a.modal == modalGoto:
		screen += "\n" + a.input.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		a.renderHeader(st), screen, a.renderPanic(st), a.renderBar(st), a.renderStatus(st))
}

func (a *App) renderHeader(st tabbar.State) string {
	title := a.styles.title.Render("SafeChat")
	if st.Index >= 0 && st.Index < len(st.Tabs) {
		title += a.styles.subtle.Render(" · " + tabLabel(st.Tabs[st.Index]))
	}
	return title
}

func (a *App) renderScreen(st tabbar.State) string {
	var b strings.Builder
	path := st.Path
	if path == "" {
		path = "/"
	}
	fmt.Fprintf(&b, "path   %s\n", path)
	if st.Active.Matched() {
		fmt.Fprintf(&b, "match  %s (score %d)\n", st.Tabs[st.Active.Index].Route, st.Active.Score)
	} else {
		b.WriteString("match  none, showing first tab\n")
	}
	if a.hint != "" {
		b.WriteString(a.styles.warning.Render(a.hint) + "\n")
	}
	out := strings.TrimSuffix(b.String(), "\n")
	if rows := strings.Count(out, "\n") + 1; rows < screenHeight {
		out += strings.Repeat("\n", screenHeight-rows)
	}
	return out
}

func (a *App) renderPanic(st tabbar.State) string {
	label := "PANIC"
	switch st.Alert {
	case emergency.StatusRequestingPermission:
		label = a.spinner.View() + " requesting location permission"
	case emergency.StatusAcquiringLocation:
		label = a.spinner.View() + " getting your location"
	case emergency.StatusAwaitingConfirmation:
		label = "awaiting confirmation"
	}
	return a.styles.panic.Render(label)
}

func (a *App) renderBar(st tabbar.State) string {
	pad := int(math.Round(a.cfg.Bar.Padding / 2))
	slot := int(math.Floor(st.SlotWidth))
	if slot < 1 {
		slot = 1
	}
	glyph := slot - 2
	if glyph < 1 {
		glyph = 1
	}
	offset := pad + int(math.Round(st.Position)) + (slot-glyph)/2
	if offset < 0 {
		offset = 0
	}
	indicatorRow := strings.Repeat(" ", offset) + a.styles.indicator.Render(strings.Repeat("▀", glyph))

	cells := make([]string, 0, len(st.Tabs))
	for i, t := range st.Tabs {
		style := a.styles.tab
		if i == st.Index {
			style = a.styles.tabActive
		}
		label := tabLabel(t)
		if g, ok := iconGlyphs[t.Icon]; ok {
			label = g + " " + label
		}
		cells = append(cells, lipgloss.PlaceHorizontal(slot, lipgloss.Center, style.MaxWidth(slot).Render(label)))
	}
	labels := strings.Repeat(" ", pad) + strings.Join(cells, "")

	width := int(math.Round(a.cfg.Bar.ContainerWidth))
	return a.styles.bar.Width(width).Render(indicatorRow + "\n" + labels)
}

func (a *App) renderPrompt(c emergency.Coordinates) string {
	body := a.styles.danger.Render("EMERGENCY ALERT ACTIVATED") +
		"\nYour location has been shared with the emergency response team:\n\n" +
		fmt.Sprintf("Latitude: %.6f\nLongitude: %.6f\n\n", c.Latitude, c.Longitude) +
		"Emergency services are being dispatched to your location.\n\n" +
		"[y] Confirm Emergency  [n] Cancel Alert"
	return a.styles.modal.Render(body)
}

func (a *App) renderNotice(al emergency.Alert) string {
	title := a.styles.danger.Render(al.Title())
	if al.HasLocation {
		title = a.styles.success.Render(al.Title())
	}
	return a.styles.modal.Render(title + "\n" + al.Message() + "\n\n[enter] OK")
}

func (a *App) renderStatus(st tabbar.State) string {
	parts := make([]string, 0, 3)
	if a.status != "" {
		parts = append(parts, a.status)
	}
	if st.Animating {
		parts = append(parts, fmt.Sprintf("x=%.1f→%.1f", st.Position, st.Target))
	}
	help := make([]string, 0, len(a.keys.mainHelp()))
	for _, b := range a.keys.mainHelp() {
		help = append(help, helpEntry(b))
	}
	parts = append(parts, strings.Join(help, "  "))
	return a.styles.status.Render(strings.Join(parts, " │ "))
}

func helpEntry(b key.Binding) string {
	h := b.Help()
	return h.Key + " " + h.Desc
}

func tabLabel(t route.Tab) string {
	if t.Label != "" {
		return t.Label
	}
	if t.Name != "" {
		return t.Name
	}
	return t.Route
}
