package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/safechat/internal/logging"
)

// routeMsg is a navigation command delivered back onto the event loop.
type routeMsg string

// Router stands in for the app's screen router. Navigate may be called from
// any goroutine; the history is only touched by the App's Update.
type Router struct {
	mu      sync.Mutex
	send    func(tea.Msg)
	history []string
}

func NewRouter(start string) *Router {
	if start == "" {
		start = "/"
	}
	return &Router{history: []string{start}}
}

// Attach sets the function used to post navigation requests, normally
// (*tea.Program).Send.
func (r *Router) Attach(send func(tea.Msg)) {
	r.mu.Lock()
	r.send = send
	r.mu.Unlock()
}

func (r *Router) Navigate(route string) {
	r.mu.Lock()
	send := r.send
	r.mu.Unlock()
	if send == nil {
		logging.Logf("navigate %s dropped: router not attached", route)
		return
	}
	send(routeMsg(route))
}

func (r *Router) Current() string { return r.history[len(r.history)-1] }

// Depth is the number of entries on the history stack.
func (r *Router) Depth() int { return len(r.history) }

func (r *Router) push(path string) {
	if path == r.Current() {
		return
	}
	r.history = append(r.history, path)
}

// back pops one entry and reports whether the path changed.
func (r *Router) back() bool {
	if len(r.history) <= 1 {
		return false
	}
	r.history = r.history[:len(r.history)-1]
	return true
}
