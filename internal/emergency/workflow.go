package emergency

import (
	"fmt"

	"github.com/google/uuid"
)

// transition is the whole state machine. It never mutates s; follow-up
// events are queued behind any events already waiting.
func transition(s Session, ev Event) (Session, []Effect, []Event) {
	switch e := ev.(type) {
	case Trigger:
		if s.Active() {
			return s, nil, nil
		}
		next := Session{ID: e.ID}.enter(StatusRequestingPermission)
		return next, []Effect{Cue{Session: next.ID}, RequestPermission{Session: next.ID}}, nil

	case PermissionResolved:
		if e.Session != s.ID || s.Status != StatusRequestingPermission {
			return s, nil, nil
		}
		next := s.clone()
		switch {
		case e.Err != nil:
			next.Reason = ReasonLocationUnavailable
			next.Err = fmt.Errorf("%w: request permission: %v", ErrLocationUnavailable, e.Err)
			next = next.enter(StatusLocationFailed)
		case e.Granted:
			next.Permission = PermissionGranted
			next = next.enter(StatusPermissionGranted)
		default:
			next.Permission = PermissionDenied
			next.Reason = ReasonPermissionDenied
			next.Err = ErrPermissionDenied
			next = next.enter(StatusPermissionDenied)
		}
		return next, nil, []Event{advance{session: s.ID}}

	case LocationResolved:
		if e.Session != s.ID || s.Status != StatusAcquiringLocation {
			return s, nil, nil
		}
		next := s.clone()
		if e.Err != nil {
			next.Reason = ReasonLocationUnavailable
			next.Err = fmt.Errorf("%w: %v", ErrLocationUnavailable, e.Err)
			next = next.enter(StatusLocationFailed)
		} else {
			loc := e.Coordinates
			next.Location = &loc
			next = next.enter(StatusLocationAcquired)
		}
		return next, nil, []Event{advance{session: s.ID}}

	case Decide:
		if s.Status != StatusAwaitingConfirmation || (e.Session != uuid.Nil && e.Session != s.ID) {
			return s, nil, nil
		}
		next := s.clone()
		if e.Confirm {
			next.Decision = DecisionConfirmed
			next = next.enter(StatusConfirmed)
		} else {
			next.Decision = DecisionCancelled
			next = next.enter(StatusCancelled)
		}
		return next, nil, []Event{advance{session: s.ID}}

	case advance:
		if e.session != s.ID {
			return s, nil, nil
		}
		return step(s)

	case reset:
		if e.session != s.ID || !s.Status.Terminal() {
			return s, nil, nil
		}
		return Session{Status: StatusIdle}, []Effect{Closed{Session: s.clone()}}, nil
	}
	return s, nil, nil
}

// step leaves a transient status.
func step(s Session) (Session, []Effect, []Event) {
	switch s.Status {
	case StatusPermissionGranted:
		next := s.clone().enter(StatusAcquiringLocation)
		return next, []Effect{AcquireLocation{Session: s.ID}}, nil
	case StatusLocationAcquired:
		next := s.clone().enter(StatusAwaitingConfirmation)
		return next, []Effect{PromptConfirmation{Session: s.ID, Coordinates: *s.Location}}, nil
	case StatusPermissionDenied, StatusLocationFailed, StatusConfirmed:
		next := s.clone().enter(StatusSent)
		var effects []Effect
		if !next.Notified {
			next.Notified = true
			effects = append(effects, Notify{Alert: alertFor(next)})
		}
		return next, effects, []Event{reset{session: s.ID}}
	case StatusCancelled:
		return s, nil, []Event{reset{session: s.ID}}
	}
	return s, nil, nil
}

// Workflow owns the single alert session. Events are queued and applied
// one at a time, so a Dispatch made while effects are being produced
// never interleaves with the transition in progress.
type Workflow struct {
	session     Session
	last        *Session
	queue       []Event
	draining    bool
	pending     []Effect
	newID       func() uuid.UUID
	subscribers []func(Session)
}

// New returns an idle workflow.
func New() *Workflow {
	return &Workflow{newID: uuid.New}
}

// Subscribe registers fn to receive a snapshot after every status change,
// including the reset to idle.
func (w *Workflow) Subscribe(fn func(Session)) {
	if fn != nil {
		w.subscribers = append(w.subscribers, fn)
	}
}

// Session returns a copy of the current session.
func (w *Workflow) Session() Session { return w.session.clone() }

// Status is the current session status; idle when no session exists.
func (w *Workflow) Status() Status {
	if !w.session.Active() {
		return StatusIdle
	}
	return w.session.Status
}

// Busy reports whether a session is in flight and a Trigger would be
// ignored.
func (w *Workflow) Busy() bool { return w.session.Active() }

// Last returns the most recently closed session.
func (w *Workflow) Last() (Session, bool) {
	if w.last == nil {
		return Session{}, false
	}
	return w.last.clone(), true
}

// Dispatch queues ev and applies every queued event. It returns the
// effects produced, in order. When called from inside a drain the event is
// queued and its effects are returned by the outer call.
func (w *Workflow) Dispatch(ev Event) []Effect {
	w.queue = append(w.queue, ev)
	if w.draining {
		return nil
	}
	w.draining = true
	defer func() { w.draining = false }()

	for len(w.queue) > 0 {
		next := w.queue[0]
		w.queue = w.queue[1:]
		if t, ok := next.(Trigger); ok && t.ID == uuid.Nil && !w.session.Active() {
			t.ID = w.newID()
			next = t
		}

		prev := w.session.Status
		session, effects, follow := transition(w.session, next)
		w.session = session
		w.pending = append(w.pending, effects...)
		w.queue = append(w.queue, follow...)

		for _, eff := range effects {
			if c, ok := eff.(Closed); ok {
				closed := c.Session
				w.last = &closed
			}
		}
		if session.Status != prev {
			for _, fn := range w.subscribers {
				fn(session.clone())
			}
		}
	}

	out := w.pending
	w.pending = nil
	return out
}
