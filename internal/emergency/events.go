package emergency

import "github.com/google/uuid"

// Event is an input to the workflow. Events are plain values so a host
// event loop can carry them as messages.
type Event interface{ isEvent() }

// Trigger starts a session. A zero ID is replaced with a fresh one.
type Trigger struct{ ID uuid.UUID }

// PermissionResolved carries the outcome of a RequestPermission effect.
type PermissionResolved struct {
	Session uuid.UUID
	Granted bool
	Err     error
}

// LocationResolved carries the outcome of an AcquireLocation effect.
type LocationResolved struct {
	Session     uuid.UUID
	Coordinates Coordinates
	Err         error
}

// Decide is the user's answer to PromptConfirmation. A zero Session
// addresses whichever session is awaiting confirmation.
type Decide struct {
	Session uuid.UUID
	Confirm bool
}

type advance struct{ session uuid.UUID }

type reset struct{ session uuid.UUID }

func (Trigger) isEvent()            {}
func (PermissionResolved) isEvent() {}
func (LocationResolved) isEvent()   {}
func (Decide) isEvent()             {}
func (advance) isEvent()            {}
func (reset) isEvent()              {}

// Effect is work the host must perform on behalf of the workflow.
type Effect interface{ isEffect() }

// Cue asks for a haptic or attention cue. It is fired synchronously.
type Cue struct{ Session uuid.UUID }

// RequestPermission asks the host to request location permission and feed
// back a PermissionResolved.
type RequestPermission struct{ Session uuid.UUID }

// AcquireLocation asks the host to read the device location and feed back
// a LocationResolved.
type AcquireLocation struct{ Session uuid.UUID }

// PromptConfirmation asks the user to confirm dispatch with the acquired
// coordinates. The answer is a Decide event.
type PromptConfirmation struct {
	Session     uuid.UUID
	Coordinates Coordinates
}

// Notify hands the alert payload to the notification collaborator.
type Notify struct{ Alert Alert }

// Closed reports that a session ended and the workflow is idle again.
type Closed struct{ Session Session }

func (Cue) isEffect()                {}
func (RequestPermission) isEffect()  {}
func (AcquireLocation) isEffect()    {}
func (PromptConfirmation) isEffect() {}
func (Notify) isEffect()             {}
func (Closed) isEffect()             {}
