package emergency

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrLocationUnavailable = errors.New("location unavailable")
)

// Status is a step of the alert workflow.
type Status string

const (
	StatusIdle                 Status = "idle"
	StatusRequestingPermission Status = "requesting_permission"
	StatusPermissionGranted    Status = "permission_granted"
	StatusPermissionDenied     Status = "permission_denied"
	StatusAcquiringLocation    Status = "acquiring_location"
	StatusLocationAcquired     Status = "location_acquired"
	StatusLocationFailed       Status = "location_failed"
	StatusAwaitingConfirmation Status = "awaiting_confirmation"
	StatusConfirmed            Status = "confirmed"
	StatusCancelled            Status = "cancelled"
	StatusSent                 Status = "sent"
)

// Terminal reports whether no further user or device input is accepted.
func (s Status) Terminal() bool {
	switch s {
	case StatusSent, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// Permission is the tri-state outcome of the permission request.
type Permission int

const (
	PermissionUnknown Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	}
	return "unknown"
}

// Reason explains why an alert carries no location.
type Reason string

const (
	ReasonNone                Reason = ""
	ReasonPermissionDenied    Reason = "PermissionDenied"
	ReasonLocationUnavailable Reason = "LocationUnavailable"
)

// Decision is the user's answer at the confirmation step.
type Decision int

const (
	DecisionNone Decision = iota
	DecisionConfirmed
	DecisionCancelled
)

// Coordinates is a device position in degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f, %.6f", c.Latitude, c.Longitude)
}

// Session is one alert from trigger to reset. The zero value is idle.
type Session struct {
	ID         uuid.UUID
	Status     Status
	Permission Permission
	Location   *Coordinates
	Reason     Reason
	Err        error
	Decision   Decision
	Trail      []Status
	Notified   bool
}

// Active reports whether the session is in flight.
func (s Session) Active() bool {
	return s.Status != "" && s.Status != StatusIdle
}

func (s Session) clone() Session {
	out := s
	out.Trail = append([]Status(nil), s.Trail...)
	if s.Location != nil {
		loc := *s.Location
		out.Location = &loc
	}
	return out
}

func (s Session) enter(status Status) Session {
	s.Status = status
	s.Trail = append(s.Trail, status)
	return s
}

// Alert is the payload handed to the notification collaborator.
type Alert struct {
	Session     uuid.UUID
	HasLocation bool
	Latitude    float64
	Longitude   float64
	Reason      Reason
}

func alertFor(s Session) Alert {
	a := Alert{Session: s.ID, Reason: s.Reason}
	if s.Location != nil && s.Reason == ReasonNone {
		a.HasLocation = true
		a.Latitude = s.Location.Latitude
		a.Longitude = s.Location.Longitude
	}
	return a
}

// Title is the heading shown when the alert is acknowledged.
func (a Alert) Title() string {
	if a.HasLocation {
		return "Help is on the way"
	}
	if a.Reason == ReasonPermissionDenied {
		return "Emergency Alert Activated"
	}
	return "Emergency Alert"
}

// Message is the acknowledgement text shown to the user.
func (a Alert) Message() string {
	switch {
	case a.HasLocation:
		return fmt.Sprintf("Emergency response team has been notified and is en route to your location.\n\nLatitude: %.6f\nLongitude: %.6f", a.Latitude, a.Longitude)
	case a.Reason == ReasonPermissionDenied:
		return "Location permission denied. Emergency alert sent without location data.\n\nEmergency services have been notified."
	default:
		return "Unable to get your location. Emergency alert sent without location data.\n\nEmergency services have been notified."
	}
}
