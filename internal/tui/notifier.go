package tui

import (
	"github.com/jask/safechat/internal/emergency"
	"github.com/jask/safechat/internal/logging"
)

// LogNotifier stands in for the emergency backend and records every
// dispatched alert in the diagnostic log.
type LogNotifier struct{}

func (LogNotifier) Notify(alert emergency.Alert) {
	if alert.HasLocation {
		logging.Logf("ALERT %s dispatched at %.6f, %.6f", alert.Session, alert.Latitude, alert.Longitude)
		return
	}
	logging.Logf("ALERT %s dispatched without location (%s)", alert.Session, alert.Reason)
}
