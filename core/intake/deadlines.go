package intake

import "time"

// Statutory reporting offsets from the awareness instant. The final report is
// due after 30 calendar days implemented as exactly 720 hours.
const (
	EarlyWarningOffset         = 24 * time.Hour
	IncidentNotificationOffset = 72 * time.Hour
	FinalReportOffset          = 720 * time.Hour
)

type DeadlineSet struct {
	EarlyWarning         time.Time `json:"earlyWarning"`
	IncidentNotification time.Time `json:"incidentNotification"`
	FinalReport          time.Time `json:"finalReport"`
}

// ComputeDeadlines derives the three regulatory due-instants from the resolved
// awareness instant. Pure and total; all outputs are UTC truncated to whole
// seconds.
func ComputeDeadlines(awareness time.Time) DeadlineSet {
	t := awareness.UTC().Truncate(time.Second)
	return DeadlineSet{
		EarlyWarning:         t.Add(EarlyWarningOffset),
		IncidentNotification: t.Add(IncidentNotificationOffset),
		FinalReport:          t.Add(FinalReportOffset),
	}
}
