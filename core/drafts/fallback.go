package drafts

import (
	"time"

	"nis2-copilot/core/utils"
)

const todoMarker = "TODO: "

// FallbackBundle is the deterministic, schema-valid draft set used whenever
// the AI path fails. Every field carries an explicit placeholder except
// awarenessTimeUTC, which is known locally and must always be real.
func FallbackBundle(awareness time.Time) Bundle {
	aw := utils.FormatInstant(awareness)
	return Bundle{
		EarlyWarning: EarlyWarning{
			ReportType:       TypeEarlyWarning,
			Summary:          todoMarker + "summarize the incident",
			AwarenessTimeUTC: aw,
			InitialImpact:    todoMarker + "describe the initial impact",
			LikelyCause:      todoMarker + "state the suspected cause",
			MitigationSteps:  []string{todoMarker + "list immediate mitigation steps"},
			NextActions:      []string{todoMarker + "list next actions"},
		},
		IncidentNotification: IncidentNotification{
			ReportType:             TypeIncidentNotification,
			Summary:                todoMarker + "summarize the incident",
			Timeline:               []string{todoMarker + "add the first timeline entries"},
			AffectedServices:       []string{todoMarker + "list affected services"},
			AffectedRegions:        []string{todoMarker + "list affected regions"},
			UserImpact:             todoMarker + "describe the user impact",
			IndicatorsOfCompromise: []string{todoMarker + "list indicators of compromise"},
			LegalAndRegulatory:     []string{todoMarker + "list legal and regulatory considerations"},
			MitigationSteps:        []string{todoMarker + "list mitigation steps taken"},
			OpenQuestions:          []string{todoMarker + "list open questions"},
		},
		FinalReport: FinalReport{
			ReportType:            TypeFinalReport,
			RootCause:             todoMarker + "state the confirmed root cause",
			DetailedImpact:        todoMarker + "describe the full impact",
			DataSubjectsOrRecords: todoMarker + "quantify affected data subjects or records",
			FullTimeline:          []string{todoMarker + "add the complete timeline"},
			LessonsLearned:        []string{todoMarker + "list lessons learned"},
			PreventiveMeasures:    []string{todoMarker + "list permanent preventive measures"},
			AttachmentsNote:       todoMarker + "reference supporting attachments",
		},
	}
}
