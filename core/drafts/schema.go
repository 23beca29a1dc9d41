package drafts

import (
	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Report type discriminants, fixed per draft kind.
const (
	TypeEarlyWarning         = "EARLY_WARNING"
	TypeIncidentNotification = "INCIDENT_NOTIFICATION"
	TypeFinalReport          = "FINAL_REPORT"
)

// Timeline and indicator fields are typed as any: the schema requires the key
// to be present but admits string, array, or object shapes, which the renderer
// flattens. Everything else is pinned to strings or string arrays.

type EarlyWarning struct {
	ReportType       string   `json:"reportType"`
	Summary          string   `json:"summary"`
	AwarenessTimeUTC string   `json:"awarenessTimeUTC"`
	InitialImpact    string   `json:"initialImpact"`
	LikelyCause      string   `json:"likelyCause"`
	MitigationSteps  []string `json:"mitigationSteps"`
	NextActions      []string `json:"nextActions"`
}

type IncidentNotification struct {
	ReportType             string   `json:"reportType"`
	Summary                string   `json:"summary"`
	Timeline               any      `json:"timeline"`
	AffectedServices       []string `json:"affectedServices"`
	AffectedRegions        []string `json:"affectedRegions"`
	UserImpact             string   `json:"userImpact"`
	IndicatorsOfCompromise any      `json:"indicatorsOfCompromise"`
	LegalAndRegulatory     []string `json:"legalAndRegulatory"`
	MitigationSteps        []string `json:"mitigationSteps"`
	OpenQuestions          []string `json:"openQuestions"`
}

type FinalReport struct {
	ReportType            string   `json:"reportType"`
	RootCause             string   `json:"rootCause"`
	DetailedImpact        string   `json:"detailedImpact"`
	DataSubjectsOrRecords string   `json:"dataSubjectsOrRecords"`
	FullTimeline          any      `json:"fullTimeline"`
	LessonsLearned        []string `json:"lessonsLearned"`
	PreventiveMeasures    []string `json:"preventiveMeasures"`
	AttachmentsNote       string   `json:"attachmentsNote"`
}

// Bundle is produced whole: either fully AI-derived or fully fallback, never a
// mix.
type Bundle struct {
	EarlyWarning         EarlyWarning         `json:"earlyWarning"`
	IncidentNotification IncidentNotification `json:"incidentNotification"`
	FinalReport          FinalReport          `json:"finalReport"`
}

//go:embed bundle_schema.json
var bundleSchemaJSON string

var bundleSchema = jsonschema.MustCompileString("bundle_schema.json", bundleSchemaJSON)
