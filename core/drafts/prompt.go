package drafts

import (
	"encoding/json"
	"time"

	"nis2-copilot/core/utils"
)

// AttachmentMeta is the attachment view sent to the model: metadata only,
// content is never transmitted.
type AttachmentMeta struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	URL  string `json:"url"`
}

// PromptContext carries the intake facts the drafts are built from.
type PromptContext struct {
	ContactEmail string
	AwarenessUTC time.Time
	FreeText     string
	Attachments  []AttachmentMeta
}

const systemPrompt = `You are an assistant for NIS2 incident reporting.
Produce three structured report drafts, strictly as a single JSON object matching this schema.
Where information is missing, fill the field with a clear "TODO: ..." placeholder and flag uncertainty. Never omit a field.

Target JSON:
{
  "earlyWarning": {
    "reportType": "EARLY_WARNING",
    "summary": string,
    "awarenessTimeUTC": string,
    "initialImpact": string,
    "likelyCause": string,
    "mitigationSteps": string[],
    "nextActions": string[]
  },
  "incidentNotification": {
    "reportType": "INCIDENT_NOTIFICATION",
    "summary": string,
    "timeline": string[],
    "affectedServices": string[],
    "affectedRegions": string[],
    "userImpact": string,
    "indicatorsOfCompromise": string[],
    "legalAndRegulatory": string[],
    "mitigationSteps": string[],
    "openQuestions": string[]
  },
  "finalReport": {
    "reportType": "FINAL_REPORT",
    "rootCause": string,
    "detailedImpact": string,
    "dataSubjectsOrRecords": string,
    "fullTimeline": string[],
    "lessonsLearned": string[],
    "preventiveMeasures": string[],
    "attachmentsNote": string
  }
}
Output ONLY the JSON, no explanatory text.`

type userPayload struct {
	ContactEmail     string           `json:"contactEmail"`
	AwarenessTimeUTC string           `json:"awarenessTimeUTC"`
	IncidentText     string           `json:"incidentText"`
	Attachments      []AttachmentMeta `json:"attachments"`
	Guidance         string           `json:"guidance"`
}

// BuildPrompt fixes the output contract in the system message and packs the
// intake facts into a JSON user message.
func BuildPrompt(pc PromptContext) (system, user string) {
	attachments := pc.Attachments
	if attachments == nil {
		attachments = []AttachmentMeta{}
	}
	raw, _ := json.Marshal(userPayload{
		ContactEmail:     pc.ContactEmail,
		AwarenessTimeUTC: utils.FormatInstant(pc.AwarenessUTC),
		IncidentText:     pc.FreeText,
		Attachments:      attachments,
		Guidance:         "Attachments are not parsed. Use names and types as references only.",
	})
	return systemPrompt, string(raw)
}
