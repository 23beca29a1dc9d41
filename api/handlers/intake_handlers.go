package handlers

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"nis2-copilot/core/drafts"
	"nis2-copilot/core/intake"
	"nis2-copilot/core/render"
	"nis2-copilot/core/utils"
)

type IntakeHandler struct {
	svc    *intake.Service
	logger *utils.Logger
}

func NewIntakeHandler(svc *intake.Service, logger *utils.Logger) *IntakeHandler {
	return &IntakeHandler{svc: svc, logger: logger}
}

// Offset hints arrive as any because browsers send them as numbers or numeric
// strings depending on how the form serializes.
type intakeRequestDTO struct {
	ContactEmail                  string              `json:"contactEmail"`
	FreeText                      string              `json:"freeText"`
	AwarenessTime                 string              `json:"awarenessTime"`
	AwarenessOffsetMinutes        any                 `json:"awarenessOffsetMinutes"`
	AwarenessClientOffsetMinutes  any                 `json:"awarenessClientOffsetMinutes"`
	AwarenessTimezoneOffset       any                 `json:"awarenessTimezoneOffset"`
	AwarenessClientTimezoneOffset any                 `json:"awarenessClientTimezoneOffset"`
	Files                         []intake.FileUpload `json:"files"`
}

type intakeResponseDTO struct {
	IntakeID               string                    `json:"intakeId"`
	AwarenessReceived      string                    `json:"awarenessReceived"`
	AwarenessSource        string                    `json:"awarenessSource"`
	AwarenessOffsetMinutes *int                      `json:"awarenessOffsetMinutes"`
	AwarenessTimeUTC       string                    `json:"awarenessTimeUtc"`
	Due                    dueDTO                    `json:"due"`
	Files                  []intake.AttachmentRecord `json:"files"`
	Drafts                 drafts.Bundle             `json:"drafts"`
	DraftSource            drafts.Source             `json:"draftSource"`
	Reports                []render.RenderedReport   `json:"reports"`
}

type dueDTO struct {
	EarlyWarning         string `json:"earlyWarning"`
	IncidentNotification string `json:"incidentNotification"`
	FinalReport          string `json:"finalReport"`
}

func (h *IntakeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var dto intakeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "payload too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	result, err := h.svc.Process(r.Context(), intake.Request{
		ContactEmail:  dto.ContactEmail,
		FreeText:      dto.FreeText,
		AwarenessTime: dto.AwarenessTime,
		OffsetHints:   dto.offsetHints(),
		Files:         dto.Files,
	})
	if err != nil {
		if intake.IsInputError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		h.logger.Errorf("intake failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
		return
	}

	files := result.Files
	if files == nil {
		files = []intake.AttachmentRecord{}
	}
	writeJSON(w, http.StatusOK, intakeResponseDTO{
		IntakeID:               result.IntakeID,
		AwarenessReceived:      result.Awareness.RawReceived,
		AwarenessSource:        result.Awareness.Source,
		AwarenessOffsetMinutes: result.Awareness.OffsetMinutes,
		AwarenessTimeUTC:       utils.FormatInstant(result.Awareness.InstantUTC),
		Due: dueDTO{
			EarlyWarning:         utils.FormatInstant(result.Due.EarlyWarning),
			IncidentNotification: utils.FormatInstant(result.Due.IncidentNotification),
			FinalReport:          utils.FormatInstant(result.Due.FinalReport),
		},
		Files:       files,
		Drafts:      result.Drafts,
		DraftSource: result.DraftSource,
		Reports:     result.Reports,
	})
}

func (dto *intakeRequestDTO) offsetHints() map[string]float64 {
	raw := map[string]any{
		"awarenessOffsetMinutes":        dto.AwarenessOffsetMinutes,
		"awarenessClientOffsetMinutes":  dto.AwarenessClientOffsetMinutes,
		"awarenessTimezoneOffset":       dto.AwarenessTimezoneOffset,
		"awarenessClientTimezoneOffset": dto.AwarenessClientTimezoneOffset,
	}
	hints := make(map[string]float64, len(raw))
	for field, v := range raw {
		if n, ok := coerceNumber(v); ok {
			hints[field] = n
		}
	}
	return hints
}

// coerceNumber accepts JSON numbers and numeric strings and rejects anything
// not representable as a finite number.
func coerceNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
