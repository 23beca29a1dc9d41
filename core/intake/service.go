package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"nis2-copilot/config"
	"nis2-copilot/core/blob"
	"nis2-copilot/core/drafts"
	"nis2-copilot/core/render"
	"nis2-copilot/core/utils"
)

var (
	ErrMissingContactEmail = errors.New("contactEmail is required")
	ErrMissingFreeText     = errors.New("freeText is required")
)

// IsInputError reports whether err was caused by the submitted payload rather
// than by the server.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingContactEmail) ||
		errors.Is(err, ErrMissingFreeText) ||
		errors.Is(err, ErrTooManyAttachments) ||
		errors.Is(err, ErrAttachmentTooLarge) ||
		errors.Is(err, ErrUnsupportedAttachmentType) ||
		errors.Is(err, ErrInvalidAttachmentData)
}

// DraftGenerator abstracts the draft pipeline so the service can be tested
// with a canned generator.
type DraftGenerator interface {
	Generate(ctx context.Context, pc drafts.PromptContext) drafts.Result
}

// AuditLogger is the write side of the audit trail. A nil logger disables
// auditing.
type AuditLogger interface {
	Log(ctx context.Context, username, action, details string) error
}

type Request struct {
	ContactEmail  string
	FreeText      string
	AwarenessTime string
	OffsetHints   map[string]float64
	Files         []FileUpload
}

type Result struct {
	IntakeID    string
	Awareness   AwarenessResolution
	Due         DeadlineSet
	Files       []AttachmentRecord
	Drafts      drafts.Bundle
	DraftSource drafts.Source
	Reports     []render.RenderedReport
}

// Service runs the intake pipeline end to end: attachments, awareness,
// deadlines, drafts, rendered reports.
type Service struct {
	cfg      *config.AppConfig
	blobs    blob.Store
	ingestor *Ingestor
	drafts   DraftGenerator
	audits   AuditLogger
	logger   *utils.Logger
	now      func() time.Time
}

func NewService(cfg *config.AppConfig, blobs blob.Store, gen DraftGenerator, audits AuditLogger, logger *utils.Logger) *Service {
	return &Service{
		cfg:      cfg,
		blobs:    blobs,
		ingestor: NewIngestor(cfg.Intake, blobs, logger),
		drafts:   gen,
		audits:   audits,
		logger:   logger,
		now:      time.Now,
	}
}

func newIntakeID() string {
	return "intake-" + uuid.Must(uuid.NewV7()).String()
}

// Process executes one submission. Attachment validation is fail-fast and runs
// before any other work; a rejected file aborts the submission. Draft
// generation and rendering never abort it: the AI path degrades to the
// deterministic fallback, and the response always carries three reports.
func (s *Service) Process(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.ContactEmail) == "" {
		return Result{}, ErrMissingContactEmail
	}
	if strings.TrimSpace(req.FreeText) == "" {
		return Result{}, ErrMissingFreeText
	}

	intakeID := newIntakeID()
	s.audit(ctx, req.ContactEmail, "intake.received", intakeID)

	files, err := s.ingestor.Ingest(ctx, intakeID, req.Files)
	if err != nil {
		return Result{}, err
	}

	awareness := ResolveAwareness(req.AwarenessTime, req.OffsetHints, s.now)
	due := ComputeDeadlines(awareness.InstantUTC)

	metas := make([]drafts.AttachmentMeta, 0, len(files))
	for _, f := range files {
		metas = append(metas, drafts.AttachmentMeta{
			Name: f.Name,
			Type: f.DeclaredType,
			Size: f.SizeBytes,
			URL:  f.StorageURL,
		})
	}
	dr := s.drafts.Generate(ctx, drafts.PromptContext{
		ContactEmail: req.ContactEmail,
		AwarenessUTC: awareness.InstantUTC,
		FreeText:     req.FreeText,
		Attachments:  metas,
	})
	if dr.Source == drafts.SourceFallback {
		s.audit(ctx, req.ContactEmail, "intake.draft_fallback", intakeID)
	}

	meta := render.Metadata{
		Company:        s.cfg.Org.Company,
		RegulatorID:    s.cfg.Org.RegulatorID,
		SectorCategory: s.cfg.Org.SectorCategory,
		Classification: s.cfg.Org.Classification,
		Contact:        req.ContactEmail,
		AwarenessUTC:   awareness.InstantUTC,
		MemberStates:   s.cfg.Org.MemberStates,
	}
	reports := make([]render.RenderedReport, 0, 3)
	for _, reportType := range []string{drafts.TypeEarlyWarning, drafts.TypeIncidentNotification, drafts.TypeFinalReport} {
		data, err := render.Render(reportType, dr.Bundle, meta)
		if err != nil {
			return Result{}, fmt.Errorf("render %s: %w", reportType, err)
		}
		stored, err := render.StoreReport(ctx, s.blobs, intakeID, reportType, data)
		if err != nil {
			return Result{}, err
		}
		s.audit(ctx, req.ContactEmail, "intake.report_stored", intakeID+" "+reportType)
		reports = append(reports, stored)
	}

	s.logger.Printf("intake %s processed: %d files, drafts=%s, %d reports",
		intakeID, len(files), dr.Source, len(reports))
	return Result{
		IntakeID:    intakeID,
		Awareness:   awareness,
		Due:         due,
		Files:       files,
		Drafts:      dr.Bundle,
		DraftSource: dr.Source,
		Reports:     reports,
	}, nil
}

// audit is best effort; an unavailable audit store never fails the intake.
func (s *Service) audit(ctx context.Context, username, action, details string) {
	if s.audits == nil {
		return
	}
	if err := s.audits.Log(ctx, username, action, details); err != nil {
		s.logger.Errorf("audit %s: %v", action, err)
	}
}
