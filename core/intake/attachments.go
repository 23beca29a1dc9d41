package intake

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"nis2-copilot/config"
	"nis2-copilot/core/blob"
	"nis2-copilot/core/utils"
)

// Input errors the submitter can fix. The HTTP layer maps these to 4xx.
var (
	ErrTooManyAttachments        = errors.New("too many attachments")
	ErrAttachmentTooLarge        = errors.New("attachment too large")
	ErrUnsupportedAttachmentType = errors.New("unsupported attachment type")
	ErrInvalidAttachmentData     = errors.New("invalid attachment payload")
)

const (
	maxAttachmentNameLen = 200
	maxSanitizedNameLen  = 120
)

type FileUpload struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	Data string `json:"data"`
}

type AttachmentRecord struct {
	Name         string `json:"name"`
	DeclaredType string `json:"type"`
	SizeBytes    int64  `json:"size"`
	SHA256       string `json:"sha256"`
	StorageURL   string `json:"url"`
	StoragePath  string `json:"storagePath"`
}

// Either the declared MIME type or the sanitized filename extension passing
// its allow-list is sufficient; both must fail to reject.
var allowedMIMETypes = map[string]struct{}{
	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {},
	"message/rfc822":             {},
	"application/vnd.ms-outlook": {},
	"image/png":                  {},
	"image/jpeg":                 {},
	"application/octet-stream":   {},
}

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".eml":  {},
	".msg":  {},
	".png":  {},
	".jpg":  {},
	".jpeg": {},
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// SanitizeFilename normalizes a client filename for use in a storage path:
// NFKD decomposition, every character outside [A-Za-z0-9._-] replaced with an
// underscore, capped at 120 characters.
func SanitizeFilename(name string) string {
	s := unsafeFilenameChars.ReplaceAllString(norm.NFKD.String(name), "_")
	if len(s) > maxSanitizedNameLen {
		s = s[:maxSanitizedNameLen]
	}
	return s
}

// Ingestor validates submitted evidence files and persists them through the
// storage collaborator.
type Ingestor struct {
	cfg    config.IntakeConfig
	blobs  blob.Store
	logger *utils.Logger
	now    func() time.Time
}

func NewIngestor(cfg config.IntakeConfig, blobs blob.Store, logger *utils.Logger) *Ingestor {
	return &Ingestor{cfg: cfg, blobs: blobs, logger: logger, now: time.Now}
}

// Ingest validates the whole batch first, then stores each file. The content
// hash is computed over the decoded bytes before the store call, so it is a
// verifiable proof of the stored content regardless of upload outcome. The
// first validation failure aborts the batch; a submission with a rejected
// attachment must not silently proceed without it.
func (ing *Ingestor) Ingest(ctx context.Context, intakeID string, files []FileUpload) ([]AttachmentRecord, error) {
	maxFiles := ing.cfg.MaxFiles
	if maxFiles <= 0 {
		maxFiles = 3
	}
	maxBytes := ing.cfg.MaxFileBytes
	if maxBytes <= 0 {
		maxBytes = 3 << 20
	}
	if len(files) > maxFiles {
		return nil, fmt.Errorf("%w: got %d, limit %d", ErrTooManyAttachments, len(files), maxFiles)
	}

	type pending struct {
		record AttachmentRecord
		data   []byte
	}
	var batch []pending
	for _, f := range files {
		name := strings.TrimSpace(f.Name)
		if len(name) > maxAttachmentNameLen {
			name = name[:maxAttachmentNameLen]
		}
		// An entry without a name or payload is an unused upload slot.
		if name == "" || f.Data == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(f.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s is not valid base64", ErrInvalidAttachmentData, name)
		}
		if int64(len(data)) > maxBytes {
			return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrAttachmentTooLarge, name, len(data), maxBytes)
		}
		sanitized := SanitizeFilename(name)
		if !typeAllowed(f.Type, sanitized) {
			return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedAttachmentType, name, declaredType(f.Type))
		}
		batch = append(batch, pending{
			record: AttachmentRecord{
				Name:         sanitized,
				DeclaredType: declaredType(f.Type),
				SizeBytes:    int64(len(data)),
				SHA256:       utils.Sha256Hex(data),
			},
			data: data,
		})
	}

	stamp := ing.now().UTC().Format("20060102T150405Z")
	records := make([]AttachmentRecord, 0, len(batch))
	for i, p := range batch {
		objectPath := fmt.Sprintf("%s/%s_%02d_%s", intakeID, stamp, i, p.record.Name)
		res, err := ing.blobs.Put(ctx, objectPath, p.data, putContentType(p.record.DeclaredType))
		if err != nil {
			return nil, fmt.Errorf("store attachment %s: %w", p.record.Name, err)
		}
		p.record.StorageURL = res.URL
		p.record.StoragePath = res.Path
		records = append(records, p.record)
	}
	return records, nil
}

func typeAllowed(declared, sanitizedName string) bool {
	mt := strings.ToLower(strings.TrimSpace(declared))
	if i := strings.Index(mt, ";"); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	if _, ok := allowedMIMETypes[mt]; ok {
		return true
	}
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(sanitizedName))]
	return ok
}

func declaredType(t string) string {
	t = strings.TrimSpace(t)
	if t == "" {
		return "unknown"
	}
	return t
}

func putContentType(declared string) string {
	if declared == "" || declared == "unknown" {
		return "application/octet-stream"
	}
	return declared
}
