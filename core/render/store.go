package render

import (
	"context"
	"fmt"

	"nis2-copilot/core/blob"
	"nis2-copilot/core/drafts"
)

type RenderedReport struct {
	ReportType  string `json:"reportType"`
	StorageURL  string `json:"url"`
	StoragePath string `json:"storagePath"`
	SizeBytes   int64  `json:"size"`
}

var reportFilenames = map[string]string{
	drafts.TypeEarlyWarning:         "NIS2_EarlyWarning.pdf",
	drafts.TypeIncidentNotification: "NIS2_IncidentNotification.pdf",
	drafts.TypeFinalReport:          "NIS2_FinalReport.pdf",
}

// StoreReport persists rendered bytes under the intake's namespace. Rendering
// and persistence are split so rendering stays testable without storage.
func StoreReport(ctx context.Context, blobs blob.Store, intakeID, reportType string, data []byte) (RenderedReport, error) {
	filename, ok := reportFilenames[reportType]
	if !ok {
		return RenderedReport{}, fmt.Errorf("unknown report type %q", reportType)
	}
	res, err := blobs.Put(ctx, intakeID+"/"+filename, data, "application/pdf")
	if err != nil {
		return RenderedReport{}, fmt.Errorf("store report %s: %w", reportType, err)
	}
	return RenderedReport{
		ReportType:  reportType,
		StorageURL:  res.URL,
		StoragePath: res.Path,
		SizeBytes:   res.Size,
	}, nil
}
