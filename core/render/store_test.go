package render

import (
	"context"
	"testing"

	"nis2-copilot/core/blob"
	"nis2-copilot/core/drafts"
)

type captureStore struct {
	path        string
	contentType string
}

func (c *captureStore) Put(_ context.Context, objectPath string, data []byte, contentType string) (blob.PutResult, error) {
	c.path = objectPath
	c.contentType = contentType
	return blob.PutResult{URL: "https://blobs.test/" + objectPath, Path: objectPath, Size: int64(len(data))}, nil
}

func TestStoreReport(t *testing.T) {
	blobs := &captureStore{}
	rep, err := StoreReport(context.Background(), blobs, "intake-9", drafts.TypeEarlyWarning, []byte("%PDF-fake"))
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if blobs.path != "intake-9/NIS2_EarlyWarning.pdf" {
		t.Fatalf("path = %s", blobs.path)
	}
	if blobs.contentType != "application/pdf" {
		t.Fatalf("content type = %s", blobs.contentType)
	}
	if rep.ReportType != drafts.TypeEarlyWarning || rep.SizeBytes != int64(len("%PDF-fake")) {
		t.Fatalf("report = %+v", rep)
	}
}

func TestStoreReportFilenames(t *testing.T) {
	blobs := &captureStore{}
	cases := map[string]string{
		drafts.TypeEarlyWarning:         "NIS2_EarlyWarning.pdf",
		drafts.TypeIncidentNotification: "NIS2_IncidentNotification.pdf",
		drafts.TypeFinalReport:          "NIS2_FinalReport.pdf",
	}
	for reportType, filename := range cases {
		if _, err := StoreReport(context.Background(), blobs, "i", reportType, []byte("x")); err != nil {
			t.Fatalf("store %s: %v", reportType, err)
		}
		if blobs.path != "i/"+filename {
			t.Fatalf("path for %s = %s", reportType, blobs.path)
		}
	}
}

func TestStoreReportUnknownType(t *testing.T) {
	if _, err := StoreReport(context.Background(), &captureStore{}, "i", "WEEKLY_DIGEST", []byte("x")); err == nil {
		t.Fatalf("unknown report type accepted")
	}
}
