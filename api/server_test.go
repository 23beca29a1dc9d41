package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nis2-copilot/config"
	"nis2-copilot/core/blob"
	"nis2-copilot/core/drafts"
	"nis2-copilot/core/intake"
	"nis2-copilot/core/llm"
	"nis2-copilot/core/utils"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := &config.AppConfig{
		Org: config.OrgConfig{
			Company:        "Example GmbH",
			RegulatorID:    "DE-BSI-0001",
			SectorCategory: "Digital Infrastructure",
			Classification: "essential",
			MemberStates:   []string{"DE"},
		},
		Intake: config.IntakeConfig{MaxFiles: 3, MaxFileBytes: 3 << 20, BodyLimitBytes: 20 << 20},
		AI:     config.AIConfig{Endpoint: "https://api.openai.invalid/v1", Model: "test", TimeoutSec: 1},
	}
	logger := utils.NewLogger()
	blobs, err := blob.NewLocalStore(config.StorageConfig{LocalDir: t.TempDir()})
	if err != nil {
		t.Fatalf("blob store: %v", err)
	}
	// No API key: every draft request takes the fallback path.
	aiClient := llm.NewClient(cfg.AI)
	generator := drafts.NewGenerator(aiClient, logger)
	svc := intake.NewService(cfg, blobs, generator, nil, logger)

	server := NewServer(cfg, ServerDeps{IntakeSvc: svc, AI: aiClient}, logger)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postIntake(t *testing.T, ts *httptest.Server, body any) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(ts.URL+"/api/incident-intake", "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp, decoded
}

func TestIntakeEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postIntake(t, ts, map[string]any{
		"contactEmail":           "soc@example.test",
		"freeText":               "Ransomware detected.",
		"awarenessTime":          "2025-01-01T09:00",
		"awarenessOffsetMinutes": 0,
		"files": []map[string]any{
			{"name": "triage.pdf", "type": "application/pdf", "data": base64.StdEncoding.EncodeToString([]byte("notes"))},
		},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, body)
	}
	if !strings.HasPrefix(body["intakeId"].(string), "intake-") {
		t.Fatalf("intakeId = %v", body["intakeId"])
	}
	if body["awarenessTimeUtc"] != "2025-01-01T09:00:00Z" {
		t.Fatalf("awarenessTimeUtc = %v", body["awarenessTimeUtc"])
	}
	if body["awarenessSource"] != "datetime-local(awarenessOffsetMinutes)" {
		t.Fatalf("awarenessSource = %v", body["awarenessSource"])
	}
	if body["draftSource"] != "fallback" {
		t.Fatalf("draftSource = %v", body["draftSource"])
	}
	due := body["due"].(map[string]any)
	if due["earlyWarning"] != "2025-01-02T09:00:00Z" {
		t.Fatalf("earlyWarning due = %v", due["earlyWarning"])
	}
	if due["incidentNotification"] != "2025-01-04T09:00:00Z" {
		t.Fatalf("incidentNotification due = %v", due["incidentNotification"])
	}
	if due["finalReport"] != "2025-01-31T09:00:00Z" {
		t.Fatalf("finalReport due = %v", due["finalReport"])
	}
	if reports := body["reports"].([]any); len(reports) != 3 {
		t.Fatalf("reports = %d", len(reports))
	}
	if files := body["files"].([]any); len(files) != 1 {
		t.Fatalf("files = %d", len(files))
	}
	draftsObj := body["drafts"].(map[string]any)
	ew := draftsObj["earlyWarning"].(map[string]any)
	if ew["awarenessTimeUTC"] != "2025-01-01T09:00:00Z" {
		t.Fatalf("draft awareness = %v", ew["awarenessTimeUTC"])
	}
}

func TestIntakeEndpointStringOffsetHint(t *testing.T) {
	ts := newTestServer(t)
	resp, body := postIntake(t, ts, map[string]any{
		"contactEmail":           "soc@example.test",
		"freeText":               "incident",
		"awarenessTime":          "2025-10-19T12:00",
		"awarenessOffsetMinutes": "120",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["awarenessTimeUtc"] != "2025-10-19T10:00:00Z" {
		t.Fatalf("awarenessTimeUtc = %v", body["awarenessTimeUtc"])
	}
}

func TestIntakeEndpointValidation(t *testing.T) {
	ts := newTestServer(t)

	resp, body := postIntake(t, ts, map[string]any{"freeText": "incident"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing contact: status = %d", resp.StatusCode)
	}
	if body["error"] == "" {
		t.Fatalf("missing error message")
	}

	resp, _ = postIntake(t, ts, map[string]any{"contactEmail": "a@b.test"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing free text: status = %d", resp.StatusCode)
	}

	resp, _ = postIntake(t, ts, map[string]any{
		"contactEmail": "a@b.test",
		"freeText":     "incident",
		"files": []map[string]any{
			{"name": "virus.exe", "type": "application/x-executable", "data": base64.StdEncoding.EncodeToString([]byte("x"))},
		},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("rejected attachment: status = %d", resp.StatusCode)
	}
}

func TestIntakeEndpointBadJSON(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/api/incident-intake", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["ok"] != true {
		t.Fatalf("ok = %v", body["ok"])
	}
}

func TestAISelfTestWithoutCredential(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/ai-selftest")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["ok"] != false {
		t.Fatalf("ok = %v, selftest must report the missing credential", body["ok"])
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)
	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/incident-intake", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header")
	}
}
