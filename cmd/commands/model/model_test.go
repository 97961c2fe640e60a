package model

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"modelwatch/cmd/commands/cmdutil"
	"modelwatch/internal/config"
	"modelwatch/internal/services/auth"
)

const safetyBody = `{
	"metrics": [
		{"name": "binary_recall", "slice": "overall", "value": 0.93, "threshold": 0.9, "passed": true,
		 "history": [0.93], "timestamps": ["2026-08-22T00:00:00Z"], "sample_sizes": [125]},
		{"name": "binary_precision", "slice": "overall", "value": 0.61, "threshold": 0.7, "passed": false,
		 "history": [0.61], "timestamps": ["2026-08-22T00:00:00Z"], "sample_sizes": [125]}
	],
	"last_evaluated": "2026-08-22T09:15:00Z",
	"is_recently_evaluated": true,
	"overall_status": "warning"
}`

const healthBody = `{
	"metrics": [
		{"name": "latency_p99", "value": 180.5, "unit": "ms", "status": "met"},
		{"name": "error_rate", "value": 2.4, "unit": "%", "status": "not met"}
	],
	"last_evaluated": "2026-08-22T09:15:00Z"
}`

func setupBackend(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)

	cfg := &config.Config{APIURL: srv.URL}
	if err := cfg.Save(); err != nil {
		t.Fatalf("saving config: %v", err)
	}

	cmdutil.SetStore(auth.NewMockStore())
	t.Cleanup(cmdutil.ResetStore)
	cmdutil.DisableCache()
	t.Cleanup(cmdutil.ResetCache)

	return srv
}

func execModel(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestSafety_Table(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/model/sepsis-xgb/safety" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(safetyBody))
	})

	stdout, _, err := execModel(t, "safety", "sepsis-xgb")
	if err != nil {
		t.Fatalf("safety failed: %v", err)
	}
	if !strings.Contains(stdout, "Overall status: warning") {
		t.Errorf("missing overall status:\n%s", stdout)
	}
	if !strings.Contains(stdout, "recent") {
		t.Errorf("missing recency flag:\n%s", stdout)
	}
	if !strings.Contains(stdout, "binary_recall (overall)") || !strings.Contains(stdout, "pass") {
		t.Errorf("missing passing metric row:\n%s", stdout)
	}
	if !strings.Contains(stdout, "binary_precision (overall)") || !strings.Contains(stdout, "fail") {
		t.Errorf("missing failing metric row:\n%s", stdout)
	}
}

func TestSafety_NeverEvaluated(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"metrics": [], "last_evaluated": null, "is_recently_evaluated": false, "overall_status": "unknown"}`))
	})

	stdout, _, err := execModel(t, "safety", "new-model")
	if err != nil {
		t.Fatalf("safety failed: %v", err)
	}
	if !strings.Contains(stdout, "Last evaluated: never") {
		t.Errorf("expected never marker:\n%s", stdout)
	}
}

func TestHealth_Table(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/model/sepsis-xgb/health" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(healthBody))
	})

	stdout, _, err := execModel(t, "health", "sepsis-xgb")
	if err != nil {
		t.Fatalf("health failed: %v", err)
	}
	if !strings.Contains(stdout, "latency_p99") || !strings.Contains(stdout, "ms") {
		t.Errorf("missing latency row:\n%s", stdout)
	}
	if !strings.Contains(stdout, "not met") {
		t.Errorf("missing failing check:\n%s", stdout)
	}
}

func TestStatus_FetchesBoth(t *testing.T) {
	paths := make(chan string, 2)
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		paths <- r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/safety"):
			w.Write([]byte(safetyBody))
		case strings.HasSuffix(r.URL.Path, "/health"):
			w.Write([]byte(healthBody))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	stdout, _, err := execModel(t, "status", "sepsis-xgb")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}

	got := map[string]bool{<-paths: true, <-paths: true}
	if !got["/model/sepsis-xgb/safety"] || !got["/model/sepsis-xgb/health"] {
		t.Errorf("expected both safety and health fetches, got %v", got)
	}
	if !strings.Contains(stdout, "Overall status: warning") || !strings.Contains(stdout, "latency_p99") {
		t.Errorf("combined output missing sections:\n%s", stdout)
	}
}

func TestStatus_JSON(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if strings.HasSuffix(r.URL.Path, "/safety") {
			w.Write([]byte(safetyBody))
		} else {
			w.Write([]byte(healthBody))
		}
	})

	stdout, _, err := execModel(t, "status", "sepsis-xgb", "-o", "json")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}

	var got modelStatus
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, stdout)
	}
	if got.ModelName != "sepsis-xgb" {
		t.Errorf("model_name = %s", got.ModelName)
	}
	if got.Safety == nil || got.Safety.OverallStatus != "warning" {
		t.Errorf("unexpected safety: %+v", got.Safety)
	}
	if got.Health == nil || len(got.Health.Metrics) != 2 {
		t.Errorf("unexpected health: %+v", got.Health)
	}
}

func TestHealth_ServerError(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Model not found"}`))
	})

	_, _, err := execModel(t, "health", "missing")
	if err == nil {
		t.Fatal("expected an error for a missing model")
	}
	if !strings.Contains(err.Error(), "Model not found") {
		t.Errorf("error should carry backend detail, got %v", err)
	}
}
