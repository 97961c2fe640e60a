package endpoint

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"modelwatch/cmd/commands/cmdutil"
	"modelwatch/internal/auditlog"
	"modelwatch/internal/config"
	"modelwatch/internal/database"
	"modelwatch/internal/services/auth"
)

// setupBackend points the CLI at a fake backend and isolates config, auth,
// cache, and the audit database in temp locations.
func setupBackend(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	config.SetPath(filepath.Join(dir, "config.json"))
	t.Cleanup(config.ResetPath)
	database.SetPath(filepath.Join(dir, "audit.db"))
	t.Cleanup(database.ResetPath)

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

func execEndpoint(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestList_Table(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/evaluation_servers" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"endpoints": [
			{"endpoint_name": "sepsis-prod", "model_name": "sepsis-xgb", "model_description": "Sepsis risk"},
			{"endpoint_name": "delirium-pilot", "model_name": "delirium-lstm", "model_description": ""}
		]}`))
	})

	stdout, _, err := execEndpoint(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(stdout, "sepsis-prod") || !strings.Contains(stdout, "sepsis-xgb") {
		t.Errorf("table missing endpoint row:\n%s", stdout)
	}
	if !strings.Contains(stdout, "delirium-pilot") {
		t.Errorf("table missing second row:\n%s", stdout)
	}
	if !strings.Contains(stdout, "ENDPOINT") {
		t.Errorf("table missing header:\n%s", stdout)
	}
}

func TestList_JSON(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"endpoints": [{"endpoint_name": "sepsis-prod", "model_name": "sepsis-xgb", "model_description": "Sepsis risk"}]}`))
	})

	stdout, _, err := execEndpoint(t, "list", "-o", "json")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	var got []map[string]string
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, stdout)
	}
	if len(got) != 1 || got[0]["endpoint_name"] != "sepsis-prod" {
		t.Errorf("unexpected JSON output: %v", got)
	}
}

func TestList_Empty(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"endpoints": []}`))
	})

	stdout, _, err := execEndpoint(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(stdout, "No evaluation endpoints") {
		t.Errorf("expected empty message, got:\n%s", stdout)
	}
}

func TestCreate_Flags(t *testing.T) {
	var gotBody map[string]any
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/create_evaluation_server" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Endpoint created successfully"}`))
	})

	stdout, _, err := execEndpoint(t, "create",
		"--name", "sepsis-prod",
		"--model", "sepsis-xgb",
		"--description", "Sepsis risk model",
		"--metrics", "binary_auroc,binary_f1_score",
	)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(stdout, "Endpoint created successfully") {
		t.Errorf("missing confirmation, got:\n%s", stdout)
	}

	if gotBody["endpoint_name"] != "sepsis-prod" {
		t.Errorf("endpoint_name = %v", gotBody["endpoint_name"])
	}
	metrics, ok := gotBody["metrics"].([]any)
	if !ok || len(metrics) != 2 {
		t.Fatalf("metrics = %v", gotBody["metrics"])
	}
	first := metrics[0].(map[string]any)
	if first["name"] != "binary_auroc" || first["type"] != "binary" {
		t.Errorf("first metric = %v", first)
	}
}

func TestCreate_InvalidName(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend should not be called for an invalid name")
	})

	_, _, err := execEndpoint(t, "create",
		"--name", "-bad-name",
		"--model", "sepsis-xgb",
		"--metrics", "binary_auroc",
	)
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestCreate_WritesAuditEntry(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Endpoint created successfully"}`))
	})

	_, _, err := execEndpoint(t, "create",
		"--name", "sepsis-prod",
		"--model", "sepsis-xgb",
		"--metrics", "binary_auroc",
	)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	repo, err := auditlog.Open()
	if err != nil {
		t.Fatalf("opening audit log: %v", err)
	}
	defer repo.Close()

	entries, err := repo.List(10)
	if err != nil {
		t.Fatalf("listing audit log: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Command != "endpoint create" || e.Endpoint != "sepsis-prod" || e.Outcome != auditlog.OutcomeSuccess {
		t.Errorf("unexpected audit entry: %+v", e)
	}
}

func TestDelete_Yes(t *testing.T) {
	var deleted string
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("unexpected method %s", r.Method)
		}
		deleted = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Endpoint deleted successfully"}`))
	})

	stdout, _, err := execEndpoint(t, "delete", "sepsis-prod", "--yes")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted != "/delete_evaluation_server/sepsis-prod" {
		t.Errorf("deleted path = %s", deleted)
	}
	if !strings.Contains(stdout, "deleted") {
		t.Errorf("missing confirmation, got:\n%s", stdout)
	}
}

func TestDelete_NotFound(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Evaluation endpoint not found"}`))
	})

	_, _, err := execEndpoint(t, "delete", "missing", "--yes")
	if err == nil {
		t.Fatal("expected an error for a missing endpoint")
	}
}

func TestLogs_Table(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/server-logs" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "1", "server_name": "sepsis-prod", "created_at": "2026-01-10T08:00:00Z", "last_evaluated": "2026-08-01T12:30:00Z", "evaluation_count": 42}
		]`))
	})

	stdout, _, err := execEndpoint(t, "logs")
	if err != nil {
		t.Fatalf("logs failed: %v", err)
	}
	if !strings.Contains(stdout, "sepsis-prod") || !strings.Contains(stdout, "42") {
		t.Errorf("table missing log row:\n%s", stdout)
	}
}

func TestLogs_NeverEvaluated(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "1", "server_name": "new-endpoint", "created_at": "2026-08-20T08:00:00Z", "last_evaluated": null, "evaluation_count": 0}
		]`))
	})

	stdout, _, err := execEndpoint(t, "logs")
	if err != nil {
		t.Fatalf("logs failed: %v", err)
	}
	if !strings.Contains(stdout, "never") {
		t.Errorf("expected never marker, got:\n%s", stdout)
	}
}
