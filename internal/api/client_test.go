package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"modelwatch/internal/domain"
	"modelwatch/internal/retry"
)

// overviewBody is a well-formed performance snapshot with an overall metric
// and one subgroup slice.
const overviewBody = `{
	"has_data": true,
	"last_n_evals": 4,
	"mean_std_min_evals": 3,
	"metric_cards": {
		"metrics": ["binary_auroc"],
		"slices": ["overall", "age:under_40"],
		"collection": [
			{
				"name": "binary_auroc",
				"display_name": "AUROC",
				"slice": "overall",
				"value": 0.91,
				"threshold": 0.8,
				"passed": true,
				"history": [0.88, 0.9, 0.89, 0.91],
				"timestamps": ["2026-08-01T00:00:00Z", "2026-08-08T00:00:00Z", "2026-08-15T00:00:00Z", "2026-08-22T00:00:00Z"],
				"sample_sizes": [120, 118, 131, 125]
			},
			{
				"name": "binary_auroc",
				"slice": "age:under_40",
				"value": 0.87,
				"threshold": 0.8,
				"passed": true,
				"history": [0.86, 0.87],
				"timestamps": ["2026-08-15T00:00:00Z", "2026-08-22T00:00:00Z"],
				"sample_sizes": [42, 40]
			}
		]
	}
}`

// newTestClient points a Client at the given handler with retries reduced
// to a single attempt so failure tests do not sleep through backoff.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(srv.URL, "")
	c.retry = retry.Config{MaxAttempts: 1}
	return c
}

func jsonHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}

func TestLoadOverview(t *testing.T) {
	var gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(overviewBody))
	}))

	snap, err := c.LoadOverview(context.Background(), "sepsis-triage", "")
	if err != nil {
		t.Fatalf("LoadOverview failed: %v", err)
	}
	if gotPath != "/performance_metrics/sepsis-triage" {
		t.Errorf("request path = %q", gotPath)
	}
	if !snap.HasData || snap.LastNEvals != 4 {
		t.Errorf("snapshot header = has_data:%v last_n_evals:%d", snap.HasData, snap.LastNEvals)
	}
	if len(snap.MetricCards.Collection) != 2 {
		t.Fatalf("got %d metrics, want 2", len(snap.MetricCards.Collection))
	}

	m, ok := snap.Lookup("binary_auroc", "overall")
	if !ok {
		t.Fatal("overall binary_auroc missing from snapshot")
	}
	if diff := cmp.Diff([]float64{0.88, 0.9, 0.89, 0.91}, m.History); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverviewModelPath(t *testing.T) {
	var gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"has_data": false, "last_n_evals": 0}`))
	}))

	if _, err := c.LoadOverview(context.Background(), "sepsis-triage", "sepsis_xgb_v2"); err != nil {
		t.Fatalf("LoadOverview failed: %v", err)
	}
	if gotPath != "/performance_metrics/sepsis-triage/sepsis_xgb_v2" {
		t.Errorf("request path = %q", gotPath)
	}
}

func TestLoadOverviewEmptyName(t *testing.T) {
	c := New("http://unused", "")
	if _, err := c.LoadOverview(context.Background(), "", ""); !errors.Is(err, ErrEmptyEndpointName) {
		t.Errorf("got %v, want ErrEmptyEndpointName", err)
	}
}

func TestLoadOverviewNoData(t *testing.T) {
	c := newTestClient(t, jsonHandler(http.StatusOK, `{"has_data": false, "last_n_evals": 0}`))

	snap, err := c.LoadOverview(context.Background(), "sepsis-triage", "")
	if err != nil {
		t.Fatalf("no-data snapshot should succeed, got %v", err)
	}
	if snap.HasData {
		t.Error("HasData = true, want false")
	}
	if len(snap.MetricCards.Collection) != 0 {
		t.Errorf("no-data snapshot carries %d metrics", len(snap.MetricCards.Collection))
	}
}

func TestLoadOverviewServerError(t *testing.T) {
	c := newTestClient(t, jsonHandler(http.StatusInternalServerError, `{"detail": "database unavailable"}`))

	snap, err := c.LoadOverview(context.Background(), "sepsis-triage", "")
	if snap != nil {
		t.Error("snapshot returned alongside an error")
	}

	var fe *domain.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("got %T, want *domain.FetchError", err)
	}
	if fe.Status != http.StatusInternalServerError {
		t.Errorf("Status = %d, want 500", fe.Status)
	}
	if fe.Reason != "database unavailable" {
		t.Errorf("Reason = %q", fe.Reason)
	}
}

func TestLoadOverviewNotFound(t *testing.T) {
	c := newTestClient(t, jsonHandler(http.StatusNotFound, `{"detail": "Evaluation endpoint not found"}`))

	_, err := c.LoadOverview(context.Background(), "missing", "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestLoadOverviewSchemaViolation(t *testing.T) {
	// last_n_evals missing entirely.
	c := newTestClient(t, jsonHandler(http.StatusOK, `{"has_data": true}`))

	_, err := c.LoadOverview(context.Background(), "sepsis-triage", "")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("got %T, want *domain.ValidationError", err)
	}
	if ve.Violation == "" {
		t.Error("Violation is empty")
	}
}

func TestLoadOverviewLengthMismatch(t *testing.T) {
	body := `{
		"has_data": true,
		"last_n_evals": 1,
		"metric_cards": {
			"metrics": ["binary_auroc"],
			"slices": ["overall"],
			"collection": [{
				"name": "binary_auroc", "slice": "overall",
				"value": 0.9, "threshold": 0.8, "passed": true,
				"history": [0.9, 0.91],
				"timestamps": ["2026-08-22T00:00:00Z"],
				"sample_sizes": [120, 118]
			}]
		}
	}`
	c := newTestClient(t, jsonHandler(http.StatusOK, body))

	_, err := c.LoadOverview(context.Background(), "sepsis-triage", "")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("got %T, want *domain.ValidationError", err)
	}
}

func TestLoadOverviewMissingOverallSlice(t *testing.T) {
	body := `{
		"has_data": true,
		"last_n_evals": 1,
		"metric_cards": {"metrics": [], "slices": ["age:under_40"], "collection": []}
	}`
	c := newTestClient(t, jsonHandler(http.StatusOK, body))

	_, err := c.LoadOverview(context.Background(), "sepsis-triage", "")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("got %T, want *domain.ValidationError", err)
	}
}

func TestLoadOverviewDuplicateMetric(t *testing.T) {
	metric := `{
		"name": "binary_auroc", "slice": "overall",
		"value": 0.9, "threshold": 0.8, "passed": true,
		"history": [], "timestamps": [], "sample_sizes": []
	}`
	body := `{
		"has_data": true,
		"last_n_evals": 1,
		"metric_cards": {
			"metrics": ["binary_auroc"],
			"slices": ["overall"],
			"collection": [` + metric + `, ` + metric + `]
		}
	}`
	c := newTestClient(t, jsonHandler(http.StatusOK, body))

	_, err := c.LoadOverview(context.Background(), "sepsis-triage", "")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("got %T, want *domain.ValidationError", err)
	}
}

func TestLoadSafety(t *testing.T) {
	body := `{
		"metrics": [{
			"name": "binary_f1_score", "slice": "overall",
			"value": 0.74, "threshold": 0.7, "passed": true,
			"history": [0.74], "timestamps": ["2026-08-22T00:00:00Z"], "sample_sizes": [125]
		}],
		"last_evaluated": "2026-08-22T00:00:00Z",
		"is_recently_evaluated": true,
		"overall_status": "No warnings"
	}`
	c := newTestClient(t, jsonHandler(http.StatusOK, body))

	safety, err := c.LoadSafety(context.Background(), "sepsis_xgb_v2")
	if err != nil {
		t.Fatalf("LoadSafety failed: %v", err)
	}
	if safety.LastEvaluated == nil || !safety.IsRecentlyEvaluated {
		t.Errorf("recency fields = %v / %v", safety.LastEvaluated, safety.IsRecentlyEvaluated)
	}
	if safety.OverallStatus != "No warnings" {
		t.Errorf("OverallStatus = %q", safety.OverallStatus)
	}
}

func TestLoadSafetyNeverEvaluated(t *testing.T) {
	body := `{
		"metrics": [],
		"last_evaluated": null,
		"is_recently_evaluated": false,
		"overall_status": "Not evaluated"
	}`
	c := newTestClient(t, jsonHandler(http.StatusOK, body))

	safety, err := c.LoadSafety(context.Background(), "sepsis_xgb_v2")
	if err != nil {
		t.Fatalf("LoadSafety failed: %v", err)
	}
	if safety.LastEvaluated != nil {
		t.Errorf("LastEvaluated = %v, want nil", safety.LastEvaluated)
	}
}

func TestListEndpoints(t *testing.T) {
	body := `{"endpoints": [
		{"endpoint_name": "sepsis-triage", "model_name": "sepsis_xgb_v2", "model_description": "ED triage"},
		{"endpoint_name": "readmission-30d", "model_name": "readmit_lr", "model_description": ""}
	]}`
	c := newTestClient(t, jsonHandler(http.StatusOK, body))

	endpoints, err := c.ListEndpoints(context.Background())
	if err != nil {
		t.Fatalf("ListEndpoints failed: %v", err)
	}
	want := []domain.EndpointInfo{
		{EndpointName: "sepsis-triage", ModelName: "sepsis_xgb_v2", ModelDescription: "ED triage"},
		{EndpointName: "readmission-30d", ModelName: "readmit_lr"},
	}
	if diff := cmp.Diff(want, endpoints); diff != "" {
		t.Errorf("endpoints mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateEndpointConflict(t *testing.T) {
	c := newTestClient(t, jsonHandler(http.StatusConflict, `{"detail": "Evaluation endpoint already exists"}`))

	_, err := c.CreateEndpoint(context.Background(), domain.EndpointConfig{
		EndpointName: "sepsis-triage",
		ModelName:    "sepsis_xgb_v2",
		Metrics:      []domain.MetricSpec{{Name: "binary_auroc", Type: "binary"}},
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("got %v, want ErrConflict", err)
	}
}

func TestDeleteEndpoint(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{"message": "Evaluation endpoint deleted"}`))
	}))

	msg, err := c.DeleteEndpoint(context.Background(), "sepsis-triage")
	if err != nil {
		t.Fatalf("DeleteEndpoint failed: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/delete_evaluation_server/sepsis-triage" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if msg != "Evaluation endpoint deleted" {
		t.Errorf("message = %q", msg)
	}
}

func TestEvaluateRejectsEmptyInput(t *testing.T) {
	c := New("http://unused", "")
	_, err := c.Evaluate(context.Background(), "sepsis-triage", domain.EvaluationInput{})
	if err == nil {
		t.Fatal("expected error for empty evaluation input")
	}
}

func TestAuthorizationHeader(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"endpoints": []}`))
	}))
	c.token = "tok-123"

	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestServerErrorRetries(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"endpoints": []}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "")
	c.retry = retry.Config{MaxAttempts: 3}

	if _, err := c.ListEndpoints(context.Background()); err != nil {
		t.Fatalf("ListEndpoints failed after retries: %v", err)
	}
	if hits != 3 {
		t.Errorf("backend hit %d times, want 3", hits)
	}
}

func TestLogin(t *testing.T) {
	var gotUser, gotPass string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		w.Write([]byte(`{"message": "Login successful"}`))
	}))

	result, err := c.Login(context.Background(), "hospital1", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if gotUser != "hospital1" || gotPass != "secret" {
		t.Errorf("credentials sent = %q / %q", gotUser, gotPass)
	}
	if result.Message != "Login successful" {
		t.Errorf("message = %q", result.Message)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	c := newTestClient(t, jsonHandler(http.StatusUnauthorized, `{"detail": "Invalid credentials"}`))

	_, err := c.Login(context.Background(), "hospital1", "wrong")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("got %v, want ErrUnauthorized", err)
	}
}
