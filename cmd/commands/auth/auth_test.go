package auth

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"modelwatch/cmd/commands/cmdutil"
	"modelwatch/internal/config"
	authsvc "modelwatch/internal/services/auth"
)

func setupBackend(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *authsvc.MockStore) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)

	cfg := &config.Config{APIURL: srv.URL}
	if err := cfg.Save(); err != nil {
		t.Fatalf("saving config: %v", err)
	}

	store := authsvc.NewMockStore()
	cmdutil.SetStore(store)
	t.Cleanup(cmdutil.ResetStore)

	return srv, store
}

func execAuth(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	cmd.Execute()
	return outBuf.String(), errBuf.String()
}

func TestLogin_StoresIssuedToken(t *testing.T) {
	srv, store := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "hospital1" || pass != "password123" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail": "Incorrect username or password"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Login successful", "access_token": "tok-1"}`))
	})

	stdout, stderr := execAuth(t, "login", "--username", "hospital1", "--password", "password123")
	if stderr != "" {
		t.Fatalf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "Login successful") {
		t.Errorf("missing success message:\n%s", stdout)
	}

	token, err := store.GetToken(srv.URL)
	if err != nil || token != "tok-1" {
		t.Errorf("stored token = %q, %v; want tok-1", token, err)
	}
}

func TestLogin_MessageOnlyBackend(t *testing.T) {
	srv, store := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "Login successful"}`))
	})

	stdout, _ := execAuth(t, "login", "--username", "hospital1", "--password", "password123")
	if !strings.Contains(stdout, "Login successful") {
		t.Errorf("missing success message:\n%s", stdout)
	}
	if _, err := store.GetToken(srv.URL); err == nil {
		t.Error("no token should be stored when the backend issues none")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Incorrect username or password"}`))
	})

	_, stderr := execAuth(t, "login", "--username", "hospital1", "--password", "wrong")
	if !strings.Contains(stderr, "Login failed") {
		t.Errorf("expected login failure on stderr, got:\n%s", stderr)
	}
}

func TestStatus_WithToken(t *testing.T) {
	srv, store := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"endpoints": []}`))
	})
	store.SetToken(srv.URL, "tok-1")

	stdout, _ := execAuth(t, "status")
	if !strings.Contains(stdout, "Token:   stored") {
		t.Errorf("missing token line:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Reachable: yes") {
		t.Errorf("missing reachability line:\n%s", stdout)
	}
}

func TestStatus_NoToken(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"endpoints": []}`))
	})

	stdout, _ := execAuth(t, "status")
	if !strings.Contains(stdout, "none stored") {
		t.Errorf("missing none-stored line:\n%s", stdout)
	}
}

func TestLogout(t *testing.T) {
	srv, store := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {})
	store.SetToken(srv.URL, "tok-1")

	stdout, _ := execAuth(t, "logout")
	if !strings.Contains(stdout, "Removed token") {
		t.Errorf("missing removal confirmation:\n%s", stdout)
	}
	if _, err := store.GetToken(srv.URL); err == nil {
		t.Error("token should be gone after logout")
	}
}

func TestLogout_NothingStored(t *testing.T) {
	setupBackend(t, func(w http.ResponseWriter, r *http.Request) {})

	stdout, _ := execAuth(t, "logout")
	if !strings.Contains(stdout, "No token stored") {
		t.Errorf("missing friendly message:\n%s", stdout)
	}
}
