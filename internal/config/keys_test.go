package config

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string // expected key name, "" means nil
	}{
		{"exact", "api-url", "api-url"},
		{"case insensitive", "API-URL", "api-url"},
		{"whitespace trimmed", "  default-endpoint ", "default-endpoint"},
		{"unknown", "no-such-key", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Lookup(tt.in)
			if tt.want == "" {
				if spec != nil {
					t.Errorf("Lookup(%q) = %q, want nil", tt.in, spec.Name)
				}
				return
			}
			if spec == nil || spec.Name != tt.want {
				t.Errorf("Lookup(%q) = %v, want %q", tt.in, spec, tt.want)
			}
		})
	}
}

func TestKeysRoundTrip(t *testing.T) {
	cfg := &Config{}

	for _, k := range Keys {
		k.Set(cfg, "some-value")
		if got := k.Get(cfg); got == "" {
			t.Errorf("key %q: Get returned empty after Set", k.Name)
		}
	}
}

func TestAPIURLTrailingSlashTrimmed(t *testing.T) {
	cfg := &Config{}
	spec := Lookup("api-url")
	if spec == nil {
		t.Fatal("api-url key not registered")
	}

	spec.Set(cfg, "http://localhost:8000/")
	if cfg.APIURL != "http://localhost:8000" {
		t.Errorf("APIURL = %q, want trailing slash trimmed", cfg.APIURL)
	}
}
