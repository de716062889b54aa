package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestAppConfigFromMap(t *testing.T) {
	base := defaultAppConfig()

	tests := []struct {
		name  string
		yaml  string
		check func(t *testing.T, ac AppConfig)
	}{
		{
			name: "empty map keeps defaults",
			yaml: "",
			check: func(t *testing.T, ac AppConfig) {
				if ac != base {
					t.Errorf("config = %+v, want defaults %+v", ac, base)
				}
			},
		},
		{
			name: "full archive section",
			yaml: `
archive:
  output_dir: /tmp/out
  timeout: 10
  user_agent: test-agent
  max_workers: 2
  generic_fallback: false
`,
			check: func(t *testing.T, ac AppConfig) {
				if ac.OutputDir != "/tmp/out" {
					t.Errorf("OutputDir = %q", ac.OutputDir)
				}
				if ac.TimeoutSec != 10 {
					t.Errorf("TimeoutSec = %d", ac.TimeoutSec)
				}
				if ac.UserAgent != "test-agent" {
					t.Errorf("UserAgent = %q", ac.UserAgent)
				}
				if ac.MaxWorkers != 2 {
					t.Errorf("MaxWorkers = %d", ac.MaxWorkers)
				}
				if ac.GenericFallback {
					t.Error("GenericFallback = true, want false")
				}
			},
		},
		{
			name: "partial section keeps remaining defaults",
			yaml: `
archive:
  timeout: 60
`,
			check: func(t *testing.T, ac AppConfig) {
				if ac.TimeoutSec != 60 {
					t.Errorf("TimeoutSec = %d, want 60", ac.TimeoutSec)
				}
				if ac.OutputDir != base.OutputDir || ac.MaxWorkers != base.MaxWorkers {
					t.Errorf("unrelated fields changed: %+v", ac)
				}
			},
		},
		{
			name: "wrong types are ignored",
			yaml: `
archive:
  timeout: soon
  max_workers: [1, 2]
  generic_fallback: "yes"
`,
			check: func(t *testing.T, ac AppConfig) {
				if ac != base {
					t.Errorf("config = %+v, want defaults %+v", ac, base)
				}
			},
		},
		{
			name: "zero and negative values are ignored",
			yaml: `
archive:
  timeout: 0
  max_workers: -3
`,
			check: func(t *testing.T, ac AppConfig) {
				if ac.TimeoutSec != base.TimeoutSec || ac.MaxWorkers != base.MaxWorkers {
					t.Errorf("config = %+v, want defaults %+v", ac, base)
				}
			},
		},
		{
			name: "unknown keys are ignored",
			yaml: `
archive:
  shiny: true
other_section:
  foo: bar
`,
			check: func(t *testing.T, ac AppConfig) {
				if ac != base {
					t.Errorf("config = %+v, want defaults %+v", ac, base)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw map[string]any
			if err := yaml.Unmarshal([]byte(tt.yaml), &raw); err != nil {
				t.Fatalf("yaml: %v", err)
			}
			tt.check(t, appConfigFromMap(raw, base))
		})
	}
}

func TestReadDBPathFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("database:\n  path: /tmp/db.sqlite\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := readDBPathFrom(path)
	if err != nil {
		t.Fatalf("readDBPathFrom: %v", err)
	}
	if got != "/tmp/db.sqlite" {
		t.Errorf("path = %q, want %q", got, "/tmp/db.sqlite")
	}

	if _, err := readDBPathFrom(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/notes", filepath.Join(home, "notes")},
		{"/abs/path", "/abs/path"},
		{"relative/path", "relative/path"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandPathEnvVars(t *testing.T) {
	t.Setenv("RENTARC_TEST_DIR", "/var/data")
	if got := ExpandPath("$RENTARC_TEST_DIR/out"); got != "/var/data/out" {
		t.Errorf("ExpandPath() = %q, want %q", got, "/var/data/out")
	}
}
