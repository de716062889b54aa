package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// WriteDefault writes a commented starter configuration, preserving an
// existing database path so re-running init does not clobber it. Returns
// the path written.
func WriteDefault() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".config", "rentarc")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	path := filepath.Join(dir, "config.yaml")

	dbPath := FallbackDBPath()
	if prev, err := loadExistingConfig(path); err == nil {
		if db, ok := prev["database"].(map[string]any); ok {
			if v, ok := db["path"].(string); ok && strings.TrimSpace(v) != "" {
				dbPath = v
			}
		}
		if err := BackupFile(path); err != nil {
			return "", fmt.Errorf("failed to back up existing config: %w", err)
		}
	}

	def := defaultAppConfig()
	var sb strings.Builder
	sb.WriteString("# rentarc configuration\n")
	sb.WriteString("database:\n")
	sb.WriteString(fmt.Sprintf("  path: %q\n", dbPath))
	sb.WriteString("archive:\n")
	sb.WriteString(fmt.Sprintf("  output_dir: %q\n", def.OutputDir))
	sb.WriteString(fmt.Sprintf("  timeout: %d  # seconds\n", def.TimeoutSec))
	sb.WriteString(fmt.Sprintf("  max_workers: %d\n", def.MaxWorkers))
	sb.WriteString(fmt.Sprintf("  generic_fallback: %v  # readability extraction for non-rentry pages\n", def.GenericFallback))
	sb.WriteString(fmt.Sprintf("  user_agent: %q\n", def.UserAgent))

	return path, os.WriteFile(path, []byte(sb.String()), 0o644)
}

// loadExistingConfig loads existing configuration from a file
func loadExistingConfig(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// BackupFile creates a backup of the specified file with a timestamp
func BackupFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	ts := time.Now().Format("20060102-150405")
	bak := path + ".bak-" + ts
	return os.WriteFile(bak, b, 0o644)
}
