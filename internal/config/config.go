package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultUserAgent is what rentry serves full pages to; the bare Go
// client UA gets a reduced page.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

// AppConfig carries archiver settings from ~/.config/rentarc/config.yaml.
type AppConfig struct {
	DatabasePath    string
	OutputDir       string
	TimeoutSec      int
	UserAgent       string
	MaxWorkers      int
	GenericFallback bool
}

// LoadDBPath returns the SQLite DB path used by rentarc.
func LoadDBPath() (string, error) {
	cfgPath, err := defaultConfigPath()
	if err == nil {
		if p, err := readDBPathFrom(cfgPath); err == nil && p != "" {
			return ExpandPath(p), nil
		}
	}
	return FallbackDBPath(), nil
}

func FallbackDBPath() string {
	if runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Rentarc", "rentarc.db")
	}
	return "rentarc.db"
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "rentarc", "config.yaml"), nil
}

func readDBPathFrom(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return "", err
	}
	if db, ok := raw["database"].(map[string]any); ok {
		if p, ok := db["path"].(string); ok && p != "" {
			return p, nil
		}
	}
	return "", nil
}

// LoadAppConfig parses the archiver config. A missing or partial file is
// not an error; defaults fill the gaps.
func LoadAppConfig() (AppConfig, error) {
	ac := defaultAppConfig()
	cfgPath, err := defaultConfigPath()
	if err != nil {
		return ac, nil
	}
	b, err := os.ReadFile(cfgPath)
	if err != nil {
		return ac, nil
	}
	var raw map[string]any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return ac, nil
	}
	ac = appConfigFromMap(raw, ac)

	if dbPath, err := LoadDBPath(); err == nil {
		ac.DatabasePath = dbPath
	}
	return ac, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		DatabasePath:    FallbackDBPath(),
		OutputDir:       ".",
		TimeoutSec:      30,
		UserAgent:       DefaultUserAgent,
		MaxWorkers:      4,
		GenericFallback: true,
	}
}

// appConfigFromMap overlays values from the raw YAML map onto base.
// Unknown keys and wrong-typed values are ignored.
func appConfigFromMap(raw map[string]any, base AppConfig) AppConfig {
	ac := base
	arch, ok := raw["archive"].(map[string]any)
	if !ok {
		return ac
	}
	if v, ok := arch["output_dir"].(string); ok && strings.TrimSpace(v) != "" {
		ac.OutputDir = ExpandPath(v)
	}
	if v, ok := arch["timeout"].(int); ok && v > 0 {
		ac.TimeoutSec = v
	} else if vf, ok := arch["timeout"].(float64); ok && int(vf) > 0 {
		ac.TimeoutSec = int(vf)
	}
	if v, ok := arch["user_agent"].(string); ok && strings.TrimSpace(v) != "" {
		ac.UserAgent = v
	}
	if v, ok := arch["max_workers"].(int); ok && v > 0 {
		ac.MaxWorkers = v
	} else if vf, ok := arch["max_workers"].(float64); ok && int(vf) > 0 {
		ac.MaxWorkers = int(vf)
	}
	if v, ok := arch["generic_fallback"].(bool); ok {
		ac.GenericFallback = v
	}
	return ac
}

// ExpandPath expands leading ~ and environment variables in a filesystem path.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if strings.HasPrefix(p, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			if p == "~" {
				p = home
			} else if strings.HasPrefix(p, "~/") {
				p = filepath.Join(home, p[2:])
			}
		}
	}
	return p
}
