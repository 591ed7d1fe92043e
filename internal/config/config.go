package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/ini.v1"
)

// configSearchPaths lists config file paths to try, in priority order.
// The tool runs fine with no config file at all; these are conveniences
// for repos that want a pinned minimum version or discovery root.
var configSearchPaths = []string{
	"ztl.yaml",
	".ztl.yaml",
	"/etc/ztl.yaml",
	"/etc/ztl.conf", // legacy INI
}

// FindConfigPath returns the first existing config file from the search
// paths, or "" when none exists (pure defaults).
func FindConfigPath() string {
	for _, path := range configSearchPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Config holds all configuration values for the template linter.
type Config struct {
	Validation ValidationConfig `koanf:"validation"`
	Discovery  DiscoveryConfig  `koanf:"discovery"`
	Report     ReportConfig     `koanf:"report"`
	Telemetry  TelemetryConfig  `koanf:"telemetry"`
}

// ValidationConfig holds rule parameters.
type ValidationConfig struct {
	// MinVersion is the export version threshold; older versions produce
	// a warning.
	MinVersion float64 `koanf:"min_version"`
}

// DiscoveryConfig holds batch-mode file discovery settings.
type DiscoveryConfig struct {
	Root string `koanf:"root"`
}

// ReportConfig holds output settings.
type ReportConfig struct {
	// Format is one of text, json, yaml.
	Format string `koanf:"format"`
	Color  bool   `koanf:"color"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool   `koanf:"enabled"`
	OTLPEndpoint string `koanf:"otlp_endpoint"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Validation: ValidationConfig{
			MinVersion: 7.0,
		},
		Discovery: DiscoveryConfig{
			Root: ".",
		},
		Report: ReportConfig{
			Format: "text",
			Color:  true,
		},
		Telemetry: TelemetryConfig{
			Enabled: false,
		},
	}
}

// Load reads configuration. An empty path means auto-discover via the
// search paths; when nothing is found the defaults are used (a lint tool
// must work with zero config). An explicitly named file that does not
// exist is an error. Format is detected by extension: .yaml/.yml → YAML,
// anything else → legacy INI. Environment variables (ZTL_ prefix) always
// override file values.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = FindConfigPath()
	}

	if path == "" {
		return loadDefaultsOnly()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return loadDefaultsOnly()
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		return loadINI(path)
	}
}

// loadDefaultsOnly builds a config from defaults plus env overrides.
func loadDefaultsOnly() (*Config, error) {
	k := koanf.New(".")
	if err := loadDefaults(k); err != nil {
		return nil, err
	}
	if err := loadEnvOverrides(k); err != nil {
		return nil, err
	}
	return unmarshalAndValidate(k)
}

// loadYAML loads config from a YAML file with Koanf.
func loadYAML(path string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config file: %w", err)
	}

	if err := loadEnvOverrides(k); err != nil {
		return nil, err
	}

	return unmarshalAndValidate(k)
}

// loadINI loads config from a legacy flat INI file.
func loadINI(path string) (*Config, error) {
	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse INI config file: %w", err)
	}

	m, warnings := iniToMap(iniFile)
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "WARNING: %s\n", w)
	}

	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, err
	}

	if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load INI values: %w", err)
	}

	if err := loadEnvOverrides(k); err != nil {
		return nil, err
	}

	return unmarshalAndValidate(k)
}

// iniKeyMap maps INI key names (lowercased, separators stripped) to koanf
// key paths.
var iniKeyMap = map[string]string{
	"minversion":       "validation.min_version",
	"discoveryroot":    "discovery.root",
	"root":             "discovery.root",
	"reportformat":     "report.format",
	"format":           "report.format",
	"color":            "report.color",
	"telemetryenabled": "telemetry.enabled",
	"otlpendpoint":     "telemetry.otlp_endpoint",
}

// iniToMap maps flat INI keys to the nested koanf key namespace. It returns
// the mapped values and a slice of warnings for unrecognized keys.
func iniToMap(f *ini.File) (map[string]interface{}, []string) {
	m := make(map[string]interface{})
	var warnings []string

	for _, section := range f.Sections() {
		for _, key := range section.Keys() {
			normalised := strings.ToLower(strings.ReplaceAll(key.Name(), "_", ""))
			if koanfKey, ok := iniKeyMap[normalised]; ok {
				m[koanfKey] = key.Value()
			} else {
				warnings = append(warnings, fmt.Sprintf("unrecognized INI key [%s] %s (skipped)", section.Name(), key.Name()))
			}
		}
	}

	return m, warnings
}

// --- helpers ---

func loadDefaults(k *koanf.Koanf) error {
	defaults := DefaultConfig()
	return k.Load(confmap.Provider(map[string]interface{}{
		"validation.min_version":  defaults.Validation.MinVersion,
		"discovery.root":          defaults.Discovery.Root,
		"report.format":           defaults.Report.Format,
		"report.color":            defaults.Report.Color,
		"telemetry.enabled":       defaults.Telemetry.Enabled,
		"telemetry.otlp_endpoint": defaults.Telemetry.OTLPEndpoint,
	}, "."), nil)
}

func loadEnvOverrides(k *koanf.Koanf) error {
	// ZTL_VALIDATION_MIN_VERSION → validation.min_version
	return k.Load(env.Provider("ZTL_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "ZTL_")
		s = strings.ToLower(s)
		if idx := strings.Index(s, "_"); idx >= 0 {
			return s[:idx] + "." + s[idx+1:]
		}
		return s
	}), nil)
}

func unmarshalAndValidate(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that config values are in range.
func (c *Config) Validate() error {
	var errs []error

	if c.Validation.MinVersion <= 0 {
		errs = append(errs, fmt.Errorf("validation.min_version must be greater than 0, got %g", c.Validation.MinVersion))
	}
	if c.Discovery.Root == "" {
		errs = append(errs, fmt.Errorf("discovery.root must not be empty"))
	}
	switch c.Report.Format {
	case "text", "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("report.format must be one of text, json, yaml, got %q", c.Report.Format))
	}

	return errors.Join(errs...)
}
