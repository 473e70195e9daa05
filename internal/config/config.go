// Package config provides the Config struct and loader for pulse.yaml
// configuration files, with environment variable overrides for the
// credentials a cron deployment exports.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/brokerops/pulse/internal/analytics"
	"github.com/brokerops/pulse/internal/notes"
	"github.com/brokerops/pulse/internal/validation"
)

// FileName is the configuration file the loader looks for.
const FileName = "pulse.yaml"

// Default values for configuration. These are the single source of
// truth — New() references them and no other code should duplicate them.
const (
	DefaultWindowHours    = 24
	DefaultPageSize       = 200
	DefaultTimeoutSeconds = 30

	DefaultFormat = "note"

	PublisherOSAScript = "osascript"
	PublisherFile      = "file"
)

// Error indicates invalid or incomplete configuration. main translates it
// into a dedicated exit code so cron wrappers can tell config mistakes
// apart from run failures.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return "config: " + e.Reason
}

// APIConfig holds Relevance AI connection settings.
type APIConfig struct {
	Region  string `yaml:"region,omitempty"`
	Project string `yaml:"project,omitempty"`
	APIKey  string `yaml:"api_key,omitempty"`
	// BaseURL overrides the regional endpoint, mainly for tests.
	BaseURL        string `yaml:"base_url,omitempty"`
	PageSize       int    `yaml:"page_size,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// Timeout returns the request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// AgentsConfig holds the IDs of the two agents the report covers.
type AgentsConfig struct {
	Louise string `yaml:"louise,omitempty"`
	Roger  string `yaml:"roger,omitempty"`
}

// ReportConfig holds reporting defaults.
type ReportConfig struct {
	WindowHours int    `yaml:"window_hours,omitempty"`
	Format      string `yaml:"format,omitempty"`
}

// MarkersConfig holds the chain titles counted as outbound actions.
type MarkersConfig struct {
	Emails []string `yaml:"emails,omitempty"`
	Calls  []string `yaml:"calls,omitempty"`
}

// NoteConfig holds where published reports land.
type NoteConfig struct {
	Publisher       string `yaml:"publisher,omitempty"`
	Folder          string `yaml:"folder,omitempty"`
	Title           string `yaml:"title,omitempty"`
	Path            string `yaml:"path,omitempty"`
	PublishFailures *bool  `yaml:"publish_failures,omitempty"`
}

// Config is the top-level configuration loaded from pulse.yaml.
type Config struct {
	API     APIConfig     `yaml:"api,omitempty"`
	Agents  AgentsConfig  `yaml:"agents,omitempty"`
	Report  ReportConfig  `yaml:"report,omitempty"`
	Markers MarkersConfig `yaml:"markers,omitempty"`
	Note    NoteConfig    `yaml:"note,omitempty"`
}

// New returns a Config with all hard-coded defaults populated.
func New() *Config {
	return &Config{
		API: APIConfig{
			PageSize:       DefaultPageSize,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Report: ReportConfig{
			WindowHours: DefaultWindowHours,
			Format:      DefaultFormat,
		},
		Markers: MarkersConfig{
			Emails: []string{analytics.DefaultEmailMarker},
			Calls:  []string{analytics.DefaultCallMarker},
		},
		Note: NoteConfig{
			Publisher:       PublisherOSAScript,
			Folder:          notes.DefaultFolder,
			Title:           notes.DefaultTitle,
			PublishFailures: boolPtr(true),
		},
	}
}

// Load finds pulse.yaml by walking up from startDir (max 10 levels),
// validates and unmarshals it, and fills in missing fields with defaults.
// Environment variables override the file in either case. If no config
// file is found, returns defaults with a nil error. Real I/O errors
// (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*Config, error) {
	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := New()
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	return parse(data)
}

// LoadFile loads configuration from an explicit path, skipping discovery.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return parse(data)
}

func parse(data []byte) (*Config, error) {
	if errs := validation.ValidateConfigBytes(data); len(errs) > 0 {
		return nil, &Error{Reason: fmt.Sprintf("%s failed validation:\n  %s", FileName, strings.Join(errs, "\n  "))}
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, &Error{Reason: fmt.Sprintf("parsing %s: %v", FileName, err)}
	}

	cfg := New()
	mergeConfig(cfg, &fileCfg)
	applyEnv(cfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for pulse.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *Config) {
	// API
	if src.API.Region != "" {
		dst.API.Region = src.API.Region
	}
	if src.API.Project != "" {
		dst.API.Project = src.API.Project
	}
	if src.API.APIKey != "" {
		dst.API.APIKey = src.API.APIKey
	}
	if src.API.BaseURL != "" {
		dst.API.BaseURL = src.API.BaseURL
	}
	if src.API.PageSize != 0 {
		dst.API.PageSize = src.API.PageSize
	}
	if src.API.TimeoutSeconds != 0 {
		dst.API.TimeoutSeconds = src.API.TimeoutSeconds
	}

	// Agents
	if src.Agents.Louise != "" {
		dst.Agents.Louise = src.Agents.Louise
	}
	if src.Agents.Roger != "" {
		dst.Agents.Roger = src.Agents.Roger
	}

	// Report
	if src.Report.WindowHours != 0 {
		dst.Report.WindowHours = src.Report.WindowHours
	}
	if src.Report.Format != "" {
		dst.Report.Format = src.Report.Format
	}

	// Markers
	if len(src.Markers.Emails) > 0 {
		dst.Markers.Emails = src.Markers.Emails
	}
	if len(src.Markers.Calls) > 0 {
		dst.Markers.Calls = src.Markers.Calls
	}

	// Note
	if src.Note.Publisher != "" {
		dst.Note.Publisher = src.Note.Publisher
	}
	if src.Note.Folder != "" {
		dst.Note.Folder = src.Note.Folder
	}
	if src.Note.Title != "" {
		dst.Note.Title = src.Note.Title
	}
	if src.Note.Path != "" {
		dst.Note.Path = src.Note.Path
	}
	if src.Note.PublishFailures != nil {
		dst.Note.PublishFailures = src.Note.PublishFailures
	}
}

// applyEnv overlays environment variables onto cfg. The names match what
// the original cron deployment already exports.
func applyEnv(cfg *Config) {
	if v := os.Getenv("RELEVANCE_REGION"); v != "" {
		cfg.API.Region = v
	}
	if v := os.Getenv("RELEVANCE_PROJECT"); v != "" {
		cfg.API.Project = v
	}
	if v := os.Getenv("RELEVANCE_API_KEY"); v != "" {
		cfg.API.APIKey = v
	}
	if v := os.Getenv("LOUISE_AGENT_ID"); v != "" {
		cfg.Agents.Louise = v
	}
	if v := os.Getenv("ROGER_AGENT_ID"); v != "" {
		cfg.Agents.Roger = v
	}
}

// Validate checks that everything required to reach the API and publish a
// report is present. It runs after flags and env overrides are applied.
func (c *Config) Validate() error {
	var missing []string

	if c.API.Region == "" && c.API.BaseURL == "" {
		missing = append(missing, "api.region (or RELEVANCE_REGION)")
	}
	if c.API.Project == "" {
		missing = append(missing, "api.project (or RELEVANCE_PROJECT)")
	}
	if c.API.APIKey == "" {
		missing = append(missing, "api.api_key (or RELEVANCE_API_KEY)")
	}
	if c.Agents.Louise == "" {
		missing = append(missing, "agents.louise (or LOUISE_AGENT_ID)")
	}
	if c.Agents.Roger == "" {
		missing = append(missing, "agents.roger (or ROGER_AGENT_ID)")
	}

	if len(missing) > 0 {
		return &Error{Reason: "missing required settings: " + strings.Join(missing, ", ")}
	}

	switch c.Note.Publisher {
	case PublisherOSAScript:
	case PublisherFile:
		if c.Note.Path == "" {
			return &Error{Reason: "note.path is required when note.publisher is file"}
		}
	default:
		return &Error{Reason: fmt.Sprintf("unknown note.publisher %q (want %s or %s)", c.Note.Publisher, PublisherOSAScript, PublisherFile)}
	}

	return nil
}

func boolPtr(b bool) *bool {
	return &b
}
