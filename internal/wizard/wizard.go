// Package wizard collects connection settings interactively and renders
// the pulse.yaml scaffold.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ConfigSpec holds all fields collected during the interactive wizard.
type ConfigSpec struct {
	Region    string
	Project   string
	APIKey    string
	LouiseID  string
	RogerID   string
	Publisher string
	NotePath  string
}

const configTemplate = `# pulse.yaml
# Credentials can live here or in the environment (RELEVANCE_REGION,
# RELEVANCE_PROJECT, RELEVANCE_API_KEY, LOUISE_AGENT_ID, ROGER_AGENT_ID).
api:
  region: "{{ .Region }}"
  project: "{{ .Project }}"
{{- if .APIKey }}
  api_key: "{{ .APIKey }}"
{{- end }}

agents:
  louise: "{{ .LouiseID }}"
  roger: "{{ .RogerID }}"

report:
  window_hours: 24
  format: note

note:
  publisher: {{ .Publisher }}
{{- if eq .Publisher "file" }}
  path: "{{ .NotePath }}"
{{- else }}
  folder: Building
  title: Daily Report
{{- end }}
`

// DefaultSpec returns the config spec used for a non-interactive scaffold,
// with placeholders where real values must go.
func DefaultSpec() *ConfigSpec {
	return &ConfigSpec{
		Region:    "your-region",
		Project:   "your-project-id",
		LouiseID:  "louise-agent-id",
		RogerID:   "roger-agent-id",
		Publisher: "osascript",
	}
}

// RunConfigWizard runs an interactive huh form to collect connection and
// publishing settings.
func RunConfigWizard(in io.Reader, out io.Writer) (*ConfigSpec, error) {
	var (
		region    string
		project   string
		apiKey    string
		louiseID  string
		rogerID   string
		publisher = "osascript"
		notePath  string
	)

	required := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", field)
			}
			return nil
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Region").
				Description("Relevance AI region slug, from the dashboard URL").
				Placeholder("d7b62b").
				Value(&region).
				Validate(required("region")),
			huh.NewInput().
				Title("Project ID").
				Value(&project).
				Validate(required("project ID")),
			huh.NewInput().
				Title("API key").
				Description("Leave blank to supply it via RELEVANCE_API_KEY").
				EchoMode(huh.EchoModePassword).
				Value(&apiKey),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Louise agent ID").
				Description("The suburb research agent").
				Value(&louiseID).
				Validate(required("louise agent ID")),
			huh.NewInput().
				Title("Roger agent ID").
				Description("The business outreach agent").
				Value(&rogerID).
				Validate(required("roger agent ID")),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Publisher").
				Options(
					huh.NewOption("Apple Notes (osascript)", "osascript"),
					huh.NewOption("Plain file", "file"),
				).
				Value(&publisher),
			huh.NewInput().
				Title("Report file path").
				Description("Only used with the file publisher").
				Value(&notePath),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	return &ConfigSpec{
		Region:    strings.TrimSpace(region),
		Project:   strings.TrimSpace(project),
		APIKey:    strings.TrimSpace(apiKey),
		LouiseID:  strings.TrimSpace(louiseID),
		RogerID:   strings.TrimSpace(rogerID),
		Publisher: publisher,
		NotePath:  strings.TrimSpace(notePath),
	}, nil
}

// GenerateConfigYAML renders a pulse.yaml from the given spec.
func GenerateConfigYAML(spec *ConfigSpec) (string, error) {
	tmpl, err := template.New("pulseyaml").Parse(configTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, spec); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}
