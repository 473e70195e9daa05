package notes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Defaults for where reports land in the Notes app.
const (
	DefaultFolder = "Building"
	DefaultTitle  = "Daily Report"
)

// NoteLocation addresses a note inside the Notes app. Title is matched as
// a substring of the note name, so "Daily Report" also finds a note named
// "📊 Daily Report".
type NoteLocation struct {
	Folder string
	Title  string
}

func (l NoteLocation) withDefaults() NoteLocation {
	if l.Folder == "" {
		l.Folder = DefaultFolder
	}

	if l.Title == "" {
		l.Title = DefaultTitle
	}

	return l
}

// OSAScriptPublisher drives the macOS Notes app through osascript. New
// content lands at the top of the note with the previous body kept below
// it, so the note reads newest first.
type OSAScriptPublisher struct {
	Location NoteLocation

	// run executes an AppleScript and returns its trimmed output.
	// Swappable in tests.
	run func(ctx context.Context, script string) (string, error)
}

func NewOSAScriptPublisher(loc NoteLocation) *OSAScriptPublisher {
	return &OSAScriptPublisher{Location: loc.withDefaults(), run: runOSAScript}
}

func (p *OSAScriptPublisher) Publish(ctx context.Context, content string) error {
	script := buildAppendScript(p.Location.withDefaults(), content)

	out, err := p.run(ctx, script)
	if err != nil {
		return fmt.Errorf("notes: osascript: %w", err)
	}

	// The script reports append failures as output rather than a nonzero
	// exit, so the message has to be checked here.
	if strings.HasPrefix(out, "Error") {
		return fmt.Errorf("notes: %s", out)
	}

	slog.Debug("Note updated", "result", out)

	return nil
}

func (p *OSAScriptPublisher) Describe() string {
	loc := p.Location.withDefaults()
	return fmt.Sprintf("Notes folder %q, note %q", loc.Folder, loc.Title)
}

func runOSAScript(ctx context.Context, script string) (string, error) {
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}

var scriptEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// buildAppendScript produces the AppleScript that finds or creates the
// folder, locates the note by name substring, and writes the content into
// it line by line. AppleScript string literals cannot hold raw newlines,
// so the body is built up with return characters one line at a time.
func buildAppendScript(loc NoteLocation, content string) string {
	lines := strings.Split(content, "\n")

	escaped := make([]string, len(lines))
	for i, line := range lines {
		escaped[i] = scriptEscaper.Replace(line)
	}

	var b strings.Builder

	b.WriteString("tell application \"Notes\"\n")
	b.WriteString("\tactivate\n")
	fmt.Fprintf(&b, "\tset folderName to \"%s\"\n", scriptEscaper.Replace(loc.Folder))
	b.WriteString("\n")
	b.WriteString("\t-- Find or create folder\n")
	b.WriteString("\ttry\n")
	b.WriteString("\t\tset targetFolder to folder folderName\n")
	b.WriteString("\ton error\n")
	b.WriteString("\t\tset targetFolder to make new folder with properties {name:folderName}\n")
	b.WriteString("\tend try\n")
	b.WriteString("\n")
	b.WriteString("\t-- Look for an existing report note\n")
	b.WriteString("\tset existingNote to missing value\n")
	b.WriteString("\ttry\n")
	b.WriteString("\t\tset allNotes to every note in targetFolder\n")
	b.WriteString("\t\trepeat with aNote in allNotes\n")
	fmt.Fprintf(&b, "\t\t\tif name of aNote contains \"%s\" then\n", scriptEscaper.Replace(loc.Title))
	b.WriteString("\t\t\t\tset existingNote to aNote\n")
	b.WriteString("\t\t\t\texit repeat\n")
	b.WriteString("\t\t\tend if\n")
	b.WriteString("\t\tend repeat\n")
	b.WriteString("\tend try\n")
	b.WriteString("\n")
	b.WriteString("\tif existingNote is not missing value then\n")
	b.WriteString("\t\ttry\n")
	b.WriteString("\t\t\tset currentBody to body of existingNote\n")
	b.WriteString("\t\t\ttell existingNote\n")
	writeBodyLines(&b, "\t\t\t\t", escaped)
	b.WriteString("\t\t\t\tset body to body & return & return & currentBody\n")
	b.WriteString("\t\t\tend tell\n")
	b.WriteString("\t\t\treturn \"Appended to existing note\"\n")
	b.WriteString("\t\ton error e\n")
	b.WriteString("\t\t\treturn \"Error appending: \" & e\n")
	b.WriteString("\t\tend try\n")
	b.WriteString("\telse\n")
	b.WriteString("\t\ttry\n")
	b.WriteString("\t\t\tset newNote to make new note in targetFolder\n")
	b.WriteString("\t\t\ttell newNote\n")
	writeBodyLines(&b, "\t\t\t\t", escaped)
	b.WriteString("\t\t\tend tell\n")
	b.WriteString("\t\t\treturn \"Created new note\"\n")
	b.WriteString("\t\ton error e\n")
	b.WriteString("\t\t\treturn \"Error creating: \" & e\n")
	b.WriteString("\t\tend try\n")
	b.WriteString("\tend if\n")
	b.WriteString("end tell\n")

	return b.String()
}

// writeBodyLines emits the incremental body assignments. escaped always
// has at least one element because strings.Split never returns an empty
// slice.
func writeBodyLines(b *strings.Builder, indent string, escaped []string) {
	fmt.Fprintf(b, "%sset body to \"%s\"\n", indent, escaped[0])
	for _, line := range escaped[1:] {
		fmt.Fprintf(b, "%sset body to body & return & \"%s\"\n", indent, line)
	}
}
