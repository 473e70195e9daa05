package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/brokerops/pulse/internal/config"
	"github.com/brokerops/pulse/internal/wizard"
)

func newInitCommand() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a pulse.yaml scaffold",
		Long: `Create a pulse.yaml configuration scaffold.

Without flags, writes a template with placeholder values to fill in by
hand. Use --interactive to run a guided wizard that collects the API
credentials, agent IDs, and publish target.

If no directory is specified, the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return initCommandE(cmd, args, interactive)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run the guided configuration wizard")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string, interactive bool) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	// Create the root directory if it doesn't exist
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists, not overwriting", cfgPath)
	}

	spec := wizard.DefaultSpec()
	if interactive {
		collected, err := wizard.RunConfigWizard(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if collected.Publisher == config.PublisherFile && collected.NotePath == "" {
			return fmt.Errorf("the file publisher needs a report file path")
		}
		spec = collected
	}

	content, err := wizard.GenerateConfigYAML(spec)
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", config.FileName, err)
	}

	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.FileName, err)
	}

	// Print summary
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", cfgPath) //nolint:errcheck
	fmt.Fprintln(out, "\nNext steps:")        //nolint:errcheck
	if interactive {
		fmt.Fprintln(out, "  1. Run 'pulse check' to verify connectivity")         //nolint:errcheck
		fmt.Fprintln(out, "  2. Run 'pulse report --mode dryrun' for a trial run") //nolint:errcheck
	} else {
		fmt.Fprintln(out, "  1. Fill in the placeholder values")                    //nolint:errcheck
		fmt.Fprintln(out, "  2. Export RELEVANCE_API_KEY (or set api.api_key)")     //nolint:errcheck
		fmt.Fprintln(out, "  3. Run 'pulse check' to verify connectivity")          //nolint:errcheck
	}

	return nil
}
