package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eolscan/eolscan/pkg/errors"
	"github.com/eolscan/eolscan/pkg/report"
	"github.com/eolscan/eolscan/pkg/scan"
	"github.com/eolscan/eolscan/pkg/store"
)

// scanOpts holds the command-line flags for the scan command.
type scanOpts struct {
	jsonOut bool // emit the resolved status as JSON instead of the table
	noCache bool // bypass the EOL table cache
}

// scanCommand creates the one-shot scan command. It detects versions in a
// directory and resolves them against the EOL registry without tracking the
// project.
func (c *CLI) scanCommand() *cobra.Command {
	var opts scanOpts

	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Scan a directory and show EOL status for what it finds",
		Long: `Scan a project directory for language runtimes, frameworks, and
datastores, and resolve each detected version against endoflife.date.

The directory defaults to the current one. Scanning does not track the
project; use "eolscan add" for that.

Examples:
  eolscan scan
  eolscan scan ~/code/shop
  eolscan scan --json ~/code/shop > status.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return c.runScan(cmd, dir, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "output JSON instead of a table")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the EOL data cache")

	return cmd
}

func (c *CLI) runScan(cmd *cobra.Command, dir string, opts scanOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	abs, err := resolveProjectDir(dir)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	scanner := c.newScanner()
	results := scanner.Scan(abs)
	components := scan.Components(results)
	prog.done(fmt.Sprintf("Scanned %s, found %d components", abs, len(components)))

	if len(components) == 0 {
		printInfo("Nothing detected in %s", abs)
		return nil
	}

	builder := report.NewBuilder(c.newRegistry(ctx, opts.noCache), 0)
	status := builder.Project(ctx, store.Project{Name: dir, Path: abs, Components: components})

	if opts.jsonOut {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encoding status")
		}
		fmt.Println(string(data))
		return nil
	}

	if status.Ecosystem != "" {
		printDetail("Primary ecosystem: %s", status.Ecosystem)
	}
	for _, comp := range status.Components {
		line := fmt.Sprintf("%-10s %-14s", comp.Tech, comp.Version)
		if comp.EOLDate != "" {
			line += fmt.Sprintf(" EOL %s", comp.EOLDate)
		}
		if comp.DaysLeft != nil {
			line += fmt.Sprintf(" (%d days)", *comp.DaysLeft)
		}
		fmt.Println("  " + StyleValue.Render(line) + " " + stateStyle(comp.State).Render(comp.State.String()))
	}
	if worst := status.WorstState(); worst == report.StateExpired || worst == report.StateExpiring {
		printWarning("Some components need attention")
	}
	return nil
}

// resolveProjectDir validates that dir exists and is a directory, returning
// its absolute path.
func resolveProjectDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %q", dir)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.New(errors.ErrCodeInvalidPath, "directory not found: %s", abs)
	}
	if !info.IsDir() {
		return "", errors.New(errors.ErrCodeInvalidPath, "not a directory: %s", abs)
	}
	return abs, nil
}
