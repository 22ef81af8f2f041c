package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eolscan/eolscan/pkg/errors"
	"github.com/eolscan/eolscan/pkg/report"
)

// addCommand creates the add command: scan a directory and track it under a
// name.
func (c *CLI) addCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add <dir>",
		Short: "Scan a directory and track it as a project",
		Long: `Scan a project directory and save the result under a project name.

The name defaults to the directory's base name. Adding a project that is
already tracked replaces its record.

Examples:
  eolscan add ~/code/shop
  eolscan add --name storefront ~/code/shop`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			abs, err := resolveProjectDir(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = filepath.Base(abs)
			}
			if strings.TrimSpace(name) == "" {
				return errors.New(errors.ErrCodeInvalidInput, "project name must not be empty")
			}

			st, err := c.newProjectStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			p := c.newScanner().Project(name, abs)
			if err := st.Save(ctx, p); err != nil {
				return err
			}

			printSuccess("Tracking %s (%d components)", name, len(p.Components))
			printDetail("Path: %s", abs)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "project name (defaults to the directory name)")

	return cmd
}

// listCommand creates the list command: the EOL dashboard over all tracked
// projects.
func (c *CLI) listCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "dashboard"},
		Short:   "Show the EOL dashboard for all tracked projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.newProjectStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			projects, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				printInfo("No projects tracked yet")
				printDetail("Start with: eolscan add <dir>")
				return nil
			}

			sp := newSpinner("Resolving EOL data")
			sp.start()
			builder := report.NewBuilder(c.newRegistry(ctx, noCache), 0)
			statuses := builder.All(ctx, projects)
			sp.stop()

			fmt.Print(renderDashboard(statuses))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the EOL data cache")

	return cmd
}

// removeCommand creates the remove command.
func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Stop tracking a project",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.newProjectStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Remove(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Removed %s", args[0])
			return nil
		},
	}
}

// rescanCommand creates the rescan command: refresh every tracked project's
// component record from its directory.
func (c *CLI) rescanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rescan",
		Short: "Rescan all tracked project directories",
		Long: `Rescan every tracked project's directory and refresh its stored
component versions. Projects whose directories no longer exist are
dropped from tracking.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			st, err := c.newProjectStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			prog := newProgress(logger)
			updated, removed, err := c.newScanner().RescanAll(ctx, st)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Rescanned %d projects", len(updated)))

			printSuccess("Updated %d projects", len(updated))
			for _, name := range removed {
				printWarning("Dropped %s: directory no longer exists", name)
			}
			return nil
		},
	}
}
