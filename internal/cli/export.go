package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eolscan/eolscan/pkg/errors"
	"github.com/eolscan/eolscan/pkg/report"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	format  string // json or csv
	output  string // output file path (stdout if empty)
	noCache bool   // bypass the EOL table cache
}

// exportCommand creates the export command: a point-in-time report of every
// tracked project's EOL status.
func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOpts{format: "json"}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the EOL status of all tracked projects",
		Long: `Export a point-in-time report of every tracked project's EOL status.

Examples:
  eolscan export                          # JSON to stdout
  eolscan export --format csv -o eol.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: json or csv")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the EOL data cache")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, opts exportOpts) error {
	ctx := cmd.Context()

	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	st, err := c.newProjectStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	projects, err := st.List(ctx)
	if err != nil {
		return err
	}

	builder := report.NewBuilder(c.newRegistry(ctx, opts.noCache), 0)
	r := report.NewReport(builder.All(ctx, projects))

	data, err := r.Encode(format)
	if err != nil {
		return err
	}

	if opts.output == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", opts.output)
	}
	printSuccess("Exported %d projects to %s", len(r.Projects), opts.output)
	return nil
}
