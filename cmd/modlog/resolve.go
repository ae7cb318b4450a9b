package modlog

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/modlog/pkg/config"
	"github.com/arthur-debert/modlog/pkg/level"
	"github.com/arthur-debert/modlog/pkg/logger"
	"github.com/arthur-debert/modlog/pkg/rules"
	"github.com/arthur-debert/modlog/pkg/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newResolveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "resolve <module> [level]",
		Short:   MsgResolveShort,
		Long:    MsgResolveLong,
		Example: MsgResolveExample,
		GroupID: "core",
		Args:    cobra.RangeArgs(1, 2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 1 {
				return levelNames(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			l, err := resolver(cfg)
			if err != nil {
				return err
			}

			module := args[0]
			if len(args) == 1 {
				return renderResolutions(cmd.OutOrStdout(), l, []string{module})
			}

			lvl, err := level.Parse(args[1])
			if err != nil {
				return err
			}
			printResolution(cmd.OutOrStdout(), module, lvl, l.Resolve(module, lvl))
			return nil
		},
	}
}

// resolver builds a logger that is only used to resolve, it never opens the
// configured stream.
func resolver(cfg *config.Config) (*logger.Logger, error) {
	table, err := cfg.BuildTable()
	if err != nil {
		return nil, err
	}
	return logger.New(table, logger.WithRoot(cfg.Root)), nil
}

func printResolution(w io.Writer, module string, lvl level.Level, res rules.Resolution) {
	decision := ui.Render("Suppressed", MsgSuppressed)
	if res.Allowed {
		decision = ui.Render("Allowed", MsgAllowed)
	}
	fmt.Fprintf(w, "%s %s %s\n", ui.Render("Header", module), lvl, decision)
	fmt.Fprintf(w, "  rule:   %s (min %s, by %s)\n", ui.Render("Kind", res.Rule.Selector.String()), res.Rule.MinLevel, res.Kind)
	fmt.Fprintf(w, "  format: timestamp=%s color=%s\n",
		strconv.FormatBool(res.Format.ShowTimestamp), strconv.FormatBool(res.Format.Color))
}

// renderResolutions prints one row per module with the decision at each
// level. Each cell counts as a record in the logger's metrics.
func renderResolutions(w io.Writer, l *logger.Logger, modules []string) error {
	header := []string{"MODULE"}
	for _, lvl := range level.All {
		header = append(header, lvl.String())
	}
	header = append(header, "RULE")

	data := pterm.TableData{header}
	for _, module := range modules {
		row := []string{module}
		var res rules.Resolution
		for _, lvl := range level.All {
			res = l.Evaluate(module, lvl)
			if res.Allowed {
				row = append(row, ui.Render("Allowed", "yes"))
			} else {
				row = append(row, ui.Render("Muted", "-"))
			}
		}
		row = append(row, res.Rule.Selector.String())
		data = append(data, row)
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(w).WithData(data).Render()
}

func levelNames() []string {
	names := make([]string, 0, len(level.All))
	for _, lvl := range level.All {
		names = append(names, strings.ToLower(lvl.String()))
	}
	return names
}
