package modlog

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/modlog/pkg/rules"
	"github.com/arthur-debert/modlog/pkg/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newRulesCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		Long:    MsgRulesLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			table, err := cfg.BuildTable()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %q", ui.Render("Header", "separator:"), table.Separator())
			if cfg.Root != "" {
				fmt.Fprintf(out, "  %s %s", ui.Render("Header", "root:"), cfg.Root)
			}
			fmt.Fprintln(out)
			return pterm.DefaultTable.WithHasHeader().WithWriter(out).WithData(rulesTableData(table)).Render()
		},
	}
}

func rulesTableData(table *rules.Table) pterm.TableData {
	data := pterm.TableData{{"#", "SELECTOR", "MIN LEVEL", "TIMESTAMP", "COLOR"}}
	row := func(idx string, r rules.Rule) []string {
		return []string{
			idx,
			r.Selector.String(),
			r.MinLevel.String(),
			strconv.FormatBool(r.Format.ShowTimestamp),
			strconv.FormatBool(r.Format.Color),
		}
	}
	for i, r := range table.Rules() {
		data = append(data, row(strconv.Itoa(i+1), r))
	}
	return append(data, row("-", table.Default()))
}
