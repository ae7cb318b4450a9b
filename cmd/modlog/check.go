package modlog

import (
	"fmt"

	"github.com/arthur-debert/modlog/pkg/ui"
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "check [file]",
		Short:   MsgCheckShort,
		Long:    MsgCheckLong,
		GroupID: "config",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			local := *opts
			if len(args) == 1 {
				local.configPath = args[0]
			}

			cfg, err := loadConfig(&local)
			if err != nil {
				return err
			}
			table, err := cfg.BuildTable()
			if err != nil {
				return err
			}

			source := cfg.Source
			if source == "" {
				source = MsgBuiltin
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Render("Allowed",
				fmt.Sprintf(MsgCheckOK, source, table.Len(), table.Default().MinLevel)))
			return nil
		},
	}
}
