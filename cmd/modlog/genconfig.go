package modlog

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/modlog/pkg/config"
	"github.com/arthur-debert/modlog/pkg/errors"
	"github.com/spf13/cobra"
)

func newGenConfigCmd(opts *globalOptions) *cobra.Command {
	var (
		format   string
		output   string
		defaults bool
	)

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Example: MsgGenConfigExample,
		GroupID: "config",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Defaults()
			if !defaults {
				var err error
				if cfg, err = loadConfig(opts); err != nil {
					return err
				}
			}

			data, err := config.Encode(cfg, strings.ToLower(format))
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", output)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), MsgWroteFile, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "yaml", MsgFlagFormat)
	cmd.Flags().StringVarP(&output, "output", "o", "", MsgFlagOutput)
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	_ = cmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return config.Formats, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
