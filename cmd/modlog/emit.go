package modlog

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/modlog/pkg/errors"
	"github.com/arthur-debert/modlog/pkg/level"
	"github.com/arthur-debert/modlog/pkg/logger"
	"github.com/spf13/cobra"
)

func newEmitCmd(opts *globalOptions) *cobra.Command {
	var (
		viaZerolog bool
		fields     []string
	)

	cmd := &cobra.Command{
		Use:     "emit <module> <level> <message...>",
		Short:   MsgEmitShort,
		Long:    MsgEmitLong,
		Example: MsgEmitExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, msg := args[0], strings.Join(args[2:], " ")
			lvl, err := level.Parse(args[1])
			if err != nil {
				return err
			}

			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			l, err := logger.FromConfig(cfg, logger.WithConsole(cmd.OutOrStdout(), cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer func() { _ = l.Close() }()

			if res := l.Resolve(module, lvl); !res.Allowed {
				fmt.Fprintf(cmd.ErrOrStderr(), MsgSuppressedRec, module, lvl, res.Rule.Selector, res.Rule.MinLevel)
				return nil
			}

			if !viaZerolog {
				l.Log(module, lvl, msg)
				return nil
			}

			z := l.Zerolog(module)
			event := z.WithLevel(lvl.Zerolog())
			for _, f := range fields {
				key, value, ok := strings.Cut(f, "=")
				if !ok || key == "" {
					return errors.Newf(errors.ErrInvalidInput, "invalid field %q, expected key=value", f)
				}
				event = event.Str(key, value)
			}
			event.Msg(msg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&viaZerolog, "zerolog", false, MsgFlagZerolog)
	cmd.Flags().StringArrayVar(&fields, "field", nil, MsgFlagField)

	return cmd
}
