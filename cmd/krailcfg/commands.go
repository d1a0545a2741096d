// FILE: krail-config/cmd/krailcfg/commands.go
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	config "github.com/KrailOrg/krail-config"
)

var kindNames = map[string]config.Kind{
	"string":  config.KindString,
	"int":     config.KindInt,
	"bool":    config.KindBool,
	"float64": config.KindFloat64,
	"double":  config.KindFloat64,
	"float32": config.KindFloat32,
	"float":   config.KindFloat32,
	"strings": config.KindStrings,
	"list":    config.KindStrings,
}

func newGetCommand(opts *rootOptions) *cobra.Command {
	var (
		typeName   string
		defaultVal string
	)

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print the resolved value of a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.build()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			kind, ok := kindNames[strings.ToLower(typeName)]
			if !ok {
				return fmt.Errorf("unknown type %q", typeName)
			}

			var value any
			if cmd.Flags().Changed("default") {
				def, err := defaultFor(kind, defaultVal)
				if err != nil {
					return err
				}
				value, err = cfg.ValueOr(args[0], def)
				if err != nil {
					return err
				}
			} else {
				value, err = cfg.Value(kind, args[0])
				if err != nil {
					return err
				}
			}

			if list, ok := value.([]string); ok {
				for _, item := range list {
					fmt.Fprintln(cmd.OutOrStdout(), item)
				}
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeName, "type", "t", "string", "value type (string, int, bool, float64, float32, strings)")
	cmd.Flags().StringVar(&defaultVal, "default", "", "value to print when the key is absent")
	return cmd
}

// defaultFor converts the --default flag text into a value of kind.
func defaultFor(kind config.Kind, raw string) (any, error) {
	switch kind {
	case config.KindStrings:
		if raw == "" {
			return []string{}, nil
		}
		return strings.Split(raw, ","), nil
	default:
		return config.Coerce(kind, raw)
	}
}

func newDumpCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the merged configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.build()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			return cfg.Dump(cmd.OutOrStdout())
		},
	}
}

func newDebugCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: "Show every value and the sources defining it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.build()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			out, err := cfg.Debug()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
