// FILE: krail-config/cmd/krailcfg/root.go
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	config "github.com/KrailOrg/krail-config"
)

type rootOptions struct {
	dir      string
	sources  []string
	logLevel string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "krailcfg",
		Short: "Resolve values from layered configuration files",
		Long: `krailcfg loads a set of configuration files (INI, YAML, XML, JSON, TOML),
layers them by priority index and resolves keys against the result.
A source with a lower index overrides one with a higher index.

Sources are given as INDEX:FILE[:required|optional][:TYPE], for example:

  krailcfg --dir ./conf -s 100:krail.ini -s 90:local.yml:required get dbUser`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.dir, "dir", "d", ".", "configuration directory")
	flags.StringArrayVarP(&opts.sources, "source", "s", nil, "configuration source INDEX:FILE[:required|optional][:TYPE]")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newGetCommand(opts))
	rootCmd.AddCommand(newDumpCommand(opts))
	rootCmd.AddCommand(newDebugCommand(opts))

	return rootCmd
}

// build creates the logger and the configuration described by the flags.
func (o *rootOptions) build() (*config.Config, *zap.Logger, error) {
	logger, err := newLogger(o.logLevel)
	if err != nil {
		return nil, nil, err
	}

	b := config.NewBuilder().
		WithDirectory(o.dir).
		WithLogger(logger)
	for _, raw := range o.sources {
		d, err := parseSourceFlag(raw)
		if err != nil {
			return nil, nil, err
		}
		b.WithDescriptor(d)
	}

	cfg, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// parseSourceFlag parses INDEX:FILE[:required|optional][:TYPE].
// Sources are optional unless marked required.
func parseSourceFlag(raw string) (config.Descriptor, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 2 || len(parts) > 4 {
		return config.Descriptor{}, fmt.Errorf("invalid source %q: expected INDEX:FILE[:required|optional][:TYPE]", raw)
	}

	index, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return config.Descriptor{}, fmt.Errorf("invalid source index in %q: %w", raw, err)
	}
	if parts[1] == "" {
		return config.Descriptor{}, fmt.Errorf("invalid source %q: empty filename", raw)
	}

	d := config.Descriptor{Index: index, Filename: parts[1], FileType: config.FileTypeAuto, Optional: true}

	for _, part := range parts[2:] {
		switch strings.ToLower(part) {
		case "required":
			d.Optional = false
		case "optional":
			d.Optional = true
		default:
			ft, err := config.ParseFileType(part)
			if err != nil {
				return config.Descriptor{}, fmt.Errorf("invalid source %q: %w", raw, err)
			}
			d.FileType = ft
		}
	}

	return d, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
