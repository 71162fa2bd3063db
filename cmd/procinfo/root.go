// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package main

import (
	"github.com/jongio/procinfo/cliout"
	"github.com/jongio/procinfo/config"
	"github.com/jongio/procinfo/logutil"
	"github.com/jongio/procinfo/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type rootOptions struct {
	configPath string
	output     string
	logFormat  string
	logLevel   string
	color      string
	debug      bool

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	info := version.New("procinfo")

	root := &cobra.Command{
		Use:           "procinfo",
		Short:         "Query the image path, creation time and CPU usage of running processes",
		Version:       info.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	opts.bindFlags(root.PersistentFlags())
	root.AddCommand(
		newQueryCommand(opts),
		newRunningCommand(opts),
		newUsageCommand(),
		newCPUSetCommand(),
		newMCPCommand(opts),
		version.NewCommand(info),
	)
	return root
}

func (o *rootOptions) bindFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.configPath, "config", "", "Path to a YAML config file")
	flags.StringVarP(&o.output, "output", "o", "default", "Output format: default, json or yaml")
	flags.StringVar(&o.logFormat, "log-format", "text", "Log format: text or json")
	flags.StringVar(&o.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	flags.StringVar(&o.color, "color", "auto", "Colored output: auto, always or never")
	flags.BoolVar(&o.debug, "debug", false, "Enable debug logging (same as --log-level debug)")
}

// load resolves settings: defaults, config file, environment, then flags.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = o.output
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := cliout.SetFormat(cfg.Output); err != nil {
		return err
	}
	if err := cliout.SetColorMode(o.color); err != nil {
		return err
	}

	logutil.SetupLogger(o.debug, cfg.LogFormat == "json")
	// --debug and PROCINFO_DEBUG win over the configured level.
	if logutil.GetLevel() != logutil.LevelDebug {
		logutil.SetLevel(logutil.ParseLevel(cfg.LogLevel))
	}
	logutil.Debug("configuration loaded",
		"config", o.configPath,
		"output", cfg.Output,
		"maxPath", cfg.MaxPathCapacity,
		"concurrency", cfg.Concurrency)

	o.cfg = cfg
	return nil
}
