/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

// Package cli implements the bandwidth command line tool.
package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var (
	// Version is injected at build time with -ldflags "-X".
	Version = "dev"
	// BuildDate is injected at build time with -ldflags "-X".
	BuildDate = ""
)

const (
	appName  = "bandwidth"
	appShort = "bandwidth is a companion tool for applications built on the Bandwidth voice and messaging API"

	logLevelFlagName      = "log-level"
	logLevelShortFlagName = "v"
	logLevelDefaultValue  = "info"

	versionCmdName = "version"
)

var (
	allLoggerLevels   = []string{"trace", "debug", "info", "warn", "error"}
	logLevelFlagUsage = "set the logging level (possible values: " + strings.Join(allLoggerLevels, ", ") + ")"
)

// rootFlags holds the persistent flags shared across the command tree.
type rootFlags struct {
	logLevel string
}

// addFlags registers the persistent CLI flags on cmd.
func (f *rootFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVarP(&f.logLevel, logLevelFlagName, logLevelShortFlagName, logLevelDefaultValue, logLevelFlagUsage)
}

// NewLogger returns the JSON logger used by every command.
func NewLogger(w io.Writer) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       appName,
		Output:     w,
		JSONFormat: true,
		Level:      hclog.Info,
	})
}

// RootCmd constructs the root Cobra command with shared configuration.
func RootCmd() *cobra.Command {
	flag := &rootFlags{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: heredoc.Doc(appShort),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := hclog.LevelFromString(flag.logLevel)
			if level == hclog.NoLevel {
				level = hclog.Info
			}
			hclog.FromContext(cmd.Context()).SetLevel(level)
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.PrintErrln(err)
		_ = c.Usage()
		return err
	})

	flag.addFlags(cmd)
	cmd.AddCommand(
		DecodeCmd(),
		CredentialsCmd(),
		ServeCmd(),
		versionCmd(),
	)

	return cmd
}

// versionCmd constructs the Cobra command that prints version information.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   versionCmdName,
		Short: "Display the " + appName + " version",

		Args: func(cmd *cobra.Command, args []string) error {
			err := cobra.NoArgs(cmd, args)
			if err != nil {
				cmd.PrintErrln(err)
				_ = cmd.Usage()
			}

			return err
		},
		ValidArgsFunction: cobra.NoFileCompletions,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString(Version, BuildDate, runtime.Version()))
		},
	}
}

// versionString formats the version metadata for display.
func versionString(version, buildDate, runtimeVersion string) string {
	outputString := version
	if buildDate != "" {
		outputString += " (" + buildDate + ")"
	}

	return outputString + ", Go Version: " + runtimeVersion
}

// handleError prints err on the command error stream and returns it.
func handleError(cmd *cobra.Command, err error) error {
	cmd.PrintErrln(err)
	return err
}
