/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/tejzpr/bandwidth-go-sdk/credentials"
)

const (
	credentialsCmdUsage = "credentials"
	credentialsCmdShort = "show which credentials the SDK would use"
	credentialsCmdLong  = `Resolve credentials the same way the SDK does when no explicit values
	are passed, and print where they came from. Secrets are masked.

	Sources are tried in order: environment variables, the file named by
	BANDWIDTH_CONFIG_FILE, .bndsdkrc in the working directory.`

	credentialsCmdExample = `# Show the telephony credentials
	bandwidth credentials

	# Show the dashboard credentials
	bandwidth credentials --dashboard`

	dashboardFlagName  = "dashboard"
	dashboardFlagUsage = "resolve dashboard credentials instead of telephony credentials"
)

// CredentialsCmd returns the Cobra command that prints resolved credentials.
func CredentialsCmd() *cobra.Command {
	return credentialsCmd(nil)
}

func credentialsCmd(resolver *credentials.Resolver) *cobra.Command {
	var dashboard bool
	cmd := &cobra.Command{
		Use:     credentialsCmdUsage,
		Short:   heredoc.Doc(credentialsCmdShort),
		Long:    heredoc.Doc(credentialsCmdLong),
		Example: heredoc.Doc(credentialsCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := resolver
			if r == nil {
				r = credentials.New(&credentials.Config{
					DefaultConfigFile: credentials.DefaultConfigFile,
					Logger:            hclog.FromContext(cmd.Context()),
				})
			}

			out := cmd.OutOrStdout()
			if dashboard {
				creds, err := r.Dashboard(credentials.Dashboard{})
				if err != nil {
					return handleError(cmd, err)
				}
				return printCredentials(out, [][2]string{
					{"source", string(creds.Source)},
					{"account_id", creds.AccountID},
					{"username", creds.Username},
					{"password", credentials.Mask(creds.Password)},
					{"endpoint", creds.Endpoint},
				})
			}

			creds, err := r.Telephony(credentials.Telephony{})
			if err != nil {
				return handleError(cmd, err)
			}
			return printCredentials(out, [][2]string{
				{"source", string(creds.Source)},
				{"user_id", creds.UserID},
				{"token", credentials.Mask(creds.Token)},
				{"secret", credentials.Mask(creds.Secret)},
			})
		},
	}

	cmd.Flags().BoolVar(&dashboard, dashboardFlagName, false, dashboardFlagUsage)
	return cmd
}

func printCredentials(out io.Writer, rows [][2]string) error {
	w := tabwriter.NewWriter(out, 0, 0, 1, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(w, "%s:\t%s\n", row[0], row[1])
	}
	return w.Flush()
}
