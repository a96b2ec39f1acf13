/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tejzpr/bandwidth-go-sdk/events"
)

const (
	decodeCmdUsage = "decode [FILE|-]"
	decodeCmdShort = "decode a callback payload into its typed event"
	decodeCmdLong  = `Decode a callback payload into its typed event.
	The payload is read from FILE, or from standard input when FILE is
	omitted or "-". Keys the event does not declare are dropped, so the
	output shows exactly what an application handler would receive.`

	decodeCmdExample = `# Decode a saved callback
	bandwidth decode hangup.json

	# Decode from standard input as YAML
	echo '{"eventType":"hangup","callId":"c-1"}' | bandwidth decode -o yaml`

	outputFlagName  = "output"
	outputFlagShort = "o"
	outputFlagUsage = "output format, one of: json, yaml"

	outputJSON = "json"
	outputYAML = "yaml"
)

var errInvalidOutput = errors.New("invalid output format")

// decodeFlags holds the flags for the "decode" command.
type decodeFlags struct {
	output string
}

func (f *decodeFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, outputFlagName, outputFlagShort, outputJSON, outputFlagUsage)
}

// decodedEvent is the printed form of an event.
type decodedEvent struct {
	Type   string         `json:"type" yaml:"type"`
	Fields map[string]any `json:"fields" yaml:"fields"`
}

// DecodeCmd returns the Cobra command that decodes callback payloads.
func DecodeCmd() *cobra.Command {
	flags := &decodeFlags{}
	cmd := &cobra.Command{
		Use:     decodeCmdUsage,
		Short:   heredoc.Doc(decodeCmdShort),
		Long:    heredoc.Doc(decodeCmdLong),
		Example: heredoc.Doc(decodeCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.output != outputJSON && flags.output != outputYAML {
				return handleError(cmd, fmt.Errorf("%w: %q", errInvalidOutput, flags.output))
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return handleError(cmd, err)
				}
				defer file.Close()
				in = file
			}

			if err := decode(in, cmd.OutOrStdout(), flags.output); err != nil {
				return handleError(cmd, err)
			}
			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

func decode(in io.Reader, out io.Writer, format string) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return err
	}

	event, err := events.Create(data)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	printed := decodedEvent{Type: event.Type()}
	if err := json.Unmarshal(raw, &printed.Fields); err != nil {
		return err
	}

	switch format {
	case outputYAML:
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(printed); err != nil {
			return err
		}
		return encoder.Close()
	default:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(printed)
	}
}
