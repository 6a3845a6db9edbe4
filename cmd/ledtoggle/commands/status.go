// Copyright (C) 2026 Toitware ApS. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package commands

import (
	"github.com/spf13/cobra"
	"github.com/toitlang/ledtoggle/cmd/ledtoggle/particle"
)

type ledReport struct {
	Device string          `json:"device" yaml:"device"`
	Status particle.Status `json:"status" yaml:"status"`
}

func (r ledReport) Short() string {
	return r.Status.String()
}

func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the LED state of the device",
		Long: "Reads the led_status variable of the device and prints it.\n" +
			"Any value other than 'on' is reported as 'off'.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := parseOutputFlag(cmd)
			if err != nil {
				return err
			}

			cmd.SilenceUsage = true
			client, cfg, err := newClient(cmd)
			if err != nil {
				return err
			}

			status, err := client.LEDStatus(cmd.Context(), cfg.DeviceID)
			if err != nil {
				return explain(err)
			}
			return enc.Encode(ledReport{Device: cfg.DeviceID, Status: status})
		},
	}

	cmd.Flags().StringP("output", "o", "short", "gives output of the status in either 'short', 'json' or 'yaml'")
	return cmd
}
