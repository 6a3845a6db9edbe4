// Copyright (C) 2026 Toitware ApS. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toitlang/ledtoggle/cmd/ledtoggle/particle"
)

func SetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "set <on|off>",
		Short:     "Turn the LED on or off without reading its state first",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(particle.On), string(particle.Off)},
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := particle.ParseCommand(args[0])
			if err != nil {
				return err
			}

			cmd.SilenceUsage = true
			client, cfg, err := newClient(cmd)
			if err != nil {
				return err
			}

			if err := client.SetLED(cmd.Context(), cfg.DeviceID, status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "LED turned %s\n", status)
			return nil
		},
	}
}
