// Copyright (C) 2026 Toitware ApS. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/toitlang/ledtoggle/cmd/ledtoggle/particle"
)

func ToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Switch the LED to the opposite of its current state",
		Long: "Reads the LED state of the device and sends the opposite state.\n" +
			"Any state other than 'on' is treated as 'off', so the LED is turned on.\n" +
			"This is what running 'ledtoggle' without a command does.",
		Args: cobra.NoArgs,
		RunE: runToggle,
	}
}

func runToggle(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	client, cfg, err := newClient(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	next, err := particle.Toggle(ctx, client, cfg.DeviceID)
	if err != nil {
		return explain(err)
	}

	GetLogger(ctx).Infow("toggled LED", "device", cfg.DeviceID, "status", next)
	fmt.Fprintf(cmd.OutOrStdout(), "LED turned %s\n", next)
	return nil
}
