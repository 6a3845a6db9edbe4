// Copyright (C) 2026 Toitware ApS. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func VersionCmd(info Info) *cobra.Command {
	return &cobra.Command{
		Use:          "version",
		Short:        "Print the version of ledtoggle",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ledtoggle version:\t%s\n", info.Version)
			fmt.Fprintf(out, "Build date:\t%s\n", info.Date)
		},
	}
}
