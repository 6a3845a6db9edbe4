// Copyright (C) 2026 Toitware ApS. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/toitlang/ledtoggle/cmd/ledtoggle/logger"
	"github.com/toitlang/ledtoggle/cmd/ledtoggle/particle"
)

type ctxKey string

const (
	ctxKeyInfo   ctxKey = "info"
	ctxKeyLogger ctxKey = "logger"
)

type Info struct {
	Version string `mapstructure:"version" yaml:"version" json:"version"`
	Date    string `mapstructure:"date" yaml:"date" json:"date"`
}

func SetInfo(ctx context.Context, info Info) context.Context {
	return context.WithValue(ctx, ctxKeyInfo, info)
}

func GetInfo(ctx context.Context) Info {
	info, _ := ctx.Value(ctxKeyInfo).(Info)
	return info
}

func SetLogger(ctx context.Context, log *logger.Logger) context.Context {
	return context.WithValue(ctx, ctxKeyLogger, log)
}

// GetLogger returns the logger of the running command, or a no-op logger.
func GetLogger(ctx context.Context) *logger.Logger {
	if log, ok := ctx.Value(ctxKeyLogger).(*logger.Logger); ok {
		return log
	}
	return logger.Nop()
}

func LEDToggleCmd(info Info) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledtoggle",
		Short: "Toggle the onboard LED of a Particle device",
		Long: "ledtoggle reads the state of the onboard LED of a Particle device through the\n" +
			"Particle device cloud and switches it the other way.\n\n" +
			"Run without arguments to toggle the LED once. The device and access token\n" +
			"are read from the config file ('ledtoggle config'), LEDTOGGLE_* environment\n" +
			"variables or flags, in increasing order of precedence.",
		Args: cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logger.WarnLevel
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				level = logger.DebugLevel
			}
			log := &logger.Logger{
				SugaredLogger: logger.New(level, cmd.ErrOrStderr()).With("invocation", uuid.New().String()),
			}
			ctx := cmd.Context()
			log.Debugw("starting", "command", cmd.CommandPath(), "version", GetInfo(ctx).Version)
			cmd.SetContext(SetLogger(ctx, log))
		},
		RunE: runToggle,
	}

	flags := cmd.PersistentFlags()
	flags.String("device", "", "ID or name of the Particle device")
	flags.String("token", "", "Particle access token")
	flags.String("api-url", particle.DefaultAPIURL, "base URL of the Particle device cloud API")
	flags.Duration("timeout", particle.DefaultTimeout, "timeout of each request to the device cloud")
	flags.BoolP("verbose", "v", false, "log requests to stderr")

	cmd.AddCommand(
		ToggleCmd(),
		StatusCmd(),
		SetCmd(),
		ConfigCmd(),
		VersionCmd(info),
	)
	return cmd
}
