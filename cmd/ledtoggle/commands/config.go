// Copyright (C) 2026 Toitware ApS. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/toitlang/ledtoggle/cmd/ledtoggle/directory"
)

func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configure ledtoggle",
		Long: "Configure the device and access token used by ledtoggle.\n\n" +
			"The settings are stored in the user config file. The environment variables\n" +
			"LEDTOGGLE_DEVICE_ID, LEDTOGGLE_ACCESS_TOKEN, LEDTOGGLE_API_URL and\n" +
			"LEDTOGGLE_TIMEOUT override the stored values.",
	}

	cmd.AddCommand(
		ConfigDeviceCmd(),
		ConfigTokenCmd(),
		ConfigShowCmd(),
		ConfigClearCmd(),
	)
	return cmd
}

func ConfigDeviceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "device <id>",
		Short: "Set the ID or name of the Particle device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			device := strings.TrimSpace(args[0])
			if device == "" {
				return errors.New("the device can't be empty")
			}
			cmd.SilenceUsage = true
			if err := storeConfigValue(directory.DeviceIDKey, device); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Device set to '%s'\n", device)
			return nil
		},
	}
}

func ConfigTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token [token]",
		Short: "Set the Particle access token",
		Long: "Stores the access token used to authorize calls to the device cloud.\n" +
			"Without an argument the token is read from a masked prompt.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string
			if len(args) == 1 {
				token = strings.TrimSpace(args[0])
				if err := validateToken(token); err != nil {
					return err
				}
			} else {
				var err error
				if token, err = promptToken(); err != nil {
					return err
				}
			}

			cmd.SilenceUsage = true
			if err := storeConfigValue(directory.AccessTokenKey, token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Access token stored")
			return nil
		},
	}
}

func ConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the settings in effect, with the access token masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, err := parseOutputFlag(cmd)
			if err != nil {
				return err
			}

			cmd.SilenceUsage = true
			cfg, err := directory.GetUserConfig()
			if err != nil {
				return err
			}
			if err := directory.BindEnv(cfg); err != nil {
				return err
			}
			if err := bindFlags(cfg, cmd.Flags()); err != nil {
				return err
			}
			settings, err := directory.ReadParticleConfig(cfg)
			if err != nil {
				return err
			}

			report := configReport{
				ConfigFile:  cfg.ConfigFileUsed(),
				DeviceID:    settings.DeviceID,
				AccessToken: maskToken(settings.AccessToken),
				APIURL:      settings.APIURL,
				Timeout:     settings.Timeout.String(),
			}
			return enc.Encode(report)
		},
	}

	cmd.Flags().StringP("output", "o", "short", "gives output of the settings in either 'short', 'json' or 'yaml'")
	return cmd
}

func ConfigClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Deletes the stored device and access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			path, err := directory.GetUserConfigPath()
			if err != nil {
				return err
			}
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration cleared")
			return nil
		},
	}
}

type configReport struct {
	ConfigFile  string `json:"config_file" yaml:"config_file"`
	DeviceID    string `json:"device_id" yaml:"device_id"`
	AccessToken string `json:"access_token" yaml:"access_token"`
	APIURL      string `json:"api_url" yaml:"api_url"`
	Timeout     string `json:"timeout" yaml:"timeout"`
}

func (r configReport) Short() string {
	device := r.DeviceID
	if device == "" {
		device = "(not set)"
	}
	return fmt.Sprintf("Config file:\t%s\nDevice:\t\t%s\nAccess token:\t%s\nAPI URL:\t%s\nTimeout:\t%s",
		r.ConfigFile, device, r.AccessToken, r.APIURL, r.Timeout)
}

func storeConfigValue(key string, value string) error {
	cfg, err := directory.GetUserConfig()
	if err != nil {
		return err
	}
	cfg.Set(key, value)
	return directory.WriteConfig(cfg)
}

func validateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("the access token can't be empty")
	}
	return nil
}

func promptToken() (string, error) {
	prompt := promptui.Prompt{
		Label:    "Particle access token",
		Mask:     '*',
		Validate: validateToken,
	}

	token, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("you didn't enter an access token")
	}
	return strings.TrimSpace(token), nil
}
