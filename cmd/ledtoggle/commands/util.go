// Copyright (C) 2026 Toitware ApS. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/toitlang/ledtoggle/cmd/ledtoggle/directory"
	"github.com/toitlang/ledtoggle/cmd/ledtoggle/particle"
	"gopkg.in/yaml.v2"
)

// Flags that override config keys.
var flagKeys = map[string]string{
	"device":  directory.DeviceIDKey,
	"token":   directory.AccessTokenKey,
	"api-url": directory.APIURLKey,
	"timeout": directory.TimeoutKey,
}

func loadParticleConfig(cmd *cobra.Command) (particle.Config, error) {
	cfg, err := directory.GetUserConfig()
	if err != nil {
		return particle.Config{}, err
	}
	if err := directory.BindEnv(cfg); err != nil {
		return particle.Config{}, err
	}
	if err := bindFlags(cfg, cmd.Flags()); err != nil {
		return particle.Config{}, err
	}
	return directory.LoadParticleConfig(cfg)
}

// bindFlags makes flags set on the command line win over env and file.
func bindFlags(cfg *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := cfg.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return nil
}

func newClient(cmd *cobra.Command) (*particle.Client, particle.Config, error) {
	cfg, err := loadParticleConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}
	log := GetLogger(cmd.Context())
	return particle.New(cfg, particle.WithLogger(log.SugaredLogger)), cfg, nil
}

// explain adds a hint to errors the user can fix.
func explain(err error) error {
	if particle.IsAuthFailure(err) {
		return fmt.Errorf("%w\nCheck the access token, see 'ledtoggle config token'", err)
	}
	return err
}

func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	maskedLength := len(token)
	if maskedLength > 8 {
		maskedLength = 8
	}
	return strings.Repeat("*", maskedLength)
}

type encoder interface {
	Encode(interface{}) error
}

func parseOutputFlag(cmd *cobra.Command) (encoder, error) {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	w := cmd.OutOrStdout()
	switch strings.ToLower(output) {
	case "json":
		return json.NewEncoder(w), nil
	case "yaml":
		return yaml.NewEncoder(w), nil
	case "short":
		return newShortEncoder(w), nil
	default:
		return nil, fmt.Errorf("--output flag '%s' was not recognized. Must be either json, yaml or short", output)
	}
}

type shortEncoder struct {
	w io.Writer
}

func newShortEncoder(w io.Writer) *shortEncoder {
	return &shortEncoder{
		w: w,
	}
}

type Short interface {
	Short() string
}

func (s *shortEncoder) Encode(v interface{}) error {
	e, ok := v.(Short)
	if !ok {
		return fmt.Errorf("value type %T was not compatible with the Short interface", v)
	}
	_, err := fmt.Fprintln(s.w, e.Short())
	return err
}
