// Copyright (C) 2026 Toitware ApS. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package particle

import (
	"errors"
	"fmt"
	"time"
)

const (
	DefaultAPIURL  = "https://api.particle.io"
	DefaultTimeout = 10 * time.Second
	// MinTimeout is the shortest request timeout accepted.
	MinTimeout = 100 * time.Millisecond
)

// Config identifies the device and the credential used to talk to it.
type Config struct {
	DeviceID    string        `yaml:"device_id" json:"device_id"`
	AccessToken string        `yaml:"access_token" json:"access_token"`
	APIURL      string        `yaml:"api_url" json:"api_url"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
}

func (c Config) Validate() error {
	if c.DeviceID == "" {
		return errors.New("no device configured, use 'ledtoggle config device <id>' or the --device flag")
	}
	if c.AccessToken == "" {
		return errors.New("no access token configured, use 'ledtoggle config token' or the --token flag")
	}
	if c.Timeout != 0 && c.Timeout < MinTimeout {
		return fmt.Errorf("timeout %s is too short, it must be at least %s", c.Timeout, MinTimeout)
	}
	return nil
}
