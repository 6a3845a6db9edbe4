// Copyright (C) 2026 Toitware ApS. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package directory

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/toitlang/ledtoggle/cmd/ledtoggle/particle"
)

const (
	// UserConfigPathEnv if set, will load the user config from that path.
	UserConfigPathEnv = "LEDTOGGLE_USER_CONFIG_PATH"
	// EnvPrefix prefixes the environment variables that override config keys,
	// for example LEDTOGGLE_DEVICE_ID.
	EnvPrefix = "LEDTOGGLE"

	DeviceIDKey    = "device_id"
	AccessTokenKey = "access_token"
	APIURLKey      = "api_url"
	TimeoutKey     = "timeout"
)

func ConfigKeys() []string {
	return []string{DeviceIDKey, AccessTokenKey, APIURLKey, TimeoutKey}
}

func GetUserConfigPath() (string, error) {
	if path, ok := os.LookupEnv(UserConfigPathEnv); ok {
		return path, nil
	}

	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homedir, ".config", "ledtoggle", "config.yaml"), nil
}

func GetUserConfig() (*viper.Viper, error) {
	path, err := GetUserConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get user config path: %w", err)
	}

	cfg := viper.New()
	cfg.SetConfigType("yaml")
	cfg.SetConfigFile(path)
	if _, err := os.Stat(path); err == nil {
		if err := cfg.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read user config: %w", err)
		}
	}
	return cfg, nil
}

// BindEnv lets LEDTOGGLE_* variables override the config file.
// Don't write a config after calling this, the values would end up in the file.
func BindEnv(cfg *viper.Viper) error {
	cfg.SetEnvPrefix(EnvPrefix)
	for _, key := range ConfigKeys() {
		if err := cfg.BindEnv(key); err != nil {
			return err
		}
	}
	return nil
}

func WriteConfig(cfg *viper.Viper) error {
	file := cfg.ConfigFileUsed()
	dir := filepath.Dir(file)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	// The file holds the access token. A leftover temp file would keep its
	// old mode, so it is removed before viper creates it again.
	tmpFile := filepath.Join(dir, ".config.tmp.yaml")
	if err := os.Remove(tmpFile); err != nil && !os.IsNotExist(err) {
		return err
	}
	cfg.SetConfigPermissions(0600)
	if err := cfg.WriteConfigAs(tmpFile); err != nil {
		return err
	}
	defer os.Remove(tmpFile)

	return os.Rename(tmpFile, file)
}

// ReadParticleConfig builds the device cloud config from cfg, filling in
// defaults for the API URL and timeout. It doesn't require a device or token.
func ReadParticleConfig(cfg *viper.Viper) (particle.Config, error) {
	timeout, err := parseTimeout(cfg.GetString(TimeoutKey))
	if err != nil {
		return particle.Config{}, err
	}
	res := particle.Config{
		DeviceID:    cfg.GetString(DeviceIDKey),
		AccessToken: cfg.GetString(AccessTokenKey),
		APIURL:      cfg.GetString(APIURLKey),
		Timeout:     timeout,
	}
	if res.APIURL == "" {
		res.APIURL = particle.DefaultAPIURL
	}
	if res.Timeout <= 0 {
		res.Timeout = particle.DefaultTimeout
	}
	return res, nil
}

// LoadParticleConfig is ReadParticleConfig followed by validation.
func LoadParticleConfig(cfg *viper.Viper) (particle.Config, error) {
	res, err := ReadParticleConfig(cfg)
	if err != nil {
		return res, err
	}
	return res, res.Validate()
}

// parseTimeout reads a duration such as "3s" or "500ms". A bare number is
// taken as seconds.
func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(n * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout '%s', use a duration like 10s or a number of seconds", s)
	}
	return d, nil
}
