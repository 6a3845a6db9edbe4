// Copyright (C) 2026 Toitware ApS. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package particle

import (
	"fmt"
	"strings"
)

// Status is the state of the onboard LED as reported by the device cloud.
type Status string

const (
	On  Status = "on"
	Off Status = "off"
)

// ParseStatus maps the `result` value of a led_status response to a Status.
// Only the literal string "on" is On. Everything else, including a missing
// value or a value of another JSON type, is treated as Off.
func ParseStatus(v interface{}) Status {
	if s, ok := v.(string); ok && s == string(On) {
		return On
	}
	return Off
}

// ParseCommand parses a status typed by the user.
func ParseCommand(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(On):
		return On, nil
	case string(Off):
		return Off, nil
	}
	return "", fmt.Errorf("invalid LED state '%s', must be either on or off", s)
}

func (s Status) Opposite() Status {
	if s == On {
		return Off
	}
	return On
}

func (s Status) String() string {
	return string(s)
}
