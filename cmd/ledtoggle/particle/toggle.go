// Copyright (C) 2026 Toitware ApS. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package particle

import "context"

// Cloud reads and sets the LED of a device.
type Cloud interface {
	LEDStatus(ctx context.Context, deviceID string) (Status, error)
	SetLED(ctx context.Context, deviceID string, status Status) error
}

var _ Cloud = (*Client)(nil)

// Toggle reads the LED status of the device once and, if that succeeded,
// sends the opposite state once. It returns the state that was sent.
func Toggle(ctx context.Context, cloud Cloud, deviceID string) (Status, error) {
	current, err := cloud.LEDStatus(ctx, deviceID)
	if err != nil {
		return "", err
	}

	next := current.Opposite()
	if err := cloud.SetLED(ctx, deviceID, next); err != nil {
		return "", err
	}
	return next, nil
}
