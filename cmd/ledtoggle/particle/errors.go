// Copyright (C) 2026 Toitware ApS. All rights reserved.
// Use of this source code is governed by an MIT-style license that can be
// found in the LICENSE file.

package particle

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const maxErrorBody = 200

// StatusError is returned when the device cloud answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("got non-OK from device cloud: %s", e.Status)
	}
	return fmt.Sprintf("got non-OK from device cloud: %s: %s", e.Status, e.Message)
}

func newStatusError(res *http.Response, body []byte) *StatusError {
	return &StatusError{
		StatusCode: res.StatusCode,
		Status:     res.Status,
		Message:    errorMessage(body),
	}
}

// errorMessage extracts the reason from a device cloud error body such as
// {"error":"invalid_token","error_description":"The access token provided is invalid."}.
func errorMessage(body []byte) string {
	var payload struct {
		Error       string `json:"error"`
		Description string `json:"error_description"`
		Info        string `json:"info"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Description != "":
			return payload.Description
		case payload.Error != "":
			return payload.Error
		case payload.Info != "":
			return payload.Info
		}
	}

	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	return msg
}

// IsAuthFailure reports whether err is a rejected access token.
func IsAuthFailure(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden
}
