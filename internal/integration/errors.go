// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package integration

import "errors"

// ErrorMetadata controls where an integration error is reported.
type ErrorMetadata struct {
	// ReportInSentry sends the error to the error tracker.
	ReportInSentry bool
	// SentryFingerprint groups all errors sharing the fingerprint into one
	// tracker issue.
	SentryFingerprint string
	// ReportInApp records the error on the Integration App execution in
	// Salesforce.
	ReportInApp bool
}

// Error is the base error for integration failures. Reporting defaults to
// everywhere; options opt out per destination.
type Error struct {
	msg      string
	cause    error
	Metadata ErrorMetadata
}

// ErrorOption adjusts reporting metadata.
type ErrorOption func(*ErrorMetadata)

// WithoutSentry suppresses error tracker reporting.
func WithoutSentry() ErrorOption {
	return func(m *ErrorMetadata) { m.ReportInSentry = false }
}

// WithoutAppReport suppresses the Integration App error record.
func WithoutAppReport() ErrorOption {
	return func(m *ErrorMetadata) { m.ReportInApp = false }
}

// WithFingerprint sets the tracker grouping fingerprint.
func WithFingerprint(fingerprint string) ErrorOption {
	return func(m *ErrorMetadata) { m.SentryFingerprint = fingerprint }
}

// NewError builds an integration error.
func NewError(msg string, opts ...ErrorOption) *Error {
	e := &Error{
		msg: msg,
		Metadata: ErrorMetadata{
			ReportInSentry: true,
			ReportInApp:    true,
		},
	}
	for _, opt := range opts {
		opt(&e.Metadata)
	}
	return e
}

// WrapError builds an integration error around a cause.
func WrapError(msg string, cause error, opts ...ErrorOption) *Error {
	e := NewError(msg, opts...)
	e.cause = cause
	return e
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.cause }

// AsIntegrationError unwraps err looking for an *Error.
func AsIntegrationError(err error) (*Error, bool) {
	var ie *Error
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
