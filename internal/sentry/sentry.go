// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package sentry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	sentrygo "github.com/getsentry/sentry-go"

	"github.com/kicksaw/sfictl/internal/integration"
	"github.com/kicksaw/sfictl/internal/log"
	"github.com/kicksaw/sfictl/internal/secrets"
	"github.com/kicksaw/sfictl/internal/settings"
)

// Configure initializes the error tracker when a DSN resolves. In the
// testing environment, or when the DSN secret is unset, reporting stays
// disabled and Configure returns nil.
func Configure(ctx context.Context, s *settings.Settings, store *secrets.Store) error {
	dsn, err := s.SentryDSN(ctx, store)
	if err != nil {
		return err
	}
	if dsn == nil || s.Environment == settings.EnvTesting {
		log.Debugf("sentry disabled: environment=%s", s.Environment)
		return nil
	}

	return sentrygo.Init(sentrygo.ClientOptions{
		Dsn:         dsn.String(),
		Debug:       false,
		Environment: s.Environment,
		SendDefaultPII: s.Environment == settings.EnvDevelopment ||
			s.Environment == settings.EnvStaging,
		BeforeSend: beforeSend,
	})
}

// CaptureError reports err through the current hub.
func CaptureError(err error) {
	sentrygo.CaptureException(err)
}

// Flush drains pending events; call before the process (or Lambda
// invocation) ends.
func Flush(timeout time.Duration) {
	sentrygo.Flush(timeout)
}

// beforeSend applies integration error metadata: suppressed errors are
// dropped, explicit fingerprints are honored, and outbound HTTP failures are
// grouped per destination apex domain.
func beforeSend(event *sentrygo.Event, hint *sentrygo.EventHint) *sentrygo.Event {
	if hint == nil || hint.OriginalException == nil {
		return event
	}
	err := hint.OriginalException

	if ie, ok := integration.AsIntegrationError(err); ok {
		if !ie.Metadata.ReportInSentry {
			return nil
		}
		if ie.Metadata.SentryFingerprint != "" {
			event.Fingerprint = []string{ie.Metadata.SentryFingerprint}
		}
		return event
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.URL != "" {
		if u, perr := url.Parse(urlErr.URL); perr == nil && u.Hostname() != "" {
			event.Fingerprint = []string{
				fmt.Sprintf("%s-%s", urlErr.Op, apexDomain(u.Hostname())),
			}
		}
	}

	return event
}

// apexDomain keeps the last two labels of a hostname so all endpoints of one
// provider group together.
func apexDomain(host string) string {
	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return host
	}
	return strings.Join(labels[len(labels)-2:], ".")
}
