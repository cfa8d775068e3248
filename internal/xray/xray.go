// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package xray

import (
	"context"

	"github.com/aws/aws-xray-sdk-go/strategy/ctxmissing"
	awsxray "github.com/aws/aws-xray-sdk-go/xray"

	"github.com/kicksaw/sfictl/internal/log"
	"github.com/kicksaw/sfictl/internal/settings"
	"github.com/kicksaw/sfictl/internal/version"
)

var enabled bool

// Configure sets up the tracing recorder. Missing parent segments are
// ignored rather than fatal so the same code path runs outside Lambda.
// When tracing is disabled in settings, the capture helpers degrade to
// plain pass-throughs.
func Configure(s *settings.Settings) {
	enabled = s.XRayEnabled
	if !enabled {
		log.Debug("xray disabled")
		return
	}

	err := awsxray.Configure(awsxray.Config{
		ContextMissingStrategy: ctxmissing.NewDefaultIgnoreErrorStrategy(),
		ServiceVersion:         version.Version,
	})
	if err != nil {
		log.WithError(err).Warnf("failed to configure xray")
		enabled = false
	}
}

// Capture runs fn inside a named subsegment. With tracing disabled it runs
// fn directly.
func Capture(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	if !enabled {
		return fn(ctx)
	}
	return awsxray.Capture(ctx, name, fn)
}

// AddAnnotation annotates the current (sub)segment; a no-op when tracing is
// disabled or no segment is open.
func AddAnnotation(ctx context.Context, key string, value interface{}) {
	if !enabled {
		return
	}
	if err := awsxray.AddAnnotation(ctx, key, value); err != nil {
		log.Debugf("xray annotation dropped: key=%s err=%v", key, err)
	}
}
