// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package settings

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/kicksaw/sfictl/internal/log"
	"github.com/kicksaw/sfictl/internal/secrets"
)

// Environments the integration may run in.
const (
	EnvTesting     = "testing"     // local and CI test runs
	EnvDevelopment = "development" // development, in AWS and locally
	EnvStaging     = "staging"     // UAT
	EnvProduction  = "production"
)

var validEnvironments = map[string]bool{
	EnvTesting:     true,
	EnvDevelopment: true,
	EnvStaging:     true,
	EnvProduction:  true,
}

// Settings carries the scalar configuration shared by the CDK app, the
// Lambda handler, and the admin CLI. Values resolve from the process
// environment first, then .env files, then defaults; names that are left
// empty are derived from the project slug and resource suffix.
type Settings struct {
	ClientName         string `env:"CLIENT_NAME" envDefault:"Kicksaw"`
	ProjectName        string `env:"PROJECT_NAME" envDefault:"Salesforce Integration"`
	ProjectSlug        string `env:"PROJECT_SLUG" envDefault:"salesforce-integration"`
	ProjectDescription string `env:"PROJECT_DESCRIPTION" envDefault:"Salesforce Integration for Kicksaw by Kicksaw"`
	ProjectVersion     string `env:"PROJECT_VERSION" envDefault:"0.0.1"`

	Environment string `env:"ENVIRONMENT"`

	// AWSResourceSuffix is added to AWS resource names to avoid collisions
	// between environments sharing an account. Defaults to Environment.
	AWSResourceSuffix string `env:"AWS_RESOURCE_SUFFIX"`
	AWSAccountID      string `env:"AWS_ACCOUNT_ID"`
	AWSRegion         string `env:"AWS_REGION"`
	XRayEnabled       bool   `env:"XRAY_ENABLED" envDefault:"true"`

	S3BucketStorage  string `env:"S3_BUCKET_STORAGE"`
	SQSQueueMessages string `env:"SQS_QUEUE_MESSAGES"`
}

// fifoQueues names the SQS_QUEUE_* fields whose derived names take the .fifo
// suffix. None do today; the set exists so turning one FIFO is a one-liner.
var fifoQueues = map[string]bool{}

// Load resolves Settings. .env files are merged into the process environment
// first (existing variables win), then the struct is parsed and derived
// defaults applied. The AWS account id is not resolved here; callers that
// need it use ResolveAccountID.
func Load() (*Settings, error) {
	loadDotenv()

	var s Settings
	if err := env.Parse(&s); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if !validEnvironments[s.Environment] {
		return nil, fmt.Errorf(
			"ENVIRONMENT must be one of testing, development, staging, production; got %q",
			s.Environment,
		)
	}

	s.applyDerived()
	return &s, nil
}

// loadDotenv merges .env files into the process environment without
// overriding variables that are already set. The file next to the binary's
// working directory is the convention; SFICTL_ENV_FILE points elsewhere.
func loadDotenv() {
	candidates := []string{".env"}
	if extra := os.Getenv("SFICTL_ENV_FILE"); extra != "" {
		candidates = append([]string{extra}, candidates...)
	}
	for _, f := range candidates {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			log.Warnf("failed to load %s: %v", f, err)
			continue
		}
		log.Debugf("loaded env file: %s", f)
	}
}

// applyDerived fills the names that were left empty from the slug and suffix.
func (s *Settings) applyDerived() {
	if s.AWSResourceSuffix == "" {
		s.AWSResourceSuffix = s.Environment
	}
	if s.S3BucketStorage == "" {
		s.S3BucketStorage = s.ResourceName("storage")
	}
	if s.SQSQueueMessages == "" {
		s.SQSQueueMessages = s.queueName("SQS_QUEUE_MESSAGES")
	}
}

// ResourceName joins the project slug, the resource suffix, and the given
// parts with dashes: the canonical AWS resource naming scheme for the
// integration.
func (s *Settings) ResourceName(parts ...string) string {
	return strings.Join(append([]string{s.ProjectSlug, s.AWSResourceSuffix}, parts...), "-")
}

func (s *Settings) queueName(field string) string {
	short := strings.ToLower(strings.TrimPrefix(field, "SQS_QUEUE_"))
	short = strings.ReplaceAll(short, "_", "-")
	name := s.ResourceName(short)
	if fifoQueues[field] {
		name += ".fifo"
	}
	return name
}

// SentrySecretName is the shared-resources secret that holds the error
// tracker DSN for every environment.
func (s *Settings) SentrySecretName() string {
	return strings.Join([]string{s.ProjectSlug, "shared-resources", "sentry-dsn"}, "-")
}

// ResolveAccountID fills AWSAccountID from STS when it was not configured.
func (s *Settings) ResolveAccountID(ctx context.Context, api AccountIDResolver) error {
	if s.AWSAccountID != "" {
		return nil
	}
	id, err := api.AccountID(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve AWS account id: %w", err)
	}
	s.AWSAccountID = id
	return nil
}

// AccountIDResolver abstracts the STS caller-identity lookup.
type AccountIDResolver interface {
	AccountID(ctx context.Context) (string, error)
}

// SentryDSN resolves the error tracker DSN. Order: SENTRY_DSN from the
// environment (.env files included), then the shared-resources secret.
// Empty, "null", and "none" mean reporting is disabled, as does the testing
// environment. A nil URL with a nil error means disabled.
func (s *Settings) SentryDSN(ctx context.Context, store *secrets.Store) (*url.URL, error) {
	if raw, ok := os.LookupEnv("SENTRY_DSN"); ok {
		if isNullish(raw) {
			return nil, nil
		}
		return parseDSN(raw)
	}
	if s.Environment == EnvTesting {
		return nil, nil
	}
	if store == nil {
		return nil, nil
	}

	secret, err := store.Get(ctx, s.SentrySecretName())
	if err != nil {
		return nil, fmt.Errorf("failed to read sentry DSN secret: %w", err)
	}
	dsn := secret["dsn"]
	if isNullish(dsn) {
		return nil, nil
	}
	return parseDSN(dsn)
}

func parseDSN(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid sentry DSN %q", raw)
	}
	return u, nil
}

func isNullish(value string) bool {
	switch strings.ToLower(strings.Trim(value, " ")) {
	case "", "null", "none":
		return true
	}
	return false
}
