// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package settings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENVIRONMENT", EnvTesting)
	t.Setenv("SFICTL_ENV_FILE", "does-not-exist.env")
	// Keep ambient values from leaking into derived-name assertions. Setenv
	// first so the original value is restored after the test.
	for _, k := range []string{
		"PROJECT_SLUG", "AWS_RESOURCE_SUFFIX", "AWS_ACCOUNT_ID",
		"S3_BUCKET_STORAGE", "SQS_QUEUE_MESSAGES", "SENTRY_DSN",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	testEnv(t)

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Kicksaw", s.ClientName)
	assert.Equal(t, "salesforce-integration", s.ProjectSlug)
	assert.Equal(t, EnvTesting, s.Environment)
	assert.Equal(t, EnvTesting, s.AWSResourceSuffix)
	assert.Equal(t, "salesforce-integration-testing-storage", s.S3BucketStorage)
	assert.Equal(t, "salesforce-integration-testing-messages", s.SQSQueueMessages)
	assert.True(t, s.XRayEnabled)
}

func TestLoad_ExplicitNamesWin(t *testing.T) {
	testEnv(t)
	t.Setenv("AWS_RESOURCE_SUFFIX", "pr-42")
	t.Setenv("S3_BUCKET_STORAGE", "my-bucket")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pr-42", s.AWSResourceSuffix)
	assert.Equal(t, "my-bucket", s.S3BucketStorage)
	assert.Equal(t, "salesforce-integration-pr-42-messages", s.SQSQueueMessages)
}

func TestLoad_DotenvLayering(t *testing.T) {
	testEnv(t)

	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte(
		"PROJECT_SLUG=acme-integration\nCLIENT_NAME=Acme\n"), 0644))
	t.Setenv("SFICTL_ENV_FILE", envFile)
	// godotenv mutates the process environment; register restores up front.
	t.Setenv("CLIENT_NAME", "")
	os.Unsetenv("CLIENT_NAME")

	// A variable already set in the environment wins over the file.
	t.Setenv("PROJECT_SLUG", "real-slug")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Acme", s.ClientName)
	assert.Equal(t, "real-slug", s.ProjectSlug)
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	testEnv(t)
	t.Setenv("ENVIRONMENT", "prod")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENVIRONMENT")
}

func TestLoad_MissingEnvironment(t *testing.T) {
	testEnv(t)
	t.Setenv("ENVIRONMENT", "")

	_, err := Load()
	require.Error(t, err)
}

func TestResourceName(t *testing.T) {
	s := &Settings{ProjectSlug: "salesforce-integration", AWSResourceSuffix: "production"}

	assert.Equal(t, "salesforce-integration-production", s.ResourceName())
	assert.Equal(t, "salesforce-integration-production-storage", s.ResourceName("storage"))
	assert.Equal(t, "salesforce-integration-production-do-something", s.ResourceName("do", "something"))
}

func TestSentrySecretName_IgnoresSuffix(t *testing.T) {
	s := &Settings{ProjectSlug: "salesforce-integration", AWSResourceSuffix: "pr-42"}
	assert.Equal(t, "salesforce-integration-shared-resources-sentry-dsn", s.SentrySecretName())
}

type fakeResolver struct {
	id  string
	err error
}

func (f fakeResolver) AccountID(context.Context) (string, error) {
	return f.id, f.err
}

func TestResolveAccountID(t *testing.T) {
	s := &Settings{}
	require.NoError(t, s.ResolveAccountID(context.Background(), fakeResolver{id: "123456789012"}))
	assert.Equal(t, "123456789012", s.AWSAccountID)
}

func TestResolveAccountID_ConfiguredValueWins(t *testing.T) {
	s := &Settings{AWSAccountID: "999999999999"}
	require.NoError(t, s.ResolveAccountID(context.Background(), fakeResolver{err: errors.New("should not be called")}))
	assert.Equal(t, "999999999999", s.AWSAccountID)
}

func TestSentryDSN_FromEnvironment(t *testing.T) {
	testEnv(t)
	t.Setenv("SENTRY_DSN", "https://abc@o1.ingest.sentry.io/1")

	s := &Settings{Environment: EnvProduction}
	dsn, err := s.SentryDSN(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, dsn)
	assert.Equal(t, "o1.ingest.sentry.io", dsn.Host)
}

func TestSentryDSN_NullishDisables(t *testing.T) {
	testEnv(t)

	for _, raw := range []string{"", "null", "None", " NULL "} {
		t.Setenv("SENTRY_DSN", raw)

		s := &Settings{Environment: EnvProduction}
		dsn, err := s.SentryDSN(context.Background(), nil)
		require.NoError(t, err)
		assert.Nil(t, dsn, "value %q should disable reporting", raw)
	}
}

func TestSentryDSN_InvalidURL(t *testing.T) {
	testEnv(t)
	t.Setenv("SENTRY_DSN", "not-a-dsn")

	s := &Settings{Environment: EnvProduction}
	_, err := s.SentryDSN(context.Background(), nil)
	require.Error(t, err)
}

func TestSentryDSN_TestingSkipsSecret(t *testing.T) {
	testEnv(t)

	s := &Settings{Environment: EnvTesting}
	dsn, err := s.SentryDSN(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, dsn)
}

func TestIsNullish(t *testing.T) {
	assert.True(t, isNullish(""))
	assert.True(t, isNullish("null"))
	assert.True(t, isNullish("none"))
	assert.True(t, isNullish(" None "))
	assert.False(t, isNullish("https://x@y/1"))
}
