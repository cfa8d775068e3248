// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package secrets

import (
	"context"
	"errors"
	"testing"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	secretsmanagerv2 "github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	values map[string]string
	err    error
	calls  int
}

func (f *fakeAPI) GetSecretValue(
	ctx context.Context,
	params *secretsmanagerv2.GetSecretValueInput,
	optFns ...func(*secretsmanagerv2.Options),
) (*secretsmanagerv2.GetSecretValueOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	value, ok := f.values[awsv2.ToString(params.SecretId)]
	if !ok {
		return nil, errors.New("ResourceNotFoundException")
	}
	return &secretsmanagerv2.GetSecretValueOutput{SecretString: awsv2.String(value)}, nil
}

func TestGetRaw(t *testing.T) {
	api := &fakeAPI{values: map[string]string{"my-secret": "hunter2"}}
	store := NewStore(api)

	value, err := store.GetRaw(context.Background(), "my-secret")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", value)
}

func TestGetRaw_APIError(t *testing.T) {
	api := &fakeAPI{err: errors.New("AccessDeniedException")}
	store := NewStore(api)

	_, err := store.GetRaw(context.Background(), "my-secret")
	require.Error(t, err)
}

func TestGet_ParsesJSONObject(t *testing.T) {
	api := &fakeAPI{values: map[string]string{
		"sf": `{"instance_url": "https://example.my.salesforce.com", "client_id": "abc", "optional": null}`,
	}}
	store := NewStore(api)

	secret, err := store.Get(context.Background(), "sf")
	require.NoError(t, err)

	assert.Equal(t, "https://example.my.salesforce.com", secret["instance_url"])
	assert.Equal(t, "abc", secret["client_id"])

	// Null values are present but empty.
	v, ok := secret["optional"]
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestGetRaw_PlaceholderStillServed(t *testing.T) {
	api := &fakeAPI{values: map[string]string{"sentry": "<CHANGEME>"}}
	store := NewStore(api)

	// Placeholder values come back to the caller; the warning is advisory.
	value, err := store.GetRaw(context.Background(), "sentry")
	require.NoError(t, err)
	assert.Equal(t, "<CHANGEME>", value)
}

func TestGet_PlaceholderValuesKept(t *testing.T) {
	api := &fakeAPI{values: map[string]string{
		"sf": `{"client_id": "abc", "client_secret": "<changeme>"}`,
	}}
	store := NewStore(api)

	secret, err := store.Get(context.Background(), "sf")
	require.NoError(t, err)
	assert.Equal(t, "<changeme>", secret["client_secret"])
}

func TestGet_NotAnObject(t *testing.T) {
	api := &fakeAPI{values: map[string]string{"raw": "just-a-string"}}
	store := NewStore(api)

	_, err := store.Get(context.Background(), "raw")
	require.Error(t, err)
}

func TestFetch_CachesWithinTTL(t *testing.T) {
	api := &fakeAPI{values: map[string]string{"s": "v"}}
	store := NewStore(api)

	clock := time.Now()
	store.now = func() time.Time { return clock }

	_, err := store.GetRaw(context.Background(), "s")
	require.NoError(t, err)
	_, err = store.GetRaw(context.Background(), "s")
	require.NoError(t, err)
	assert.Equal(t, 1, api.calls)

	// Advance past the TTL and the next read goes back to the API.
	clock = clock.Add(defaultTTL + time.Second)
	_, err = store.GetRaw(context.Background(), "s")
	require.NoError(t, err)
	assert.Equal(t, 2, api.calls)
}

func TestInvalidate(t *testing.T) {
	api := &fakeAPI{values: map[string]string{"s": "v"}}
	store := NewStore(api)

	_, err := store.GetRaw(context.Background(), "s")
	require.NoError(t, err)

	store.Invalidate("s")

	_, err = store.GetRaw(context.Background(), "s")
	require.NoError(t, err)
	assert.Equal(t, 2, api.calls)
}

func TestFetch_ErrorsAreNotCached(t *testing.T) {
	api := &fakeAPI{err: errors.New("ThrottlingException")}
	store := NewStore(api)

	_, err := store.GetRaw(context.Background(), "s")
	require.Error(t, err)

	api.err = nil
	api.values = map[string]string{"s": "v"}

	value, err := store.GetRaw(context.Background(), "s")
	require.NoError(t, err)
	assert.Equal(t, "v", value)
}
