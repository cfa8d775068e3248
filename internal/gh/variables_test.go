// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package gh

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kicksaw/sfictl/internal/console"
)

// variablesTransport answers the Actions variables endpoints: creation
// conflicts for names in existing, update always succeeds.
type variablesTransport struct {
	existing map[string]bool
	creates  []string
	updates  []string
}

func (t *variablesTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	respond := func(status int, body string) *http.Response {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Request:    req,
		}
	}

	switch req.Method {
	case http.MethodPost:
		raw, _ := io.ReadAll(req.Body)
		var variable github.ActionsVariable
		if err := json.Unmarshal(raw, &variable); err != nil {
			return respond(http.StatusBadRequest, `{"message":"Bad Request"}`), nil
		}
		t.creates = append(t.creates, variable.Name)
		if t.existing[variable.Name] {
			return respond(http.StatusConflict, `{"message":"Variable already exists"}`), nil
		}
		return respond(http.StatusCreated, "{}"), nil
	case http.MethodPatch:
		parts := strings.Split(req.URL.Path, "/")
		t.updates = append(t.updates, parts[len(parts)-1])
		return respond(http.StatusNoContent, ""), nil
	default:
		return respond(http.StatusNotFound, `{"message":"Not Found"}`), nil
	}
}

func TestSetRepoVariables_CreateThenUpdateOnConflict(t *testing.T) {
	transport := &variablesTransport{existing: map[string]bool{"AWS_REGION": true}}
	client := github.NewClient(&http.Client{Transport: transport})

	var out bytes.Buffer
	prev := console.Out
	console.Out = &out
	t.Cleanup(func() { console.Out = prev })

	SetRepoVariables(context.Background(), client, "Kicksaw-Consulting", "acme-integration",
		map[string]string{
			"AWS_ACCOUNT_ID": "123456789012",
			"AWS_REGION":     "us-west-2",
		})

	// Both variables go through create first, in sorted order.
	require.Equal(t, []string{"AWS_ACCOUNT_ID", "AWS_REGION"}, transport.creates)
	// Only the conflicted one falls back to update.
	assert.Equal(t, []string{"AWS_REGION"}, transport.updates)

	assert.Contains(t, out.String(), "Variable 'AWS_ACCOUNT_ID' set successfully")
	assert.Contains(t, out.String(), "Variable 'AWS_REGION' updated successfully")
}

func TestSetRepoVariables_NonConflictFailureSkipsUpdate(t *testing.T) {
	var out bytes.Buffer
	prev := console.Out
	console.Out = &out
	t.Cleanup(func() { console.Out = prev })

	client := github.NewClient(&http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodPost, req.Method)
		return &http.Response{
			StatusCode: http.StatusForbidden,
			Body:       io.NopCloser(strings.NewReader(`{"message":"Resource not accessible"}`)),
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Request:    req,
		}, nil
	})})

	SetRepoVariables(context.Background(), client, "Kicksaw-Consulting", "acme-integration",
		map[string]string{"AWS_REGION": "us-west-2"})

	assert.Contains(t, out.String(), "Failed to set variable 'AWS_REGION'")
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }
