// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package salesforce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer fakes the token endpoint plus whatever extra routes a test
// registers.
func newTestServer(t *testing.T, extra func(mux *http.ServeMux)) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/services/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.FormValue("grant_type") != "client_credentials" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error_description": "unsupported grant type"}`)
			return
		}
		if r.FormValue("client_secret") != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error_description": "invalid client credentials"}`)
			return
		}
		fmt.Fprint(w, `{"access_token": "token-123"}`)
	})
	if extra != nil {
		extra(mux)
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func testClient(server *httptest.Server) *Client {
	return New(Config{
		InstanceURL:  server.URL,
		ClientID:     "client-id",
		ClientSecret: "s3cret",
	})
}

func TestAuthenticate_CachesToken(t *testing.T) {
	tokenCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/services/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		fmt.Fprint(w, `{"access_token": "token-123"}`)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := New(Config{InstanceURL: server.URL})

	token, err := client.authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-123", token)

	_, err = client.authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, tokenCalls)
}

func TestAuthenticate_BadCredentials(t *testing.T) {
	server := newTestServer(t, nil)
	client := New(Config{InstanceURL: server.URL, ClientSecret: "wrong"})

	_, err := client.authenticate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid client credentials")
}

func TestCreateSObject(t *testing.T) {
	var gotFields map[string]any
	var gotAuth string

	server := newTestServer(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/services/data/"+apiVersion+"/sobjects/KicksawEng__IntegrationExecution__c",
			func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				require.NoError(t, json.NewDecoder(r.Body).Decode(&gotFields))
				w.WriteHeader(http.StatusCreated)
				fmt.Fprint(w, `{"id": "a021x00000abc", "success": true, "errors": []}`)
			})
	})
	client := testClient(server)

	id, err := client.CreateSObject(context.Background(), "KicksawEng__IntegrationExecution__c",
		map[string]any{"KicksawEng__Successful__c": true})
	require.NoError(t, err)

	assert.Equal(t, "a021x00000abc", id)
	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, true, gotFields["KicksawEng__Successful__c"])
}

func TestCreateSObject_FieldValidationFailure(t *testing.T) {
	server := newTestServer(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/services/data/"+apiVersion+"/sobjects/Account",
			func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, `[{"errorCode": "REQUIRED_FIELD_MISSING"}]`)
			})
	})
	client := testClient(server)

	_, err := client.CreateSObject(context.Background(), "Account", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestQueryOne(t *testing.T) {
	server := newTestServer(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/services/data/"+apiVersion+"/query",
			func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.URL.Query().Get("q"), "SELECT Id FROM")
				fmt.Fprint(w, `{"totalSize": 1, "records": [{"Id": "a011x000003"}]}`)
			})
	})
	client := testClient(server)

	record, err := client.QueryOne(context.Background(), "SELECT Id FROM KicksawEng__Integration__c LIMIT 1")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "a011x000003", record["Id"])
}

func TestQueryOne_NoMatches(t *testing.T) {
	server := newTestServer(t, func(mux *http.ServeMux) {
		mux.HandleFunc("/services/data/"+apiVersion+"/query",
			func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"totalSize": 0, "records": []}`)
			})
	})
	client := testClient(server)

	record, err := client.QueryOne(context.Background(), "SELECT Id FROM KicksawEng__Integration__c WHERE Name = 'x'")
	require.NoError(t, err)
	assert.Nil(t, record)
}
