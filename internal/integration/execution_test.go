// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package integration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createdRecord struct {
	sobject string
	fields  map[string]any
}

type fakeSalesforce struct {
	queryResult map[string]any
	queryErr    error
	createErr   error

	created []createdRecord
	queries []string
}

func (f *fakeSalesforce) CreateSObject(ctx context.Context, sobject string, fields map[string]any) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, createdRecord{sobject: sobject, fields: fields})
	return fmt.Sprintf("id-%d", len(f.created)), nil
}

func (f *fakeSalesforce) QueryOne(ctx context.Context, soql string) (map[string]any, error) {
	f.queries = append(f.queries, soql)
	return f.queryResult, f.queryErr
}

func TestCreateAll_ExistingIntegration(t *testing.T) {
	api := &fakeSalesforce{queryResult: map[string]any{"Id": "a011x000003"}}
	execution := NewExecution(api, "Acme production Do something", map[string]any{"batch": 7})
	execution.Success = true
	execution.ResponsePayload = map[string]any{"success": true}

	require.NoError(t, execution.CreateAll(context.Background()))

	assert.Equal(t, "a011x000003", execution.IntegrationID)
	require.Len(t, api.created, 1)
	record := api.created[0]
	assert.Equal(t, sobjectExecution, record.sobject)
	assert.Equal(t, "a011x000003", record.fields[sobjectIntegration])
	assert.Equal(t, true, record.fields["KicksawEng__Successful__c"])
	assert.Contains(t, record.fields["KicksawEng__ExecutionPayload__c"], `"batch":7`)
}

func TestCreateAll_CreatesIntegrationOnFirstRun(t *testing.T) {
	api := &fakeSalesforce{}
	execution := NewExecution(api, "Acme production Do something", nil)

	require.NoError(t, execution.CreateAll(context.Background()))

	require.Len(t, api.created, 2)
	assert.Equal(t, sobjectIntegration, api.created[0].sobject)
	assert.Equal(t, "Acme production Do something", api.created[0].fields["Name"])
	assert.Equal(t, sobjectExecution, api.created[1].sobject)
	assert.Equal(t, "id-1", execution.IntegrationID)
}

func TestCreateAll_WritesErrorRecords(t *testing.T) {
	api := &fakeSalesforce{queryResult: map[string]any{"Id": "a01"}}
	execution := NewExecution(api, "Acme production Do something", nil)
	execution.Success = false
	execution.ErrorMessage = "Execution failed with 2 errors, see ERROR logs for details"
	execution.Errorf("record %s rejected", "003aaa")
	execution.Warnf("retrying record %s", "003bbb")

	require.NoError(t, execution.CreateAll(context.Background()))

	var errorRecords []createdRecord
	for _, r := range api.created {
		if r.sobject == sobjectError {
			errorRecords = append(errorRecords, r)
		}
	}
	require.Len(t, errorRecords, 2)
	assert.Equal(t, "ERROR", errorRecords[0].fields["KicksawEng__Severity__c"])
	assert.Equal(t, "record 003aaa rejected", errorRecords[0].fields["KicksawEng__ErrorMessage__c"])
	assert.Equal(t, "WARNING", errorRecords[1].fields["KicksawEng__Severity__c"])
}

func TestCreateAll_QueryFailure(t *testing.T) {
	api := &fakeSalesforce{queryErr: errors.New("INVALID_SESSION_ID")}
	execution := NewExecution(api, "Acme production Do something", nil)

	err := execution.CreateAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to look up integration")
}

func TestResolveIntegration_EscapesQuotes(t *testing.T) {
	api := &fakeSalesforce{queryResult: map[string]any{"Id": "a01"}}
	execution := NewExecution(api, "Bob's integration", nil)

	require.NoError(t, execution.CreateAll(context.Background()))
	require.Len(t, api.queries, 1)
	assert.True(t, strings.Contains(api.queries[0], `Bob\'s integration`))
}

func TestLogs(t *testing.T) {
	execution := NewExecution(nil, "x", nil)
	execution.Warnf("w")
	execution.Errorf("e")

	logs := execution.Logs()
	require.Len(t, logs, 2)
	assert.Equal(t, LogEntry{Level: "WARNING", Message: "w"}, logs[0])
	assert.Equal(t, LogEntry{Level: "ERROR", Message: "e"}, logs[1])
}
