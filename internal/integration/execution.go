// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kicksaw/sfictl/internal/log"
)

// Integration App sobject names (Kicksaw Integration App managed package).
const (
	sobjectIntegration = "KicksawEng__Integration__c"
	sobjectExecution   = "KicksawEng__IntegrationExecution__c"
	sobjectError       = "KicksawEng__IntegrationError__c"
)

// SalesforceAPI is the slice of the Salesforce client execution records need.
type SalesforceAPI interface {
	CreateSObject(ctx context.Context, sobject string, fields map[string]any) (string, error)
	QueryOne(ctx context.Context, soql string) (map[string]any, error)
}

// LogEntry is a warning or error attached to an execution.
type LogEntry struct {
	Level   string
	Message string
}

// Execution accumulates the outcome of one handler run and writes it to the
// Integration App in Salesforce. Fields are mutated during the run and
// persisted once by CreateAll.
type Execution struct {
	api SalesforceAPI

	IntegrationName  string
	IntegrationID    string
	ExecutionID      string
	ExecutionPayload any
	ResponsePayload  any
	Success          bool
	ErrorMessage     string

	logs []LogEntry
}

// NewExecution starts an execution record for the named integration.
func NewExecution(api SalesforceAPI, integrationName string, payload any) *Execution {
	return &Execution{
		api:              api,
		IntegrationName:  integrationName,
		ExecutionPayload: payload,
	}
}

// Warnf attaches a warning log entry to the execution.
func (e *Execution) Warnf(format string, args ...any) {
	e.logs = append(e.logs, LogEntry{Level: "WARNING", Message: fmt.Sprintf(format, args...)})
}

// Errorf attaches an error log entry to the execution.
func (e *Execution) Errorf(format string, args ...any) {
	e.logs = append(e.logs, LogEntry{Level: "ERROR", Message: fmt.Sprintf(format, args...)})
}

// Logs returns the accumulated log entries.
func (e *Execution) Logs() []LogEntry { return e.logs }

// CreateAll persists the execution: it resolves (or creates) the integration
// record, creates the execution record, and creates one error record per
// attached log entry. It is called exactly once, after the handler finished,
// and must succeed even when the handler failed.
func (e *Execution) CreateAll(ctx context.Context) error {
	if err := e.resolveIntegration(ctx); err != nil {
		return err
	}

	execution := map[string]any{
		sobjectIntegration:                e.IntegrationID,
		"KicksawEng__ExecutionPayload__c": encodePayload(e.ExecutionPayload),
		"KicksawEng__Successful__c":       e.Success,
	}
	if e.ResponsePayload != nil {
		execution["KicksawEng__ResponsePayload__c"] = encodePayload(e.ResponsePayload)
	}
	if e.ErrorMessage != "" {
		execution["KicksawEng__ErrorMessage__c"] = e.ErrorMessage
	}

	executionID, err := e.api.CreateSObject(ctx, sobjectExecution, execution)
	if err != nil {
		return fmt.Errorf("failed to create execution record: %w", err)
	}
	e.ExecutionID = executionID

	for _, entry := range e.logs {
		_, err := e.api.CreateSObject(ctx, sobjectError, map[string]any{
			sobjectExecution:              e.ExecutionID,
			"KicksawEng__Severity__c":     entry.Level,
			"KicksawEng__ErrorMessage__c": entry.Message,
		})
		if err != nil {
			// A lost log row must not mask the execution outcome.
			log.WithError(err).Warnf("failed to create execution log record")
		}
	}

	log.Infof("execution record created: integration=%s execution=%s success=%t",
		e.IntegrationID, e.ExecutionID, e.Success)
	return nil
}

// resolveIntegration looks the integration up by name, creating it on first
// run.
func (e *Execution) resolveIntegration(ctx context.Context) error {
	if e.IntegrationID != "" {
		return nil
	}

	soql := fmt.Sprintf(
		"SELECT Id FROM %s WHERE Name = '%s' LIMIT 1",
		sobjectIntegration, strings.ReplaceAll(e.IntegrationName, "'", "\\'"),
	)
	record, err := e.api.QueryOne(ctx, soql)
	if err != nil {
		return fmt.Errorf("failed to look up integration: %w", err)
	}
	if record != nil {
		if id, ok := record["Id"].(string); ok {
			e.IntegrationID = id
			return nil
		}
	}

	id, err := e.api.CreateSObject(ctx, sobjectIntegration, map[string]any{
		"Name": e.IntegrationName,
	})
	if err != nil {
		return fmt.Errorf("failed to create integration record: %w", err)
	}
	e.IntegrationID = id
	return nil
}

func encodePayload(payload any) string {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf("%v", payload)
	}
	return string(raw)
}
