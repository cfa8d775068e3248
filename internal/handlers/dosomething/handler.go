// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package dosomething

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	cloudwatchv2 "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cloudwatchtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"github.com/dustin/go-humanize"

	"github.com/kicksaw/sfictl/internal/integration"
	"github.com/kicksaw/sfictl/internal/log"
	sentryutil "github.com/kicksaw/sfictl/internal/sentry"
	"github.com/kicksaw/sfictl/internal/settings"
	"github.com/kicksaw/sfictl/internal/xray"
)

// sentryFlushTimeout bounds the event drain before the invocation returns;
// the runtime may freeze the sandbox immediately after.
const sentryFlushTimeout = 2 * time.Second

// Event is the invocation payload. The handler has no expectations about its
// shape; it is recorded verbatim on the execution.
type Event map[string]any

// CloudWatchAPI is the slice of the CloudWatch client the handler needs.
type CloudWatchAPI interface {
	PutMetricData(
		ctx context.Context,
		params *cloudwatchv2.PutMetricDataInput,
		optFns ...func(*cloudwatchv2.Options),
	) (*cloudwatchv2.PutMetricDataOutput, error)
}

// Handler is the do-something Lambda. One invocation runs at a time inside
// the managed runtime; the only shared state is the injected clients.
type Handler struct {
	Settings   *settings.Settings
	Salesforce integration.SalesforceAPI
	CloudWatch CloudWatchAPI
}

// IntegrationName labels the execution records this handler writes.
func (h *Handler) IntegrationName() string {
	return fmt.Sprintf("%s %s Do something", h.Settings.ProjectSlug, h.Settings.Environment)
}

// Handle does something. Whatever happens, the execution record is written
// before returning: the deferred write runs under a context detached from
// cancellation so a failing (or timing-out) handler still reports itself.
func (h *Handler) Handle(ctx context.Context, event Event) (err error) {
	execution := integration.NewExecution(h.Salesforce, h.IntegrationName(), map[string]any(event))
	defer h.record(ctx, execution)

	var softErrors []string
	err = xray.Capture(ctx, "Doing something", func(ctx context.Context) error {
		raw, merr := json.Marshal(event)
		if merr != nil {
			return fmt.Errorf("failed to encode event: %w", merr)
		}
		log.Infof("doing something with event: %s", raw)
		return nil
	})
	if err != nil {
		setFailure(execution, err)
		// The Lambda runtime has no auto-capture; report and drain here,
		// before the sandbox can freeze.
		sentryutil.CaptureError(err)
		sentryutil.Flush(sentryFlushTimeout)
		return err
	}

	h.putInvocationMetric(ctx)

	if len(softErrors) > 0 {
		count := humanize.Comma(int64(len(softErrors)))
		log.Warnf("encountered %s soft errors", count)
		for _, soft := range softErrors {
			execution.Warnf("%s", soft)
		}
		execution.ErrorMessage = fmt.Sprintf(
			"Encountered %s errors, see execution logs for details", count)
		execution.Success = false
		return nil
	}

	execution.ResponsePayload = map[string]any{"success": true}
	execution.Success = true
	return nil
}

// record writes the execution to the Integration App. The context is
// detached from cancellation so the write completes even when the handler
// already failed or the invocation deadline fired.
func (h *Handler) record(ctx context.Context, execution *integration.Execution) {
	ctx = context.WithoutCancel(ctx)
	err := xray.Capture(ctx, "Creating Kicksaw Integration App execution record", func(ctx context.Context) error {
		if err := execution.CreateAll(ctx); err != nil {
			return err
		}
		xray.AddAnnotation(ctx, "integration_name", execution.IntegrationName)
		xray.AddAnnotation(ctx, "integration_id", execution.IntegrationID)
		xray.AddAnnotation(ctx, "execution_id", execution.ExecutionID)
		xray.AddAnnotation(ctx, "success", execution.Success)
		return nil
	})
	if err != nil {
		log.WithError(err).Errorf("failed to create execution record")
	}
}

// putInvocationMetric emits one data point in the project namespace. Metric
// failures are logged, never fatal.
func (h *Handler) putInvocationMetric(ctx context.Context) {
	if h.CloudWatch == nil {
		return
	}
	_, err := h.CloudWatch.PutMetricData(ctx, &cloudwatchv2.PutMetricDataInput{
		Namespace: awsv2.String(h.Settings.ProjectSlug),
		MetricData: []cloudwatchtypes.MetricDatum{
			{
				MetricName: awsv2.String("Invocations"),
				Value:      awsv2.Float64(1),
				Dimensions: []cloudwatchtypes.Dimension{
					{
						Name:  awsv2.String("Function"),
						Value: awsv2.String("do-something"),
					},
				},
			},
		},
	})
	if err != nil {
		log.WithError(err).Warnf("failed to put invocation metric")
	}
}

// setFailure maps an error onto the execution. Joined errors are logged one
// by one and summarized; a single error becomes the message itself.
func setFailure(execution *integration.Execution, err error) {
	execution.Success = false

	if multi, ok := err.(interface{ Unwrap() []error }); ok {
		errs := multi.Unwrap()
		if len(errs) > 1 {
			for _, e := range errs {
				execution.Errorf("%v", e)
			}
			execution.ErrorMessage = fmt.Sprintf(
				"Execution failed with %s errors, see ERROR logs for details",
				humanize.Comma(int64(len(errs))),
			)
			return
		}
	}
	execution.ErrorMessage = err.Error()
}
