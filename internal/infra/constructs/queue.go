// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package constructs

import (
	"fmt"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssqs"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// QueueWithDLQProps configures a primary queue and, optionally, its dead
// letter queue.
type QueueWithDLQProps struct {
	// Name is the queue name without any .fifo suffix, e.g.
	// "salesforce-integration-production-messages". The suffix is applied by
	// the construct when IsFifo is set.
	Name string
	// CreateDLQ creates a dead letter queue alongside the primary queue.
	CreateDLQ bool
	// MaxReceiveCount is how many times a message may be received before
	// landing on the dead letter queue. Zero means the default of 3.
	MaxReceiveCount int
	IsFifo          bool
	// ContentBasedDeduplication only applies to FIFO queues.
	ContentBasedDeduplication bool
	// VisibilityTimeoutSeconds defaults to 900.
	VisibilityTimeoutSeconds int
}

// QueueWithDLQ is an SQS queue plus an optional dead letter queue, both with
// 14-day retention. DeadLetterQueue is nil when CreateDLQ was false.
type QueueWithDLQ struct {
	constructs.Construct
	Queue           awssqs.Queue
	DeadLetterQueue awssqs.Queue
}

const (
	defaultMaxReceiveCount   = 3
	defaultVisibilitySeconds = 900
	messageRetentionDays     = 14
)

// QueueNames returns the physical names the construct will assign to the
// primary queue and the DLQ. Split out so naming is testable without a jsii
// runtime.
func QueueNames(name string, isFifo bool) (queue string, dlq string) {
	if isFifo {
		return name + ".fifo", name + "-dlq.fifo"
	}
	return name, name + "-dlq"
}

// NewQueueWithDLQ creates the queue pair. The name must not carry a .fifo
// suffix; use IsFifo instead.
func NewQueueWithDLQ(scope constructs.Construct, id string, props *QueueWithDLQProps) (*QueueWithDLQ, error) {
	if strings.HasSuffix(props.Name, ".fifo") {
		return nil, fmt.Errorf("queue name %q must not end with .fifo, use IsFifo instead", props.Name)
	}

	construct := constructs.NewConstruct(scope, jsii.String(id))

	maxReceive := props.MaxReceiveCount
	if maxReceive == 0 {
		maxReceive = defaultMaxReceiveCount
	}
	visibility := props.VisibilityTimeoutSeconds
	if visibility == 0 {
		visibility = defaultVisibilitySeconds
	}

	queueName, dlqName := QueueNames(props.Name, props.IsFifo)

	// CloudFormation rejects an explicit fifo=false on standard queues, so
	// the FIFO attributes are only set when the queue is FIFO.
	var fifo, dedup *bool
	if props.IsFifo {
		fifo = jsii.Bool(true)
		dedup = jsii.Bool(props.ContentBasedDeduplication)
	}

	out := &QueueWithDLQ{Construct: construct}

	if props.CreateDLQ {
		out.DeadLetterQueue = awssqs.NewQueue(construct, jsii.String(id+" DLQ"), &awssqs.QueueProps{
			ContentBasedDeduplication: dedup,
			Fifo:                      fifo,
			QueueName:                 jsii.String(dlqName),
			RetentionPeriod:           awscdk.Duration_Days(jsii.Number(messageRetentionDays)),
			VisibilityTimeout:         awscdk.Duration_Seconds(jsii.Number(visibility)),
		})
	}

	var deadLetter *awssqs.DeadLetterQueue
	if out.DeadLetterQueue != nil {
		deadLetter = &awssqs.DeadLetterQueue{
			MaxReceiveCount: jsii.Number(maxReceive),
			Queue:           out.DeadLetterQueue,
		}
	}

	out.Queue = awssqs.NewQueue(construct, jsii.String(id), &awssqs.QueueProps{
		ContentBasedDeduplication: dedup,
		DeadLetterQueue:           deadLetter,
		Fifo:                      fifo,
		QueueName:                 jsii.String(queueName),
		RetentionPeriod:           awscdk.Duration_Days(jsii.Number(messageRetentionDays)),
		VisibilityTimeout:         awscdk.Duration_Seconds(jsii.Number(visibility)),
	})

	return out, nil
}
