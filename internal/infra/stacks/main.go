// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package stacks

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudwatch"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsdynamodb"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3notifications"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssqs"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/kicksaw/sfictl/internal/config"
	infraconstructs "github.com/kicksaw/sfictl/internal/infra/constructs"
	"github.com/kicksaw/sfictl/internal/settings"
)

// MainStackProps configures the per-environment stack.
type MainStackProps struct {
	awscdk.StackProps
	Settings *settings.Settings
	// SentryDSNSecretArn is imported from the shared stack.
	SentryDSNSecretArn *string
	// Connectors wire bucket object-created events into queues.
	Connectors []config.S3ToSQSConnector
}

// MainStack contains the project resources for one environment: queues,
// buckets, secrets, the Lambda function with its role and policy, log
// groups, and the integration dashboard.
type MainStack struct {
	awscdk.Stack
	Secrets   map[string]*infraconstructs.Secret
	Queues    map[string]*infraconstructs.QueueWithDLQ
	Buckets   map[string]awss3.Bucket
	Tables    map[string]awsdynamodb.Table
	Functions map[string]awslambda.Function

	LambdaPolicy awsiam.ManagedPolicy
	LambdaRole   awsiam.Role
	Dashboard    awscloudwatch.Dashboard
}

// NewMainStack creates the environment stack.
func NewMainStack(scope constructs.Construct, id string, props *MainStackProps) (*MainStack, error) {
	stack := awscdk.NewStack(scope, jsii.String(id), &props.StackProps)
	s := props.Settings

	out := &MainStack{
		Stack:     stack,
		Secrets:   map[string]*infraconstructs.Secret{},
		Queues:    map[string]*infraconstructs.QueueWithDLQ{},
		Buckets:   map[string]awss3.Bucket{},
		Tables:    map[string]awsdynamodb.Table{},
		Functions: map[string]awslambda.Function{},
	}

	// Settings-derived queue names carry any .fifo suffix; the construct
	// wants the bare name plus the flag.
	queueName, queueIsFifo := splitFifoName(s.SQSQueueMessages)
	messages, err := infraconstructs.NewQueueWithDLQ(stack, "messages SQS Queue", &infraconstructs.QueueWithDLQProps{
		Name:                     queueName,
		CreateDLQ:                true,
		MaxReceiveCount:          3,
		IsFifo:                   queueIsFifo,
		VisibilityTimeoutSeconds: 900,
	})
	if err != nil {
		return nil, err
	}
	out.Queues["messages"] = messages

	out.Buckets["storage"] = awss3.NewBucket(stack, jsii.String("storage S3 Bucket"), &awss3.BucketProps{
		BlockPublicAccess: awss3.BlockPublicAccess_BLOCK_ALL(),
		BucketName:        jsii.String(s.S3BucketStorage),
		Encryption:        awss3.BucketEncryption_S3_MANAGED,
	})

	if err := out.connectS3ToSQS(props.Connectors); err != nil {
		return nil, err
	}

	out.LambdaPolicy = awsiam.NewManagedPolicy(stack, jsii.String("Lambda Policy"), &awsiam.ManagedPolicyProps{
		Description:       jsii.String("Assumed by lambda functions during execution"),
		ManagedPolicyName: jsii.String(s.ResourceName("lambda-policy")),
		Statements:        out.lambdaStatements(s, props.SentryDSNSecretArn),
	})

	out.LambdaRole = awsiam.NewRole(stack, jsii.String("Lambda Role"), &awsiam.RoleProps{
		AssumedBy: awsiam.NewServicePrincipal(jsii.String("lambda.amazonaws.com"), nil),
		ManagedPolicies: &[]awsiam.IManagedPolicy{
			awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String("service-role/AWSLambdaBasicExecutionRole")),
			awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String("service-role/AWSLambdaVPCAccessExecutionRole")),
			awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String("AWSXRayDaemonWriteAccess")),
			out.LambdaPolicy,
		},
		PermissionsBoundary: awsiam.ManagedPolicy_FromManagedPolicyName(
			stack,
			jsii.String("Lambda Role Permissions Boundary"),
			jsii.String(fmt.Sprintf("%s-cdk-bootstrap-boundary-policy", s.ProjectSlug)),
		),
		RoleName: jsii.String(s.ResourceName("lambda-role")),
	})

	// Handlers are compiled Go binaries shipped as bootstrap in lambda.zip,
	// so no dependency layer is involved.
	out.Functions["do-something"] = awslambda.NewFunction(stack, jsii.String("Do Something Lambda Function"), &awslambda.FunctionProps{
		Architecture: awslambda.Architecture_X86_64(),
		Code:         awslambda.Code_FromAsset(jsii.String("lambda.zip"), nil),
		Description:  jsii.String("Does something"),
		Environment: &map[string]*string{
			"ENVIRONMENT":         jsii.String(s.Environment),
			"AWS_RESOURCE_SUFFIX": jsii.String(s.AWSResourceSuffix),
		},
		FunctionName: jsii.String(s.ResourceName("do-something")),
		Handler:      jsii.String("bootstrap"),
		MemorySize:   jsii.Number(1024),
		Role:         out.LambdaRole,
		Runtime:      awslambda.Runtime_PROVIDED_AL2023(),
		Timeout:      awscdk.Duration_Minutes(jsii.Number(15)),
		Tracing:      awslambda.Tracing_ACTIVE,
	})

	for _, name := range sortedKeys(out.Functions) {
		fn := out.Functions[name]
		awslogs.NewLogGroup(stack, jsii.String(fmt.Sprintf("Log Group for %s Lambda Function", name)), &awslogs.LogGroupProps{
			LogGroupName:  jsii.String(fmt.Sprintf("/aws/lambda/%s", *fn.FunctionName())),
			Retention:     awslogs.RetentionDays_THREE_MONTHS,
			RemovalPolicy: awscdk.RemovalPolicy_DESTROY,
		})
	}

	out.buildDashboard(s)

	return out, nil
}

// connectS3ToSQS grants s3.amazonaws.com SendMessage on each connected queue
// and subscribes the queue to the bucket's object-created events.
func (m *MainStack) connectS3ToSQS(connectors []config.S3ToSQSConnector) error {
	for _, connector := range connectors {
		bucketID := normalizeID(connector.Bucket)
		queueID := normalizeID(connector.Queue)

		bucket, ok := m.Buckets[bucketID]
		if !ok {
			return fmt.Errorf("connector references unknown bucket %q", connector.Bucket)
		}
		queueWithDLQ, ok := m.Queues[queueID]
		if !ok {
			return fmt.Errorf("connector references unknown queue %q", connector.Queue)
		}
		queue := queueWithDLQ.Queue

		queue.AddToResourcePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Effect:     awsiam.Effect_ALLOW,
			Actions:    jsii.Strings("sqs:SendMessage"),
			Principals: &[]awsiam.IPrincipal{awsiam.NewServicePrincipal(jsii.String("s3.amazonaws.com"), nil)},
			Resources:  &[]*string{queue.QueueArn()},
			Conditions: &map[string]interface{}{
				"ArnLike": map[string]interface{}{"aws:SourceArn": bucket.BucketArn()},
			},
		}))

		var filters []*awss3.NotificationKeyFilter
		if connector.Prefix != "" {
			filters = append(filters, &awss3.NotificationKeyFilter{Prefix: jsii.String(connector.Prefix)})
		}
		bucket.AddEventNotification(
			awss3.EventType_OBJECT_CREATED,
			awss3notifications.NewSqsDestination(queue),
			filters...,
		)
	}
	return nil
}

// lambdaStatements builds the execution policy. Statements for secrets,
// queues, buckets, and tables only appear when such resources exist.
func (m *MainStack) lambdaStatements(s *settings.Settings, sentryDSNSecretArn *string) *[]awsiam.PolicyStatement {
	statements := []awsiam.PolicyStatement{
		awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Actions: jsii.Strings("cloudwatch:PutMetricData"),
			Conditions: &map[string]interface{}{
				"StringEquals": map[string]interface{}{"cloudwatch:namespace": s.ProjectSlug},
			},
			Resources: jsii.Strings("*"),
		}),
	}

	if sentryDSNSecretArn != nil || len(m.Secrets) > 0 {
		secretArns := []*string{sentryDSNSecretArn}
		for _, name := range sortedKeys(m.Secrets) {
			secretArns = append(secretArns, m.Secrets[name].SecretArn())
		}
		statements = append(statements, awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Actions:   jsii.Strings("secretsmanager:GetSecretValue"),
			Resources: &secretArns,
		}))
	}

	if len(m.Queues) > 0 {
		var queueArns []*string
		for _, name := range sortedKeys(m.Queues) {
			q := m.Queues[name]
			queueArns = append(queueArns, q.Queue.QueueArn())
			if q.DeadLetterQueue != nil {
				queueArns = append(queueArns, q.DeadLetterQueue.QueueArn())
			}
		}
		statements = append(statements, awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Actions: jsii.Strings(
				"sqs:GetQueueUrl",
				"sqs:GetQueueAttributes",
				"sqs:ListDeadLetterSourceQueues",
				"sqs:SendMessage",
				"sqs:ReceiveMessage",
				"sqs:DeleteMessage",
				"sqs:ChangeMessageVisibility",
			),
			Resources: &queueArns,
		}))
	}

	if len(m.Buckets) > 0 {
		var bucketArns, objectArns []*string
		for _, name := range sortedKeys(m.Buckets) {
			bucket := m.Buckets[name]
			bucketArns = append(bucketArns, bucket.BucketArn())
			objectArns = append(objectArns, jsii.String(*bucket.BucketArn()+"/*"))
		}
		statements = append(statements,
			awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
				Actions:   jsii.Strings("s3:ListBucket"),
				Resources: &bucketArns,
			}),
			awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
				Actions:   jsii.Strings("s3:GetObject*", "s3:PutObject*", "s3:DeleteObject"),
				Resources: &objectArns,
			}),
		)
	}

	if len(m.Tables) > 0 {
		var tableArns []*string
		for _, name := range sortedKeys(m.Tables) {
			tableArns = append(tableArns, m.Tables[name].TableArn())
		}
		statements = append(statements, awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Actions: jsii.Strings(
				"dynamodb:BatchGetItem",
				"dynamodb:BatchWriteItem",
				"dynamodb:DeleteItem",
				"dynamodb:GetItem",
				"dynamodb:PutItem",
				"dynamodb:Query",
				"dynamodb:Scan",
				"dynamodb:UpdateItem",
			),
			Resources: &tableArns,
		}))
	}

	return &statements
}

// buildDashboard creates the integration dashboard: per-function invocation
// and duration widgets, then per-queue depth widgets with DLQ companions.
func (m *MainStack) buildDashboard(s *settings.Settings) {
	m.Dashboard = awscloudwatch.NewDashboard(m.Stack, jsii.String("Integration Dashboard"), &awscloudwatch.DashboardProps{
		DashboardName:   jsii.String(s.ResourceName("integration-dashboard")),
		DefaultInterval: awscdk.Duration_Days(jsii.Number(7)),
		PeriodOverride:  awscloudwatch.PeriodOverride_INHERIT,
	})

	hourly := awscdk.Duration_Hours(jsii.Number(1))

	for _, name := range sortedKeys(m.Functions) {
		fn := m.Functions[name]
		m.Dashboard.AddWidgets(
			awscloudwatch.NewGraphWidget(&awscloudwatch.GraphWidgetProps{
				Title: jsii.String(fmt.Sprintf("Lambda Function - %s - Invocations - Hourly", name)),
				Left: &[]awscloudwatch.IMetric{
					fn.MetricInvocations(&awscloudwatch.MetricOptions{
						Label:     jsii.String("Invocations"),
						Period:    hourly,
						Statistic: jsii.String("Sum"),
					}),
				},
				Right: &[]awscloudwatch.IMetric{
					fn.MetricErrors(&awscloudwatch.MetricOptions{
						Label:     jsii.String("Errors"),
						Period:    hourly,
						Statistic: jsii.String("Sum"),
					}),
					fn.MetricThrottles(&awscloudwatch.MetricOptions{
						Label:     jsii.String("Throttles"),
						Period:    hourly,
						Statistic: jsii.String("Sum"),
					}),
				},
				Width: jsii.Number(12),
			}),
			awscloudwatch.NewGraphWidget(&awscloudwatch.GraphWidgetProps{
				Title: jsii.String(fmt.Sprintf("Lambda Function - %s - Duration - Hourly", name)),
				Left: &[]awscloudwatch.IMetric{
					fn.MetricDuration(&awscloudwatch.MetricOptions{
						Label:     jsii.String("Duration minimum"),
						Period:    hourly,
						Statistic: jsii.String("Minimum"),
					}),
					fn.MetricDuration(&awscloudwatch.MetricOptions{
						Label:     jsii.String("Duration average"),
						Period:    hourly,
						Statistic: jsii.String("Average"),
					}),
					fn.MetricDuration(&awscloudwatch.MetricOptions{
						Label:     jsii.String("Duration maximum"),
						Period:    hourly,
						Statistic: jsii.String("Maximum"),
					}),
				},
				Width: jsii.Number(12),
			}),
		)
	}

	for _, name := range sortedKeys(m.Queues) {
		q := m.Queues[name]
		widgets := []awscloudwatch.IWidget{
			queueDepthWidget(fmt.Sprintf("Queue - %s - Hourly", name), q.Queue, hourly),
		}
		if q.DeadLetterQueue != nil {
			widgets = append(widgets,
				queueDepthWidget(fmt.Sprintf("Queue DLQ - %s - Hourly", name), q.DeadLetterQueue, hourly),
			)
		}
		m.Dashboard.AddWidgets(widgets...)
	}
}

func queueDepthWidget(title string, queue awssqs.Queue, period awscdk.Duration) awscloudwatch.GraphWidget {
	return awscloudwatch.NewGraphWidget(&awscloudwatch.GraphWidgetProps{
		Title: jsii.String(title),
		Left: &[]awscloudwatch.IMetric{
			queue.MetricApproximateNumberOfMessagesVisible(&awscloudwatch.MetricOptions{
				Label:  jsii.String("Visible"),
				Period: period,
			}),
		},
		Right: &[]awscloudwatch.IMetric{
			queue.MetricApproximateNumberOfMessagesNotVisible(&awscloudwatch.MetricOptions{
				Label:  jsii.String("In Flight"),
				Period: period,
			}),
		},
		Width: jsii.Number(12),
	})
}

// splitFifoName translates a physical queue name into the construct's
// contract: the name without any .fifo suffix, and whether it had one.
func splitFifoName(name string) (string, bool) {
	return strings.CutSuffix(name, ".fifo")
}

func normalizeID(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
