// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	infraconstructs "github.com/kicksaw/sfictl/internal/infra/constructs"
	"github.com/kicksaw/sfictl/internal/settings"
)

// SharedStackProps configures the shared stack.
type SharedStackProps struct {
	awscdk.StackProps
	Settings *settings.Settings
}

// SharedStack holds the resources shared across all environments: today,
// only the error tracker DSN secret and its exported ARN.
type SharedStack struct {
	awscdk.Stack
	// SentryDSNSecretOutput exports the DSN secret ARN under the secret's
	// own name so environment stacks can import it.
	SentryDSNSecretOutput awscdk.CfnOutput
}

// NewSharedStack creates the shared stack.
func NewSharedStack(scope constructs.Construct, id string, props *SharedStackProps) *SharedStack {
	stack := awscdk.NewStack(scope, jsii.String(id), &props.StackProps)
	s := props.Settings

	secretName := s.SentrySecretName()
	dsnSecret := infraconstructs.NewSecret(stack, "Sentry DSN Secret", &infraconstructs.SecretProps{
		Name:        secretName,
		Description: "Sentry DSN for shared resources",
		Values:      map[string]string{"dsn": ""},
	})

	output := awscdk.NewCfnOutput(stack, jsii.String("Sentry DSN Secret ARN Output"), &awscdk.CfnOutputProps{
		Value:       dsnSecret.SecretArn(),
		Description: jsii.String("Sentry DSN to be used across all environments"),
		ExportName:  jsii.String(secretName),
	})

	return &SharedStack{Stack: stack, SentryDSNSecretOutput: output}
}
