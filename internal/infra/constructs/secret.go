// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package constructs

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssecretsmanager"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// SecretProps configures a Secrets Manager secret created with placeholder
// values that operators fill in after deployment.
type SecretProps struct {
	// Name is the secret name, e.g. "salesforce-integration-production-api-token".
	Name        string
	Description string
	// Values holds the secret's keys. Empty values become JSON nulls.
	Values map[string]string
}

// Secret wraps a Secrets Manager secret and exposes its ARN for IAM
// statements.
type Secret struct {
	constructs.Construct
	Secret awssecretsmanager.Secret
}

// NewSecret creates the secret.
func NewSecret(scope constructs.Construct, id string, props *SecretProps) *Secret {
	construct := constructs.NewConstruct(scope, jsii.String(id))

	values := map[string]awscdk.SecretValue{}
	for key, value := range props.Values {
		if value == "" {
			values[key] = awscdk.SecretValue_UnsafePlainText(nil)
			continue
		}
		values[key] = awscdk.SecretValue_UnsafePlainText(jsii.String(value))
	}

	secret := awssecretsmanager.NewSecret(construct, jsii.String(id), &awssecretsmanager.SecretProps{
		Description:       jsii.String(props.Description),
		SecretName:        jsii.String(props.Name),
		SecretObjectValue: &values,
	})

	return &Secret{Construct: construct, Secret: secret}
}

// SecretArn returns the ARN of the underlying secret.
func (s *Secret) SecretArn() *string {
	return s.Secret.SecretArn()
}
