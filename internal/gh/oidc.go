// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package gh

import (
	"encoding/json"
	"fmt"
)

// OIDCTrustPolicy builds the IAM assume-role policy document that lets
// GitHub Actions workflows in the organization assume the deployment role
// through the token.actions.githubusercontent.com OIDC provider.
func OIDCTrustPolicy(accountID, org string) (string, error) {
	policy := map[string]any{
		"Version": "2012-10-17",
		"Statement": []map[string]any{
			{
				"Effect": "Allow",
				"Principal": map[string]any{
					"Federated": fmt.Sprintf(
						"arn:aws:iam::%s:oidc-provider/token.actions.githubusercontent.com", accountID),
				},
				"Action": "sts:AssumeRoleWithWebIdentity",
				"Condition": map[string]any{
					"StringEquals": map[string]any{
						"token.actions.githubusercontent.com:aud": "sts.amazonaws.com",
					},
					"StringLike": map[string]any{
						"token.actions.githubusercontent.com:sub": fmt.Sprintf("repo:%s/*", org),
					},
				},
			},
		},
	}

	doc, err := json.Marshal(policy)
	if err != nil {
		return "", fmt.Errorf("failed to encode trust policy: %w", err)
	}
	return string(doc), nil
}

// DeploymentPolicyDocument is the policy attached to the deployment role.
// CDK deployments assume the bootstrap roles, so the wide grant is bounded
// by the bootstrap permissions boundary.
func DeploymentPolicyDocument() (string, error) {
	policy := map[string]any{
		"Version": "2012-10-17",
		"Statement": []map[string]any{
			{
				"Effect":   "Allow",
				"Action":   []string{"*"},
				"Resource": []string{"*"},
			},
		},
	}

	doc, err := json.Marshal(policy)
	if err != nil {
		return "", fmt.Errorf("failed to encode deployment policy: %w", err)
	}
	return string(doc), nil
}
