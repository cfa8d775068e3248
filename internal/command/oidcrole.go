// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/urfave/cli/v3"

	awsutil "github.com/kicksaw/sfictl/internal/aws"
	"github.com/kicksaw/sfictl/internal/console"
	"github.com/kicksaw/sfictl/internal/gh"
	"github.com/kicksaw/sfictl/internal/meta"
)

const (
	iamWaitAttempts = 10
	iamWaitDelay    = 2 * time.Second
)

// iamAPI is the subset of the IAM client the oidc-role command uses.
type iamAPI interface {
	CreateRole(ctx context.Context, params *iam.CreateRoleInput, optFns ...func(*iam.Options)) (*iam.CreateRoleOutput, error)
	GetRole(ctx context.Context, params *iam.GetRoleInput, optFns ...func(*iam.Options)) (*iam.GetRoleOutput, error)
	CreatePolicy(ctx context.Context, params *iam.CreatePolicyInput, optFns ...func(*iam.Options)) (*iam.CreatePolicyOutput, error)
	GetPolicy(ctx context.Context, params *iam.GetPolicyInput, optFns ...func(*iam.Options)) (*iam.GetPolicyOutput, error)
	AttachRolePolicy(ctx context.Context, params *iam.AttachRolePolicyInput, optFns ...func(*iam.Options)) (*iam.AttachRolePolicyOutput, error)
	ListAttachedRolePolicies(ctx context.Context, params *iam.ListAttachedRolePoliciesInput, optFns ...func(*iam.Options)) (*iam.ListAttachedRolePoliciesOutput, error)
}

// waitForRole polls until the role is readable or attempts run out.
func waitForRole(ctx context.Context, client iamAPI, roleName string) error {
	for attempt := 0; attempt < iamWaitAttempts; attempt++ {
		if _, err := client.GetRole(ctx, &iam.GetRoleInput{RoleName: aws.String(roleName)}); err == nil {
			return nil
		}
		time.Sleep(iamWaitDelay)
	}
	return fmt.Errorf("role %s did not become available", roleName)
}

// waitForPolicy polls until the policy is readable or attempts run out. Only
// NoSuchEntity keeps the poll going.
func waitForPolicy(ctx context.Context, client iamAPI, policyArn string) error {
	for attempt := 0; attempt < iamWaitAttempts; attempt++ {
		_, err := client.GetPolicy(ctx, &iam.GetPolicyInput{PolicyArn: aws.String(policyArn)})
		if err == nil {
			return nil
		}
		var notFound *iamtypes.NoSuchEntityException
		if !errors.As(err, &notFound) {
			return err
		}
		time.Sleep(iamWaitDelay)
	}
	return fmt.Errorf("policy %s did not become available", policyArn)
}

// provisionOIDCRole creates the deployment role and policy, attaches the
// policy, and verifies the attachment. Already-existing entities are
// tolerated at each step.
func provisionOIDCRole(ctx context.Context, client iamAPI, accountID, org, roleName, policyName string) error {
	trustPolicy, err := gh.OIDCTrustPolicy(accountID, org)
	if err != nil {
		return err
	}

	var alreadyExists *iamtypes.EntityAlreadyExistsException

	_, err = client.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(roleName),
		AssumeRolePolicyDocument: aws.String(trustPolicy),
	})
	switch {
	case err == nil:
		console.Successf("Role created: %s", roleName)
		if err := waitForRole(ctx, client, roleName); err != nil {
			return fmt.Errorf("failed to confirm role creation: %w", err)
		}
	case errors.As(err, &alreadyExists):
		console.Infof("Role %s already exists", roleName)
	default:
		return fmt.Errorf("failed to create role %s: %w", roleName, err)
	}

	policyDocument, err := gh.DeploymentPolicyDocument()
	if err != nil {
		return err
	}

	policyArn := fmt.Sprintf("arn:aws:iam::%s:policy/%s", accountID, policyName)
	created, err := client.CreatePolicy(ctx, &iam.CreatePolicyInput{
		PolicyName:     aws.String(policyName),
		PolicyDocument: aws.String(policyDocument),
	})
	switch {
	case err == nil:
		policyArn = aws.ToString(created.Policy.Arn)
		console.Successf("Policy created: %s", policyName)
		if err := waitForPolicy(ctx, client, policyArn); err != nil {
			return fmt.Errorf("failed to confirm policy creation: %w", err)
		}
	case errors.As(err, &alreadyExists):
		existing, getErr := client.GetPolicy(ctx, &iam.GetPolicyInput{PolicyArn: aws.String(policyArn)})
		if getErr != nil {
			return fmt.Errorf("failed to get existing policy %s: %w", policyName, getErr)
		}
		policyArn = aws.ToString(existing.Policy.Arn)
		console.Infof("Policy %s already exists", policyName)
	default:
		return fmt.Errorf("failed to create policy %s: %w", policyName, err)
	}

	if _, err := client.AttachRolePolicy(ctx, &iam.AttachRolePolicyInput{
		RoleName:  aws.String(roleName),
		PolicyArn: aws.String(policyArn),
	}); err != nil {
		return fmt.Errorf("failed to attach policy to role: %w", err)
	}
	console.Successf("Policy attached to role")

	attached, err := client.ListAttachedRolePolicies(ctx, &iam.ListAttachedRolePoliciesInput{
		RoleName: aws.String(roleName),
	})
	if err != nil {
		return fmt.Errorf("failed to list attached role policies: %w", err)
	}
	for _, policy := range attached.AttachedPolicies {
		if aws.ToString(policy.PolicyName) == policyName {
			console.Successf("Verified policy attachment")
			return nil
		}
	}
	return fmt.Errorf("policy attachment verification failed for %s", roleName)
}

// oidcRoleCommandAction provisions the GitHub Actions OIDC deployment role
// in the current AWS account.
func oidcRoleCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	clients := awsutil.NewClients()

	stsClient, err := clients.STS(ctx)
	if err != nil {
		return err
	}
	identity := awsutil.CallerIdentity{API: stsClient}
	accountID, err := identity.AccountID(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve AWS account ID: %w", err)
	}

	iamClient, err := clients.IAM(ctx)
	if err != nil {
		return err
	}

	slug := projectSlug(cmd)
	err = provisionOIDCRole(ctx, iamClient,
		accountID,
		cmd.String("org"),
		slug+"-deployment-role",
		slug+"-cdk-deployment-policy")
	if err != nil {
		return err
	}

	console.SuccessPanel("Setup Complete", "✓ All operations completed successfully!")
	return nil
}

func oidcRoleCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "oidc-role",
		Usage:     "create the GitHub Actions OIDC deployment role and policy",
		UsageText: "sfictl oidc-role [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewOrgFlag("oidc-role", meta.Config.Source),
			&cli.StringFlag{
				Name:  "project-slug",
				Usage: "project slug used to name the role and policy",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("PROJECT_SLUG"),
				),
				Value: "salesforce-integration",
			},
		},
		Action: oidcRoleCommandAction,
	}
}
