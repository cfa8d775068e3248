// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

// The infra binary is the CDK application. `cdk synth` and `cdk deploy`
// invoke it to emit the SharedStack and MainStack templates.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	awsutil "github.com/kicksaw/sfictl/internal/aws"
	"github.com/kicksaw/sfictl/internal/config"
	"github.com/kicksaw/sfictl/internal/infra/stacks"
	"github.com/kicksaw/sfictl/internal/log"
	"github.com/kicksaw/sfictl/internal/settings"
)

func main() {
	defer jsii.Close()

	log.InitLogger()
	if err := realMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func realMain() error {
	ctx := context.Background()

	s, err := settings.Load()
	if err != nil {
		return err
	}

	if s.AWSAccountID == "" {
		cfg, err := awsutil.LoadAWSConfig(ctx, awsutil.WithRegion(s.AWSRegion))
		if err != nil {
			return fmt.Errorf("failed to load AWS config: %w", err)
		}
		if err := s.ResolveAccountID(ctx, awsutil.CallerIdentity{API: awsutil.NewSTS(cfg)}); err != nil {
			return err
		}
	}

	connectors, err := config.Connectors()
	if err != nil {
		return err
	}

	app := awscdk.NewApp(nil)

	env := &awscdk.Environment{
		Account: jsii.String(s.AWSAccountID),
		Region:  jsii.String(s.AWSRegion),
	}

	shared := stacks.NewSharedStack(app, "SharedStack", &stacks.SharedStackProps{
		StackProps: awscdk.StackProps{
			Description: jsii.String("Resources shared across all environments"),
			Env:         env,
			StackName:   jsii.String(fmt.Sprintf("%s-shared-resources", s.ProjectSlug)),
			Tags: &map[string]*string{
				"project": jsii.String(s.ProjectSlug),
			},
		},
		Settings: s,
	})

	mainStack, err := stacks.NewMainStack(app, "MainStack", &stacks.MainStackProps{
		StackProps: awscdk.StackProps{
			Description: jsii.String(fmt.Sprintf("Contains project resources for %s environment", s.Environment)),
			Env:         env,
			StackName:   jsii.String(s.ResourceName("main")),
			Tags: &map[string]*string{
				"project":     jsii.String(s.ProjectSlug),
				"environment": jsii.String(s.Environment),
			},
		},
		Settings:           s,
		SentryDSNSecretArn: shared.SentryDSNSecretOutput.ImportValue(),
		Connectors:         connectors,
	})
	if err != nil {
		return err
	}
	mainStack.AddDependency(shared.Stack, nil)

	app.Synth(nil)
	return nil
}
