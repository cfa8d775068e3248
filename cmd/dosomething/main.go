// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

// The dosomething binary is the do-something Lambda handler. It is compiled
// for the provided runtime and shipped as bootstrap in lambda.zip.
package main

import (
	"context"

	apexlog "github.com/apex/log"
	"github.com/aws/aws-lambda-go/lambda"

	awsutil "github.com/kicksaw/sfictl/internal/aws"
	"github.com/kicksaw/sfictl/internal/handlers/dosomething"
	"github.com/kicksaw/sfictl/internal/log"
	"github.com/kicksaw/sfictl/internal/salesforce"
	"github.com/kicksaw/sfictl/internal/secrets"
	sentryutil "github.com/kicksaw/sfictl/internal/sentry"
	"github.com/kicksaw/sfictl/internal/settings"
	"github.com/kicksaw/sfictl/internal/xray"
)

func main() {
	log.InitLogger()

	initCtx := context.Background()

	s, err := settings.Load()
	if err != nil {
		apexlog.Fatalf("failed to load settings: %v", err)
	}

	clients := awsutil.NewClients(awsutil.WithRegion(s.AWSRegion))

	sm, err := clients.SecretsManager(initCtx)
	if err != nil {
		apexlog.Fatalf("failed to load AWS config: %v", err)
	}
	store := secrets.NewStore(sm)

	if err := sentryutil.Configure(initCtx, s, store); err != nil {
		// Reporting is best-effort; the integration still runs without it.
		log.WithError(err).Warnf("failed to configure sentry")
	}
	xray.Configure(s)

	sf, err := newSalesforceClient(initCtx, s, store)
	if err != nil {
		apexlog.Fatalf("failed to build salesforce client: %v", err)
	}

	cw, err := clients.CloudWatch(initCtx)
	if err != nil {
		apexlog.Fatalf("failed to build cloudwatch client: %v", err)
	}

	handler := &dosomething.Handler{
		Settings:   s,
		Salesforce: sf,
		CloudWatch: cw,
	}

	lambda.Start(handler.Handle)
}

// newSalesforceClient reads the environment's Salesforce connected-app secret.
func newSalesforceClient(ctx context.Context, s *settings.Settings, store *secrets.Store) (*salesforce.Client, error) {
	secret, err := store.Get(ctx, s.ResourceName("salesforce"))
	if err != nil {
		return nil, err
	}
	return salesforce.New(salesforce.Config{
		InstanceURL:  secret["instance_url"],
		ClientID:     secret["client_id"],
		ClientSecret: secret["client_secret"],
	}), nil
}
