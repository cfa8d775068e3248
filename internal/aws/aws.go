// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"sync"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/config"
	cloudwatchv2 "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	iamv2 "github.com/aws/aws-sdk-go-v2/service/iam"
	secretsmanagerv2 "github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	stsv2 "github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/kicksaw/sfictl/internal/log"
)

// maxRetryAttempts is the standard-mode retry cap for all SDK clients.
const maxRetryAttempts = 10

// options holds optional overrides for AWS config loading.
type options struct {
	profile string
	region  string
	retryer func() awsv2.Retryer
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// LoadAWSConfig loads AWS SDK v2 config. By default it inherits the ambient
// AWS setup (AWS_PROFILE, shared config, env, IMDS) and installs a standard
// retryer capped at maxRetryAttempts. Options can override profile, region,
// and retryer without changing callers.
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("opts applied: profile=%s, region=%s", o.profile, o.region)

	loadOpts := []func(*config.LoadOptions) error{
		config.WithRetryer(func() awsv2.Retryer {
			return retry.NewStandard(func(so *retry.StandardOptions) {
				so.MaxAttempts = maxRetryAttempts
			})
		}),
	}
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		log.Debugf("config load err: err=%v", err)
		return awsv2.Config{}, err
	}
	log.Debugf("config loaded")
	return cfg, nil
}

// WithProfile sets the shared config profile. Defaults to AWS_PROFILE/env chain.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override. Defaults to env/profile/metadata chain.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithRetryer injects a custom retryer; if not set, the standard retryer with
// the integration's retry budget is used.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// NewSecretsManager constructs a v2 Secrets Manager client from the provided config.
func NewSecretsManager(cfg awsv2.Config, optFns ...func(*secretsmanagerv2.Options)) *secretsmanagerv2.Client {
	return secretsmanagerv2.NewFromConfig(cfg, optFns...)
}

// NewSTS constructs a v2 STS client from the provided config.
func NewSTS(cfg awsv2.Config, optFns ...func(*stsv2.Options)) *stsv2.Client {
	return stsv2.NewFromConfig(cfg, optFns...)
}

// NewIAM constructs a v2 IAM client from the provided config.
func NewIAM(cfg awsv2.Config, optFns ...func(*iamv2.Options)) *iamv2.Client {
	return iamv2.NewFromConfig(cfg, optFns...)
}

// NewCloudWatch constructs a v2 CloudWatch client from the provided config.
func NewCloudWatch(cfg awsv2.Config, optFns ...func(*cloudwatchv2.Options)) *cloudwatchv2.Client {
	return cloudwatchv2.NewFromConfig(cfg, optFns...)
}

// Clients is a lazily-initialized bundle of the service clients the
// integration talks to. All clients share one config load. Reset exists so
// tests can swap endpoints between cases.
type Clients struct {
	mu  sync.Mutex
	cfg *awsv2.Config

	opts []Option

	secretsManager *secretsmanagerv2.Client
	sts            *stsv2.Client
	iam            *iamv2.Client
	cloudWatch     *cloudwatchv2.Client
}

// NewClients returns a client bundle that loads config on first use.
func NewClients(opts ...Option) *Clients {
	return &Clients{opts: opts}
}

// Reset drops all cached clients and the loaded config.
func (c *Clients) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = nil
	c.secretsManager = nil
	c.sts = nil
	c.iam = nil
	c.cloudWatch = nil
}

func (c *Clients) config(ctx context.Context) (awsv2.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := LoadAWSConfig(ctx, c.opts...)
	if err != nil {
		return awsv2.Config{}, err
	}
	c.cfg = &cfg
	return cfg, nil
}

// SecretsManager returns the shared Secrets Manager client.
func (c *Clients) SecretsManager(ctx context.Context) (*secretsmanagerv2.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.secretsManager == nil {
		cfg, err := c.config(ctx)
		if err != nil {
			return nil, err
		}
		c.secretsManager = NewSecretsManager(cfg)
	}
	return c.secretsManager, nil
}

// STS returns the shared STS client.
func (c *Clients) STS(ctx context.Context) (*stsv2.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sts == nil {
		cfg, err := c.config(ctx)
		if err != nil {
			return nil, err
		}
		c.sts = NewSTS(cfg)
	}
	return c.sts, nil
}

// IAM returns the shared IAM client.
func (c *Clients) IAM(ctx context.Context) (*iamv2.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.iam == nil {
		cfg, err := c.config(ctx)
		if err != nil {
			return nil, err
		}
		c.iam = NewIAM(cfg)
	}
	return c.iam, nil
}

// CloudWatch returns the shared CloudWatch client.
func (c *Clients) CloudWatch(ctx context.Context) (*cloudwatchv2.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cloudWatch == nil {
		cfg, err := c.config(ctx)
		if err != nil {
			return nil, err
		}
		c.cloudWatch = NewCloudWatch(cfg)
	}
	return c.cloudWatch, nil
}
