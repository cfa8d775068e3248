// Copyright (c) 2026 Kicksaw Consulting.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	stsv2 "github.com/aws/aws-sdk-go-v2/service/sts"
)

// STSIdentityAPI is the slice of the STS client identity lookups need.
type STSIdentityAPI interface {
	GetCallerIdentity(
		ctx context.Context,
		params *stsv2.GetCallerIdentityInput,
		optFns ...func(*stsv2.Options),
	) (*stsv2.GetCallerIdentityOutput, error)
}

// CallerIdentity resolves the current account id from STS. It satisfies
// settings.AccountIDResolver.
type CallerIdentity struct {
	API STSIdentityAPI
}

// AccountID returns the AWS account id of the current credentials.
func (c CallerIdentity) AccountID(ctx context.Context) (string, error) {
	out, err := c.API.GetCallerIdentity(ctx, &stsv2.GetCallerIdentityInput{})
	if err != nil {
		return "", err
	}
	return awsv2.ToString(out.Account), nil
}
