// Package awsclient builds the AWS service clients used by the CLI.
package awsclient

import (
	"context"
	"fmt"

	"dario.lol/ddns/internal/constants"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Options selects the credentials and endpoint. Empty fields fall back to
// the SDK's default chain.
type Options struct {
	Profile     string
	Region      string
	Endpoint    string
	AccessKeyID string
	SecretKey   string
}

type Clients struct {
	Config         aws.Config
	CloudFormation *cloudformation.Client
	Route53        *route53.Client
	DynamoDB       *dynamodb.Client
	STS            *sts.Client
}

// LoadConfig resolves the AWS configuration for opts.
func LoadConfig(ctx context.Context, opts Options) (aws.Config, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithAppID(constants.AppID),
	}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	switch {
	case opts.AccessKeyID != "" && opts.SecretKey != "":
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretKey, ""),
		))
	case opts.Profile != "":
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("loading AWS configuration: %w", err)
	}
	if opts.Endpoint != "" {
		cfg.BaseEndpoint = aws.String(opts.Endpoint)
	}
	return cfg, nil
}

// New loads the configuration and creates every client.
func New(ctx context.Context, opts Options) (*Clients, error) {
	cfg, err := LoadConfig(ctx, opts)
	if err != nil {
		return nil, err
	}
	return FromConfig(cfg), nil
}

func FromConfig(cfg aws.Config) *Clients {
	return &Clients{
		Config:         cfg,
		CloudFormation: cloudformation.NewFromConfig(cfg),
		Route53:        route53.NewFromConfig(cfg),
		DynamoDB:       dynamodb.NewFromConfig(cfg),
		STS:            sts.NewFromConfig(cfg),
	}
}
