package awsclient

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
)

func TestLoadConfig_StaticCredentials(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")

	cfg, err := LoadConfig(context.Background(), Options{
		Region:      "eu-west-1",
		Endpoint:    "http://localhost:4566",
		AccessKeyID: "AKIAEXAMPLE",
		SecretKey:   "secret",
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Region != "eu-west-1" {
		t.Errorf("Region = %q, want eu-west-1", cfg.Region)
	}
	if aws.ToString(cfg.BaseEndpoint) != "http://localhost:4566" {
		t.Errorf("BaseEndpoint = %q", aws.ToString(cfg.BaseEndpoint))
	}
	if cfg.AppID != "ddns-cli" {
		t.Errorf("AppID = %q, want ddns-cli", cfg.AppID)
	}

	creds, err := cfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if creds.AccessKeyID != "AKIAEXAMPLE" {
		t.Errorf("AccessKeyID = %q, want AKIAEXAMPLE", creds.AccessKeyID)
	}

	clients := FromConfig(cfg)
	if clients.CloudFormation == nil || clients.Route53 == nil || clients.DynamoDB == nil || clients.STS == nil {
		t.Error("FromConfig() left a client nil")
	}
}

func TestLoadConfig_NoEndpointOverride(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")

	t.Setenv("AWS_ENDPOINT_URL", "")

	cfg, err := LoadConfig(context.Background(), Options{Region: "us-east-1"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BaseEndpoint != nil {
		t.Errorf("BaseEndpoint = %q, want unset", *cfg.BaseEndpoint)
	}
}
