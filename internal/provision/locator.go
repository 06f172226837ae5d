package provision

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/go-logr/logr"
)

// DefaultTableLogicalID is the logical id the DDNS stack template gives its
// hostname table.
const DefaultTableLogicalID = "DynDNSHostnameTable"

// StackAPI is the subset of the CloudFormation client the locator needs.
type StackAPI interface {
	cloudformation.DescribeStacksAPIClient
	cloudformation.ListStackResourcesAPIClient
}

// ResourceDescriptor pairs a stack resource's logical id with its physical id.
type ResourceDescriptor struct {
	LogicalID    string
	PhysicalID   string
	ResourceType string
}

// Locator resolves logical resource ids of a deployed stack to physical ids.
type Locator struct {
	api StackAPI
	log logr.Logger
}

func NewLocator(api StackAPI, log logr.Logger) *Locator {
	return &Locator{api: api, log: log}
}

// VerifyStack checks that the stack can be described with the current
// credentials.
func (l *Locator) VerifyStack(ctx context.Context, stackName string) error {
	out, err := l.api.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		l.log.V(1).Info("describe stack failed", "stack", stackName, "code", apiErrorCode(err))
		return fmt.Errorf("%w: %s (%s); ensure the right AWS profile and credentials are being used", ErrStackNotFound, stackName, describeAPIError(err))
	}
	if len(out.Stacks) == 0 {
		return fmt.Errorf("%w: %s; ensure the right AWS profile and credentials are being used", ErrStackNotFound, stackName)
	}
	l.log.V(1).Info("stack verified", "stack", stackName, "status", string(out.Stacks[0].StackStatus))
	return nil
}

// Locate walks every page of the stack's resources and returns the first one
// whose logical id equals logicalID.
func (l *Locator) Locate(ctx context.Context, stackName, logicalID string) (ResourceDescriptor, error) {
	pager := cloudformation.NewListStackResourcesPaginator(l.api, &cloudformation.ListStackResourcesInput{
		StackName: aws.String(stackName),
	})

	scanned := 0
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return ResourceDescriptor{}, fmt.Errorf("%w: listing resources of %s: %s", ErrStackNotFound, stackName, describeAPIError(err))
		}
		for _, summary := range page.StackResourceSummaries {
			scanned++
			if aws.ToString(summary.LogicalResourceId) != logicalID {
				continue
			}
			desc := ResourceDescriptor{
				LogicalID:    logicalID,
				PhysicalID:   aws.ToString(summary.PhysicalResourceId),
				ResourceType: aws.ToString(summary.ResourceType),
			}
			if desc.PhysicalID == "" {
				return ResourceDescriptor{}, fmt.Errorf("%w: resource %s of stack %s has no physical ID yet (status %s)", ErrTableNotFound, logicalID, stackName, summary.ResourceStatus)
			}
			l.log.V(1).Info("resource located", "stack", stackName, "logicalID", logicalID, "physicalID", desc.PhysicalID)
			return desc, nil
		}
	}

	return ResourceDescriptor{}, fmt.Errorf("%w: DynamoDB table with logical ID %s not found among %d resources of stack %s", ErrTableNotFound, logicalID, scanned, stackName)
}
