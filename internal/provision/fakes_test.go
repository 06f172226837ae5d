package provision

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cfntypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	r53types "github.com/aws/aws-sdk-go-v2/service/route53/types"
	"github.com/aws/smithy-go"
)

type fakeStacks struct {
	resources map[string][]cfntypes.StackResourceSummary
	pageSize  int
	listCalls int
}

func newFakeStacks() *fakeStacks {
	return &fakeStacks{resources: map[string][]cfntypes.StackResourceSummary{}, pageSize: 100}
}

func (f *fakeStacks) add(stack, logicalID, physicalID string) *fakeStacks {
	f.resources[stack] = append(f.resources[stack], cfntypes.StackResourceSummary{
		LogicalResourceId:  aws.String(logicalID),
		PhysicalResourceId: aws.String(physicalID),
		ResourceType:       aws.String("AWS::DynamoDB::Table"),
		ResourceStatus:     cfntypes.ResourceStatusCreateComplete,
	})
	return f
}

func stackMissing(name string) error {
	return &smithy.GenericAPIError{Code: "ValidationError", Message: "Stack with id " + name + " does not exist"}
}

func (f *fakeStacks) DescribeStacks(_ context.Context, in *cloudformation.DescribeStacksInput, _ ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error) {
	name := aws.ToString(in.StackName)
	if _, ok := f.resources[name]; !ok {
		return nil, stackMissing(name)
	}
	return &cloudformation.DescribeStacksOutput{Stacks: []cfntypes.Stack{{
		StackName:   aws.String(name),
		StackStatus: cfntypes.StackStatusCreateComplete,
	}}}, nil
}

func (f *fakeStacks) ListStackResources(_ context.Context, in *cloudformation.ListStackResourcesInput, _ ...func(*cloudformation.Options)) (*cloudformation.ListStackResourcesOutput, error) {
	f.listCalls++
	name := aws.ToString(in.StackName)
	all, ok := f.resources[name]
	if !ok {
		return nil, stackMissing(name)
	}

	start := 0
	if in.NextToken != nil {
		start, _ = strconv.Atoi(*in.NextToken)
	}
	end := start + f.pageSize
	if end > len(all) {
		end = len(all)
	}
	out := &cloudformation.ListStackResourcesOutput{StackResourceSummaries: all[start:end]}
	if end < len(all) {
		out.NextToken = aws.String(strconv.Itoa(end))
	}
	return out, nil
}

type fakeZones struct {
	zones []r53types.HostedZone
	err   error
}

func newFakeZones(nameToID map[string]string) *fakeZones {
	f := &fakeZones{}
	for name, id := range nameToID {
		f.zones = append(f.zones, r53types.HostedZone{
			Name: aws.String(name),
			Id:   aws.String("/hostedzone/" + id),
		})
	}
	sort.Slice(f.zones, func(i, j int) bool {
		return aws.ToString(f.zones[i].Name) < aws.ToString(f.zones[j].Name)
	})
	return f
}

func (f *fakeZones) ListHostedZonesByName(_ context.Context, in *route53.ListHostedZonesByNameInput, _ ...func(*route53.Options)) (*route53.ListHostedZonesByNameOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	limit := int(aws.ToInt32(in.MaxItems))
	out := &route53.ListHostedZonesByNameOutput{}
	for _, z := range f.zones {
		if limit > 0 && len(out.HostedZones) == limit {
			break
		}
		if strings.TrimSuffix(aws.ToString(z.Name), ".") >= strings.TrimSuffix(aws.ToString(in.DNSName), ".") {
			out.HostedZones = append(out.HostedZones, z)
		}
	}
	return out, nil
}

// fakeTable is an in-memory hostname table. staleReads makes the first
// GetItem calls miss, like an eventually consistent replica would.
type fakeTable struct {
	mu         sync.Mutex
	items      map[string]map[string]map[string]ddbtypes.AttributeValue
	puts       int
	gets       int
	staleReads int
	putErr     error
	getErr     error
}

func newFakeTable() *fakeTable {
	return &fakeTable{items: map[string]map[string]map[string]ddbtypes.AttributeValue{}}
}

func (f *fakeTable) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.puts++
	table := aws.ToString(in.TableName)
	if f.items[table] == nil {
		f.items[table] = map[string]map[string]ddbtypes.AttributeValue{}
	}
	key := in.Item["hostname"].(*ddbtypes.AttributeValueMemberS).Value
	f.items[table][key] = in.Item
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeTable) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.staleReads > 0 {
		f.staleReads--
		return &dynamodb.GetItemOutput{}, nil
	}
	key := in.Key["hostname"].(*ddbtypes.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.items[aws.ToString(in.TableName)][key]}, nil
}

func (f *fakeTable) data(table, hostname string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	av, ok := f.items[table][hostname]["data"].(*ddbtypes.AttributeValueMemberS)
	if !ok {
		return ""
	}
	return av.Value
}
