package cli

import (
	"bytes"
	"context"

	"awsls/internal/awsapi"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/fis"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// fakeCloudWatchLogs records inputs and replays scripted outputs in order.
type fakeCloudWatchLogs struct {
	groupPages  []*cloudwatchlogs.DescribeLogGroupsOutput
	groupInputs []cloudwatchlogs.DescribeLogGroupsInput
	eventPages  []*cloudwatchlogs.FilterLogEventsOutput
	eventInputs []cloudwatchlogs.FilterLogEventsInput
	err         error
}

func (f *fakeCloudWatchLogs) DescribeLogGroups(ctx context.Context, params *cloudwatchlogs.DescribeLogGroupsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error) {
	f.groupInputs = append(f.groupInputs, snapshotDescribeLogGroups(params))
	i := len(f.groupInputs) - 1
	if i >= len(f.groupPages) {
		return nil, f.err
	}
	return f.groupPages[i], nil
}

func (f *fakeCloudWatchLogs) FilterLogEvents(ctx context.Context, params *cloudwatchlogs.FilterLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.FilterLogEventsOutput, error) {
	f.eventInputs = append(f.eventInputs, *params)
	i := len(f.eventInputs) - 1
	if i >= len(f.eventPages) {
		return nil, f.err
	}
	return f.eventPages[i], nil
}

// The command reuses one input across calls, so pointer fields are copied.
func snapshotDescribeLogGroups(in *cloudwatchlogs.DescribeLogGroupsInput) cloudwatchlogs.DescribeLogGroupsInput {
	out := *in
	if in.Limit != nil {
		out.Limit = aws.Int32(*in.Limit)
	}
	return out
}

type fakeDynamoDB struct {
	tablePages []*dynamodb.ListTablesOutput
	scanPages  []*dynamodb.ScanOutput
	scanInputs []dynamodb.ScanInput
	tableCalls int
}

func (f *fakeDynamoDB) ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error) {
	f.tableCalls++
	return f.tablePages[f.tableCalls-1], nil
}

func (f *fakeDynamoDB) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scanInputs = append(f.scanInputs, *params)
	return f.scanPages[len(f.scanInputs)-1], nil
}

type fakeEC2 struct {
	pages  []*ec2.DescribeInstancesOutput
	inputs []ec2.DescribeInstancesInput
}

func (f *fakeEC2) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	f.inputs = append(f.inputs, *params)
	return f.pages[len(f.inputs)-1], nil
}

type fakeECS struct {
	pages []*ecs.ListClustersOutput
	calls int
}

func (f *fakeECS) ListClusters(ctx context.Context, params *ecs.ListClustersInput, optFns ...func(*ecs.Options)) (*ecs.ListClustersOutput, error) {
	f.calls++
	return f.pages[f.calls-1], nil
}

type fakeFIS struct {
	pages []*fis.ListExperimentsOutput
	calls int
}

func (f *fakeFIS) ListExperiments(ctx context.Context, params *fis.ListExperimentsInput, optFns ...func(*fis.Options)) (*fis.ListExperimentsOutput, error) {
	f.calls++
	return f.pages[f.calls-1], nil
}

type fakeIAM struct {
	pages   []*iam.ListRolesOutput
	markers []*string
}

func (f *fakeIAM) ListRoles(ctx context.Context, params *iam.ListRolesInput, optFns ...func(*iam.Options)) (*iam.ListRolesOutput, error) {
	f.markers = append(f.markers, params.Marker)
	return f.pages[len(f.markers)-1], nil
}

type fakeTagging struct {
	pages  []*resourcegroupstaggingapi.GetResourcesOutput
	inputs []resourcegroupstaggingapi.GetResourcesInput
}

func (f *fakeTagging) GetResources(ctx context.Context, params *resourcegroupstaggingapi.GetResourcesInput, optFns ...func(*resourcegroupstaggingapi.Options)) (*resourcegroupstaggingapi.GetResourcesOutput, error) {
	f.inputs = append(f.inputs, *params)
	return f.pages[len(f.inputs)-1], nil
}

type fakeSecrets struct {
	pages  []*secretsmanager.ListSecretsOutput
	inputs []secretsmanager.ListSecretsInput
}

func (f *fakeSecrets) ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error) {
	f.inputs = append(f.inputs, *params)
	return f.pages[len(f.inputs)-1], nil
}

type fakeSSM struct {
	pages []*ssm.DescribeInstanceInformationOutput
	calls int
}

func (f *fakeSSM) DescribeInstanceInformation(ctx context.Context, params *ssm.DescribeInstanceInformationInput, optFns ...func(*ssm.Options)) (*ssm.DescribeInstanceInformationOutput, error) {
	f.calls++
	return f.pages[f.calls-1], nil
}

type fakeSTS struct {
	out *sts.GetCallerIdentityOutput
}

func (f *fakeSTS) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	return f.out, nil
}

// fakeClients hands out the configured fakes. Unset services are nil.
type fakeClients struct {
	logs    *fakeCloudWatchLogs
	dynamo  *fakeDynamoDB
	ec2     *fakeEC2
	ecs     *fakeECS
	fis     *fakeFIS
	iam     *fakeIAM
	tagging *fakeTagging
	secrets *fakeSecrets
	ssm     *fakeSSM
	sts     *fakeSTS
}

func (f *fakeClients) CloudWatchLogs(aws.Config) awsapi.CloudWatchLogsClient { return f.logs }
func (f *fakeClients) DynamoDB(aws.Config) awsapi.DynamoDBClient             { return f.dynamo }
func (f *fakeClients) EC2(aws.Config) awsapi.EC2Client                       { return f.ec2 }
func (f *fakeClients) ECS(aws.Config) awsapi.ECSClient                       { return f.ecs }
func (f *fakeClients) FIS(aws.Config) awsapi.FISClient                       { return f.fis }
func (f *fakeClients) IAM(aws.Config) awsapi.IAMClient                       { return f.iam }
func (f *fakeClients) Tagging(aws.Config) awsapi.TaggingClient               { return f.tagging }
func (f *fakeClients) SecretsManager(aws.Config) awsapi.SecretsManagerClient { return f.secrets }
func (f *fakeClients) SSM(aws.Config) awsapi.SSMClient                       { return f.ssm }
func (f *fakeClients) STS(aws.Config) awsapi.STSClient                       { return f.sts }

var _ awsapi.Clients = (*fakeClients)(nil)

func staticConfig(ctx context.Context, region, profile string) (aws.Config, error) {
	if region == "" {
		region = "us-east-1"
	}
	return aws.Config{Region: region}, nil
}

// execute runs the root command with args and returns stdout and stderr.
func execute(clients *fakeClients, args ...string) (string, string, error) {
	session := NewSession(staticConfig, clients)
	cmd := NewRootCmd(session)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
