// Package awsapi declares the narrow slices of the AWS SDK clients that awsls calls.
// Commands depend on these interfaces so tests can replace the SDK with fakes.
package awsapi

import (
	"context"

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

// CloudWatchLogsClient lists log groups and filters log events.
type CloudWatchLogsClient interface {
	DescribeLogGroups(ctx context.Context, params *cloudwatchlogs.DescribeLogGroupsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogGroupsOutput, error)
	FilterLogEvents(ctx context.Context, params *cloudwatchlogs.FilterLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.FilterLogEventsOutput, error)
}

// DynamoDBClient lists tables and scans them.
type DynamoDBClient interface {
	ListTables(ctx context.Context, params *dynamodb.ListTablesInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// EC2Client describes instances.
type EC2Client interface {
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
}

// ECSClient lists clusters.
type ECSClient interface {
	ListClusters(ctx context.Context, params *ecs.ListClustersInput, optFns ...func(*ecs.Options)) (*ecs.ListClustersOutput, error)
}

// FISClient lists experiments.
type FISClient interface {
	ListExperiments(ctx context.Context, params *fis.ListExperimentsInput, optFns ...func(*fis.Options)) (*fis.ListExperimentsOutput, error)
}

// IAMClient lists roles.
type IAMClient interface {
	ListRoles(ctx context.Context, params *iam.ListRolesInput, optFns ...func(*iam.Options)) (*iam.ListRolesOutput, error)
}

// TaggingClient finds resources by tag.
type TaggingClient interface {
	GetResources(ctx context.Context, params *resourcegroupstaggingapi.GetResourcesInput, optFns ...func(*resourcegroupstaggingapi.Options)) (*resourcegroupstaggingapi.GetResourcesOutput, error)
}

// SecretsManagerClient lists secrets.
type SecretsManagerClient interface {
	ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error)
}

// SSMClient describes managed instances.
type SSMClient interface {
	DescribeInstanceInformation(ctx context.Context, params *ssm.DescribeInstanceInformationInput, optFns ...func(*ssm.Options)) (*ssm.DescribeInstanceInformationOutput, error)
}

// STSClient reports the caller identity.
type STSClient interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Clients builds service clients from a loaded configuration.
type Clients interface {
	CloudWatchLogs(cfg aws.Config) CloudWatchLogsClient
	DynamoDB(cfg aws.Config) DynamoDBClient
	EC2(cfg aws.Config) EC2Client
	ECS(cfg aws.Config) ECSClient
	FIS(cfg aws.Config) FISClient
	IAM(cfg aws.Config) IAMClient
	Tagging(cfg aws.Config) TaggingClient
	SecretsManager(cfg aws.Config) SecretsManagerClient
	SSM(cfg aws.Config) SSMClient
	STS(cfg aws.Config) STSClient
}

// SDKClients builds the real SDK clients.
type SDKClients struct{}

func (SDKClients) CloudWatchLogs(cfg aws.Config) CloudWatchLogsClient {
	return cloudwatchlogs.NewFromConfig(cfg)
}

func (SDKClients) DynamoDB(cfg aws.Config) DynamoDBClient { return dynamodb.NewFromConfig(cfg) }

func (SDKClients) EC2(cfg aws.Config) EC2Client { return ec2.NewFromConfig(cfg) }

func (SDKClients) ECS(cfg aws.Config) ECSClient { return ecs.NewFromConfig(cfg) }

func (SDKClients) FIS(cfg aws.Config) FISClient { return fis.NewFromConfig(cfg) }

func (SDKClients) IAM(cfg aws.Config) IAMClient { return iam.NewFromConfig(cfg) }

func (SDKClients) Tagging(cfg aws.Config) TaggingClient {
	return resourcegroupstaggingapi.NewFromConfig(cfg)
}

func (SDKClients) SecretsManager(cfg aws.Config) SecretsManagerClient {
	return secretsmanager.NewFromConfig(cfg)
}

func (SDKClients) SSM(cfg aws.Config) SSMClient { return ssm.NewFromConfig(cfg) }

func (SDKClients) STS(cfg aws.Config) STSClient { return sts.NewFromConfig(cfg) }

// Compile-time checks that the SDK clients satisfy the interfaces.
var (
	_ Clients = SDKClients{}

	_ CloudWatchLogsClient = (*cloudwatchlogs.Client)(nil)
	_ DynamoDBClient       = (*dynamodb.Client)(nil)
	_ EC2Client            = (*ec2.Client)(nil)
	_ ECSClient            = (*ecs.Client)(nil)
	_ FISClient            = (*fis.Client)(nil)
	_ IAMClient            = (*iam.Client)(nil)
	_ TaggingClient        = (*resourcegroupstaggingapi.Client)(nil)
	_ SecretsManagerClient = (*secretsmanager.Client)(nil)
	_ SSMClient            = (*ssm.Client)(nil)
	_ STSClient            = (*sts.Client)(nil)
)
