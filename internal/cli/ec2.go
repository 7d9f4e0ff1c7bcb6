package cli

import (
	"context"

	"awsls/internal/awsapi"
	"awsls/internal/output"
	"awsls/internal/paging"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/spf13/cobra"
)

var instancesListing = listing[types.Instance]{
	operation: "DescribeInstances",
	limits:    paging.Limits{MinPageSize: 5, MaxPageSize: 1000},
	capped:    true,
	selectors: output.NewSelectors(output.Selectors[types.Instance]{
		"ids": output.Field(func(i types.Instance) any { return aws.ToString(i.InstanceId) }),
		"summary": output.Field(func(i types.Instance) any {
			return instanceSummary{
				InstanceID:   aws.ToString(i.InstanceId),
				InstanceType: string(i.InstanceType),
				State:        instanceState(i),
				Lifecycle:    string(i.InstanceLifecycle),
				PrivateIP:    aws.ToString(i.PrivateIpAddress),
			}
		}),
	}),
}

type instanceSummary struct {
	InstanceID   string `json:"instance_id"`
	InstanceType string `json:"instance_type"`
	State        string `json:"state"`
	Lifecycle    string `json:"lifecycle,omitempty"`
	PrivateIP    string `json:"private_ip,omitempty"`
}

func instanceState(i types.Instance) string {
	if i.State == nil {
		return ""
	}
	return string(i.State.Name)
}

func NewEC2Cmd(session *Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ec2",
		Short: "EC2 listings",
	}

	cmd.AddCommand(newInstancesCmd(session))
	return cmd
}

func newInstancesCmd(session *Session) *cobra.Command {
	var (
		flags       pagingFlags
		instanceIDs []string
		filterArgs  []string
	)

	cmd := &cobra.Command{
		Use:   "instances",
		Short: "Describe instances",
		Long: `Describe instances.

Instances are flattened out of their reservations. When --instance-ids is given the
service does not accept a page size, so none is sent.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := parseFilters(filterArgs)
			if err != nil {
				return err
			}

			input := &ec2.DescribeInstancesInput{
				InstanceIds: instanceIDs,
			}
			for _, f := range filters {
				input.Filters = append(input.Filters, types.Filter{
					Name:   aws.String(f.name),
					Values: f.values,
				})
			}

			client := session.clients.EC2(session.cfg)
			return instancesListing.run(cmd, session, &flags, describeInstancesPages(client, input))
		},
	}

	cmd.Flags().StringSliceVar(&instanceIDs, "instance-ids", nil, "Instance IDs to describe")
	cmd.Flags().StringArrayVar(&filterArgs, "filter", nil, "Filter as NAME=VALUE[,VALUE...] (e.g. instance-state-name=running), repeatable")
	addPagingFlags(cmd, &flags, instancesListing.capped)
	return cmd
}

func describeInstancesPages(client awsapi.EC2Client, input *ec2.DescribeInstancesInput) paging.PageFunc[types.Instance] {
	return func(ctx context.Context, token *string, pageSize *int32) (paging.Page[types.Instance], error) {
		input.NextToken = token
		if len(input.InstanceIds) == 0 {
			input.MaxResults = pageSize
		}
		out, err := client.DescribeInstances(ctx, input)
		if err != nil {
			return paging.Page[types.Instance]{}, err
		}

		var instances []types.Instance
		for _, reservation := range out.Reservations {
			instances = append(instances, reservation.Instances...)
		}
		return paging.Page[types.Instance]{Items: instances, NextToken: out.NextToken, Response: out}, nil
	}
}
