package cli

import (
	"context"
	"fmt"

	"awsls/internal/awsapi"
	"awsls/internal/output"
	"awsls/internal/paging"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/spf13/cobra"
)

var managedInstancesListing = listing[types.InstanceInformation]{
	operation: "DescribeInstanceInformation",
	limits:    paging.Limits{MinPageSize: 5, MaxPageSize: 50},
	capped:    true,
	selectors: output.NewSelectors(output.Selectors[types.InstanceInformation]{
		"ids": output.Field(func(i types.InstanceInformation) any { return aws.ToString(i.InstanceId) }),
	}),
}

func NewSSMCmd(session *Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ssm",
		Short: "Systems Manager listings",
	}

	cmd.AddCommand(newManagedInstancesCmd(session))
	return cmd
}

func newManagedInstancesCmd(session *Session) *cobra.Command {
	var (
		flags       pagingFlags
		filterArgs  []string
		legacyArgs  []string
		instanceIDs []string
	)

	cmd := &cobra.Command{
		Use:   "instances",
		Short: "Describe instances registered with Systems Manager",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := buildInstanceInformationInput(filterArgs, legacyArgs, instanceIDs)
			if err != nil {
				return err
			}
			client := session.clients.SSM(session.cfg)
			return managedInstancesListing.run(cmd, session, &flags, describeInstanceInformationPages(client, input))
		},
	}

	cmd.Flags().StringArrayVar(&filterArgs, "filter", nil, "Filter as KEY=VALUE[,VALUE...] (e.g. PingStatus=Online), repeatable")
	cmd.Flags().StringArrayVar(&legacyArgs, "instance-information-filter", nil, "Filter as KEY=VALUE[,VALUE...] using the legacy filter list")
	cmd.Flags().MarkDeprecated("instance-information-filter", "use --filter instead")
	cmd.Flags().StringSliceVar(&instanceIDs, "instance-ids", nil, "Only describe these instance IDs")
	addPagingFlags(cmd, &flags, managedInstancesListing.capped)
	return cmd
}

// buildInstanceInformationInput merges the modern and legacy filter flags. The service
// rejects requests that use both filter lists, so mixing them is refused up front.
// Instance IDs are expressed in whichever list is in use.
func buildInstanceInformationInput(filterArgs, legacyArgs, instanceIDs []string) (*ssm.DescribeInstanceInformationInput, error) {
	if len(filterArgs) > 0 && len(legacyArgs) > 0 {
		return nil, fmt.Errorf("--filter and --instance-information-filter are mutually exclusive, use --filter")
	}

	input := &ssm.DescribeInstanceInformationInput{}
	if len(legacyArgs) > 0 {
		filters, err := parseFilters(legacyArgs)
		if err != nil {
			return nil, err
		}
		for _, f := range filters {
			input.InstanceInformationFilterList = append(input.InstanceInformationFilterList, types.InstanceInformationFilter{
				Key:      types.InstanceInformationFilterKey(f.name),
				ValueSet: f.values,
			})
		}
		if len(instanceIDs) > 0 {
			input.InstanceInformationFilterList = append(input.InstanceInformationFilterList, types.InstanceInformationFilter{
				Key:      types.InstanceInformationFilterKeyInstanceIds,
				ValueSet: instanceIDs,
			})
		}
		return input, nil
	}

	filters, err := parseFilters(filterArgs)
	if err != nil {
		return nil, err
	}
	for _, f := range filters {
		input.Filters = append(input.Filters, types.InstanceInformationStringFilter{
			Key:    aws.String(f.name),
			Values: f.values,
		})
	}
	if len(instanceIDs) > 0 {
		input.Filters = append(input.Filters, types.InstanceInformationStringFilter{
			Key:    aws.String("InstanceIds"),
			Values: instanceIDs,
		})
	}
	return input, nil
}

func describeInstanceInformationPages(client awsapi.SSMClient, input *ssm.DescribeInstanceInformationInput) paging.PageFunc[types.InstanceInformation] {
	return func(ctx context.Context, token *string, pageSize *int32) (paging.Page[types.InstanceInformation], error) {
		input.NextToken = token
		input.MaxResults = pageSize
		out, err := client.DescribeInstanceInformation(ctx, input)
		if err != nil {
			return paging.Page[types.InstanceInformation]{}, err
		}
		return paging.Page[types.InstanceInformation]{Items: out.InstanceInformationList, NextToken: out.NextToken, Response: out}, nil
	}
}
