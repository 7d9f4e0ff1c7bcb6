package cli

import (
	"context"

	"awsls/internal/awsapi"
	"awsls/internal/output"
	"awsls/internal/paging"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi"
	"github.com/aws/aws-sdk-go-v2/service/resourcegroupstaggingapi/types"
	"github.com/spf13/cobra"
)

// Tagged resources span every service in the region, so no item cap is offered.
var resourcesListing = listing[types.ResourceTagMapping]{
	operation: "GetResources",
	limits:    paging.Limits{MinPageSize: 1, MaxPageSize: 100},
	selectors: output.NewSelectors(output.Selectors[types.ResourceTagMapping]{
		"arns": output.Field(func(r types.ResourceTagMapping) any { return aws.ToString(r.ResourceARN) }),
		"tags": output.Field(func(r types.ResourceTagMapping) any {
			return taggedResource{ARN: aws.ToString(r.ResourceARN), Tags: tagsToMap(r.Tags)}
		}),
	}),
}

type taggedResource struct {
	ARN  string            `json:"arn"`
	Tags map[string]string `json:"tags"`
}

func NewTaggingCmd(session *Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tagging",
		Short: "Resource Groups Tagging listings",
	}

	cmd.AddCommand(newTaggedResourcesCmd(session))
	return cmd
}

func newTaggedResourcesCmd(session *Session) *cobra.Command {
	var (
		flags         pagingFlags
		tagArgs       []string
		resourceTypes []string
	)

	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Find resources by tag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tags, err := parseTagFilters(tagArgs)
			if err != nil {
				return err
			}

			input := &resourcegroupstaggingapi.GetResourcesInput{
				ResourceTypeFilters: resourceTypes,
			}
			for _, tag := range tags {
				input.TagFilters = append(input.TagFilters, types.TagFilter{
					Key:    aws.String(tag.name),
					Values: tag.values,
				})
			}

			client := session.clients.Tagging(session.cfg)
			return resourcesListing.run(cmd, session, &flags, getResourcesPages(client, input))
		},
	}

	cmd.Flags().StringArrayVar(&tagArgs, "tag", nil, "Tag filter as KEY or KEY=VALUE[,VALUE...], repeatable")
	cmd.Flags().StringSliceVar(&resourceTypes, "resource-type", nil, "Resource types such as ec2:instance or s3")
	addPagingFlags(cmd, &flags, resourcesListing.capped)
	return cmd
}

// GetResources signals the last page with an empty pagination token.
func getResourcesPages(client awsapi.TaggingClient, input *resourcegroupstaggingapi.GetResourcesInput) paging.PageFunc[types.ResourceTagMapping] {
	return func(ctx context.Context, token *string, pageSize *int32) (paging.Page[types.ResourceTagMapping], error) {
		input.PaginationToken = token
		input.ResourcesPerPage = pageSize
		out, err := client.GetResources(ctx, input)
		if err != nil {
			return paging.Page[types.ResourceTagMapping]{}, err
		}
		return paging.Page[types.ResourceTagMapping]{Items: out.ResourceTagMappingList, NextToken: out.PaginationToken, Response: out}, nil
	}
}

// tagsToMap flattens a tag list, skipping tags without a key.
func tagsToMap(tags []types.Tag) map[string]string {
	m := make(map[string]string, len(tags))
	for _, tag := range tags {
		if tag.Key != nil {
			m[*tag.Key] = aws.ToString(tag.Value)
		}
	}
	return m
}
