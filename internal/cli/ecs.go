package cli

import (
	"context"

	"awsls/internal/awsapi"
	"awsls/internal/paging"

	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/spf13/cobra"
)

var clustersListing = listing[string]{
	operation: "ListClusters",
	limits:    paging.Limits{MinPageSize: 1, MaxPageSize: 100},
	capped:    true,
}

func NewECSCmd(session *Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ecs",
		Short: "ECS listings",
	}

	cmd.AddCommand(newClustersCmd(session))
	return cmd
}

func newClustersCmd(session *Session) *cobra.Command {
	var flags pagingFlags

	cmd := &cobra.Command{
		Use:   "clusters",
		Short: "List cluster ARNs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := session.clients.ECS(session.cfg)
			return clustersListing.run(cmd, session, &flags, listClustersPages(client, &ecs.ListClustersInput{}))
		},
	}

	addPagingFlags(cmd, &flags, clustersListing.capped)
	return cmd
}

func listClustersPages(client awsapi.ECSClient, input *ecs.ListClustersInput) paging.PageFunc[string] {
	return func(ctx context.Context, token *string, pageSize *int32) (paging.Page[string], error) {
		input.NextToken = token
		input.MaxResults = pageSize
		out, err := client.ListClusters(ctx, input)
		if err != nil {
			return paging.Page[string]{}, err
		}
		return paging.Page[string]{Items: out.ClusterArns, NextToken: out.NextToken, Response: out}, nil
	}
}
