package cli

import (
	"context"

	"awsls/internal/awsapi"
	"awsls/internal/output"
	"awsls/internal/paging"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/spf13/cobra"
)

var secretsListing = listing[types.SecretListEntry]{
	operation: "ListSecrets",
	limits:    paging.Limits{MinPageSize: 1, MaxPageSize: 100},
	capped:    true,
	selectors: output.NewSelectors(output.Selectors[types.SecretListEntry]{
		"names": output.Field(func(s types.SecretListEntry) any { return aws.ToString(s.Name) }),
		"arns":  output.Field(func(s types.SecretListEntry) any { return aws.ToString(s.ARN) }),
	}),
}

func NewSecretsCmd(session *Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secrets",
		Short: "Secrets Manager listings",
	}

	cmd.AddCommand(newListSecretsCmd(session))
	return cmd
}

func newListSecretsCmd(session *Session) *cobra.Command {
	var (
		flags                  pagingFlags
		filterArgs             []string
		includePlannedDeletion bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List secrets (metadata only, never secret values)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := parseFilters(filterArgs)
			if err != nil {
				return err
			}

			input := &secretsmanager.ListSecretsInput{}
			for _, f := range filters {
				input.Filters = append(input.Filters, types.Filter{
					Key:    types.FilterNameStringType(f.name),
					Values: f.values,
				})
			}
			if includePlannedDeletion {
				input.IncludePlannedDeletion = aws.Bool(true)
			}

			client := session.clients.SecretsManager(session.cfg)
			return secretsListing.run(cmd, session, &flags, listSecretsPages(client, input))
		},
	}

	cmd.Flags().StringArrayVar(&filterArgs, "filter", nil, "Filter as KEY=VALUE[,VALUE...] (e.g. name=prod/), repeatable")
	cmd.Flags().BoolVar(&includePlannedDeletion, "include-planned-deletion", false, "Include secrets scheduled for deletion")
	addPagingFlags(cmd, &flags, secretsListing.capped)
	return cmd
}

func listSecretsPages(client awsapi.SecretsManagerClient, input *secretsmanager.ListSecretsInput) paging.PageFunc[types.SecretListEntry] {
	return func(ctx context.Context, token *string, pageSize *int32) (paging.Page[types.SecretListEntry], error) {
		input.NextToken = token
		input.MaxResults = pageSize
		out, err := client.ListSecrets(ctx, input)
		if err != nil {
			return paging.Page[types.SecretListEntry]{}, err
		}
		return paging.Page[types.SecretListEntry]{Items: out.SecretList, NextToken: out.NextToken, Response: out}, nil
	}
}
