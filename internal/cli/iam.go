package cli

import (
	"context"

	"awsls/internal/awsapi"
	"awsls/internal/output"
	"awsls/internal/paging"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/spf13/cobra"
)

// Roles are an account-wide listing, so no item cap is offered.
var rolesListing = listing[types.Role]{
	operation: "ListRoles",
	limits:    paging.Limits{MinPageSize: 1, MaxPageSize: 1000},
	selectors: output.NewSelectors(output.Selectors[types.Role]{
		"names": output.Field(func(r types.Role) any { return aws.ToString(r.RoleName) }),
		"arns":  output.Field(func(r types.Role) any { return aws.ToString(r.Arn) }),
	}),
}

func NewIAMCmd(session *Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iam",
		Short: "IAM listings",
	}

	cmd.AddCommand(newRolesCmd(session))
	return cmd
}

func newRolesCmd(session *Session) *cobra.Command {
	var (
		flags      pagingFlags
		pathPrefix string
	)

	cmd := &cobra.Command{
		Use:   "roles",
		Short: "List roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := &iam.ListRolesInput{}
			if pathPrefix != "" {
				input.PathPrefix = aws.String(pathPrefix)
			}
			client := session.clients.IAM(session.cfg)
			return rolesListing.run(cmd, session, &flags, listRolesPages(client, input))
		},
	}

	cmd.Flags().StringVar(&pathPrefix, "path-prefix", "", "Only list roles under this path (e.g. /service-role/)")
	addPagingFlags(cmd, &flags, rolesListing.capped)
	return cmd
}

// IAM pages with Marker and IsTruncated. A marker is only meaningful while the
// response is truncated.
func listRolesPages(client awsapi.IAMClient, input *iam.ListRolesInput) paging.PageFunc[types.Role] {
	return func(ctx context.Context, token *string, pageSize *int32) (paging.Page[types.Role], error) {
		input.Marker = token
		input.MaxItems = pageSize
		out, err := client.ListRoles(ctx, input)
		if err != nil {
			return paging.Page[types.Role]{}, err
		}
		var next *string
		if out.IsTruncated {
			next = out.Marker
		}
		return paging.Page[types.Role]{Items: out.Roles, NextToken: next, Response: out}, nil
	}
}
