package cli

import (
	"context"
	"fmt"

	"awsls/internal/awsapi"
	"awsls/internal/cursor"
	"awsls/internal/paging"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var (
	tablesListing = listing[string]{
		operation: "ListTables",
		limits:    paging.Limits{MinPageSize: 1, MaxPageSize: 100},
		capped:    true,
	}

	scanListing = listing[map[string]any]{
		operation: "Scan",
		limits:    paging.Limits{MinPageSize: 1, MaxPageSize: 1000},
		capped:    true,
	}
)

func NewDynamoDBCmd(session *Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dynamodb",
		Short: "DynamoDB listings",
	}

	cmd.AddCommand(
		newTablesCmd(session),
		newScanCmd(session),
	)
	return cmd
}

func newTablesCmd(session *Session) *cobra.Command {
	var flags pagingFlags

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := session.clients.DynamoDB(session.cfg)
			return tablesListing.run(cmd, session, &flags, listTablesPages(client, &dynamodb.ListTablesInput{}))
		},
	}

	addPagingFlags(cmd, &flags, tablesListing.capped)
	return cmd
}

// ListTables continues from the last table name rather than a token.
func listTablesPages(client awsapi.DynamoDBClient, input *dynamodb.ListTablesInput) paging.PageFunc[string] {
	return func(ctx context.Context, token *string, pageSize *int32) (paging.Page[string], error) {
		input.ExclusiveStartTableName = token
		input.Limit = pageSize
		out, err := client.ListTables(ctx, input)
		if err != nil {
			return paging.Page[string]{}, err
		}
		return paging.Page[string]{Items: out.TableNames, NextToken: out.LastEvaluatedTableName, Response: out}, nil
	}
}

func newScanCmd(session *Session) *cobra.Command {
	var (
		flags          pagingFlags
		index          string
		projection     string
		consistentRead bool
	)

	cmd := &cobra.Command{
		Use:   "scan TABLE",
		Short: "Scan the items of a table",
		Long: `Scan the items of a table.

--max-items and --page-size count items evaluated by DynamoDB. The starting token is the
value printed by a previous scan run with --no-paginate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("starting-token") {
				if _, err := cursor.DecodeKey(flags.startingToken); err != nil {
					return err
				}
			}

			input := &dynamodb.ScanInput{
				TableName: aws.String(args[0]),
			}
			if index != "" {
				input.IndexName = aws.String(index)
			}
			if projection != "" {
				input.ProjectionExpression = aws.String(projection)
			}
			if consistentRead {
				input.ConsistentRead = aws.Bool(true)
			}

			client := session.clients.DynamoDB(session.cfg)
			return scanListing.run(cmd, session, &flags, scanPages(client, input))
		},
	}

	cmd.Flags().StringVar(&index, "index", "", "Scan a secondary index instead of the table")
	cmd.Flags().StringVar(&projection, "projection", "", "Projection expression selecting the attributes to return")
	cmd.Flags().BoolVar(&consistentRead, "consistent-read", false, "Use strongly consistent reads")
	addPagingFlags(cmd, &flags, scanListing.capped)
	return cmd
}

func scanPages(client awsapi.DynamoDBClient, input *dynamodb.ScanInput) paging.PageFunc[map[string]any] {
	return func(ctx context.Context, token *string, pageSize *int32) (paging.Page[map[string]any], error) {
		input.ExclusiveStartKey = nil
		if paging.HasToken(token) {
			key, err := cursor.DecodeKey(*token)
			if err != nil {
				return paging.Page[map[string]any]{}, err
			}
			input.ExclusiveStartKey = key
		}
		input.Limit = pageSize

		out, err := client.Scan(ctx, input)
		if err != nil {
			return paging.Page[map[string]any]{}, err
		}

		var items []map[string]any
		err = attributevalue.UnmarshalListOfMapsWithOptions(out.Items, &items, func(o *attributevalue.DecoderOptions) {
			o.UseNumber = true
		})
		if err != nil {
			return paging.Page[map[string]any]{}, fmt.Errorf("failed to decode items: %w", err)
		}
		for _, item := range items {
			for name, value := range item {
				item[name] = jsonNumbers(value)
			}
		}
		next, err := cursor.EncodeKey(out.LastEvaluatedKey)
		if err != nil {
			return paging.Page[map[string]any]{}, err
		}
		return paging.Page[map[string]any]{Items: items, NextToken: next, Response: out}, nil
	}
}

// jsonNumbers turns decoded N and NS values into json.Number so they print exactly as
// stored instead of going through float64.
func jsonNumbers(v any) any {
	switch val := v.(type) {
	case attributevalue.Number:
		return json.Number(val)
	case []attributevalue.Number:
		out := make([]json.Number, len(val))
		for i, n := range val {
			out[i] = json.Number(n)
		}
		return out
	case map[string]any:
		for k, inner := range val {
			val[k] = jsonNumbers(inner)
		}
		return val
	case []any:
		for i, inner := range val {
			val[i] = jsonNumbers(inner)
		}
		return val
	default:
		return v
	}
}
