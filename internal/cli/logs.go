package cli

import (
	"context"
	"fmt"
	"time"

	"awsls/internal/awsapi"
	"awsls/internal/output"
	"awsls/internal/paging"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var (
	logGroupsListing = listing[types.LogGroup]{
		operation: "DescribeLogGroups",
		limits:    paging.Limits{MinPageSize: 1, MaxPageSize: 50},
		capped:    true,
		selectors: output.NewSelectors(output.Selectors[types.LogGroup]{
			"names": output.Field(func(g types.LogGroup) any { return aws.ToString(g.LogGroupName) }),
			"arns":  output.Field(func(g types.LogGroup) any { return aws.ToString(g.Arn) }),
		}),
	}

	logEventsListing = listing[types.FilteredLogEvent]{
		operation: "FilterLogEvents",
		limits:    paging.Limits{MinPageSize: 1, MaxPageSize: 10000},
		capped:    true,
		selectors: output.NewSelectors(output.Selectors[types.FilteredLogEvent]{
			"lines":    output.Field(func(e types.FilteredLogEvent) any { return newLogLine(e) }),
			"messages": output.Field(func(e types.FilteredLogEvent) any { return aws.ToString(e.Message) }),
		}),
	}
)

func NewLogsCmd(session *Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "CloudWatch Logs listings",
	}

	cmd.AddCommand(
		newLogGroupsCmd(session),
		newLogEventsCmd(session),
	)
	return cmd
}

func newLogGroupsCmd(session *Session) *cobra.Command {
	var (
		flags  pagingFlags
		prefix string
	)

	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List log groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := &cloudwatchlogs.DescribeLogGroupsInput{}
			if prefix != "" {
				input.LogGroupNamePrefix = aws.String(prefix)
			}
			client := session.clients.CloudWatchLogs(session.cfg)
			return logGroupsListing.run(cmd, session, &flags, describeLogGroupsPages(client, input))
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Only list log groups whose name starts with this prefix")
	addPagingFlags(cmd, &flags, logGroupsListing.capped)
	return cmd
}

func describeLogGroupsPages(client awsapi.CloudWatchLogsClient, input *cloudwatchlogs.DescribeLogGroupsInput) paging.PageFunc[types.LogGroup] {
	return func(ctx context.Context, token *string, pageSize *int32) (paging.Page[types.LogGroup], error) {
		input.NextToken = token
		input.Limit = pageSize
		out, err := client.DescribeLogGroups(ctx, input)
		if err != nil {
			return paging.Page[types.LogGroup]{}, err
		}
		return paging.Page[types.LogGroup]{Items: out.LogGroups, NextToken: out.NextToken, Response: out}, nil
	}
}

func newLogEventsCmd(session *Session) *cobra.Command {
	var (
		flags         pagingFlags
		since         string
		streamPrefix  string
		filterPattern string
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Filter log events of a log group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			group, legacy, err := resolveLegacyFlag(cmd, "log-group-identifier", "log-group-name")
			if err != nil {
				return err
			}
			if group == "" {
				return fmt.Errorf("--log-group-identifier is required")
			}

			duration, err := time.ParseDuration(since)
			if err != nil {
				return fmt.Errorf("invalid --since value: %w", err)
			}

			input := &cloudwatchlogs.FilterLogEventsInput{
				StartTime: aws.Int64(time.Now().Add(-duration).UnixMilli()),
			}
			if legacy {
				input.LogGroupName = aws.String(group)
			} else {
				input.LogGroupIdentifier = aws.String(group)
			}
			if streamPrefix != "" {
				input.LogStreamNamePrefix = aws.String(streamPrefix)
			}
			if filterPattern != "" {
				input.FilterPattern = aws.String(filterPattern)
			}

			client := session.clients.CloudWatchLogs(session.cfg)
			return logEventsListing.run(cmd, session, &flags, filterLogEventsPages(client, input))
		},
	}

	cmd.Flags().String("log-group-identifier", "", "Name or ARN of the log group")
	cmd.Flags().String("log-group-name", "", "Name of the log group")
	cmd.Flags().MarkDeprecated("log-group-name", "use --log-group-identifier instead")
	cmd.Flags().StringVarP(&since, "since", "s", "2h", "Show events since duration (e.g. 30m, 2h)")
	cmd.Flags().StringVar(&streamPrefix, "stream-prefix", "", "Only include log streams whose name starts with this prefix")
	cmd.Flags().StringVar(&filterPattern, "filter-pattern", "", "CloudWatch Logs filter pattern")
	addPagingFlags(cmd, &flags, logEventsListing.capped)
	return cmd
}

func filterLogEventsPages(client awsapi.CloudWatchLogsClient, input *cloudwatchlogs.FilterLogEventsInput) paging.PageFunc[types.FilteredLogEvent] {
	return func(ctx context.Context, token *string, pageSize *int32) (paging.Page[types.FilteredLogEvent], error) {
		input.NextToken = token
		input.Limit = pageSize
		out, err := client.FilterLogEvents(ctx, input)
		if err != nil {
			return paging.Page[types.FilteredLogEvent]{}, err
		}
		return paging.Page[types.FilteredLogEvent]{Items: out.Events, NextToken: out.NextToken, Response: out}, nil
	}
}

type logLine struct {
	timestamp int64
	stream    string
	message   string
}

func newLogLine(e types.FilteredLogEvent) logLine {
	return logLine{
		timestamp: aws.ToInt64(e.Timestamp),
		stream:    aws.ToString(e.LogStreamName),
		message:   aws.ToString(e.Message),
	}
}

func (l logLine) String() string {
	localTime := time.UnixMilli(l.timestamp).Local().Format("15:04:05.000")
	return fmt.Sprintf("%s [%s] %s", localTime, l.stream, l.message)
}

// MarshalJSON keeps lines readable in json output.
func (l logLine) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}
