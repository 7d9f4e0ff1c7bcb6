package cli

import (
	"context"

	"awsls/internal/awsapi"
	"awsls/internal/output"
	"awsls/internal/paging"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/fis"
	"github.com/aws/aws-sdk-go-v2/service/fis/types"
	"github.com/spf13/cobra"
)

var experimentsListing = listing[types.ExperimentSummary]{
	operation: "ListExperiments",
	limits:    paging.Limits{MinPageSize: 1, MaxPageSize: 100},
	capped:    true,
	selectors: output.NewSelectors(output.Selectors[types.ExperimentSummary]{
		"ids":      output.Field(func(e types.ExperimentSummary) any { return aws.ToString(e.Id) }),
		"statuses": output.Field(func(e types.ExperimentSummary) any { return experimentStatus(e) }),
	}),
}

type experimentStatusLine struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func (l experimentStatusLine) String() string {
	if l.Reason != "" {
		return l.ID + "\t" + l.Status + "\t" + l.Reason
	}
	return l.ID + "\t" + l.Status
}

func experimentStatus(e types.ExperimentSummary) experimentStatusLine {
	line := experimentStatusLine{ID: aws.ToString(e.Id)}
	if e.State != nil {
		line.Status = string(e.State.Status)
		line.Reason = aws.ToString(e.State.Reason)
	}
	return line
}

func NewFISCmd(session *Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fis",
		Short: "Fault Injection Service listings",
	}

	cmd.AddCommand(newExperimentsCmd(session))
	return cmd
}

func newExperimentsCmd(session *Session) *cobra.Command {
	var (
		flags      pagingFlags
		templateID string
	)

	cmd := &cobra.Command{
		Use:   "experiments",
		Short: "List experiments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := &fis.ListExperimentsInput{}
			if templateID != "" {
				input.ExperimentTemplateId = aws.String(templateID)
			}
			client := session.clients.FIS(session.cfg)
			return experimentsListing.run(cmd, session, &flags, listExperimentsPages(client, input))
		},
	}

	cmd.Flags().StringVar(&templateID, "template-id", "", "Only list experiments started from this experiment template")
	addPagingFlags(cmd, &flags, experimentsListing.capped)
	return cmd
}

func listExperimentsPages(client awsapi.FISClient, input *fis.ListExperimentsInput) paging.PageFunc[types.ExperimentSummary] {
	return func(ctx context.Context, token *string, pageSize *int32) (paging.Page[types.ExperimentSummary], error) {
		input.NextToken = token
		input.MaxResults = pageSize
		out, err := client.ListExperiments(ctx, input)
		if err != nil {
			return paging.Page[types.ExperimentSummary]{}, err
		}
		return paging.Page[types.ExperimentSummary]{Items: out.Experiments, NextToken: out.NextToken, Response: out}, nil
	}
}
