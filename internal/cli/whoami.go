package cli

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/spf13/cobra"
)

type callerIdentity struct {
	Account string `json:"account"`
	Arn     string `json:"arn"`
	UserID  string `json:"user_id"`
	Region  string `json:"region"`
}

func (c callerIdentity) String() string {
	return fmt.Sprintf("%s\t%s\t%s", c.Account, c.Arn, c.Region)
}

func NewWhoAmICmd(session *Session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the account and principal the loaded credentials resolve to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := session.clients.STS(session.cfg)
			identity, err := client.GetCallerIdentity(cmd.Context(), &sts.GetCallerIdentityInput{})
			if err != nil {
				return fmt.Errorf("failed to get caller identity: %w", err)
			}
			return session.printer.Print(callerIdentity{
				Account: aws.ToString(identity.Account),
				Arn:     aws.ToString(identity.Arn),
				UserID:  aws.ToString(identity.UserId),
				Region:  session.cfg.Region,
			})
		},
	}

	return cmd
}
