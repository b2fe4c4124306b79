package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/spf13/cobra"
)

var errCouldNotSend = errors.New("could not send")

func newChatCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "chat <message>",
		Short: "Send a message to customer service and wait for the reply",
		Long:  "chat submits the message to the mall ledger and waits for the transaction to be accepted, which can take several minutes.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message := strings.Join(args, " ")
			if strings.TrimSpace(message) == "" {
				return domain.ErrEmptyMessage
			}

			var exchange domain.ChatExchange
			err := runWaitSpinner(cmd.Context(), cmd.ErrOrStderr(), "Waiting for customer service...", func(ctx context.Context) error {
				var err error
				exchange, err = app.knowledge.Exchange(ctx, message)
				return err
			})
			if err != nil {
				return fmt.Errorf("%w: %w", errCouldNotSend, err)
			}

			if asJSON {
				payload, err := json.MarshalIndent(exchange, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), exchange.Response)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
