package cmd

import (
	"context"
	"fmt"

	storefrontrender "github.com/bnema/primemall-cli/internal/adapters/render/storefront"
	"github.com/spf13/cobra"
)

func newFAQCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "faq",
		Short: "Frequently asked questions answered from the mall ledger",
	}

	cmd.AddCommand(
		newFAQListCmd(app),
		newFAQAskCmd(app),
	)

	return cmd
}

func newFAQListCmd(app *app) *cobra.Command {
	var resolve bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the known questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if resolve {
				err := runWaitSpinner(cmd.Context(), cmd.ErrOrStderr(), "Loading answers...", func(ctx context.Context) error {
					app.faq.AskAll(ctx)
					return nil
				})
				if err != nil {
					return err
				}
			}

			rendered, err := storefrontrender.RenderFAQ(app.faq.Entries())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&resolve, "answers", false, "Load every answer before listing")

	return cmd
}

func newFAQAskCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <key>",
		Short: "Show the answer to one question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.faq.Ask(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			answer := ""
			if entry.Answer != nil {
				answer = *entry.Answer
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n", entry.Question, answer)
			return err
		},
	}
}
