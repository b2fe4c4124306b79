package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	storefrontrender "github.com/bnema/primemall-cli/internal/adapters/render/storefront"
	"github.com/spf13/cobra"
)

func newKnowledgeCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "knowledge",
		Short: "Read or replace the mall knowledge text",
	}

	cmd.AddCommand(
		newKnowledgeShowCmd(app),
		newKnowledgeUpdateCmd(app),
	)

	return cmd
}

func newKnowledgeShowCmd(app *app) *cobra.Command {
	var sections bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the mall knowledge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !sections {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), app.knowledge.GetKnowledge(cmd.Context()))
				return err
			}

			rendered, err := storefrontrender.RenderSections(app.knowledge.Sections(cmd.Context()))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&sections, "sections", false, "Split the text into titled sections")

	return cmd
}

func newKnowledgeUpdateCmd(app *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update [text]",
		Short: "Replace the knowledge text on the ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := knowledgeInput(args, file)
			if err != nil {
				return err
			}

			err = runWaitSpinner(cmd.Context(), cmd.ErrOrStderr(), "Waiting for the update to be accepted...", func(ctx context.Context) error {
				return app.knowledge.UpdateKnowledge(ctx, text)
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Knowledge updated.")
			return err
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Read the text from a file")

	return cmd
}

func knowledgeInput(args []string, file string) (string, error) {
	switch {
	case file != "" && len(args) > 0:
		return "", errors.New("pass the text either as an argument or with --file")
	case file != "":
		raw, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read knowledge file: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	case len(args) == 1:
		return args[0], nil
	default:
		return "", errors.New("knowledge text is required")
	}
}
