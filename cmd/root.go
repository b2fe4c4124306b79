package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pm",
		Short:         "Prime Mall CLI (pm): shop the demo storefront and talk to the mall knowledge ledger",
		Long:          "pm (Prime Mall CLI) signs you in to the demo storefront, keeps a cart backed by reserved funds, answers FAQs from the mall knowledge ledger and relays chat messages to customer service.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return app.close()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountCmd(app),
		newCatalogCmd(app),
		newCartCmd(app),
		newFAQCmd(app),
		newKnowledgeCmd(app),
		newChatCmd(app),
		newCredentialCmd(app),
		newServeCmd(app),
	)

	return rootCmd
}
