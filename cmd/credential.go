package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCredentialCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Manage the ledger credential in the secret store",
	}

	cmd.AddCommand(
		newCredentialSetCmd(app),
		newCredentialRemoveCmd(app),
	)

	return cmd
}

func newCredentialSetCmd(app *app) *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the ledger credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.credentials.Set(cmd.Context(), value); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Credential stored.")
			return err
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "Credential value")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newCredentialRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Delete the stored ledger credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.credentials.Remove(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Credential removed.")
			return err
		},
	}
}
