package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/primemall-cli/internal/application"
	"github.com/spf13/cobra"
)

func newAccountCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Sign in to the storefront",
	}

	cmd.AddCommand(
		newAccountSignupCmd(app),
		newAccountLoginCmd(app),
		newAccountLogoutCmd(app),
		newAccountShowCmd(app),
	)

	return cmd
}

func newAccountSignupCmd(app *app) *cobra.Command {
	var input application.SignupCommand

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and start a session with demo funds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := app.store.Signup(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! You have %s to spend.\n", account.Name, account.Funds)
			return err
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&input.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&input.Password, "password", "", "Password (not verified by the demo store)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAccountLoginCmd(app *app) *cobra.Command {
	var input application.LoginCommand

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a session for an email address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			account, err := app.store.Login(cmd.Context(), input)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s <%s>. Funds: %s\n", account.Name, account.Email, account.Funds)
			return err
		},
	}

	cmd.Flags().StringVar(&input.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&input.Password, "password", "", "Password (not verified by the demo store)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newAccountLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and drop the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.store.Logout(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return err
		},
	}
}

func newAccountShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := app.store.Cart(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				payload, err := json.MarshalIndent(view.Account, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
				return err
			}

			if !view.Authenticated() {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\nfunds: %s\nheld by cart: %s (%d items)\n",
				view.Account.Name, view.Account.Email, view.Account.Funds, view.Total, view.Count)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
