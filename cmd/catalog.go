package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	storefrontrender "github.com/bnema/primemall-cli/internal/adapters/render/storefront"
	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the product catalog",
	}

	cmd.AddCommand(
		newCatalogListCmd(app),
		newCatalogInitCmd(app),
	)

	return cmd
}

func newCatalogListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List products, flagging those you cannot afford",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := app.catalog.List(cmd.Context())
			if err != nil {
				return err
			}

			view, err := app.store.Cart(cmd.Context())
			if err != nil {
				return err
			}

			var funds *domain.Cents
			if view.Account != nil {
				funds = &view.Account.Funds
			}

			rendered, err := storefrontrender.RenderCatalog(products, funds)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}

func newCatalogInitCmd(app *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the demo catalog to the catalog file for editing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := app.catalog.Path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("catalog file %s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("stat catalog file: %w", err)
			}

			if err := app.catalog.Replace(cmd.Context(), domain.DemoCatalog); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d products to %s\n", len(domain.DemoCatalog), path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing catalog file")

	return cmd
}
