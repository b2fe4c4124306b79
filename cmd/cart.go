package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	storefrontrender "github.com/bnema/primemall-cli/internal/adapters/render/storefront"
	"github.com/bnema/primemall-cli/internal/application"
	"github.com/bnema/primemall-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newCartCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the cart; items hold funds until removed or checked out",
	}

	cmd.AddCommand(
		newCartShowCmd(app),
		newCartAddCmd(app),
		newCartRemoveCmd(app),
		newCartSetCmd(app),
		newCartClearCmd(app),
		newCartCheckoutCmd(app),
	)

	return cmd
}

func newCartShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the cart and the funds it holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := app.store.Cart(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				payload, err := json.MarshalIndent(view, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
				return err
			}

			return printCart(cmd, view)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newCartAddCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a product, reserving its price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.store.AddToCart(cmd.Context(), domain.ItemID(args[0]))
			if err != nil {
				return err
			}

			return printCart(cmd, view)
		},
	}
}

func newCartRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product line and refund it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.store.RemoveFromCart(cmd.Context(), domain.ItemID(args[0]))
			if err != nil {
				return err
			}

			return printCart(cmd, view)
		},
	}
}

func newCartSetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set the quantity of a cart line; zero removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quantity, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[1], err)
			}

			view, err := app.store.SetQuantity(cmd.Context(), application.SetQuantityCommand{
				ProductID: domain.ItemID(args[0]),
				Quantity:  quantity,
			})
			if err != nil {
				return err
			}

			return printCart(cmd, view)
		},
	}
}

func newCartClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart and refund everything it held",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := app.store.ClearCart(cmd.Context())
			if err != nil {
				return err
			}

			return printCart(cmd, view)
		},
	}
}

func newCartCheckoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Spend the held funds and empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := app.store.Checkout(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Order placed: %s spent, %s remaining.\n", result.Spent, result.Remaining)
			return err
		},
	}
}

func printCart(cmd *cobra.Command, view application.CartView) error {
	rendered, err := storefrontrender.RenderCart(view)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
