// Package cmd - orders command
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your orders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		api, auth, err := newSession()
		if err != nil {
			return err
		}
		if err := auth.Bootstrap(ctx); err != nil {
			return err
		}
		if _, ok := auth.CurrentUser(); !ok {
			return fmt.Errorf("not signed in; run `printctl login` first")
		}

		orders, err := api.ListOrders(ctx, auth.AccessToken())
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			fmt.Println("No orders yet")
			return nil
		}

		for _, o := range orders {
			fmt.Printf("%s  %-10s  $%.2f  %s\n",
				o.ID, o.Status, float64(o.TotalCents)/100, o.PlacedAt.Format("2006-01-02 15:04"))
			for _, item := range o.Items {
				fmt.Printf("    %dx %s ($%.2f)\n", item.Quantity, item.DisplayName, float64(item.UnitPriceCents)/100)
			}
		}
		return nil
	},
}
