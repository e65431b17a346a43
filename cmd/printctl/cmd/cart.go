// Package cmd - add-to-cart command
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"printhub/pkg/client"
)

// addToCartCmd estimates a model and puts it straight in the cart.
var addToCartCmd = &cobra.Command{
	Use:   "add-to-cart <file>",
	Short: "Estimate a model and add it to your cart",
	Long: `Upload a model, wait for the estimate and add it to your cart as a
custom print line. Requires being signed in (printctl login).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		api, auth, err := newSession()
		if err != nil {
			return err
		}
		if err := auth.Bootstrap(ctx); err != nil {
			return err
		}

		path := args[0]
		contents, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		session := client.NewEstimateSession(api, auth)
		defer session.Close()

		estimate, err := session.SelectFile(ctx, filepath.Base(path), contents, material, quality)
		if err != nil {
			return fmt.Errorf("estimate failed: %w", err)
		}

		cart, err := session.AddToCart(ctx)
		if err != nil {
			var signIn *client.SignInRequiredError
			if errors.As(err, &signIn) {
				return fmt.Errorf("not signed in; run `printctl login` first")
			}
			return err
		}

		fmt.Printf("Added %s ($%.2f) to cart\n", estimate.FileName, estimate.EstimatedPrice)
		fmt.Printf("Cart: %d item(s), subtotal $%.2f\n", len(cart.Items), float64(cart.SubtotalCents)/100)
		return nil
	},
}

func init() {
	addToCartCmd.Flags().StringVarP(&material, "material", "m", "", "print material (default PLA)")
	addToCartCmd.Flags().StringVarP(&quality, "quality", "q", "", "print quality (standard, fine)")
}
