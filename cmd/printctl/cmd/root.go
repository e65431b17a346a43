// Package cmd provides the CLI commands for printctl.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"printhub/pkg/client"
)

var (
	apiURL  string
	verbose bool
	logger  *zap.SugaredLogger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "printctl",
	Short: "Order 3D prints from the command line",
	Long: `printctl talks to a PrintHub server: upload a model for a price
estimate, sign in, add the estimate to your cart and follow your orders.

Examples:
  printctl estimate ./bracket.stl --material PETG
  printctl login you@example.com
  printctl add-to-cart ./bracket.stl
  printctl orders`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "http://localhost:8080/v1", "PrintHub API base URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(addToCartCmd)
	rootCmd.AddCommand(ordersCmd)
}

func initLogging() {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}
	base, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	logger = base.Sugar()
}

// newSession builds the API client and the AuthStore backed by the
// credential file under the user's home directory.
func newSession() (*client.Client, *client.AuthStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve home directory: %w", err)
	}
	api := client.NewClient(apiURL, nil)
	storage := client.NewFileStorage(filepath.Join(home, ".printhub", "credentials.json"))
	return api, client.NewAuthStore(api, storage), nil
}
