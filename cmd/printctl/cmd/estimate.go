// Package cmd - estimate command
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"printhub/pkg/client"
)

var (
	material string
	quality  string
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate <file>",
	Short: "Request a price estimate for a model file",
	Long: `Upload a model file (.stl, .obj, .3mf, .gcode) and print the price
estimate the service returns.

Examples:
  printctl estimate ./bracket.stl
  printctl estimate ./bracket.stl --material PETG --quality fine`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&material, "material", "m", "", "print material (default PLA)")
	estimateCmd.Flags().StringVarP(&quality, "quality", "q", "", "print quality (standard, fine)")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	api, auth, err := newSession()
	if err != nil {
		return err
	}
	if err := auth.Bootstrap(ctx); err != nil {
		logger.Warnw("bootstrap failed, continuing anonymously", "error", err)
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
		if msg, failed := session.Failure(); failed {
			return fmt.Errorf("estimate failed: %s", msg)
		}
		return err
	}

	dims := estimate.Dimensions()
	fmt.Printf("Estimate %s\n", estimate.ID)
	fmt.Printf("  Material:     %s\n", estimate.Material)
	fmt.Printf("  Weight:       %.1f g\n", estimate.EstimatedGrams)
	fmt.Printf("  Print time:   %.1f h\n", estimate.EstimatedHours)
	fmt.Printf("  Size:         %g x %g x %g mm\n", dims[0], dims[1], dims[2])
	fmt.Printf("  Triangles:    %d\n", estimate.TriangleCount)
	fmt.Printf("  Infill:       %d%%\n", estimate.RecommendedInfill)
	fmt.Printf("  Price:        $%.2f (%s confidence)\n", estimate.EstimatedPrice, estimate.Confidence)
	for _, w := range estimate.Warnings {
		fmt.Printf("  Warning:      %s\n", w)
	}
	return nil
}
