package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michalprusek/segedit/pkg/geometry"
	"github.com/michalprusek/segedit/pkg/segmentation"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a segmentation document for geometry problems",
	Long: `Validate parses the document and reports polygons that are degenerate,
self-intersecting, or out of the image bounds. Exits non-zero when any
problem is found.`,
	Args: cobra.ExactArgs(1),
	Run:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) {
	filename := args[0]

	result, err := segmentation.Load(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading document: %v\n", err)
		os.Exit(1)
	}

	problems := 0
	report := func(id, format string, a ...any) {
		fmt.Printf("  %s: %s\n", id, fmt.Sprintf(format, a...))
		problems++
	}

	fmt.Printf("Validating %s (%d polygons)\n", filename, len(result.Polygons))

	for _, poly := range result.Polygons {
		if len(poly.Points) < 3 {
			report(poly.ID, "only %d point(s)", len(poly.Points))
			continue
		}
		if geometry.IsSelfIntersecting(poly.Points) {
			report(poly.ID, "ring is self-intersecting")
		}
		if geometry.Area(poly.Points) == 0 {
			report(poly.ID, "zero area")
		}
		if result.ImageWidth > 0 && result.ImageHeight > 0 {
			bounds := geometry.BoundsOf(poly.Points)
			if bounds.Min.X < 0 || bounds.Min.Y < 0 ||
				bounds.Max.X > float64(result.ImageWidth) || bounds.Max.Y > float64(result.ImageHeight) {
				report(poly.ID, "extends outside the %d x %d image", result.ImageWidth, result.ImageHeight)
			}
		}
	}

	if problems == 0 {
		fmt.Println("OK")
		return
	}

	fmt.Printf("%d problem(s) found\n", problems)
	os.Exit(1)
}
