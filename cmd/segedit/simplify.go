package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michalprusek/segedit/pkg/editor"
	"github.com/michalprusek/segedit/pkg/geometry"
	"github.com/michalprusek/segedit/pkg/segmentation"
)

var (
	simplifyTolerance     float64
	simplifyMinArea       float64
	simplifyMinConfidence float64
	simplifyOutput        string
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify [file]",
	Short: "Reduce polygon point counts and drop noise polygons",
	Long: `Simplify every polygon ring with the Ramer-Douglas-Peucker algorithm,
remove duplicate points, and optionally drop polygons below an area or
confidence threshold. Writes back in place unless -o is given.`,
	Args: cobra.ExactArgs(1),
	Run:  runSimplify,
}

func init() {
	simplifyCmd.Flags().Float64VarP(&simplifyTolerance, "tolerance", "t", editor.DefaultSimplifyTolerance, "Simplification tolerance in pixels")
	simplifyCmd.Flags().Float64Var(&simplifyMinArea, "min-area", 0, "Drop polygons below this area (0 disables)")
	simplifyCmd.Flags().Float64Var(&simplifyMinConfidence, "min-confidence", 0, "Drop polygons below this confidence (0 disables)")
	simplifyCmd.Flags().StringVarP(&simplifyOutput, "output", "o", "", "Output file (default: overwrite input)")
	rootCmd.AddCommand(simplifyCmd)
}

func runSimplify(cmd *cobra.Command, args []string) {
	filename := args[0]

	result, err := segmentation.Load(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading document: %v\n", err)
		os.Exit(1)
	}

	before := len(result.Polygons)
	result.Polygons = segmentation.CleanPolygons(result.Polygons)
	result.Polygons = segmentation.FilterPolygons(result.Polygons, simplifyMinArea, simplifyMinConfidence)

	pointsBefore := 0
	pointsAfter := 0
	kept := result.Polygons[:0]
	for _, poly := range result.Polygons {
		pointsBefore += len(poly.Points)
		simplified := geometry.SimplifyPath(poly.Points, simplifyTolerance)
		if len(simplified) < 3 || geometry.IsSelfIntersecting(simplified) {
			// Simplification degenerated this ring; keep the original
			pointsAfter += len(poly.Points)
			kept = append(kept, poly)
			continue
		}
		poly.Points = simplified
		poly.Area = 0
		pointsAfter += len(simplified)
		kept = append(kept, poly)
	}
	result.Polygons = kept

	output := simplifyOutput
	if output == "" {
		output = filename
	}
	if err := segmentation.Save(output, result); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving document: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Polygons: %d -> %d\n", before, len(result.Polygons))
	fmt.Printf("Points: %d -> %d\n", pointsBefore, pointsAfter)
	fmt.Printf("Written to %s\n", output)
}
