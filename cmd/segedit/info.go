package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michalprusek/segedit/pkg/analysis"
	"github.com/michalprusek/segedit/pkg/segmentation"
)

var (
	infoTop     int
	infoMetrics bool
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a segmentation document",
	Long:  "Show polygon counts, areas, perimeters, and per-polygon statistics for a segmentation document.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	infoCmd.Flags().IntVar(&infoTop, "top", 5, "Number of largest polygons to list")
	infoCmd.Flags().BoolVar(&infoMetrics, "metrics", false, "Include per-polygon shape metrics")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	result, err := segmentation.Load(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading document: %v\n", err)
		os.Exit(1)
	}

	stats := analysis.AnalyzeResult(result)

	fmt.Println("Segmentation Document Information")
	fmt.Println("=================================")
	fmt.Printf("File: %s\n", filename)
	if stats.ImageSrc != "" {
		fmt.Printf("Image: %s (%d x %d px)\n", stats.ImageSrc, stats.ImageWidth, stats.ImageHeight)
	}
	fmt.Println()

	fmt.Println("Polygon Statistics:")
	fmt.Printf("  Polygons: %d\n", stats.PolygonCount)
	fmt.Printf("  External: %d\n", stats.ExternalCount)
	fmt.Printf("  Internal (holes): %d\n", stats.InternalCount)
	if stats.PolygonCount == 0 {
		return
	}
	fmt.Printf("  Avg points per polygon: %.1f\n\n", stats.AvgPoints)

	fmt.Println("Areas:")
	fmt.Printf("  Total: %s\n", analysis.FormatMeasurement(stats.TotalArea, "px²"))
	fmt.Printf("  Minimum: %s\n", analysis.FormatMeasurement(stats.MinArea, "px²"))
	fmt.Printf("  Maximum: %s\n", analysis.FormatMeasurement(stats.MaxArea, "px²"))
	fmt.Printf("  Average: %s\n\n", analysis.FormatMeasurement(stats.AvgArea, "px²"))

	fmt.Printf("Largest polygons:\n")
	for _, info := range analysis.FindLargestPolygons(stats, infoTop) {
		fmt.Printf("  %s  %s  %s  %d points  centroid %s\n",
			info.ID,
			info.Type,
			analysis.FormatMeasurement(info.Area, "px²"),
			info.PointCount,
			analysis.FormatPoint(info.Centroid))
		if infoMetrics {
			m := info.Metrics
			fmt.Printf("      circularity %.3f  compactness %.3f  convexity %.3f  solidity %.3f\n",
				m.Circularity, m.Compactness, m.Convexity, m.Solidity)
			fmt.Printf("      sphericity %.3f  extent %.3f  eq. diameter %s  feret %s x %s (%.2f)\n",
				m.Sphericity, m.Extent,
				analysis.FormatMeasurement(m.EquivalentDiameter, "px"),
				analysis.FormatMeasurement(m.FeretMax, "px"),
				analysis.FormatMeasurement(m.FeretMin, "px"),
				m.FeretAspectRatio)
		}
	}
}
