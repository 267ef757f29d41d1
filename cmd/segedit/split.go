package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/michalprusek/segedit/pkg/editor"
	"github.com/michalprusek/segedit/pkg/geometry"
	"github.com/michalprusek/segedit/pkg/segmentation"
)

var (
	splitPolygonID string
	splitFrom      string
	splitTo        string
	splitKeepBoth  bool
	splitOutput    string
)

var splitCmd = &cobra.Command{
	Use:   "split [file]",
	Short: "Cut a polygon along a line",
	Long: `Split cuts the given polygon along the line from --from to --to. The
line must cross the polygon boundary exactly twice. By default only the
larger resulting region is kept; --keep-both keeps both as separate
polygons.`,
	Args: cobra.ExactArgs(1),
	Run:  runSplit,
}

func init() {
	splitCmd.Flags().StringVar(&splitPolygonID, "polygon", "", "ID of the polygon to split (required)")
	splitCmd.Flags().StringVar(&splitFrom, "from", "", "Cut line start as x,y (required)")
	splitCmd.Flags().StringVar(&splitTo, "to", "", "Cut line end as x,y (required)")
	splitCmd.Flags().BoolVar(&splitKeepBoth, "keep-both", false, "Keep both regions instead of the larger one")
	splitCmd.Flags().StringVarP(&splitOutput, "output", "o", "", "Output file (default: overwrite input)")
	splitCmd.MarkFlagRequired("polygon")
	splitCmd.MarkFlagRequired("from")
	splitCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) {
	filename := args[0]

	from, err := parsePoint(splitFrom)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid --from: %v\n", err)
		os.Exit(1)
	}
	to, err := parsePoint(splitTo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid --to: %v\n", err)
		os.Exit(1)
	}

	result, err := segmentation.Load(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading document: %v\n", err)
		os.Exit(1)
	}

	engine := editor.NewEngine(result)

	var outcome editor.Outcome
	if splitKeepBoth {
		outcome = engine.SplitIntoTwoPolygons(splitPolygonID, from, to)
	} else {
		outcome = engine.SplitPolygon(splitPolygonID, from, to)
	}
	if !outcome.OK {
		fmt.Fprintf(os.Stderr, "Error: %s\n", outcome.Message)
		os.Exit(1)
	}

	output := splitOutput
	if output == "" {
		output = filename
	}
	if err := segmentation.Save(output, engine.Result()); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving document: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Split polygon %s, %d polygon(s) in document\n", splitPolygonID, len(engine.Result().Polygons))
	fmt.Printf("Written to %s\n", output)
}

// parsePoint parses "x,y" into a point
func parsePoint(s string) (geometry.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geometry.Point{}, fmt.Errorf("expected x,y got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("invalid x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("invalid y: %w", err)
	}
	return geometry.NewPoint(x, y), nil
}
