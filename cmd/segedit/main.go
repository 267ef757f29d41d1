package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michalprusek/segedit/version"
)

var rootCmd = &cobra.Command{
	Use:   "segedit",
	Short: "A CLI tool for inspecting and editing cell segmentation polygons",
	Long: `segedit is a command-line tool for working with polygon-based cell
segmentation documents produced by microscopy inference pipelines.
It can inspect, validate, simplify, split, and export segmentations,
and launch an interactive polygon editor.`,
	Version: version.GetFullVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
