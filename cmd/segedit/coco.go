package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/michalprusek/segedit/pkg/segmentation"
)

var cocoOutput string

var cocoCmd = &cobra.Command{
	Use:   "coco [file]",
	Short: "Export a segmentation document to COCO annotation format",
	Long: `Export external polygons as COCO instance annotations. Internal
polygons (holes) are skipped because COCO polygon segmentation cannot
express them.`,
	Args: cobra.ExactArgs(1),
	Run:  runCoco,
}

func init() {
	cocoCmd.Flags().StringVarP(&cocoOutput, "output", "o", "", "Output file (default: input with .coco.json suffix)")
	rootCmd.AddCommand(cocoCmd)
}

func runCoco(cmd *cobra.Command, args []string) {
	filename := args[0]

	result, err := segmentation.Load(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading document: %v\n", err)
		os.Exit(1)
	}

	output := cocoOutput
	if output == "" {
		output = strings.TrimSuffix(filename, ".json") + ".coco.json"
	}

	if err := segmentation.SaveCOCO(output, result); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing COCO file: %v\n", err)
		os.Exit(1)
	}

	doc := segmentation.ToCOCO(result)
	fmt.Printf("Exported %d annotation(s) to %s\n", len(doc.Annotations), output)
}
