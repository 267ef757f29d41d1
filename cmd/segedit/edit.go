package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/michalprusek/segedit/internal/app"
)

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Open the interactive polygon editor",
	Long: `Edit opens the segmentation document in an interactive editor with
vertex dragging, polygon drawing, path replacement, and slicing. The
document is reloaded automatically when the inference pipeline rewrites
it on disk.`,
	Args: cobra.ExactArgs(1),
	Run:  runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	if err := app.Run(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
