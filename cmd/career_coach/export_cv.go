package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-coach/internal/config"
	"github.com/jonathan/career-coach/internal/render"
	"github.com/jonathan/career-coach/internal/store"
	"github.com/jonathan/career-coach/internal/types"
)

var exportCVOutput string

var exportCVCmd = &cobra.Command{
	Use:   "export-cv",
	Short: "Export the most recently generated CV as markdown",
	Long:  `Read the newest generated CV from the history log and write it to a markdown file.`,
	RunE:  runExportCV,
}

func init() {
	exportCVCmd.Flags().StringVarP(&exportCVOutput, "output", "o", "cv.md", "Output file path")
	rootCmd.AddCommand(exportCVCmd)
}

func runExportCV(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	medium, err := store.NewFileMedium(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("failed to open data dir: %w", err)
	}
	st := store.New(medium, nil)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	for _, item := range st.History(ctx) {
		if item.Type != types.HistoryGeneratedCV || item.GeneratedCV == nil {
			continue
		}
		if err := render.WriteCVFile(item.GeneratedCV, exportCVOutput); err != nil {
			return err
		}
		fmt.Printf("Exported CV for %q to %s\n", item.CareerGoal, exportCVOutput)
		return nil
	}
	return fmt.Errorf("no generated CV found in history")
}
