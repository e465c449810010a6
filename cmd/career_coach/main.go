// Package main provides the entry point for the Career Coach HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "career_coach",
	Short: "Career Coach HTTP API Server",
	Long:  "Career Coach runs AI-assisted skill-gap analysis, CV generation, and recruiter matching over a persistent talent pool via REST API.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
