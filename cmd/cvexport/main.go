// Package main provides the entry point for the CV export service.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cvexport",
	Short: "CV Export HTTP API Server",
	Long:  "CV Export turns a structured CV record into audience-tailored PDF documents, with a REST API, a content-fit analyzer and a multi-tier result cache.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
