package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "labreport",
		Short:         "Compose, render and store clinical lab reports",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(catalogCmd())
	rootCmd.AddCommand(formCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(viewCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
