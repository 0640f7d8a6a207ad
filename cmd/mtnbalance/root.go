package main

import (
	"fmt"
	"os"

	"github.com/Medy04/MTN-data-scrapping/api/handler"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mtnbalance",
	Short: "MTN Côte d'Ivoire data balance lookup",
	Long: "mtnbalance reads a subscriber's remaining mobile data from the MTN CI\n" +
		"self-service portal by driving a headless browser through its lookup form.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.Version = handler.Version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
