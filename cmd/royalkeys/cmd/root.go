package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is the release version stamped at build time.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "royalkeys",
	Short: "RoyalKeys is a digital license key storefront",
	Long: `A storefront service for selling digital license keys: product catalog,
simulated checkout, a persisted vault of purchased keys, an assistant chat
widget, and an admin back-office.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
