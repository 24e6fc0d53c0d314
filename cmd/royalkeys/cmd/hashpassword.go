package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/royalkeys/royalkeys/backoffice"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Hash a local admin password for --admin-password-hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		encoded, err := backoffice.HashAdminPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Println(encoded)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}
