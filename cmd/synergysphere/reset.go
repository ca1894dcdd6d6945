package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove every stored collection and the saved login",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.store.Clear(); err != nil {
			return fmt.Errorf("failed to clear store: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Store cleared.")
		return nil
	},
}
