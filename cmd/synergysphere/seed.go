package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"synergysphere/internal/seed"
)

var seedForce bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write the demo data into any empty collection",
	Long: `Write the demo users, projects and tasks into each collection that is
not stored yet. Existing collections are left alone unless --force is given,
which clears the store first.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedForce, "force", false, "Clear the store before seeding")
}

func runSeed(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	if seedForce {
		if err := a.store.Clear(); err != nil {
			return fmt.Errorf("failed to clear store: %w", err)
		}
	}

	res, err := seed.Initialize(a.repo)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !res.Any() {
		fmt.Fprintln(out, "Nothing to seed: every collection is already stored.")
		return nil
	}
	for _, c := range []struct {
		name    string
		written bool
	}{
		{"users", res.Users},
		{"projects", res.Projects},
		{"tasks", res.Tasks},
		{"notifications", res.Notifications},
	} {
		if c.written {
			fmt.Fprintf(out, "Seeded %s\n", c.name)
		}
	}
	return nil
}
