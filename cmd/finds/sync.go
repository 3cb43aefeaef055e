package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"finds/internal/store"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch product issues and refresh the local cache",
	Long: `Fetch product issues from the configured repository, parse them into
products and refresh the local cache.

Examples:
  # Serve from cache when it is still fresh
  finds sync

  # Bypass the cache
  finds sync --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		items, status := a.st.Load(context.Background(), force)

		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		switch status.Source {
		case store.SourceFallback:
			fmt.Printf("%s %s\n", yellow("⚠"), status.Message)
		default:
			fmt.Printf("%s %s (%s)\n", green("✓"), status.Message, status.Source)
		}

		for _, p := range items {
			fmt.Printf("  %-6s %-30s %s\n", p.ID, truncate(p.Title, 30), p.Category)
		}
		return nil
	},
}

func init() {
	syncCmd.Flags().Bool("force", false, "Bypass the cache freshness window")
	rootCmd.AddCommand(syncCmd)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
