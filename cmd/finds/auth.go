package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth <token>",
	Short: "Store the write-capable GitHub token for this catalog",
	Long: `Store a personal access token locally, scoped to the configured
owner/repo. The token needs issues:write scope to create product issues
and contents:write to upload images. FINDS_TOKEN overrides the stored
token when set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.repo.SaveToken(context.Background(), a.cfg.Owner, a.cfg.Repo, args[0]); err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Token stored for %s/%s\n", green("✓"), a.cfg.Owner, a.cfg.Repo)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
}
