package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"finds/internal/issueform"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a product issue in the configured repository",
	Long: `Create a product issue from flags. Requires a token with issues:write
scope (FINDS_TOKEN, config.yaml, or stored via "finds auth").

Examples:
  finds add --pin https://pin.it/abc --title "Desk Lamp" --category Lighting --tags led,dimmable`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pin, _ := cmd.Flags().GetString("pin")
		dest, _ := cmd.Flags().GetString("dest")
		image, _ := cmd.Flags().GetString("image")
		title, _ := cmd.Flags().GetString("title")
		category, _ := cmd.Flags().GetString("category")
		tags, _ := cmd.Flags().GetString("tags")
		notes, _ := cmd.Flags().GetString("notes")

		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.svc.Submit(context.Background(), issueform.Fields{
			PinURL:         pin,
			DestinationURL: dest,
			ImageURL:       image,
			Title:          title,
			Category:       category,
			Tags:           issueform.ParseTags(tags),
			Notes:          notes,
		})
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Created issue #%s: %s [%s]\n", green("✓"), p.ID, p.Title, p.Category)
		return nil
	},
}

func init() {
	addCmd.Flags().String("pin", "", "Pinterest pin URL")
	addCmd.Flags().String("dest", "", "Destination / affiliate URL")
	addCmd.Flags().String("image", "", "Image URL")
	addCmd.Flags().String("title", "", "Product title")
	addCmd.Flags().String("category", "", "Category")
	addCmd.Flags().String("tags", "", "Comma-separated tags")
	addCmd.Flags().String("notes", "", "Short notes")
	rootCmd.AddCommand(addCmd)
}
