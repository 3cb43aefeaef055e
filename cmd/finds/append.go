package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"finds/internal/github"
	"finds/internal/issueform"
	"finds/internal/store"
)

var appendCmd = &cobra.Command{
	Use:   "append",
	Short: "Append one issue to the static products document (CI batch mode)",
	Long: `Parse a single product issue from the ISSUE_TITLE and ISSUE_BODY
environment variables and append it to the products JSON document.

Meant to run from a repository workflow on issue creation. Appending is
idempotent by pin URL: a duplicate pin URL changes nothing and exits
successfully.

Examples:
  ISSUE_TITLE="Add product: Desk Lamp" ISSUE_BODY="$(cat body.md)" \
    finds append --file data/products.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		issue := github.Issue{
			Title: os.Getenv("ISSUE_TITLE"),
			Body:  os.Getenv("ISSUE_BODY"),
		}

		p, ok := issueform.MapIssue(issue, "product")
		if !ok || p.PinURL == "" {
			return fmt.Errorf("issue body has no usable Pinterest pin URL")
		}
		// The document assigns its own sequential id and timestamp.
		p.ID = ""
		p.CreatedAt = ""

		applied, err := store.AppendToDocument(file, p)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		if !applied {
			fmt.Printf("%s Product already exists for this pin URL. No change.\n", green("✓"))
			return nil
		}
		fmt.Printf("%s Added %q to %s\n", green("✓"), p.Title, file)
		return nil
	},
}

func init() {
	appendCmd.Flags().String("file", "data/products.json", "Path of the products JSON document")
	rootCmd.AddCommand(appendCmd)
}
