package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload an image into the repository and print its raw URL",
	Long: `Commit an image file under images/ in the configured repository and
print the raw-content URL, ready for an Image URL field. Requires a
token with contents:write scope.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		a, err := newApp(true)
		if err != nil {
			return err
		}
		defer a.Close()

		rawURL, err := a.svc.UploadImage(context.Background(), filepath.Base(args[0]), content)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Uploaded: %s\n", green("✓"), rawURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
