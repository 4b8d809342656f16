package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/pixfetch/filter"
	"github.com/s0up4200/pixfetch/pixiv"
)

var pagesSize string

// pagesCmd represents the pages command
var pagesCmd = &cobra.Command{
	Use:   "pages <artwork-id>",
	Short: "List the pages of an artwork",
	Long: `List every page of an artwork with its dimensions and image URL.

Pages can be narrowed down with a filter expression, for example:
  pixfetch pages 12345678 --filter 'landscape() and Width >= 1920'`,
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runPages,
}

func init() {
	rootCmd.AddCommand(pagesCmd)

	addFilterFlags(pagesCmd)
	pagesCmd.Flags().StringVar(&pagesSize, "size", string(pixiv.SizeOriginal), "URL variant to show (thumb, small, regular, original)")
}

func runPages(cmd *cobra.Command, args []string) error {
	size, err := pixiv.ParseImageSize(pagesSize)
	if err != nil {
		return err
	}

	pageFilter, err := compilePageFilter()
	if err != nil {
		return err
	}

	set, err := client.GetArtworkImages(cmd.Context(), args[0], language)
	if err != nil {
		return err
	}

	selected, err := filter.Apply(pageFilter, set)
	if err != nil {
		return err
	}

	if len(selected) == 0 {
		fmt.Println("No pages matched.")
		return nil
	}

	pageText := "page"
	if set.Len() != 1 {
		pageText = "pages"
	}
	fmt.Printf("Artwork %s: %d %s, %d selected\n\n", set.ArtworkID(), set.Len(), pageText, len(selected))

	fmt.Println(strings.Repeat("━", 85))
	fmt.Printf("%-5s %-12s %s\n", "#", "SIZE", "URL")
	fmt.Println(strings.Repeat("━", 85))

	for _, s := range selected {
		fmt.Printf("%-5d %-12s %s\n", s.Index, fmt.Sprintf("%dx%d", s.Page.Width, s.Page.Height), s.Page.URL(size))
	}

	return nil
}
