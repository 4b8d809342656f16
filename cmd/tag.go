package cmd

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

// tagCmd represents the tag command
var tagCmd = &cobra.Command{
	Use:     "tag <name>",
	Short:   "Show translations and pixpedia information for a tag",
	Args:    cobra.ExactArgs(1),
	PreRunE: initializeApp,
	RunE:    runTag,
}

func init() {
	rootCmd.AddCommand(tagCmd)
}

func runTag(cmd *cobra.Command, args []string) error {
	tag, err := client.GetTag(cmd.Context(), args[0], language)
	if err != nil {
		return err
	}

	fmt.Printf("Tag:  %s\n", tag.Name)
	if tag.Word != tag.Name {
		fmt.Printf("Word: %s\n", tag.Word)
	}

	if len(tag.Translations) > 0 {
		fmt.Println("\nTranslations:")
		for _, lang := range slices.Sorted(maps.Keys(tag.Translations)) {
			fmt.Printf("  %-8s %s\n", lang, tag.Translations[lang])
		}
	} else {
		fmt.Println("\nTranslations: none")
	}

	p := tag.Pixpedia
	if p.IsEmpty() {
		fmt.Println("\npixpedia: no entry")
		return nil
	}

	fmt.Println("\npixpedia:")
	printField("Reading", p.Yomigana)
	printField("Parent", p.Parent)
	printField("Children", strings.Join(p.Children, ", "))
	printField("Siblings", strings.Join(p.Siblings, ", "))
	printField("Image", p.Image)
	if p.Description != "" {
		fmt.Printf("\n%s\n", p.Description)
	}

	return nil
}

func printField(name, value string) {
	if value != "" {
		fmt.Printf("  %-9s %s\n", name+":", value)
	}
}
