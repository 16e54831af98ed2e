package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Manage the preset tag vocabulary",
	Long: `List or extend the preset tags offered when posting.

The vocabulary lives in ~/.kb/tags.yaml and can also be edited by hand.
KB_PRESET_TAGS replaces it for a single run.`,
	RunE: runTagsList,
}

var tagsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List preset tags",
	RunE:  runTagsList,
}

var tagsAddCmd = &cobra.Command{
	Use:   "add <tag>...",
	Short: "Add tags to the vocabulary",
	Long: `Add one or more tags to the preset vocabulary. Tags may be given as
separate arguments, as #hashtags, or as a comma list.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTagsAdd,
}

func init() {
	tagsCmd.AddCommand(tagsListCmd)
	tagsCmd.AddCommand(tagsAddCmd)
	rootCmd.AddCommand(tagsCmd)
}

func runTagsList(cmd *cobra.Command, _ []string) error {
	if tagService == nil {
		return errors.New("tag service not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	presets, err := tagService.Presets(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}
	if len(presets) == 0 {
		cmd.Println("No preset tags. Add some with 'kb tags add'.")
		return nil
	}

	cmd.Printf("Preset tags (%d):\n", len(presets))
	for _, p := range presets {
		cmd.Printf("  %s\n", p)
	}
	if !tagService.AllowNew() {
		cmd.Println("\nNew tags from posts are not added automatically (tags.allow_new = false).")
	}
	return nil
}

func runTagsAdd(cmd *cobra.Command, args []string) error {
	if tagService == nil {
		return errors.New("tag service not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var tags []string
	for _, arg := range args {
		tags = append(tags, tagService.ParseUserInput(arg)...)
	}
	if len(tags) == 0 {
		return errors.New("no tags given")
	}

	for _, tag := range tags {
		added, err := tagService.AddTag(ctx, tag)
		if err != nil {
			return fmt.Errorf("failed to add %q: %w", tag, err)
		}
		if added {
			cmd.Printf("Added: %s\n", tag)
		} else {
			cmd.Printf("Skipped: %s\n", tag)
		}
	}
	return nil
}
