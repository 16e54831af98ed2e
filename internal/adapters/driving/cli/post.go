package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/logger"
)

// cliSessionPrefix marks pending selections owned by a 'kb post' run.
const cliSessionPrefix = "cli:"

var (
	postSplit  bool
	postYes    bool
	postTags   string
	postDryRun bool
)

// stdin is the input read when 'kb post' gets no arguments.
var stdin io.Reader = os.Stdin

// isInteractive reports whether the tag picker can take over the terminal.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// runPicker opens the tag picker for one session.
var runPicker = func(ctx context.Context, sessionID string, publishes bool) (tui.Outcome, error) {
	ports := &tui.Ports{
		Pipeline:  pipelineService,
		Selection: selectionService,
		Tags:      tagService,
		Publish:   publishService,
	}
	app, err := tui.NewPickerApp(ports, sessionID, publishes)
	if err != nil {
		return tui.Outcome{}, err
	}
	app.WithContext(ctx)
	if err := app.Run(); err != nil {
		return tui.Outcome{}, fmt.Errorf("tag picker: %w", err)
	}
	return app.Outcome(), nil
}

var postCmd = &cobra.Command{
	Use:   "post [url | path | text...]",
	Short: "Summarise, tag and publish a link, file or note",
	Long: `Classify the input, extract its content, write a bilingual summary,
suggest tags and publish the post to the configured Telegram channel.

With no arguments the input is read from stdin. In a terminal a tag
picker opens before publishing; use --yes to accept the suggestions.

Examples:
  kb post https://arxiv.org/abs/2401.00001
  kb post ~/Downloads/paper.pdf --tags "论文, RL"
  kb post "two reads: https://a.example https://b.example" --split
  pbpaste | kb post --yes --dry-run`,
	RunE: runPost,
}

func init() {
	postCmd.Flags().BoolVar(&postSplit, "split", false, "publish one post per URL found in the input")
	postCmd.Flags().BoolVarP(&postYes, "yes", "y", false, "accept suggested tags without prompting")
	postCmd.Flags().StringVarP(&postTags, "tags", "t", "", "extra tags, as #a #b or a comma list")
	postCmd.Flags().BoolVar(&postDryRun, "dry-run", false, "print the post instead of publishing")
	rootCmd.AddCommand(postCmd)
}

func runPost(cmd *cobra.Command, args []string) error {
	if pipelineService == nil || selectionService == nil || publishService == nil {
		return errors.New("post services not configured")
	}

	raw, fromStdin, err := readInput(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if !postDryRun && !publishService.Available() {
		return &domain.PublishError{Err: fmt.Errorf("%w: run 'kb settings telegram' first", domain.ErrPublisherUnavailable)}
	}

	logger.Section("Extract")
	drafts, err := prepareDrafts(ctx, raw)
	if err != nil {
		return err
	}

	interactive := !postYes && !fromStdin && isInteractive()
	var failed []error
	for i, draft := range drafts {
		if len(drafts) > 1 {
			cmd.Printf("[%d/%d] ", i+1, len(drafts))
		}
		if err := postDraft(ctx, cmd, draft, interactive); err != nil {
			if len(drafts) == 1 {
				return err
			}
			cmd.PrintErrf("Error: %v\n", err)
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d posts failed: %w", len(failed), len(drafts), errors.Join(failed...))
	}
	return nil
}

// readInput joins args, or reads stdin when there are none.
func readInput(args []string) (raw string, fromStdin bool, err error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), false, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", true, fmt.Errorf("read stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", true, fmt.Errorf("%w: nothing to post", domain.ErrInvalidInput)
	}
	return string(data), true, nil
}

func prepareDrafts(ctx context.Context, raw string) ([]*domain.Draft, error) {
	if postSplit {
		return pipelineService.PrepareEach(ctx, raw)
	}
	draft, err := pipelineService.Prepare(ctx, raw)
	if err != nil {
		return nil, err
	}
	return []*domain.Draft{draft}, nil
}

// postDraft starts a selection for draft, lets the user pick tags and
// publishes or previews the result.
func postDraft(ctx context.Context, cmd *cobra.Command, draft *domain.Draft, interactive bool) error {
	sessionID := cliSessionPrefix + uuid.NewString()
	sel, err := selectionService.Start(ctx, sessionID, draft)
	if err != nil {
		return err
	}
	printDraft(cmd, draft)

	if postTags != "" {
		if sel, err = selectionService.AddTags(ctx, sessionID, postTags); err != nil {
			return err
		}
	}

	if interactive {
		logger.Section("Tags")
		outcome, err := runPicker(ctx, sessionID, !postDryRun)
		if err != nil {
			cancelQuietly(ctx, sessionID)
			return err
		}
		switch {
		case len(outcome.Published) > 0:
			cmd.Printf("Published: %s\n", outcome.Published[0])
			return nil
		case outcome.Chosen != nil:
			sel = outcome.Chosen
		default:
			cmd.Println("Discarded.")
			cancelQuietly(ctx, sessionID)
			return nil
		}
	}

	if postDryRun {
		record := *sel.Record
		record.Tags = domain.NewTagSet(sel.Selected.Slice()...)
		cmd.Println()
		cmd.Println(publishService.Preview(&record))
		cancelQuietly(ctx, sessionID)
		return nil
	}

	logger.Section("Publish")
	url, err := selectionService.Confirm(ctx, sessionID)
	if err != nil {
		return err
	}
	cmd.Printf("Published: %s\n", url)
	return nil
}

func printDraft(cmd *cobra.Command, draft *domain.Draft) {
	r := draft.Record
	cmd.Printf("%s (%s)\n", r.Title, r.Kind())
	if r.Summary != "" {
		cmd.Printf("  %s\n", r.Summary)
	}
	if draft.SummaryFailed {
		cmd.Println("  (summary unavailable, tags suggested from the title)")
	}
	if len(draft.Suggested) > 0 {
		cmd.Printf("  Suggested: %s\n", strings.Join(draft.Suggested, ", "))
	}
	if len(draft.Extra) > 0 {
		cmd.Printf("  Extra: +%s\n", strings.Join(draft.Extra, " +"))
	}
}

// cancelQuietly drops a selection that will never be confirmed.
func cancelQuietly(ctx context.Context, sessionID string) {
	if err := selectionService.Cancel(ctx, sessionID); err != nil {
		logger.Warn("Failed to discard selection %s: %v", sessionID, err)
	}
}
