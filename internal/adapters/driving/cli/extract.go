package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

var extractJSON bool

var extractCmd = &cobra.Command{
	Use:   "extract [url | path | text...]",
	Short: "Extract content without summarising or publishing",
	Long: `Run the extractor chosen by the classifier and print the resulting
record. No model is called and nothing is published.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "output as JSON (attachment bytes omitted)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	record, err := pipelineService.Extract(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	if extractJSON {
		data, err := json.MarshalIndent(withoutAttachmentData(record), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	cmd.Printf("Title: %s\n", record.Title)
	cmd.Printf("Kind: %s\n", record.Kind())
	cmd.Printf("Source: %s\n", record.Source)
	if record.PublishDate != "" {
		cmd.Printf("Date: %s\n", record.PublishDate)
	}
	if a := record.Attachment; a != nil {
		cmd.Printf("Attachment: %s (%s, %d bytes)\n", a.Name, a.MIMEType, a.Size)
	}
	cmd.Println()
	cmd.Println(record.Body)
	return nil
}

// withoutAttachmentData returns a copy of record whose attachment keeps
// its metadata but drops the bytes.
func withoutAttachmentData(record *domain.ContentRecord) *domain.ContentRecord {
	if record.Attachment == nil {
		return record
	}
	out := *record
	out.Attachment = &domain.Attachment{
		Name:     record.Attachment.Name,
		MIMEType: record.Attachment.MIMEType,
		Size:     record.Attachment.Size,
	}
	return &out
}
