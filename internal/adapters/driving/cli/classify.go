package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

var classifyJSON bool

var classifyCmd = &cobra.Command{
	Use:   "classify [input...]",
	Short: "Show how an input would be routed",
	Long: `Classify the input as a local file, a link, text with embedded links,
or plain text, without fetching anything.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(classifyCmd)
}

// classificationJSON is the --json output of 'kb classify'.
type classificationJSON struct {
	Kind     string   `json:"kind"`
	Path     string   `json:"path,omitempty"`
	FileKind string   `json:"file_kind,omitempty"`
	Ext      string   `json:"ext,omitempty"`
	URL      string   `json:"url,omitempty"`
	URLs     []string `json:"urls,omitempty"`
	Extra    string   `json:"extra,omitempty"`
}

func newClassificationJSON(c domain.Classification) classificationJSON {
	return classificationJSON{
		Kind:     c.Kind.String(),
		Path:     c.Path,
		FileKind: c.FileKind.String(),
		Ext:      c.Ext,
		URL:      c.URL,
		URLs:     c.URLs,
		Extra:    c.Extra,
	}
}

func runClassify(cmd *cobra.Command, args []string) error {
	if classifyService == nil {
		return errors.New("classify service not configured")
	}

	c := classifyService.Classify(strings.Join(args, " "))

	if classifyJSON {
		data, err := json.MarshalIndent(newClassificationJSON(c), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal classification: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	cmd.Printf("Kind: %s\n", c.Kind)
	switch c.Kind {
	case domain.InputFile:
		cmd.Printf("Path: %s\n", c.Path)
		cmd.Printf("File kind: %s\n", c.FileKind)
	case domain.InputUnsupportedFile:
		cmd.Printf("Path: %s\n", c.Path)
		cmd.Printf("Extension: %s (supported: %s)\n", c.Ext, strings.Join(domain.SupportedExtensions(), ", "))
	case domain.InputLink:
		cmd.Printf("URL: %s\n", c.URL)
	case domain.InputEmbeddedLink:
		cmd.Printf("URL: %s\n", c.URL)
		if len(c.URLs) > 1 {
			cmd.Printf("All URLs: %s\n", strings.Join(c.URLs, " "))
		}
		if c.Extra != "" {
			cmd.Printf("Extra: %s\n", c.Extra)
		}
	case domain.InputText:
	}
	return nil
}
