package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/docgen/internal/extractor"
	"github.com/mvp-joe/docgen/internal/generator"
)

var (
	extractSource string
	extractOutput string
)

// extractTypesCmd represents the extract-types command
var extractTypesCmd = &cobra.Command{
	Use:   "extract-types",
	Short: "Render the exports of one TypeScript file to markdown",
	Long: `Extract-types scans a single TypeScript file and writes a markdown
page grouping its exports by kind.

Example:
  docgen extract-types -s packages/core/src/types.ts -o docs/types.md
`,
	RunE: runExtractTypes,
}

func init() {
	rootCmd.AddCommand(extractTypesCmd)
	extractTypesCmd.Flags().StringVarP(&extractSource, "source", "s", "", "source TypeScript file")
	extractTypesCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output markdown file")
	extractTypesCmd.MarkFlagRequired("source")
	extractTypesCmd.MarkFlagRequired("output")
}

func runExtractTypes(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd.ErrOrStderr(), verbose, false)
	return executeExtractTypes(cmd.Context(), extractSource, extractOutput, log)
}

func executeExtractTypes(ctx context.Context, source, output string, log *logrus.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	exports, err := extractor.New(log).ExtractFile(ctx, source)
	if err != nil {
		return fmt.Errorf("failed to extract %s: %w", source, err)
	}

	if err := generator.WriteFileTypes(output, source, exports); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	log.Infof("Extracted %d exports to %s", len(exports), output)
	return nil
}
