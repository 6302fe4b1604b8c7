package cli

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/docgen/internal/config"
	"github.com/mvp-joe/docgen/internal/validator"
)

var validateStrict bool

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the generated documentation",
	Long: `Validate checks every markdown page under the output directory:
empty pages, missing H1 titles, TODO/FIXME markers, unbalanced code fences,
required pages, broken internal links and mkdocs.yml in the root.

Errors always fail the run. With --strict, warnings fail it too.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "fail on warnings")
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd.ErrOrStderr(), verbose, false)
	return executeValidate(rootDir, cfgFile, validateStrict, log)
}

func executeValidate(root, configFile string, strict bool, log *logrus.Logger) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve root directory: %w", err)
	}

	cfg, err := config.NewLoader(absRoot, configFile, log).Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	return validator.New(log).Check(validator.Options{
		DocsDir:       cfg.ResolveOutputDir(absRoot, ""),
		Root:          absRoot,
		RequiredFiles: cfg.Validate.RequiredFiles,
		Strict:        strict,
	})
}
