package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/docgen/internal/config"
	"github.com/mvp-joe/docgen/internal/extractor"
	"github.com/mvp-joe/docgen/internal/generator"
	"github.com/mvp-joe/docgen/internal/validator"
)

var (
	generateOutput     string
	generatePackage    string
	generateNoValidate bool
	generateQuiet      bool
	generateDumpJSON   bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate documentation from source code",
	Long: `Generate extracts the exports of every configured package and writes
markdown pages to <output>/api/<package>/ plus <output>/api/index.md.

After generation the docs are validated unless --no-validate is given.

Examples:
  # Generate docs for every package
  docgen generate

  # Only packages whose name contains "core", no validation
  docgen generate -p core --no-validate

  # Write into a different output directory
  docgen generate -o site/docs
`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output directory (default from config, \"docs\")")
	generateCmd.Flags().StringVarP(&generatePackage, "package", "p", "", "only generate packages whose name contains this value")
	generateCmd.Flags().BoolVar(&generateNoValidate, "no-validate", false, "skip validation after generation")
	generateCmd.Flags().BoolVarP(&generateQuiet, "quiet", "q", false, "disable progress bars and non-error output")
	generateCmd.Flags().BoolVar(&generateDumpJSON, "dump-json", false, "also write the extracted model as docs.json per package")
}

// generateOptions holds the inputs of one generate run.
type generateOptions struct {
	Root       string
	ConfigFile string
	OutputDir  string // overrides output.dir when set
	Filter     string
	NoValidate bool
	DumpJSON   bool
}

// GenerateSummary reports what a generate run produced.
type GenerateSummary struct {
	Packages int
	Exports  int
	Pages    []string
	Duration time.Duration
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := newLogger(cmd.ErrOrStderr(), verbose, generateQuiet)
	progress := NewCLIProgressReporter(generateQuiet, cmd.OutOrStdout())

	_, err := executeGenerate(ctx, generateOptions{
		Root:       rootDir,
		ConfigFile: cfgFile,
		OutputDir:  generateOutput,
		Filter:     generatePackage,
		NoValidate: generateNoValidate,
		DumpJSON:   generateDumpJSON,
	}, log, progress)
	return err
}

// executeGenerate loads the configuration, generates every selected package
// and validates the result.
func executeGenerate(ctx context.Context, opts generateOptions, log *logrus.Logger, progress ProgressReporter) (*GenerateSummary, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory: %w", err)
	}

	cfg, err := config.NewLoader(root, opts.ConfigFile, log).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	outDir := cfg.ResolveOutputDir(root, opts.OutputDir)
	log.Infof("Generating documentation from %s", root)
	log.Infof("Output directory: %s", outDir)

	packages := cfg.FilterPackages(opts.Filter)
	if len(packages) == 0 {
		log.Warn("No packages found matching filter")
		return &GenerateSummary{}, nil
	}

	summary, err := generatePackages(ctx, generateRun{
		root:     root,
		outDir:   outDir,
		cfg:      cfg,
		packages: packages,
		dumpJSON: opts.DumpJSON,
		log:      log,
		progress: progress,
	})
	if err != nil {
		return summary, err
	}

	if opts.NoValidate {
		return summary, nil
	}

	return summary, validator.New(log).Check(validator.Options{
		DocsDir:       outDir,
		Root:          root,
		RequiredFiles: cfg.Validate.RequiredFiles,
	})
}

// generateRun is one pass over a set of packages. Watch mode reuses it.
type generateRun struct {
	root     string
	outDir   string
	cfg      *config.Config
	packages []config.PackageConfig
	dumpJSON bool
	log      *logrus.Logger
	progress ProgressReporter
}

// generatePackages extracts and writes each package in order, then the API
// index over every configured package. The first failing package aborts.
func generatePackages(ctx context.Context, run generateRun) (*GenerateSummary, error) {
	start := time.Now()
	if run.progress == nil {
		run.progress = NoOpProgressReporter{}
	}

	x := extractor.New(run.log)
	writer := generator.NewWriter(run.outDir, run.cfg.Output, run.log)
	summary := &GenerateSummary{}

	run.log.Infof("Processing %d packages", len(run.packages))
	run.progress.OnGenerateStart(len(run.packages))

	for _, pkg := range run.packages {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		run.log.Infof("Processing package: %s", pkg.Name)
		docs, err := x.ExtractPackage(ctx, pkg.ResolvePath(run.root), pkg)
		if err != nil {
			return summary, fmt.Errorf("package %s: %w", pkg.Name, err)
		}

		slug := config.Slug(pkg.Name, run.cfg.Scope)
		pages, err := writer.WritePackageDocs(slug, docs)
		if err != nil {
			return summary, fmt.Errorf("package %s: %w", pkg.Name, err)
		}
		if run.dumpJSON {
			if _, err := writer.WriteJSON(slug, docs); err != nil {
				return summary, fmt.Errorf("package %s: %w", pkg.Name, err)
			}
		} else if err := writer.RemoveJSON(slug); err != nil {
			return summary, fmt.Errorf("package %s: %w", pkg.Name, err)
		}

		summary.Packages++
		summary.Exports += len(docs.Package.Exports)
		summary.Pages = append(summary.Pages, pages...)
		run.progress.OnPackageComplete(pkg.Name, len(docs.Package.Exports))
	}

	indexPath, err := writer.WriteAPIIndex(generator.APIIndex{
		Title:       run.cfg.Title,
		Description: run.cfg.Description,
		Scope:       run.cfg.Scope,
		Packages:    run.cfg.Packages,
	})
	if err != nil {
		return summary, fmt.Errorf("failed to write API index: %w", err)
	}
	if indexPath != "" {
		summary.Pages = append(summary.Pages, indexPath)
	}

	summary.Duration = time.Since(start)
	run.progress.OnComplete(summary)
	run.log.Info("Documentation generation complete")
	return summary, nil
}
