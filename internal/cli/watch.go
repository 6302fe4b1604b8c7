package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mvp-joe/docgen/internal/config"
	"github.com/mvp-joe/docgen/internal/manifest"
	"github.com/mvp-joe/docgen/internal/watcher"
)

var watchOutput string

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch package sources and regenerate docs on change",
	Long: `Watch generates documentation once, then watches every package
directory. When TypeScript sources, package.json, README.md or CHANGELOG.md
change, only the affected packages and the API index are regenerated.

Press Ctrl+C to stop.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "output directory (default from config, \"docs\")")
}

// watchedFileNames trigger regeneration in addition to TypeScript sources.
var watchedFileNames = []string{manifest.FileName, "README.md", "CHANGELOG.md"}

// watchOptions holds the inputs of a watch session.
type watchOptions struct {
	Root       string
	ConfigFile string
	OutputDir  string
	Ready      func() // called once the watcher is running; used by tests
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := newLogger(cmd.ErrOrStderr(), verbose, false)
	return executeWatch(ctx, watchOptions{
		Root:       rootDir,
		ConfigFile: cfgFile,
		OutputDir:  watchOutput,
	}, log)
}

// executeWatch runs until ctx is cancelled. Generation failures are logged
// and do not stop the session.
func executeWatch(ctx context.Context, opts watchOptions, log *logrus.Logger) error {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve root directory: %w", err)
	}

	cfg, err := config.NewLoader(root, opts.ConfigFile, log).Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	outDir := cfg.ResolveOutputDir(root, opts.OutputDir)

	log.Info("Starting watch mode...")
	log.Infof("Watching for changes in: %s", root)
	log.Infof("Output directory: %s", outDir)

	run := generateRun{
		root:     root,
		outDir:   outDir,
		cfg:      cfg,
		packages: cfg.Packages,
		log:      log,
	}
	if _, err := generatePackages(ctx, run); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		log.Warnf("Initial generation failed: %v", err)
	}

	var dirs []string
	for _, pkg := range cfg.Packages {
		dir := pkg.ResolvePath(root)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return errors.New("no package directories to watch")
	}

	fw, err := watcher.NewFileWatcher(watcher.Options{
		Dirs:       dirs,
		Extensions: []string{".ts", ".tsx"},
		FileNames:  watchedFileNames,
		IgnoreDirs: []string{outDir},
	}, log)
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer fw.Stop()

	var (
		pendingMu sync.Mutex
		pending   []string
	)
	changed := make(chan struct{}, 1)

	err = fw.Start(ctx, func(files []string) {
		pendingMu.Lock()
		pending = append(pending, files...)
		pendingMu.Unlock()
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	log.Info("Press Ctrl+C to stop")
	if opts.Ready != nil {
		opts.Ready()
	}

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping watch mode")
			return nil

		case <-changed:
			pendingMu.Lock()
			files := pending
			pending = nil
			pendingMu.Unlock()

			affected := packagesForFiles(root, cfg.Packages, files)
			if len(affected) == 0 {
				continue
			}

			log.Infof("%d files changed, regenerating %d packages", len(files), len(affected))

			fw.Pause()
			run.packages = affected
			if _, err := generatePackages(ctx, run); err != nil && ctx.Err() == nil {
				log.Warnf("Regeneration failed: %v", err)
			}
			fw.Resume()
		}
	}
}

// packagesForFiles returns the packages, in config order, whose directory
// contains at least one of files.
func packagesForFiles(root string, packages []config.PackageConfig, files []string) []config.PackageConfig {
	var affected []config.PackageConfig
	for _, pkg := range packages {
		dir := pkg.ResolvePath(root)
		for _, file := range files {
			if isWithin(dir, file) {
				affected = append(affected, pkg)
				break
			}
		}
	}
	return affected
}

func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
