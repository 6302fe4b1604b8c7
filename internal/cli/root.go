package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootDir string
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docgen",
	Short: "Generate API reference documentation for TypeScript packages",
	Long: `docgen scans the exported declarations of TypeScript packages in a
monorepo, reads their JSDoc comments and renders a markdown API reference
for each package plus an overall index.

Packages come from docgen.yaml in the root directory, or are discovered
under packages/ when no config file exists.`,
	SilenceUsage: true,
}

// Execute runs the command line and exits 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", ".", "monorepo root directory")
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is <root>/docgen.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newLogger builds the logger shared by every component of one command.
// quiet keeps only errors; verbose enables debug output.
func newLogger(out io.Writer, verbose, quiet bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})

	switch {
	case quiet:
		logger.SetLevel(logrus.ErrorLevel)
	case verbose:
		logger.SetLevel(logrus.DebugLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	return logger
}
