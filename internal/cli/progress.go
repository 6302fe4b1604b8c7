package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ProgressReporter receives generation progress events.
type ProgressReporter interface {
	OnGenerateStart(totalPackages int)
	OnPackageComplete(name string, exports int)
	OnComplete(summary *GenerateSummary)
}

// NoOpProgressReporter discards every event.
type NoOpProgressReporter struct{}

func (NoOpProgressReporter) OnGenerateStart(int) {}

func (NoOpProgressReporter) OnPackageComplete(string, int) {}

func (NoOpProgressReporter) OnComplete(*GenerateSummary) {}

// CLIProgressReporter implements progress reporting with a progress bar.
type CLIProgressReporter struct {
	quiet      bool
	out        io.Writer
	packageBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a reporter writing to out. A quiet reporter
// prints nothing.
func NewCLIProgressReporter(quiet bool, out io.Writer) *CLIProgressReporter {
	return &CLIProgressReporter{
		quiet: quiet,
		out:   out,
	}
}

func (c *CLIProgressReporter) OnGenerateStart(totalPackages int) {
	if c.quiet {
		return
	}

	c.packageBar = progressbar.NewOptions(totalPackages,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Generating packages"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnPackageComplete(name string, exports int) {
	if c.quiet {
		return
	}
	if c.packageBar != nil {
		c.packageBar.Describe(name)
		c.packageBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(summary *GenerateSummary) {
	if c.quiet {
		return
	}
	if c.packageBar != nil {
		c.packageBar.Finish()
		c.packageBar = nil
	}

	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "✓ Documentation generated: %s packages in %.1fs\n",
		formatNumber(summary.Packages), summary.Duration.Seconds())
	fmt.Fprintf(c.out, "  Exports: %s\n", formatNumber(summary.Exports))
	fmt.Fprintf(c.out, "  Pages:   %s\n", formatNumber(len(summary.Pages)))
}

// formatNumber renders n with thousands separators.
func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	return string(out)
}
