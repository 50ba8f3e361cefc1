package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/tcimlab/estudios/domain"
)

// ProgressReporterImpl implements the ProgressReporter interface
type ProgressReporterImpl struct {
	writer     io.Writer
	totalFiles int
	startTime  time.Time
	enabled    bool
	verbose    bool
}

// NewProgressReporter creates a new progress reporter
func NewProgressReporter(writer io.Writer, enabled, verbose bool) *ProgressReporterImpl {
	if writer == nil {
		writer = os.Stderr // Progress output typically goes to stderr
	}

	return &ProgressReporterImpl{
		writer:  writer,
		enabled: enabled,
		verbose: verbose,
	}
}

// StartProgress starts progress reporting for the given number of files
func (p *ProgressReporterImpl) StartProgress(totalFiles int) {
	if !p.enabled {
		return
	}

	p.totalFiles = totalFiles
	p.startTime = time.Now()

	if totalFiles > 1 {
		fmt.Fprintf(p.writer, "Reading %d files...\n", totalFiles)
	}
}

// UpdateProgress updates the progress with the current file being processed
func (p *ProgressReporterImpl) UpdateProgress(currentFile string, processed, total int) {
	if !p.enabled || !p.verbose {
		return
	}

	fmt.Fprintf(p.writer, "[%d/%d] %s\n", processed+1, total, filepath.Base(currentFile))
}

// FinishProgress finishes progress reporting
func (p *ProgressReporterImpl) FinishProgress() {
	if !p.enabled || p.totalFiles <= 1 {
		return
	}

	elapsed := time.Since(p.startTime)
	fmt.Fprintf(p.writer, "Read %d files in %v\n", p.totalFiles, elapsed.Truncate(time.Millisecond))
}

// NoOpProgressReporter is a progress reporter that does nothing
type NoOpProgressReporter struct{}

// NewNoOpProgressReporter creates a no-op progress reporter
func NewNoOpProgressReporter() *NoOpProgressReporter {
	return &NoOpProgressReporter{}
}

func (n *NoOpProgressReporter) StartProgress(totalFiles int)                            {}
func (n *NoOpProgressReporter) UpdateProgress(currentFile string, processed, total int) {}
func (n *NoOpProgressReporter) FinishProgress()                                         {}

// BarProgressReporter renders an interactive progress bar while files are
// being read.
type BarProgressReporter struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
}

// NewBarProgressReporter creates a progress bar reporter
func NewBarProgressReporter(writer io.Writer) *BarProgressReporter {
	if writer == nil {
		writer = os.Stderr
	}
	return &BarProgressReporter{writer: writer}
}

func (b *BarProgressReporter) StartProgress(totalFiles int) {
	if totalFiles <= 1 {
		return
	}

	b.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(b.writer),
		progressbar.OptionSetDescription("Reading files"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetPredictTime(false),
	)
}

func (b *BarProgressReporter) UpdateProgress(currentFile string, processed, total int) {
	if b.bar == nil {
		return
	}
	_ = b.bar.Set(processed + 1)
}

func (b *BarProgressReporter) FinishProgress() {
	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
	b.bar = nil
}

// CreateProgressReporter picks a reporter appropriate for the environment:
// silent when stderr is not a terminal, verbose per-file listing when asked,
// otherwise a progress bar.
func CreateProgressReporter(writer io.Writer, totalFiles int, verbose bool) domain.ProgressReporter {
	if writer == nil || !isTerminal(writer) || totalFiles == 0 {
		return NewNoOpProgressReporter()
	}

	if verbose {
		return NewProgressReporter(writer, true, true)
	}
	return NewBarProgressReporter(writer)
}

// isTerminal checks if the writer is connected to a terminal
func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
