package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Reporter presents the total task count and per-task outcomes. The pipeline
// depends only on this interface.
type Reporter interface {
	Begin(total int)
	StartTask(label string)
	EndTask(label, result string, err error)
	End()
}

// New selects the reporter for the given writer: an interactive bar when the
// writer is a terminal, a plain sequential log otherwise.
func New(w io.Writer) Reporter {
	if file, ok := w.(*os.File); ok && isTerminal(file) {
		return &barReporter{writer: w}
	}
	return &plainReporter{writer: w}
}

func isTerminal(file *os.File) bool {
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// plainReporter prints "[i/total]" lines, one per task.
type plainReporter struct {
	writer io.Writer
	total  int
	index  int
}

func (r *plainReporter) Begin(total int) {
	r.total = total
	r.index = 0
	fmt.Fprintf(r.writer, "processing %d file(s)\n", total)
}

func (r *plainReporter) StartTask(label string) {
	r.index++
	fmt.Fprintf(r.writer, "[%d/%d] %s\n", r.index, r.total, label)
}

func (r *plainReporter) EndTask(label, result string, err error) {
	if err != nil {
		fmt.Fprintf(r.writer, "[%d/%d] %s: %s: %v\n", r.index, r.total, label, result, err)
		return
	}
	fmt.Fprintf(r.writer, "[%d/%d] %s: %s\n", r.index, r.total, label, result)
}

func (r *plainReporter) End() {}

// barReporter renders an interactive progress bar, writing per-task lines
// above it.
type barReporter struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
}

func (r *barReporter) Begin(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.writer),
		progressbar.OptionSetDescription("transcribing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *barReporter) StartTask(label string) {
	if r.bar != nil {
		_, _ = progressbar.Bprintln(r.bar, label)
	}
}

func (r *barReporter) EndTask(label, result string, err error) {
	if r.bar == nil {
		return
	}
	if err != nil {
		_, _ = progressbar.Bprintf(r.bar, "%s: %s: %v\n", label, result, err)
	} else {
		_, _ = progressbar.Bprintf(r.bar, "%s: %s\n", label, result)
	}
	_ = r.bar.Add(1)
}

func (r *barReporter) End() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}
