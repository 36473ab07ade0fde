package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/lepinkainen/texturetool/dispatch"
	"github.com/lepinkainen/texturetool/types"
)

// Reporter prints one line per finished file and drives a progress bar.
// It implements dispatch.Observer.
type Reporter struct {
	mu    sync.Mutex
	out   io.Writer
	quiet bool
	bar   *progressbar.ProgressBar
}

// NewReporter writes file lines to out and the progress bar to progress.
// Quiet mode only prints failures.
func NewReporter(out, progress io.Writer, total int, quiet bool) *Reporter {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("processing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
	return &Reporter{out: out, quiet: quiet, bar: bar}
}

// Started implements dispatch.Observer.
func (r *Reporter) Started(worker int, path string) {}

// Finished implements dispatch.Observer.
func (r *Reporter) Finished(res dispatch.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = r.bar.Add(1)
	if r.quiet && res.Outcome.Status != types.StatusFailed {
		return
	}
	fmt.Fprintln(r.out, FormatResult(res))
}

// Close finishes the progress bar.
func (r *Reporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	_ = r.bar.Finish()
}

// FormatResult renders one result as a styled line.
func FormatResult(res dispatch.Result) string {
	o := res.Outcome
	switch o.Status {
	case types.StatusWritten:
		return SuccessStyle.Render(fmt.Sprintf("✅ %s → %s", res.Path, strings.Join(o.Written, ", ")))
	case types.StatusDeleted:
		return WarnStyle.Render(fmt.Sprintf("🗑️  %s → %s", res.Path, strings.Join(o.Written, ", ")))
	case types.StatusMatched:
		return InfoStyle.Render(fmt.Sprintf("🎯 %s → %s", res.Path, strings.Join(o.Written, ", ")))
	case types.StatusSkipped:
		return fmt.Sprintf("⏭️  Skipped %s: %s", res.Path, o.Reason)
	case types.StatusFailed:
		return ErrorStyle.Render(fmt.Sprintf("❌ %s: %s", res.Path, o.Reason))
	default:
		return MutedStyle.Render(fmt.Sprintf("·  %s (%s)", res.Path, o.Reason))
	}
}

// PrintSummary displays final statistics
func PrintSummary(w io.Writer, command string, s *dispatch.Summary) {
	fmt.Fprintf(w, "\n%s\n", HeaderStyle.Render(fmt.Sprintf("📊 %s summary", command)))
	fmt.Fprintf(w, "   Files:     %d\n", s.Total)
	fmt.Fprintf(w, "   Written:   %d (%d outputs)\n", s.Count(types.StatusWritten), s.Written)
	if n := s.Count(types.StatusMatched); n > 0 {
		fmt.Fprintf(w, "   Matched:   %d\n", n)
	}
	if s.Deleted > 0 {
		fmt.Fprintf(w, "   Deleted:   %d sources\n", s.Deleted)
	}
	fmt.Fprintf(w, "   Unchanged: %d\n", s.Count(types.StatusUnchanged))
	fmt.Fprintf(w, "   Skipped:   %d\n", s.Count(types.StatusSkipped))
	fmt.Fprintf(w, "   Failed:    %d\n", s.Count(types.StatusFailed))
	fmt.Fprintf(w, "   Elapsed:   %s\n", s.Elapsed.Round(time.Millisecond))

	for _, f := range s.Failures {
		fmt.Fprintf(w, "   %s\n", ErrorStyle.Render(fmt.Sprintf("❌ %s: %s", f.Path, f.Outcome.Reason)))
	}

	if s.Count(types.StatusFailed) == 0 {
		fmt.Fprintf(w, "\n%s\n", SuccessStyle.Render("🎉 Processing complete."))
	} else {
		fmt.Fprintf(w, "\n%s\n", WarnStyle.Render("⚠️  Processing complete with failures."))
	}
}
