// Package prettyprogress renders frame progress with go-pretty trackers.
package prettyprogress

import (
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/mattn/go-isatty"

	"github.com/user/sketchcast/pkg/ports"
)

// Reporter owns a progress writer and a single frames tracker.
type Reporter struct {
	writer  progress.Writer
	tracker *progress.Tracker
}

// New creates a Reporter writing to stderr. Rendering starts lazily on the
// first update so that runs failing preconditions never draw a bar.
func New() *Reporter {
	w := progress.NewWriter()
	w.SetOutputWriter(os.Stderr)
	w.SetUpdateFrequency(100 * time.Millisecond)
	w.SetTrackerLength(30)
	w.Style().Visibility.ETA = true
	return &Reporter{writer: w}
}

// Enabled reports whether an interactive progress bar makes sense here.
func Enabled() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

// Update implements ports.ProgressFunc.
func (r *Reporter) Update(done, total int) {
	if r.tracker == nil {
		r.tracker = &progress.Tracker{
			Message: "Rendering frames",
			Total:   int64(total),
			Units:   progress.UnitsDefault,
		}
		r.writer.AppendTracker(r.tracker)
		go r.writer.Render()
	}
	r.tracker.SetValue(int64(done))
	if done >= total {
		r.tracker.MarkAsDone()
	}
}

// Stop finishes rendering. Safe to call even if no update ever happened.
func (r *Reporter) Stop() {
	if r.tracker != nil && !r.tracker.IsDone() {
		r.tracker.MarkAsErrored()
	}
	r.writer.Stop()
}

// Func returns the reporter as a ports.ProgressFunc.
func (r *Reporter) Func() ports.ProgressFunc {
	return r.Update
}
