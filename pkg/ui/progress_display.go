package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

const progressBarWidth = 20

// ProgressDisplay renders a single-line upload progress bar
type ProgressDisplay struct {
	mu        sync.Mutex
	out       io.Writer
	label     string
	total     int
	done      int
	current   string
	startTime time.Time
	verbose   bool
	finished  bool
}

// NewProgressDisplay creates a progress display writing to the terminal output.
// In verbose mode every finished photo gets its own line instead of a redrawn bar.
func NewProgressDisplay(label string, verbose bool) *ProgressDisplay {
	return NewProgressDisplayWithWriter(label, verbose, nil)
}

// NewProgressDisplayWithWriter creates a progress display writing to w.
// A nil w follows the quiet setting and writes to the terminal output.
func NewProgressDisplayWithWriter(label string, verbose bool, w io.Writer) *ProgressDisplay {
	if w == nil {
		if IsQuiet() {
			w = io.Discard
		} else {
			w = Output()
		}
	}
	return &ProgressDisplay{
		out:     w,
		label:   label,
		verbose: verbose,
	}
}

// Start resets the display for total photos
func (p *ProgressDisplay) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.done = 0
	p.current = ""
	p.finished = false
	p.startTime = time.Now()
	if !p.verbose {
		p.printProgress()
	}
}

// Advance records one processed photo
func (p *ProgressDisplay) Advance(fileName string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done++
	p.current = fileName
	if p.verbose {
		fmt.Fprintf(p.out, "%s %s %s\n", Green("✓"), fileName, Dim(fmt.Sprintf("(%d/%d)", p.done, p.total)))
		return
	}
	p.printProgress()
}

// Finish ends the progress line with a summary
func (p *ProgressDisplay) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.finished {
		return
	}
	p.finished = true

	if !p.verbose {
		fmt.Fprintln(p.out)
	}
	fmt.Fprintf(p.out, "%s %d/%d photos in %s\n",
		Dim("•"),
		p.done,
		p.total,
		FormatDuration(time.Since(p.startTime)),
	)
}

// Done returns how many photos have been processed
func (p *ProgressDisplay) Done() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// printProgress redraws the progress line
func (p *ProgressDisplay) printProgress() {
	fmt.Fprintf(p.out, "\r%s\r%s", strings.Repeat(" ", 100), renderBar(p.label, p.done, p.total, p.current))
}

// renderBar formats the progress line without the leading carriage return
func renderBar(label string, done, total int, current string) string {
	filled := 0
	if total > 0 {
		filled = done * progressBarWidth / total
	}
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	bar := strings.Repeat("━", filled) + strings.Repeat("─", progressBarWidth-filled)

	line := fmt.Sprintf("%s [%s] %d/%d", Cyan(label), bar, done, total)
	if current != "" {
		line += " • " + current
	}
	return line
}

// FormatDuration formats a duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
