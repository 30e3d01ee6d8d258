// Package profiling records nested timing spans for a single samoyed
// invocation and prints them as a tree.
package profiling

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Stopper ends a span.
type Stopper interface {
	Stop()
}

type span struct {
	name     string
	start    time.Time
	duration time.Duration
	children []*span
	profiler *Profiler
}

func (s *span) Stop() {
	s.duration = time.Since(s.start)
	s.profiler.pop(s)
}

// Profiler collects spans. The zero value is disabled and records nothing.
type Profiler struct {
	mu      sync.Mutex
	enabled bool
	root    *span
	stack   []*span
}

var defaultProfiler = &Profiler{}

// Enable turns on the process-wide profiler.
func Enable() { defaultProfiler.Enable() }

// Enabled reports whether the process-wide profiler is recording.
func Enabled() bool { return defaultProfiler.Enabled() }

// Start opens a span on the process-wide profiler. Use as
// `defer profiling.Start("name").Stop()`.
func Start(name string) Stopper { return defaultProfiler.Start(name) }

// Summarize writes the process-wide profile to w.
func Summarize(w io.Writer) { defaultProfiler.Summarize(w) }

// Enable starts recording. Calling it again keeps the existing spans.
func (p *Profiler) Enable() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled {
		return
	}
	p.enabled = true
	p.root = &span{name: "", start: time.Now(), profiler: p}
	p.stack = []*span{p.root}
}

func (p *Profiler) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Start opens a span nested under the innermost open span.
func (p *Profiler) Start(name string) Stopper {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled {
		return noopStopper{}
	}

	parent := p.stack[len(p.stack)-1]
	s := &span{name: name, start: time.Now(), profiler: p}
	parent.children = append(parent.children, s)
	p.stack = append(p.stack, s)
	return s
}

func (p *Profiler) pop(s *span) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.stack) - 1; i > 0; i-- {
		if p.stack[i] == s {
			p.stack = p.stack[:i]
			return
		}
	}
}

// Summarize prints every recorded span with its share of the total.
func (p *Profiler) Summarize(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.enabled || p.root == nil {
		return
	}

	total := time.Since(p.root.start)
	fmt.Fprintf(w, "samoyed timing (%v)\n", total.Round(100*time.Microsecond))
	for _, child := range p.root.children {
		printSpan(w, child, 1, total)
	}
}

func printSpan(w io.Writer, s *span, depth int, total time.Duration) {
	pct := 0.0
	if total > 0 {
		pct = float64(s.duration) / float64(total) * 100
	}
	fmt.Fprintf(w, "%s- %s (%v, %.1f%%)\n",
		strings.Repeat("  ", depth), s.name, s.duration.Round(100*time.Microsecond), pct)
	for _, child := range s.children {
		printSpan(w, child, depth+1, total)
	}
}

type noopStopper struct{}

func (noopStopper) Stop() {}
