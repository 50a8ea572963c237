package logging

import (
	"strings"
	"sync"
)

// RecentBuffer is an io.Writer that keeps the most recent log lines in a
// ring so they can be replayed on demand. Wire it into the standard logger
// with log.SetOutput(io.MultiWriter(os.Stdout, buf)).
type RecentBuffer struct {
	mu      sync.Mutex
	max     int
	lines   []string
	partial strings.Builder
}

func NewRecentBuffer(maxLines int) *RecentBuffer {
	if maxLines <= 0 {
		maxLines = 100
	}
	return &RecentBuffer{max: maxLines}
}

func (b *RecentBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, c := range string(p) {
		if c == '\n' {
			b.lines = append(b.lines, b.partial.String())
			b.partial.Reset()
			if len(b.lines) > b.max {
				b.lines = b.lines[len(b.lines)-b.max:]
			}
			continue
		}
		b.partial.WriteRune(c)
	}
	return len(p), nil
}

// Lines returns up to n of the most recent complete log lines, oldest first.
func (b *RecentBuffer) Lines(n int) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if n <= 0 || n > len(b.lines) {
		n = len(b.lines)
	}
	out := make([]string, n)
	copy(out, b.lines[len(b.lines)-n:])
	return out
}
