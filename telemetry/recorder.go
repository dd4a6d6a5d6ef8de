// Package telemetry writes per-step movement traces as CSV.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// Sample is one physics step of the player's motion.
type Sample struct {
	Step     int     `csv:"step"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	VX       float64 `csv:"vx"`
	VY       float64 `csv:"vy"`
	TargetVX float64 `csv:"target_vx"`
	TargetVY float64 `csv:"target_vy"`
	Smooth   bool    `csv:"smooth"`
}

// Recorder appends samples to a CSV stream. A nil Recorder discards writes.
type Recorder struct {
	out    io.Writer
	closer io.Closer

	headerWritten bool
	count         int
}

func NewRecorder(out io.Writer) *Recorder {
	return &Recorder{out: out}
}

// Create opens path for writing, creating parent directories. An empty path
// disables recording and returns a nil Recorder.
func Create(path string) (*Recorder, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("telemetry: creating %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating %s: %w", path, err)
	}
	return &Recorder{out: f, closer: f}, nil
}

func (r *Recorder) Write(s Sample) error {
	if r == nil {
		return nil
	}

	records := []Sample{s}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.out); err != nil {
			return fmt.Errorf("telemetry: writing sample: %w", err)
		}
		r.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, r.out); err != nil {
			return fmt.Errorf("telemetry: writing sample: %w", err)
		}
	}
	r.count++
	return nil
}

// Count returns how many samples have been written.
func (r *Recorder) Count() int {
	if r == nil {
		return 0
	}
	return r.count
}

func (r *Recorder) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}
