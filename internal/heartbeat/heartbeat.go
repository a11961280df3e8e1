// Package heartbeat tracks bot daemon liveness through a small state file,
// so the status command can tell a running bot from a crashed one.
package heartbeat

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Status is the liveness verdict for the bot daemon.
type Status string

const (
	StatusAlive Status = "alive"
	StatusStale Status = "stale"
	StatusDead  Status = "dead"
)

// Beat is the data written to the state file.
type Beat struct {
	PID       int       `json:"pid"`
	StartedAt time.Time `json:"started_at"`
	BeatAt    time.Time `json:"beat_at"`
	Uptime    string    `json:"uptime"`
}

// Writer periodically refreshes the state file while the daemon runs.
type Writer struct {
	path     string
	interval time.Duration
	started  time.Time
}

// NewWriter creates a writer that beats every 30s.
func NewWriter(path string) *Writer {
	return &Writer{path: path, interval: 30 * time.Second}
}

// Run writes the first beat immediately, then one per interval, until ctx is
// cancelled. The state file is removed on the way out so a clean shutdown
// reads as dead, not stale.
func (w *Writer) Run(ctx context.Context) error {
	w.started = time.Now()
	w.write()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.write()
		case <-ctx.Done():
			os.Remove(w.path)
			return nil
		}
	}
}

func (w *Writer) write() {
	b := Beat{
		PID:       os.Getpid(),
		StartedAt: w.started,
		BeatAt:    time.Now(),
		Uptime:    time.Since(w.started).Truncate(time.Second).String(),
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return
	}

	// Atomic write: tmp + rename
	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return
	}
	os.Rename(tmp, w.path)
}

// Check reads the state file and returns the liveness verdict. maxAge is how
// old the last beat may be before the daemon counts as stale.
func Check(path string, maxAge time.Duration) (Status, *Beat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return StatusDead, nil, nil
		}
		return StatusDead, nil, fmt.Errorf("read heartbeat: %w", err)
	}

	var b Beat
	if err := json.Unmarshal(data, &b); err != nil {
		return StatusDead, nil, fmt.Errorf("unmarshal heartbeat: %w", err)
	}

	if time.Since(b.BeatAt) > maxAge {
		return StatusStale, &b, nil
	}
	return StatusAlive, &b, nil
}
