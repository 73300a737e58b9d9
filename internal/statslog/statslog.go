// Package statslog provides the append-only, per-tenant event log the
// spec's persisted-state contract allows each tenant to open one of:
// a single on-disk file, line-oriented newline-terminated JSON
// records, no cross-process locking assumed. A GeneralStats summary
// is produced by scanning the log rather than querying a database,
// replacing the teacher's GORM-backed StatsService with a shape that
// honors the spec's no-persistent-store-beyond-log-files constraint.
package statslog

import (
	"bufio"
	"encoding/json"
	"os"
	"sync"
	"time"
)

// Event is one recorded occurrence: a tenant-defined kind (e.g.
// "gameOver", "kill") plus an opaque JSON detail payload and the wall
// clock time it was recorded.
type Event struct {
	Time time.Time       `json:"time"`
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Recorder appends Events to one tenant's log file. Safe for
// concurrent use, though the runtime's tenant token already
// serializes a given tenant's calls — the lock here only guards
// against a future caller outside that token.
type Recorder struct {
	mu sync.Mutex
	f  *os.File
}

// Open creates (or appends to) the log file at path.
func Open(path string) (*Recorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &Recorder{f: f}, nil
}

// Record appends one newline-terminated JSON event, stamped with the
// current time.
func (r *Recorder) Record(kind string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	line, err := json.Marshal(Event{Time: time.Now(), Kind: kind, Data: raw})
	if err != nil {
		return err
	}
	line = append(line, '\n')

	r.mu.Lock()
	defer r.mu.Unlock()
	_, err = r.f.Write(line)
	return err
}

// Close flushes and closes the underlying file.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.f.Close()
}

// GeneralStats is an aggregate view over one tenant's log: the total
// count of events, broken down per kind.
type GeneralStats struct {
	TotalEvents int            `json:"totalEvents"`
	ByKind      map[string]int `json:"byKind"`
}

// Read scans the log file at path line by line, tolerating a missing
// file (returns an empty summary) since a tenant may not have
// recorded anything yet.
func Read(path string) (GeneralStats, error) {
	stats := GeneralStats{ByKind: make(map[string]int)}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return stats, nil
	}
	if err != nil {
		return stats, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			continue
		}
		stats.TotalEvents++
		stats.ByKind[ev.Kind]++
	}
	return stats, scanner.Err()
}
