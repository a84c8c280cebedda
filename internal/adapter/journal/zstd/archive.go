package zstdjournal

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/klauspost/compress/zstd"

	"wildcraft/internal/domain/survival"
)

// Entry is one archived line.
type Entry struct {
	SessionID  string         `json:"session_id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// Archive appends committed events as zstd-compressed JSON lines, one file
// per UTC hour. It is write-only audit output.
type Archive struct {
	baseDir string
	prefix  string
	now     func() time.Time

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

func NewArchive(baseDir string) *Archive {
	return &Archive{baseDir: baseDir, prefix: "events", now: time.Now}
}

func (a *Archive) Write(_ context.Context, sessionID string, events []survival.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	hour := a.now().UTC().Format("2006-01-02-15")
	if hour != a.curHour || a.w == nil {
		if err := a.rotateLocked(hour); err != nil {
			return err
		}
	}

	for _, evt := range events {
		b, err := json.Marshal(Entry{
			SessionID:  sessionID,
			Type:       evt.Type,
			OccurredAt: evt.OccurredAt,
			Payload:    evt.Payload,
		})
		if err != nil {
			return err
		}
		if _, err := a.w.Write(b); err != nil {
			return err
		}
		if err := a.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err := a.w.Flush(); err != nil {
		return err
	}
	return a.enc.Flush()
}

func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.closeLocked()
}

// PathForHour reports the file that holds events for hour, formatted as
// 2006-01-02-15 in UTC.
func (a *Archive) PathForHour(hour string) string {
	return filepath.Join(a.baseDir, fmt.Sprintf("%s-%s.jsonl.zst", a.prefix, hour))
}

func (a *Archive) rotateLocked(hour string) error {
	if err := a.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(a.baseDir, 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(a.PathForHour(hour), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	a.f = f
	a.enc = enc
	a.w = bufio.NewWriterSize(enc, 64*1024)
	a.curHour = hour
	return nil
}

func (a *Archive) closeLocked() error {
	var err error
	if a.w != nil {
		_ = a.w.Flush()
	}
	if a.enc != nil {
		err = a.enc.Close()
		a.enc = nil
	}
	if a.f != nil {
		_ = a.f.Close()
		a.f = nil
	}
	a.w = nil
	return err
}

// ReadFile decodes every entry of one archive file.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	out := []Entry{}
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		out = append(out, e)
	}
	return out, sc.Err()
}
