package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/rotisserie/eris"

	"maps-lead-scraper/models"
	"maps-lead-scraper/utils"
)

// EndMarker is the last line of a complete artifact. The enrichment worker
// tails the file and stops reading when it sees it.
const EndMarker = "__END__"

// HandoffWriter streams FinalRecords as JSON Lines. Each record is flushed as
// soon as it is written so a tailing reader can start early.
type HandoffWriter struct {
	path     string
	file     *os.File
	buf      *bufio.Writer
	enc      *json.Encoder
	count    int
	finished bool
	logger   *utils.Logger
}

// ArtifactName returns "<sanitized query>_<YYYYMMDD_HHMMSS>.jsonl"
func ArtifactName(query string, now time.Time) string {
	return sanitizeName(query) + "_" + now.Format("20060102_150405") + ".jsonl"
}

func sanitizeName(s string) string {
	var b strings.Builder
	lastSep := true
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSep = false
			continue
		}
		if !lastSep {
			b.WriteRune('_')
			lastSep = true
		}
	}
	name := strings.Trim(b.String(), "_")
	if runes := []rune(name); len(runes) > 80 {
		name = strings.Trim(string(runes[:80]), "_")
	}
	if name == "" {
		return "search"
	}
	return name
}

// NewHandoffWriter creates the artifact for query inside dir
func NewHandoffWriter(dir, query string, now time.Time, logger *utils.Logger) (*HandoffWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, eris.Wrap(err, "failed to create output directory")
	}
	path := filepath.Join(dir, ArtifactName(query, now))
	f, err := os.Create(path)
	if err != nil {
		return nil, eris.Wrap(err, "failed to create artifact")
	}

	buf := bufio.NewWriter(f)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	return &HandoffWriter{path: path, file: f, buf: buf, enc: enc, logger: logger}, nil
}

// Path returns the artifact location
func (w *HandoffWriter) Path() string { return w.path }

// Count returns how many records were written
func (w *HandoffWriter) Count() int { return w.count }

// Write appends one record and flushes it
func (w *HandoffWriter) Write(rec models.FinalRecord) error {
	if w.finished {
		return eris.New("artifact already finished")
	}
	if err := w.enc.Encode(rec); err != nil {
		return eris.Wrap(err, "encode record")
	}
	if err := w.buf.Flush(); err != nil {
		return eris.Wrap(err, "flush record")
	}
	w.count++
	return nil
}

// Finish writes the end marker, syncs the file to disk and closes it. Only
// after Finish returns nil is the artifact safe to hand off. Calling it again
// is a no-op.
func (w *HandoffWriter) Finish() error {
	if w.finished {
		return nil
	}
	w.finished = true

	if _, err := w.buf.WriteString(EndMarker + "\n"); err != nil {
		_ = w.file.Close()
		return eris.Wrap(err, "write end marker")
	}
	if err := w.buf.Flush(); err != nil {
		_ = w.file.Close()
		return eris.Wrap(err, "flush artifact")
	}
	if err := w.file.Sync(); err != nil {
		_ = w.file.Close()
		return eris.Wrap(err, "sync artifact")
	}
	if err := w.file.Close(); err != nil {
		return eris.Wrap(err, "close artifact")
	}
	w.logger.Info("Artifact written to: %s (%d records)", w.path, w.count)
	return nil
}
