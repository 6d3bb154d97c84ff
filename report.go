package prodcat

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/hupe1980/prodcat/internal/keyword"
)

// reportWriter formats label/value lines either as "label: value" or, in CSV
// mode, as "label, value".
type reportWriter struct {
	buf bytes.Buffer
	csv bool
}

func (w *reportWriter) heading(text string) {
	w.buf.WriteString(text)
	w.buf.WriteByte('\n')
}

func (w *reportWriter) line(label string, value any) {
	if w.csv {
		fmt.Fprintf(&w.buf, "%s, %v\n", label, value)
		return
	}
	fmt.Fprintf(&w.buf, "  %s: %v\n", label, value)
}

func (w *reportWriter) index(name string, st IndexStats) {
	w.line(name+" index entries", st.Entries)
	w.line(name+" index key bytes", st.KeyBytes)
	w.line(name+" index postings", st.Postings)
	w.line(name+" index bucket bytes", st.BucketBytes)
}

func (w *reportWriter) words(name string, r keyword.Reader) {
	w.heading(name + " index words:")
	r.Words(func(word string, size int) bool {
		w.line(word, size)
		return true
	})
}

// Report writes a summary of the catalog to the report sink. With verbose
// set it also lists every indexed word with its bucket size.
func (s *Store) Report(verbose bool) error {
	st := s.Stats()
	w := &reportWriter{csv: s.opts.reportCSV}

	switch {
	case st.Lock != nil:
		w.heading("Products concurrency report:")
		w.line("Reader acquisitions", st.Lock.Reads)
		w.line("Contended reader acquisitions", st.Lock.ContendedReads)
		w.line("Reader wait", formatDuration(st.Lock.ReadWait, w.csv))
		w.line("Writer acquisitions", st.Lock.Writes)
		w.line("Contended writer acquisitions", st.Lock.ContendedWrites)
		w.line("Writer wait", formatDuration(st.Lock.WriteWait, w.csv))
	case st.Strategy == LockFree:
		w.heading("No Products concurrency report since configuration is lock-free")
		w.line("Slot collisions", st.SlotCollisions)
	case st.Strategy == Phased:
		w.heading("Products phased update report:")
		w.line("Generation", st.Generation)
		w.line("Pending changes", st.PendingChanges)
		w.line("Change log appended", st.LogAppended)
		w.line("Change log drained", st.LogDrained)
	}

	w.heading("Products catalog report:")
	w.line("Strategy", st.Strategy)
	w.line("Match-all algorithm", s.opts.matchAll)
	w.line("Capacity", st.Capacity)
	w.line("Products", st.Products)
	w.line("Occupied slots", st.OccupiedSlots)
	w.line("Product name bytes", st.NameBytes)
	w.line("Product description bytes", st.DescriptionBytes)
	w.index("Name", st.NameIndex)
	w.index("Description", st.DescriptionIndex)

	if verbose {
		s.catalog.inspect(func(names, descriptions keyword.Reader) {
			w.words("Name", names)
			w.words("Description", descriptions)
		})
	}
	return s.emit(w.buf.Bytes())
}

func (s *Store) reportRebuildTime(phase string, t time.Time) error {
	var line string
	if s.opts.reportCSV {
		line = fmt.Sprintf("Phase Rebuild of Product Database %s Time, %d\n", phase, t.UnixMicro())
	} else {
		line = fmt.Sprintf("Phase Rebuild of Product Database %s Time: %s\n", phase, t.Format(time.RFC3339Nano))
	}
	return s.emit([]byte(line))
}

func (s *Store) emit(b []byte) error {
	s.sinkMu.Lock()
	defer s.sinkMu.Unlock()
	if _, err := s.opts.reportSink.Write(b); err != nil {
		return fmt.Errorf("%w: %w", ErrReport, err)
	}
	return nil
}

func formatDuration(d time.Duration, csv bool) string {
	if csv {
		return strconv.FormatInt(d.Microseconds(), 10)
	}
	return d.String()
}
