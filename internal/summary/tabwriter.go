package summary

import (
	"fmt"
	"io"
)

const (
	tabHeader = "time\tn_entities\tn_follows\tn_tweets\tn_retweets"

	// fileHeaderEvery is the fixed reprint cadence for the DATA_vs_TIME
	// file: every 500 records.
	fileHeaderEvery = 500
)

// TabWriter is the Sink of record: tab-separated ASCII, 2 decimal
// digits of precision for time, written to both stdout and a
// DATA_vs_TIME file. Its header is reprinted on a fixed row-count
// cadence per stream rather than whenever a row's leading fields
// change, since a summary tuple has no natural "leading fields"
// grouping to compare.
type TabWriter struct {
	stdout io.Writer
	file   io.Writer

	// stdoutHeaderEvery is 25*N, N taken from Config.SummaryHeaderEveryN.
	stdoutHeaderEvery int

	n int
}

// NewTabWriter builds a TabWriter writing to stdout and file (either
// may be nil to disable that stream). headerEveryN is the config's raw
// N; the stdout cadence is 25*N, the file cadence is a fixed 500.
func NewTabWriter(stdout, file io.Writer, headerEveryN int) *TabWriter {
	if headerEveryN <= 0 {
		headerEveryN = 1
	}
	return &TabWriter{
		stdout:            stdout,
		file:              file,
		stdoutHeaderEvery: 25 * headerEveryN,
	}
}

// Emit writes one summary row, prefixed by a header line whenever the
// row count crosses this writer's stream-specific cadence.
func (w *TabWriter) Emit(s Snapshot) error {
	row := fmt.Sprintf("%.2f\t%d\t%d\t%d\t%d", s.Time, s.NEntities, s.NFollows, s.NTweets, s.NRetweets)

	if w.stdout != nil {
		if w.n%w.stdoutHeaderEvery == 0 {
			if _, err := fmt.Fprintln(w.stdout, tabHeader); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w.stdout, row); err != nil {
			return err
		}
	}

	if w.file != nil {
		if w.n%fileHeaderEvery == 0 {
			if _, err := fmt.Fprintln(w.file, tabHeader); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w.file, row); err != nil {
			return err
		}
	}

	w.n++
	return nil
}

// Close is a no-op for TabWriter: it does not own the lifetime of the
// writers passed to NewTabWriter (typically os.Stdout and a caller-
// managed *os.File).
func (w *TabWriter) Close() error {
	return nil
}
