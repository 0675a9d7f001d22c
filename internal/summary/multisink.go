package summary

// MultiSink fans a Snapshot out to every wrapped Sink, mirroring
// slog-multi's fanout shape. It is purpose-built rather than reusing
// slog-multi directly: a Snapshot is a fixed five-field tuple, not a
// structured log record, so there is no slog.Record to route through
// slog-multi's handler chain.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink fans out to every given sink in order.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// Emit calls Emit on every wrapped sink, continuing past the first
// error so one sink's failure doesn't silently drop the tuple from the
// others; the first error encountered is returned to the caller.
func (m *MultiSink) Emit(s Snapshot) error {
	var first error
	for _, sink := range m.sinks {
		if err := sink.Emit(s); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Close closes every wrapped sink, returning the first error
// encountered.
func (m *MultiSink) Close() error {
	var first error
	for _, sink := range m.sinks {
		if err := sink.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
