// Package cancelctl exposes the single asynchronous effect the
// simulation loop observes: a process-wide cancellation counter
// incremented by a signal handler. It replaces a global mutable
// counter with a package-owned atomic counter read with relaxed
// ordering between steps.
package cancelctl

import "sync/atomic"

// hardAbortThreshold is the number of increments after which the
// process aborts immediately rather than waiting for the loop to
// notice.
const hardAbortThreshold = 4

var attempts atomic.Int32

// Signal records one cancellation attempt. Wired to
// os/signal.Notify(os.Interrupt) by cmd/kmcsim.
func Signal() {
	attempts.Add(1)
}

// Requested reports whether at least one cancellation attempt has been
// observed. The loop checks this between steps and, on the first true
// result, exits cleanly.
func Requested() bool {
	return attempts.Load() > 0
}

// ShouldAbort reports whether the hard-abort threshold has been
// crossed. The caller is expected to exit the process immediately with
// a non-zero code when this returns true.
func ShouldAbort() bool {
	return attempts.Load() >= hardAbortThreshold
}

// Reset clears the counter. Exposed for tests; the running process
// never calls it.
func Reset() {
	attempts.Store(0)
}
