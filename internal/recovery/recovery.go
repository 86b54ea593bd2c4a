// internal/recovery/recovery.go
package recovery

import (
	"fmt"
	"os"
	"runtime/debug"
)

// HandlePanic should be deferred at the top of main() or goroutines.
// It logs panic details and exits with code 1.
func HandlePanic() {
	if r := recover(); r != nil {
		fatal(r, nil)
	}
}

// HandlePanicFunc logs panic details, runs the cleanup (typically restoring
// the terminal out of the alternate screen) and exits with code 1.
func HandlePanicFunc(cleanup func()) {
	if r := recover(); r != nil {
		fatal(r, cleanup)
	}
}

// fatal runs the cleanup before the stack trace hits stderr so the trace
// lands on a usable terminal.
func fatal(r any, cleanup func()) {
	if cleanup != nil {
		cleanup()
	}
	_, _ = fmt.Fprintf(os.Stderr, "FATAL: %v\n\nStack trace:\n%s\n", r, debug.Stack())
	os.Exit(1)
}
