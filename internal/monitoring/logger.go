// Package monitoring holds the diagnostic logger shared by the outer layers
// of the ballistics service: config loading, the run store, the HTTP API and
// the binaries. The numeric packages never log.
package monitoring

import (
	"fmt"
	"log"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but
// may be replaced by SetLogger to redirect or mute output.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Prefixed returns a logger that tags every line with "[prefix] " and
// forwards to whatever Logf is at call time.
func Prefixed(prefix string) func(format string, v ...interface{}) {
	tag := fmt.Sprintf("[%s] ", prefix)
	return func(format string, v ...interface{}) {
		Logf(tag+format, v...)
	}
}
