// Package monitoring holds the diagnostic logger shared by the trainer packages.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf and may
// be replaced by SetLogger, for example to mute training diagnostics in tests.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil sets a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
