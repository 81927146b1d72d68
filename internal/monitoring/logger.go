// Package monitoring holds the diagnostic logger shared by the batch driver
// and the command-line tools.
package monitoring

import "log"

// Logf receives warnings such as skipped track shapes. It defaults to
// log.Printf; tools and tests swap it with SetLogger before starting work.
var Logf func(format string, v ...any) = log.Printf

// SetLogger replaces Logf. A nil f mutes logging.
func SetLogger(f func(format string, v ...any)) {
	if f == nil {
		Logf = func(string, ...any) {}
		return
	}
	Logf = f
}
