package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Debugf logs high-rate diagnostics such as per-sample drops. It is a no-op
// unless enabled with SetDebug; control-loop call sites can leave it in place
// without paying for formatting in production.
var Debugf func(format string, v ...interface{}) = func(string, ...interface{}) {}

// SetDebug routes Debugf through the package logger when on is true and
// silences it otherwise.
func SetDebug(on bool) {
	if on {
		Debugf = func(format string, v ...interface{}) {
			Logf(format, v...)
		}
		return
	}
	Debugf = func(string, ...interface{}) {}
}
