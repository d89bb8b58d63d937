package log

import (
	"io"
	"log"
	"os"
)

// Debug controls debug log output. Set by JREPL_DEBUG environment variable by default.
var Debug = os.Getenv("JREPL_DEBUG") != ""

var logger = log.New(os.Stderr, "jrepl: ", log.LstdFlags)

// SetOutput redirects debug output, e.g. into a test buffer.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Debugf logs a debug message if Debug is true.
func Debugf(format string, v ...any) {
	if !Debug {
		return
	}

	logger.Printf(format, v...)
}
