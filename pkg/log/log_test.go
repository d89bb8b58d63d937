package log_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gopatchy/jrepl/pkg/log"
)

func TestDebugf(t *testing.T) {
	buf := &bytes.Buffer{}
	log.SetOutput(buf)

	prev := log.Debug
	t.Cleanup(func() {
		log.Debug = prev
		log.SetOutput(os.Stderr)
	})

	log.Debug = false
	log.Debugf("hidden %d", 1)
	require.Empty(t, buf.String())

	log.Debug = true
	log.Debugf("shown %d", 2)
	require.Contains(t, buf.String(), "jrepl: ")
	require.Contains(t, buf.String(), "shown 2")
}
