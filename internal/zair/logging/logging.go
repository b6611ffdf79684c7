// Package logging builds a structured logrus logger and helpers that attach
// the pool or claim index a line concerns as a field. The zair CLI does not
// call it: its errors are printed to stderr by main.
package logging

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// New builds a logger for level (debug, info, warn, error; anything else
// falls back to info) writing to out, or stderr if out is nil.
func New(level string, out io.Writer) *log.Logger {
	if out == nil {
		out = os.Stderr
	}

	l := log.New()
	l.SetOutput(out)
	l.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
		DisableColors: true,
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	l.SetLevel(lvl)

	return l
}

// WithPool returns an entry tagged with the pool a log line concerns,
// mirroring the error taxonomy's pool-qualified diagnostics.
func WithPool(l *log.Logger, pool string) *log.Entry {
	return l.WithField("pool", pool)
}

// WithClaim returns an entry tagged with the claim index a log line
// concerns.
func WithClaim(l *log.Logger, claimIndex int) *log.Entry {
	return l.WithField("claim_index", claimIndex)
}
