package common

import (
	"bytes"
	"io"

	"github.com/inconshreveable/log15"
)

// DiagnosticFormat formats a record as the single line a caller sees on a
// failure. The record's context is deliberately dropped: only the message,
// which is always a static string, reaches the terminal.
func DiagnosticFormat() log15.Format {
	return log15.FormatFunc(func(r *log15.Record) []byte {
		var buf bytes.Buffer
		if r.Lvl <= log15.LvlError {
			buf.WriteString("ERROR: ")
		} else if r.Lvl == log15.LvlWarn {
			buf.WriteString("WARNING: ")
		}
		buf.WriteString(r.Msg)
		buf.WriteByte('\n')
		return buf.Bytes()
	})
}

// DiagnosticHandler writes errors to w using DiagnosticFormat. Anything less
// severe than an error is dropped.
func DiagnosticHandler(w io.Writer) log15.Handler {
	return log15.LvlFilterHandler(
		log15.LvlError,
		log15.StreamHandler(w, DiagnosticFormat()),
	)
}

// NewLogger creates the logger for a gateway invocation. Failures always reach
// diagnostics; records at or above config.Level are additionally sent to the
// systemd journal when it is enabled and reachable.
func NewLogger(config LoggingConfig, diagnostics io.Writer, identifier string) (log15.Logger, error) {
	maxLvl, err := log15.LvlFromString(config.Level)
	if err != nil {
		return nil, err
	}
	handlers := []log15.Handler{DiagnosticHandler(diagnostics)}
	if config.Journal && journalEnabled() {
		handlers = append(
			handlers,
			log15.LvlFilterHandler(maxLvl, JournalHandler(identifier)),
		)
	}
	log := log15.New()
	log.SetHandler(log15.MultiHandler(handlers...))
	return log, nil
}
