package common

import (
	"bytes"
	"strings"
	"testing"

	"github.com/coreos/go-systemd/v22/journal"
)

type journalEntry struct {
	message  string
	priority journal.Priority
	vars     map[string]string
}

func fakeJournal(t *testing.T) *[]journalEntry {
	var entries []journalEntry
	savedEnabled, savedSend := journalEnabled, journalSend
	journalEnabled = func() bool { return true }
	journalSend = func(message string, priority journal.Priority, vars map[string]string) error {
		entries = append(entries, journalEntry{message, priority, vars})
		return nil
	}
	t.Cleanup(func() {
		journalEnabled, journalSend = savedEnabled, savedSend
	})
	return &entries
}

func TestNewLogger(t *testing.T) {
	entries := fakeJournal(t)

	var buf bytes.Buffer
	log, err := NewLogger(LoggingConfig{Level: "info", Journal: true}, &buf, "test-gateway")
	if err != nil {
		t.Fatalf("NewLogger failed with %q", err)
	}

	log.Debug("too chatty")
	log.Info("request authorized", "entry", 2, "source", "harvey:/sandpit/harvey")
	log.Error("Security check failed: operand count", "check", "operand count")

	if buf.String() != "ERROR: Security check failed: operand count\n" {
		t.Errorf("diagnostics = %q", buf.String())
	}

	if len(*entries) != 2 {
		t.Fatalf("journal entries = %v, expected 2", *entries)
	}
	authorized := (*entries)[0]
	if authorized.message != "request authorized" || authorized.priority != journal.PriInfo {
		t.Errorf("unexpected journal entry %v", authorized)
	}
	if authorized.vars["SYSLOG_IDENTIFIER"] != "test-gateway" {
		t.Errorf("SYSLOG_IDENTIFIER = %q", authorized.vars["SYSLOG_IDENTIFIER"])
	}
	if authorized.vars["GATEWAY_SOURCE"] != "harvey:/sandpit/harvey" {
		t.Errorf("GATEWAY_SOURCE = %q", authorized.vars["GATEWAY_SOURCE"])
	}
	if (*entries)[1].priority != journal.PriErr {
		t.Errorf("unexpected priority for %v", (*entries)[1])
	}
}

func TestNewLoggerWithoutJournal(t *testing.T) {
	entries := fakeJournal(t)

	var buf bytes.Buffer
	log, err := NewLogger(LoggingConfig{Level: "debug"}, &buf, "test-gateway")
	if err != nil {
		t.Fatalf("NewLogger failed with %q", err)
	}
	log.Info("launching")
	if len(*entries) != 0 {
		t.Errorf("journal entries = %v, expected none", *entries)
	}
	if buf.Len() != 0 {
		t.Errorf("diagnostics = %q, expected nothing", buf.String())
	}
}

func TestNewLoggerInvalidLevel(t *testing.T) {
	if _, err := NewLogger(LoggingConfig{Level: "loud"}, &bytes.Buffer{}, "test"); err == nil {
		t.Errorf("NewLogger succeeded with an invalid level")
	}
}

func TestJournalField(t *testing.T) {
	for _, tt := range []struct {
		key, expected string
	}{
		{"uid", "GATEWAY_UID"},
		{"entry-index", "GATEWAY_ENTRY_INDEX"},
		{"_trusted", "GATEWAY_TRUSTED"},
	} {
		if got := journalField(tt.key); got != tt.expected {
			t.Errorf("journalField(%q) = %q, expected %q", tt.key, got, tt.expected)
		}
	}
}

func TestDebugContext(t *testing.T) {
	var diagnostics bytes.Buffer
	config := DefaultConfig
	config.Logging.Journal = false
	ctx, err := NewContext(config, &diagnostics, "test")
	if err != nil {
		t.Fatalf("NewContext failed with %q", err)
	}
	dbg := ctx.DebugContext("gateway", "test")
	// This should not be added to the Buffer.
	ctx.Log.Error("Critical error")
	// This should be.
	dbg.Log.Debug("Debug statement")

	logStr := string(dbg.LogBuffer())
	if strings.Contains(logStr, "Critical error") {
		t.Errorf("\"Critical error\" present in LogBuffer: %q", logStr)
	}
	if !strings.Contains(logStr, "Debug statement") {
		t.Errorf("\"Debug statement\" not present in LogBuffer: %q", logStr)
	}
	if diagnostics.String() != "ERROR: Critical error\n" {
		t.Errorf("diagnostics = %q", diagnostics.String())
	}
}

func TestConfigSerializability(t *testing.T) {
	config := DefaultConfig
	if !strings.Contains(config.String(), "\"ProcRoot\": \"/proc\"") {
		t.Errorf("unexpected config %s", config.String())
	}
}
