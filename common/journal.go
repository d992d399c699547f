package common

import (
	"fmt"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/inconshreveable/log15"
)

// journalEnabled is replaced in tests.
var journalEnabled = journal.Enabled

// journalSend is replaced in tests.
var journalSend = journal.Send

func journalPriority(lvl log15.Lvl) journal.Priority {
	switch lvl {
	case log15.LvlCrit:
		return journal.PriCrit
	case log15.LvlError:
		return journal.PriErr
	case log15.LvlWarn:
		return journal.PriWarning
	case log15.LvlInfo:
		return journal.PriInfo
	}
	return journal.PriDebug
}

// journalField converts a log15 context key into a valid journal field name:
// uppercase ASCII letters, digits and underscores, not starting with an
// underscore (those are reserved for trusted fields).
func journalField(key string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(key) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return "GATEWAY_" + strings.TrimLeft(b.String(), "_")
}

// JournalHandler returns a handler that sends every record to the systemd
// journal, with the record's context as structured fields. It is the audit
// trail of every gateway decision.
func JournalHandler(identifier string) log15.Handler {
	return log15.FuncHandler(func(r *log15.Record) error {
		vars := map[string]string{
			"SYSLOG_IDENTIFIER": identifier,
		}
		for i := 0; i+1 < len(r.Ctx); i += 2 {
			key, ok := r.Ctx[i].(string)
			if !ok {
				continue
			}
			vars[journalField(key)] = fmt.Sprint(r.Ctx[i+1])
		}
		return journalSend(r.Msg, journalPriority(r.Lvl), vars)
	})
}
