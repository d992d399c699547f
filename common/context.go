package common

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/inconshreveable/log15"
)

// LoggingConfig represents the configuration for logging.
type LoggingConfig struct {
	Level   string
	Journal bool
}

// Config represents the configuration for a gateway. It is compiled into the
// binary: a privileged process whose environment has been scrubbed has no
// trustworthy place to read configuration from.
type Config struct {
	Logging  LoggingConfig
	ProcRoot string
}

// DefaultConfig is the configuration every gateway runs with.
var DefaultConfig = Config{
	Logging: LoggingConfig{
		Level:   "info",
		Journal: true,
	},
	ProcRoot: DefaultProcRoot,
}

func (config *Config) String() string {
	buf, err := json.MarshalIndent(*config, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(buf)
}

// Context holds everything a single invocation needs besides its arguments.
type Context struct {
	Config    Config
	Log       log15.Logger
	logBuffer *bytes.Buffer
}

// NewContext creates a Context whose logger writes diagnostics to
// diagnostics. identifier names the program in the journal.
func NewContext(config Config, diagnostics io.Writer, identifier string) (*Context, error) {
	log, err := NewLogger(config.Logging, diagnostics, identifier)
	if err != nil {
		return nil, err
	}
	return &Context{
		Config: config,
		Log:    log,
	}, nil
}

// DebugContext returns a new Context with an additional handler with a more
// verbose filter (using the Debug level) and a Buffer in which all logging
// statements will be (also) written to, context included.
func (ctx *Context) DebugContext(logCtx ...interface{}) *Context {
	var buffer bytes.Buffer
	childContext := &Context{
		Config:    ctx.Config,
		Log:       ctx.Log.New(logCtx...),
		logBuffer: &buffer,
	}
	childContext.Log.SetHandler(log15.MultiHandler(
		log15.StreamHandler(&buffer, log15.LogfmtFormat()),
		ctx.Log.GetHandler(),
	))
	return childContext
}

// LogBuffer returns the contents of the logging buffer for this context.
func (ctx *Context) LogBuffer() []byte {
	if ctx.logBuffer == nil {
		return nil
	}
	return ctx.logBuffer.Bytes()
}
