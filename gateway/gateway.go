package gateway

import (
	"io"
	"os"

	"github.com/omegaup/gateway/common"
)

// A Gateway describes one privileged wrapper: which executable it may launch,
// with which environment, and what the caller is allowed to ask for.
type Gateway struct {
	// Name identifies the gateway in the audit log.
	Name string

	// TrustedPath is the only environment variable the launched executable
	// sees, as PATH.
	TrustedPath string

	// Executable is the absolute path of the trusted executable or, when
	// InstallRelative is set, its file name next to the gateway's own binary.
	Executable      string
	InstallRelative bool

	// AcceptVerbosity enables the --verbosity flag.
	AcceptVerbosity bool

	// AllowList, when not nil, makes the gateway require a source and a
	// destination operand that match one of its entries. A nil AllowList
	// means no operands are accepted.
	AllowList AllowList

	// Config overrides common.DefaultConfig when not nil.
	Config *common.Config
}

func (g *Gateway) operands() int {
	if g.AllowList == nil {
		return 0
	}
	return 2
}

// Main runs one invocation end to end and returns the exit status. args is the
// complete argument vector, program name included; only its tail is
// inspected. The environment is sanitized before anything else happens.
func (g *Gateway) Main(args []string, diagnostics io.Writer, execer Execer) int {
	if err := common.SanitizeEnvironment(g.TrustedPath); err != nil {
		io.WriteString(diagnostics, "ERROR: Cannot allocate memory\n")
		return common.ExitResource
	}

	config := common.DefaultConfig
	if g.Config != nil {
		config = *g.Config
	}
	ctx, err := common.NewContext(config, diagnostics, g.Name)
	if err != nil {
		io.WriteString(diagnostics, "ERROR: Security check failed: logging configuration\n")
		return common.ExitSecurityCheck
	}

	if err := g.Run(ctx, args, execer); err != nil {
		common.Diagnose(ctx.Log, err)
		return common.ExitCode(err)
	}
	return 0
}

// Run parses, validates and launches. The environment must already be
// sanitized. It only returns when the invocation is rejected or the launch
// fails; a successful launch never comes back except through fake Execers.
func (g *Gateway) Run(ctx *common.Context, args []string, execer Execer) error {
	// An empty argument vector is possible through execve(2) and must not
	// shift the operands.
	if len(args) < 1 {
		return common.NewSecurityCheckError("argc >= 1")
	}

	path := g.Executable
	if g.InstallRelative {
		var err error
		path, err = common.ResolveSibling(ctx.Config.ProcRoot, g.Executable)
		if err != nil {
			return err
		}
	}

	request, err := ParseRequest(args[1:], g.AcceptVerbosity, g.operands())
	if err != nil {
		ctx.Log.Warn("request rejected", "uid", os.Getuid(), "stage", "parse")
		return err
	}

	var literals []string
	if g.AllowList != nil {
		verdict := g.AllowList.Match(request.Operands[0], request.Operands[1])
		if !verdict.Valid {
			ctx.Log.Warn("request rejected", "uid", os.Getuid(), "stage", "validate")
			return common.NewSecurityCheckError("invalid source directory")
		}
		literals = []string{verdict.Entry.Source, verdict.Entry.Destination}
		ctx.Log.Info(
			"request authorized",
			"uid", os.Getuid(),
			"entry", verdict.Index,
			"source", verdict.Entry.Source,
			"destination", verdict.Entry.Destination,
		)
	}

	launcher := &Launcher{
		Execer: execer,
		Env:    common.Environment(g.TrustedPath),
	}
	argv := Argv(path, request, literals...)
	ctx.Log.Info("launching", "path", path)
	return launcher.Launch(path, argv)
}
