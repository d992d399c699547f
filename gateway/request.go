package gateway

import (
	"io"
	"strconv"

	"github.com/omegaup/gateway/common"
	"github.com/spf13/pflag"
)

// Verbosity bounds accepted by rdiff-backup.
const (
	MinVerbosity = 0
	MaxVerbosity = 9
)

// A Request is what the caller asked for, after parsing but before
// validation.
type Request struct {
	// Verbosity is nil when the flag was not given.
	Verbosity *int
	Operands  []string
}

// VerbosityArgument rebuilds the verbosity flag from the parsed integer, so
// that the caller's spelling of the number never reaches the trusted
// executable.
func (r *Request) VerbosityArgument() string {
	if r.Verbosity == nil {
		return ""
	}
	return "--verbosity=" + strconv.Itoa(*r.Verbosity)
}

// verbosityValue is a pflag.Value that remembers whether parsing failed, so
// that a malformed number can be told apart from an unknown flag without
// inspecting pflag's error text.
type verbosityValue struct {
	value   int
	set     bool
	invalid bool
}

var _ pflag.Value = &verbosityValue{}

func (v *verbosityValue) String() string {
	return strconv.Itoa(v.value)
}

func (v *verbosityValue) Set(s string) error {
	n, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		v.invalid = true
		return err
	}
	v.value = int(n)
	v.set = true
	return nil
}

func (v *verbosityValue) Type() string {
	return "int"
}

// ParseRequest parses args (without the program name). When acceptVerbosity is
// false, any flag at all is rejected. The operand count must be exactly
// operands. Every failure is a SecurityCheckError naming a static check.
func ParseRequest(args []string, acceptVerbosity bool, operands int) (*Request, error) {
	flagSet := pflag.NewFlagSet("gateway", pflag.ContinueOnError)
	// pflag's messages quote the offending argument; they must not be echoed.
	flagSet.SetOutput(io.Discard)
	flagSet.Usage = func() {}

	verbosity := &verbosityValue{}
	if acceptVerbosity {
		flagSet.VarP(verbosity, "verbosity", "v", "rdiff-backup verbosity level")
	}
	if err := flagSet.Parse(args); err != nil {
		if verbosity.invalid {
			return nil, common.NewSecurityCheckError("bad verbosity")
		}
		return nil, common.NewSecurityCheckError("bad argument(s)")
	}

	request := &Request{
		Operands: flagSet.Args(),
	}
	if verbosity.set {
		if verbosity.value < MinVerbosity || verbosity.value > MaxVerbosity {
			return nil, common.NewSecurityCheckError("bad verbosity")
		}
		value := verbosity.value
		request.Verbosity = &value
	}
	if len(request.Operands) != operands {
		return nil, common.NewSecurityCheckError("operand count")
	}
	return request, nil
}
