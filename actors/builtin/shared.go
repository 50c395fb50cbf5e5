package builtin

import (
	"github.com/filecoin-project/go-state-types/exitcode"

	"github.com/vestchain/vesting-actors/actors/runtime"
)

///// Code shared by multiple built-in actors. /////

// Propagates a failed send by aborting the current method with the same exit code.
func RequireSuccess(rt runtime.Runtime, e exitcode.ExitCode, msg string, args ...interface{}) {
	if !e.IsSuccess() {
		rt.Abortf(e, msg, args...)
	}
}

// Aborts with a formatted message if err is not nil.
// The provided exit code is used unless the error carries its own code
// (see exitcode.Unwrap), in which case the carried code takes precedence.
func RequireNoErr(rt runtime.Runtime, err error, defaultExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	if err != nil {
		code := exitcode.Unwrap(err, defaultExitCode)
		rt.Abortf(code, msg+": %s", append(args, err)...)
	}
}
