package mock

import (
	"reflect"
	"testing"

	"github.com/vestchain/vesting-actors/actors/runtime"
)

// Checks that every exported actor method has the expected signature:
// func(Runtime, *params) *ret, with CBOR-serializable params and return.
func CheckActorExports(t *testing.T, act runtime.Invokee) {
	for i, m := range act.Exports() {
		if i == 0 || m == nil { // method 0 is the implicit value send
			continue
		}
		rt := &Runtime{t: t}
		rt.verifyExportedMethodType(reflect.ValueOf(m))
	}
}
