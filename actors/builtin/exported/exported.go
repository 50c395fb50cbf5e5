package exported

import (
	"github.com/vestchain/vesting-actors/actors/builtin/account"
	"github.com/vestchain/vesting-actors/actors/builtin/token"
	"github.com/vestchain/vesting-actors/actors/builtin/vesting"
	"github.com/vestchain/vesting-actors/actors/runtime"
)

func BuiltinActors() []runtime.Invokee {
	return []runtime.Invokee{
		account.Actor{},
		token.Actor{},
		vesting.Actor{},
	}
}
