package builtin

import (
	"github.com/filecoin-project/go-state-types/abi"
)

const (
	MethodSend        = abi.MethodNum(0)
	MethodConstructor = abi.MethodNum(1)
)

type accountMethods struct {
	Constructor   abi.MethodNum
	PubkeyAddress abi.MethodNum
}

var MethodsAccount = accountMethods{MethodConstructor, 2}

type tokenMethods struct {
	Constructor  abi.MethodNum
	Transfer     abi.MethodNum
	Approve      abi.MethodNum
	TransferFrom abi.MethodNum
	BalanceOf    abi.MethodNum
	Allowance    abi.MethodNum
}

var MethodsToken = tokenMethods{MethodConstructor, 2, 3, 4, 5, 6}

type vestingMethods struct {
	Constructor        abi.MethodNum
	CreateSchedule     abi.MethodNum
	Claim              abi.MethodNum
	Revoke             abi.MethodNum
	Pause              abi.MethodNum
	Unpause            abi.MethodNum
	GetVestedAmount    abi.MethodNum
	GetClaimableAmount abi.MethodNum
}

var MethodsVesting = vestingMethods{MethodConstructor, 2, 3, 4, 5, 6, 7, 8}
