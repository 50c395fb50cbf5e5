package token

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"

	"github.com/vestchain/vesting-actors/actors/builtin"
	"github.com/vestchain/vesting-actors/actors/runtime"
	"github.com/vestchain/vesting-actors/actors/util/adt"
)

// A fungible token ledger with balances and spending approvals.
type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.Transfer,
		3:                         a.Approve,
		4:                         a.TransferFrom,
		5:                         a.BalanceOf,
		6:                         a.Allowance,
	}
}

var _ runtime.Invokee = Actor{}

// Exit codes specific to the token actor.
const (
	ErrInsufficientAllowance = exitcode.FirstActorSpecificExitCode + iota
)

type ConstructorParams struct {
	Name   string
	Symbol string
	Supply abi.TokenAmount
	Owner  addr.Address
}

// Creates the token, minting the entire supply to the owner.
func (a Actor) Constructor(rt runtime.Runtime, params *ConstructorParams) *adt.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.InitActorAddr)

	if params.Owner == addr.Undef {
		rt.Abortf(exitcode.ErrIllegalArgument, "owner address is empty")
	}
	if params.Supply.LessThan(big.Zero()) {
		rt.Abortf(exitcode.ErrIllegalArgument, "supply %v must not be negative", params.Supply)
	}

	store := adt.AsStore(rt)
	st, err := ConstructState(store, params.Name, params.Symbol)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	err = st.Mint(store, params.Owner, params.Supply)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to mint supply")
	rt.State().Create(st)
	return nil
}

type TransferParams struct {
	To     addr.Address
	Amount abi.TokenAmount
}

// Moves tokens from the caller's balance to another account.
func (a Actor) Transfer(rt runtime.Runtime, params *TransferParams) *adt.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	from := rt.Message().Caller()

	validateTransfer(rt, params.To, params.Amount)

	var st State
	rt.State().Transaction(&st, func() {
		err := st.Transfer(adt.AsStore(rt), from, params.To, params.Amount)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to transfer %v from %v to %v",
			params.Amount, from, params.To)
	})

	rt.EmitEvent(&TransferEvent{From: from, To: params.To, Amount: params.Amount})
	return nil
}

type ApproveParams struct {
	Spender addr.Address
	Amount  abi.TokenAmount
}

// Grants a spender the right to move up to the given amount from the
// caller's balance, replacing any previous approval.
func (a Actor) Approve(rt runtime.Runtime, params *ApproveParams) *adt.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	owner := rt.Message().Caller()

	if params.Spender == addr.Undef {
		rt.Abortf(exitcode.ErrIllegalArgument, "spender address is empty")
	}
	if params.Amount.LessThan(big.Zero()) {
		rt.Abortf(exitcode.ErrIllegalArgument, "approval amount %v must not be negative", params.Amount)
	}

	var st State
	rt.State().Transaction(&st, func() {
		err := st.SetAllowance(adt.AsStore(rt), owner, params.Spender, params.Amount)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to approve %v for %v",
			params.Amount, params.Spender)
	})

	rt.EmitEvent(&ApprovalEvent{Owner: owner, Spender: params.Spender, Amount: params.Amount})
	return nil
}

type TransferFromParams struct {
	From   addr.Address
	To     addr.Address
	Amount abi.TokenAmount
}

// Moves tokens between two accounts on the authority of a prior approval
// from the source account to the caller. The allowance is reduced by the
// amount moved.
func (a Actor) TransferFrom(rt runtime.Runtime, params *TransferFromParams) *adt.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	spender := rt.Message().Caller()

	if params.From == addr.Undef {
		rt.Abortf(exitcode.ErrIllegalArgument, "source address is empty")
	}
	validateTransfer(rt, params.To, params.Amount)

	var st State
	rt.State().Transaction(&st, func() {
		store := adt.AsStore(rt)
		allowance, err := st.GetAllowance(store, params.From, spender)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load allowance of %v for %v",
			params.From, spender)
		if allowance.LessThan(params.Amount) {
			rt.Abortf(ErrInsufficientAllowance, "allowance %v of %v for %v is less than transfer amount %v",
				allowance, params.From, spender, params.Amount)
		}

		err = st.SetAllowance(store, params.From, spender, big.Sub(allowance, params.Amount))
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to reduce allowance of %v for %v",
			params.From, spender)
		err = st.Transfer(store, params.From, params.To, params.Amount)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to transfer %v from %v to %v",
			params.Amount, params.From, params.To)
	})

	rt.EmitEvent(&TransferEvent{From: params.From, To: params.To, Amount: params.Amount})
	return nil
}

type AddressParams struct {
	Address addr.Address
}

// Returns the balance of an account. Accounts that have never held tokens
// have a zero balance.
func (a Actor) BalanceOf(rt runtime.Runtime, params *AddressParams) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.State().Readonly(&st)

	balance, err := st.GetBalance(adt.AsStore(rt), params.Address)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load balance of %v", params.Address)
	return &balance
}

type AllowanceParams struct {
	Owner   addr.Address
	Spender addr.Address
}

// Returns the remaining approval from an owner to a spender.
func (a Actor) Allowance(rt runtime.Runtime, params *AllowanceParams) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.State().Readonly(&st)

	allowance, err := st.GetAllowance(adt.AsStore(rt), params.Owner, params.Spender)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load allowance of %v for %v",
		params.Owner, params.Spender)
	return &allowance
}

func validateTransfer(rt runtime.Runtime, to addr.Address, amount abi.TokenAmount) {
	if to == addr.Undef {
		rt.Abortf(exitcode.ErrIllegalArgument, "destination address is empty")
	}
	if amount.LessThan(big.Zero()) {
		rt.Abortf(exitcode.ErrIllegalArgument, "transfer amount %v must not be negative", amount)
	}
}

// Events emitted by the token actor.

type TransferEvent struct {
	From   addr.Address
	To     addr.Address
	Amount abi.TokenAmount
}

type ApprovalEvent struct {
	Owner   addr.Address
	Spender addr.Address
	Amount  abi.TokenAmount
}
