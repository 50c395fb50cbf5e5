package token

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	cid "github.com/ipfs/go-cid"
	errors "github.com/pkg/errors"

	"github.com/vestchain/vesting-actors/actors/util/adt"
)

type State struct {
	// Display metadata, fixed at construction.
	Name   string
	Symbol string

	// Total number of token units in existence.
	TotalSupply abi.TokenAmount

	// Balance table (HAMT[address]TokenAmount). Absent entries are zero.
	Balances cid.Cid

	// Spending approvals (HAMT[owner ++ spender]TokenAmount).
	Allowances cid.Cid
}

func ConstructState(store adt.Store, name string, symbol string) (*State, error) {
	emptyBalances, err := adt.MakeEmptyMap(store)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create empty balances map")
	}
	emptyAllowances, err := adt.MakeEmptyMap(store)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create empty allowances map")
	}

	return &State{
		Name:        name,
		Symbol:      symbol,
		TotalSupply: big.Zero(),
		Balances:    emptyBalances.Root(),
		Allowances:  emptyAllowances.Root(),
	}, nil
}

// A key in the allowances map. Address byte encodings are self-delimiting,
// so plain concatenation is unambiguous.
type allowanceKey struct {
	owner   addr.Address
	spender addr.Address
}

func (k allowanceKey) Key() string {
	return string(k.owner.Bytes()) + string(k.spender.Bytes())
}

func (st *State) GetBalance(store adt.Store, owner addr.Address) (abi.TokenAmount, error) {
	balances := adt.AsBalanceTable(store, st.Balances)
	return balances.Get(owner)
}

// Creates new tokens in an account, growing the total supply.
func (st *State) Mint(store adt.Store, to addr.Address, amount abi.TokenAmount) error {
	balances := adt.AsBalanceTable(store, st.Balances)
	if err := balances.AddCreate(to, amount); err != nil {
		return errors.Wrapf(err, "failed to credit %v", to)
	}
	st.Balances = balances.Root()
	st.TotalSupply = big.Add(st.TotalSupply, amount)
	return nil
}

// Moves tokens between accounts, failing if the source balance is insufficient.
func (st *State) Transfer(store adt.Store, from addr.Address, to addr.Address, amount abi.TokenAmount) error {
	balances := adt.AsBalanceTable(store, st.Balances)
	fromBalance, err := balances.Get(from)
	if err != nil {
		return errors.Wrapf(err, "failed to load balance of %v", from)
	}
	if fromBalance.LessThan(amount) {
		return exitcode.ErrInsufficientFunds.Wrapf("balance %v of %v is less than transfer amount %v",
			fromBalance, from, amount)
	}
	if err := balances.Set(from, big.Sub(fromBalance, amount)); err != nil {
		return errors.Wrapf(err, "failed to debit %v", from)
	}
	if err := balances.AddCreate(to, amount); err != nil {
		return errors.Wrapf(err, "failed to credit %v", to)
	}
	st.Balances = balances.Root()
	return nil
}

func (st *State) GetAllowance(store adt.Store, owner addr.Address, spender addr.Address) (abi.TokenAmount, error) {
	allowances := adt.AsMap(store, st.Allowances)
	var amount abi.TokenAmount
	found, err := allowances.Get(allowanceKey{owner, spender}, &amount)
	if err != nil {
		return big.Zero(), errors.Wrapf(err, "failed to load allowance of %v for %v", owner, spender)
	}
	if !found {
		amount = big.Zero()
	}
	return amount, nil
}

// Sets the allowance of a spender over an owner's balance, overwriting any
// previous value.
func (st *State) SetAllowance(store adt.Store, owner addr.Address, spender addr.Address, amount abi.TokenAmount) error {
	allowances := adt.AsMap(store, st.Allowances)
	if amount.Sign() == 0 {
		if has, err := allowances.Has(allowanceKey{owner, spender}); err != nil {
			return errors.Wrapf(err, "failed to check allowance of %v for %v", owner, spender)
		} else if has {
			if err := allowances.Delete(allowanceKey{owner, spender}); err != nil {
				return errors.Wrapf(err, "failed to clear allowance of %v for %v", owner, spender)
			}
		}
	} else {
		if err := allowances.Put(allowanceKey{owner, spender}, &amount); err != nil {
			return errors.Wrapf(err, "failed to store allowance of %v for %v", owner, spender)
		}
	}
	st.Allowances = allowances.Root()
	return nil
}
