package adt

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"
)

// A specialization of a map of addresses to token amounts.
// Absent keys are implicitly zero.
type BalanceTable Map

// Interprets a store as balance table with root `r`.
func AsBalanceTable(s Store, r cid.Cid) *BalanceTable {
	return &BalanceTable{
		root:  r,
		store: s,
	}
}

// Returns the root cid of underlying HAMT.
func (t *BalanceTable) Root() cid.Cid {
	return t.root
}

// Gets the balance for a key, which is zero if they have never been added to.
func (t *BalanceTable) Get(key addr.Address) (abi.TokenAmount, error) {
	var value abi.TokenAmount
	found, err := (*Map)(t).Get(abi.AddrKey(key), &value)
	if err != nil {
		return big.Zero(), err // The errors from Map carry good information, no need to wrap here.
	}
	if !found {
		value = big.Zero()
	}
	return value, nil
}

// Checks whether an entry exists for a key.
func (t *BalanceTable) Has(key addr.Address) (bool, error) {
	return (*Map)(t).Has(abi.AddrKey(key))
}

// Sets the balance for an address, overwriting any previous balance.
func (t *BalanceTable) Set(key addr.Address, value abi.TokenAmount) error {
	return (*Map)(t).Put(abi.AddrKey(key), &value)
}

// Adds an amount to a balance, creating the entry if it doesn't already exist.
func (t *BalanceTable) AddCreate(key addr.Address, value abi.TokenAmount) error {
	prev, err := t.Get(key)
	if err != nil {
		return err
	}
	sum := big.Add(prev, value)
	return (*Map)(t).Put(abi.AddrKey(key), &sum)
}

// Subtracts up to the specified amount from a balance, without reducing the balance below some minimum.
// Returns the amount subtracted (always positive or zero).
func (t *BalanceTable) SubtractWithMinimum(key addr.Address, req abi.TokenAmount, floor abi.TokenAmount) (abi.TokenAmount, error) {
	prev, err := t.Get(key)
	if err != nil {
		return big.Zero(), err
	}
	available := big.Max(big.Zero(), big.Sub(prev, floor))
	sub := big.Min(available, req)
	if sub.Sign() > 0 {
		err = t.AddCreate(key, sub.Neg())
		if err != nil {
			return big.Zero(), err
		}
	}
	return sub, nil
}

// Removes an entry from the table, returning the prior value (which may be zero).
func (t *BalanceTable) Remove(key addr.Address) (abi.TokenAmount, error) {
	prev, err := t.Get(key)
	if err != nil {
		return big.Zero(), err
	}
	err = (*Map)(t).Delete(abi.AddrKey(key))
	if err != nil {
		return big.Zero(), err
	}
	return prev, nil
}
