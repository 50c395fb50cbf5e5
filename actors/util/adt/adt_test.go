package adt_test

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/stretchr/testify/assert"

	adt "github.com/vestchain/vesting-actors/actors/util/adt"
	"github.com/vestchain/vesting-actors/support/mock"
	tutil "github.com/vestchain/vesting-actors/support/testing"
)

func TestBalanceTable(t *testing.T) {
	t.Run("absent entries read as zero", func(t *testing.T) {
		addr := tutil.NewIDAddr(t, 100)
		rt := mock.NewBuilder(context.Background(), address.Undef).Build(t)
		store := adt.AsStore(rt)
		emptyMap, err := adt.MakeEmptyMap(store)
		assert.NoError(t, err)

		bt := adt.AsBalanceTable(store, emptyMap.Root())

		has, err := bt.Has(addr)
		assert.NoError(t, err)
		assert.False(t, has)

		amount, err := bt.Get(addr)
		assert.NoError(t, err)
		assert.Equal(t, abi.NewTokenAmount(0), amount)
	})

	t.Run("AddCreate adds or creates", func(t *testing.T) {
		addr := tutil.NewIDAddr(t, 100)
		rt := mock.NewBuilder(context.Background(), address.Undef).Build(t)
		store := adt.AsStore(rt)
		emptyMap, err := adt.MakeEmptyMap(store)
		assert.NoError(t, err)

		bt := adt.AsBalanceTable(store, emptyMap.Root())

		err = bt.AddCreate(addr, abi.NewTokenAmount(10))
		assert.NoError(t, err)

		amount, err := bt.Get(addr)
		assert.NoError(t, err)
		assert.Equal(t, abi.NewTokenAmount(10), amount)

		err = bt.AddCreate(addr, abi.NewTokenAmount(20))
		assert.NoError(t, err)

		amount, err = bt.Get(addr)
		assert.NoError(t, err)
		assert.Equal(t, abi.NewTokenAmount(30), amount)

		prev, err := bt.Remove(addr)
		assert.NoError(t, err)
		assert.Equal(t, abi.NewTokenAmount(30), prev)

		has, err := bt.Has(addr)
		assert.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("SubtractWithMinimum respects the floor", func(t *testing.T) {
		addr := tutil.NewIDAddr(t, 100)
		rt := mock.NewBuilder(context.Background(), address.Undef).Build(t)
		store := adt.AsStore(rt)
		emptyMap, err := adt.MakeEmptyMap(store)
		assert.NoError(t, err)

		bt := adt.AsBalanceTable(store, emptyMap.Root())
		err = bt.AddCreate(addr, abi.NewTokenAmount(100))
		assert.NoError(t, err)

		sub, err := bt.SubtractWithMinimum(addr, abi.NewTokenAmount(80), abi.NewTokenAmount(50))
		assert.NoError(t, err)
		assert.Equal(t, abi.NewTokenAmount(50), sub)

		amount, err := bt.Get(addr)
		assert.NoError(t, err)
		assert.Equal(t, abi.NewTokenAmount(50), amount)
	})
}

func TestArray(t *testing.T) {
	t.Run("set and get round-trip", func(t *testing.T) {
		rt := mock.NewBuilder(context.Background(), address.Undef).Build(t)
		store := adt.AsStore(rt)
		arr, err := adt.MakeEmptyArray(store)
		assert.NoError(t, err)

		value := abi.NewTokenAmount(42)
		err = arr.Set(7, &value)
		assert.NoError(t, err)

		var out abi.TokenAmount
		found, err := arr.Get(7, &out)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, value, out)

		found, err = arr.Get(8, &out)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("append writes past the last index", func(t *testing.T) {
		rt := mock.NewBuilder(context.Background(), address.Undef).Build(t)
		store := adt.AsStore(rt)
		arr, err := adt.MakeEmptyArray(store)
		assert.NoError(t, err)

		for i := int64(0); i < 3; i++ {
			value := abi.NewTokenAmount(i)
			assert.NoError(t, arr.Append(&value))
		}

		length, err := arr.Length()
		assert.NoError(t, err)
		assert.Equal(t, uint64(3), length)

		var out abi.TokenAmount
		found, err := arr.Get(2, &out)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, abi.NewTokenAmount(2), out)
	})

	t.Run("delete removes an entry", func(t *testing.T) {
		rt := mock.NewBuilder(context.Background(), address.Undef).Build(t)
		store := adt.AsStore(rt)
		arr, err := adt.MakeEmptyArray(store)
		assert.NoError(t, err)

		value := abi.NewTokenAmount(1)
		assert.NoError(t, arr.Set(0, &value))
		assert.NoError(t, arr.Delete(0))

		var out abi.TokenAmount
		found, err := arr.Get(0, &out)
		assert.NoError(t, err)
		assert.False(t, found)
	})
}

func TestMap(t *testing.T) {
	t.Run("put, get and collect keys", func(t *testing.T) {
		addr1 := tutil.NewIDAddr(t, 101)
		addr2 := tutil.NewIDAddr(t, 102)
		rt := mock.NewBuilder(context.Background(), address.Undef).Build(t)
		store := adt.AsStore(rt)
		m, err := adt.MakeEmptyMap(store)
		assert.NoError(t, err)

		v1 := abi.NewTokenAmount(1)
		v2 := abi.NewTokenAmount(2)
		assert.NoError(t, m.Put(abi.AddrKey(addr1), &v1))
		assert.NoError(t, m.Put(abi.AddrKey(addr2), &v2))

		var out abi.TokenAmount
		found, err := m.Get(abi.AddrKey(addr1), &out)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, v1, out)

		keys, err := m.CollectKeys()
		assert.NoError(t, err)
		assert.Len(t, keys, 2)
	})
}
