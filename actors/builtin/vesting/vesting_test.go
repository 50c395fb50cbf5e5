package vesting_test

import (
	"context"
	"strings"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestchain/vesting-actors/actors/builtin"
	"github.com/vestchain/vesting-actors/actors/builtin/token"
	"github.com/vestchain/vesting-actors/actors/builtin/vesting"
	"github.com/vestchain/vesting-actors/actors/util/adt"
	"github.com/vestchain/vesting-actors/support/mock"
	tutil "github.com/vestchain/vesting-actors/support/testing"
)

const day = abi.ChainEpoch(24 * 60 * 60)

func TestExports(t *testing.T) {
	mock.CheckActorExports(t, vesting.Actor{})
}

func TestConstruction(t *testing.T) {
	receiver := tutil.NewIDAddr(t, 100)
	tokenActor := tutil.NewIDAddr(t, 80)
	admin := tutil.NewIDAddr(t, 101)

	actor := vesting.Actor{}
	builder := mock.NewBuilder(context.Background(), receiver).
		WithCaller(builtin.InitActorAddr, builtin.InitActorCodeID)

	t.Run("simple construction", func(t *testing.T) {
		rt := builder.Build(t)
		rt.ExpectValidateCallerAddr(builtin.InitActorAddr)
		ret := rt.Call(actor.Constructor, &vesting.ConstructorParams{Token: tokenActor, Admin: admin})
		assert.Nil(t, ret.(*adt.EmptyValue))
		rt.Verify()

		var st vesting.State
		rt.GetState(&st)
		assert.Equal(t, tokenActor, st.Token)
		assert.Equal(t, admin, st.Admin)
		assert.False(t, st.Paused)
		assert.Equal(t, vesting.ScheduleID(0), st.NextScheduleID)
		assert.Equal(t, big.Zero(), st.TotalCustody)
	})

	t.Run("fails with empty token address", func(t *testing.T) {
		rt := builder.Build(t)
		rt.ExpectValidateCallerAddr(builtin.InitActorAddr)
		rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
			rt.Call(actor.Constructor, &vesting.ConstructorParams{Token: addr.Undef, Admin: admin})
		})
		rt.Verify()
	})

	t.Run("fails with empty admin address", func(t *testing.T) {
		rt := builder.Build(t)
		rt.ExpectValidateCallerAddr(builtin.InitActorAddr)
		rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
			rt.Call(actor.Constructor, &vesting.ConstructorParams{Token: tokenActor, Admin: addr.Undef})
		})
		rt.Verify()
	})

	t.Run("fails when caller is not the init actor", func(t *testing.T) {
		rt := builder.WithCaller(admin, builtin.AccountActorCodeID).Build(t)
		rt.ExpectValidateCallerAddr(builtin.InitActorAddr)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(actor.Constructor, &vesting.ConstructorParams{Token: tokenActor, Admin: admin})
		})
		rt.Verify()
	})
}

func TestCreateSchedule(t *testing.T) {
	h := newHarness(t)

	t.Run("creates a schedule and takes custody", func(t *testing.T) {
		rt := h.builder(t).WithEpoch(1000).Build(t)
		h.constructAndVerify(rt)

		amount := abi.NewTokenAmount(1000)
		id := h.createSchedule(rt, h.beneficiary, amount, 90*day, 365*day, true)
		assert.Equal(t, vesting.ScheduleID(0), id)

		var st vesting.State
		rt.GetState(&st)
		assert.Equal(t, vesting.ScheduleID(1), st.NextScheduleID)
		assert.Equal(t, amount, st.TotalCustody)

		schedule, found, err := st.GetSchedule(adt.AsStore(rt), id)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, h.beneficiary, schedule.Beneficiary)
		assert.Equal(t, amount, schedule.TotalAmount)
		assert.Equal(t, big.Zero(), schedule.ReleasedAmount)
		assert.Equal(t, abi.ChainEpoch(1000), schedule.StartTime)
		assert.Equal(t, 90*day, schedule.CliffDuration)
		assert.Equal(t, 365*day, schedule.VestingDuration)
		assert.True(t, schedule.Revocable)
		assert.False(t, schedule.Revoked)

		h.checkState(rt)
	})

	t.Run("the creation event carries the full schedule definition", func(t *testing.T) {
		rt := h.builder(t).WithEpoch(2000).Build(t)
		h.constructAndVerify(rt)

		amount := abi.NewTokenAmount(750)
		id := h.createSchedule(rt, h.beneficiary, amount, 30*day, 180*day, true)

		events := rt.EmittedEvents()
		require.Len(t, events, 1)
		created, ok := events[0].(*vesting.ScheduleCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, id, created.ID)
		assert.Equal(t, h.beneficiary, created.Beneficiary)
		assert.Equal(t, amount, created.TotalAmount)
		assert.Equal(t, abi.ChainEpoch(2000), created.StartTime)
		assert.Equal(t, 30*day, created.CliffDuration)
		assert.Equal(t, 180*day, created.VestingDuration)
		assert.True(t, created.Revocable)
	})

	t.Run("assigns sequential ids", func(t *testing.T) {
		rt := h.builder(t).Build(t)
		h.constructAndVerify(rt)

		id0 := h.createSchedule(rt, h.beneficiary, abi.NewTokenAmount(100), 0, 100*day, true)
		id1 := h.createSchedule(rt, h.beneficiary, abi.NewTokenAmount(200), 0, 100*day, false)
		assert.Equal(t, vesting.ScheduleID(0), id0)
		assert.Equal(t, vesting.ScheduleID(1), id1)

		var st vesting.State
		rt.GetState(&st)
		assert.Equal(t, abi.NewTokenAmount(300), st.TotalCustody)
		h.checkState(rt)
	})

	t.Run("fails with empty beneficiary", func(t *testing.T) {
		rt := h.builder(t).Build(t)
		h.constructAndVerify(rt)
		h.expectCreateAbort(rt, vesting.ErrInvalidBeneficiary, &vesting.CreateScheduleParams{
			Beneficiary:     addr.Undef,
			Amount:          abi.NewTokenAmount(100),
			VestingDuration: 100 * day,
		})
	})

	t.Run("fails with zero or negative amount", func(t *testing.T) {
		rt := h.builder(t).Build(t)
		h.constructAndVerify(rt)
		h.expectCreateAbort(rt, vesting.ErrInvalidAmount, &vesting.CreateScheduleParams{
			Beneficiary:     h.beneficiary,
			Amount:          big.Zero(),
			VestingDuration: 100 * day,
		})
		h.expectCreateAbort(rt, vesting.ErrInvalidAmount, &vesting.CreateScheduleParams{
			Beneficiary:     h.beneficiary,
			Amount:          abi.NewTokenAmount(-1),
			VestingDuration: 100 * day,
		})
	})

	t.Run("fails with non-positive duration", func(t *testing.T) {
		rt := h.builder(t).Build(t)
		h.constructAndVerify(rt)
		h.expectCreateAbort(rt, vesting.ErrInvalidDuration, &vesting.CreateScheduleParams{
			Beneficiary:     h.beneficiary,
			Amount:          abi.NewTokenAmount(100),
			VestingDuration: 0,
		})
		h.expectCreateAbort(rt, vesting.ErrInvalidDuration, &vesting.CreateScheduleParams{
			Beneficiary:     h.beneficiary,
			Amount:          abi.NewTokenAmount(100),
			CliffDuration:   -1 * day,
			VestingDuration: 100 * day,
		})
	})

	t.Run("fails when cliff exceeds duration", func(t *testing.T) {
		rt := h.builder(t).Build(t)
		h.constructAndVerify(rt)
		h.expectCreateAbort(rt, vesting.ErrCliffExceedsDuration, &vesting.CreateScheduleParams{
			Beneficiary:     h.beneficiary,
			Amount:          abi.NewTokenAmount(100),
			CliffDuration:   101 * day,
			VestingDuration: 100 * day,
		})
	})

	t.Run("fails when caller is not the admin", func(t *testing.T) {
		rt := h.builder(t).Build(t)
		h.constructAndVerify(rt)

		stranger := tutil.NewIDAddr(t, 555)
		rt.SetCaller(stranger, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAddr(h.admin)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(h.CreateSchedule, &vesting.CreateScheduleParams{
				Beneficiary:     h.beneficiary,
				Amount:          abi.NewTokenAmount(100),
				VestingDuration: 100 * day,
			})
		})
		rt.Verify()
	})

	t.Run("fails while paused", func(t *testing.T) {
		rt := h.builder(t).Build(t)
		h.constructAndVerify(rt)
		h.pause(rt)
		h.expectCreateAbort(rt, vesting.ErrPaused, &vesting.CreateScheduleParams{
			Beneficiary:     h.beneficiary,
			Amount:          abi.NewTokenAmount(100),
			VestingDuration: 100 * day,
		})
	})

	t.Run("propagates a failed custody transfer", func(t *testing.T) {
		rt := h.builder(t).Build(t)
		h.constructAndVerify(rt)

		amount := abi.NewTokenAmount(100)
		rt.SetCaller(h.admin, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAddr(h.admin)
		rt.ExpectSend(h.token, builtin.MethodsToken.TransferFrom, &token.TransferFromParams{
			From:   h.admin,
			To:     h.receiver,
			Amount: amount,
		}, big.Zero(), nil, exitcode.ErrInsufficientFunds)
		rt.ExpectAbort(exitcode.ErrInsufficientFunds, func() {
			rt.Call(h.CreateSchedule, &vesting.CreateScheduleParams{
				Beneficiary:     h.beneficiary,
				Amount:          amount,
				VestingDuration: 100 * day,
			})
		})
		rt.Verify()

		var st vesting.State
		rt.GetState(&st)
		assert.Equal(t, vesting.ScheduleID(0), st.NextScheduleID)
		assert.Equal(t, big.Zero(), st.TotalCustody)
	})
}

func TestVestedAmount(t *testing.T) {
	h := newHarness(t)
	start := abi.ChainEpoch(1000)
	amount := abi.NewTokenAmount(1000)

	setup := func(t *testing.T) (*mock.Runtime, vesting.ScheduleID) {
		rt := h.builder(t).WithEpoch(start).Build(t)
		h.constructAndVerify(rt)
		id := h.createSchedule(rt, h.beneficiary, amount, 90*day, 365*day, true)
		return rt, id
	}

	t.Run("nothing vests before the cliff", func(t *testing.T) {
		rt, id := setup(t)
		rt.SetEpoch(start)
		assert.Equal(t, big.Zero(), h.getVested(rt, id))
		rt.SetEpoch(start + 90*day - 1)
		assert.Equal(t, big.Zero(), h.getVested(rt, id))
	})

	t.Run("the accrued linear amount unlocks at the cliff", func(t *testing.T) {
		rt, id := setup(t)
		rt.SetEpoch(start + 90*day)
		// 1000 * 90/365, rounded down
		assert.Equal(t, abi.NewTokenAmount(246), h.getVested(rt, id))
	})

	t.Run("vesting is linear between cliff and maturity", func(t *testing.T) {
		rt, id := setup(t)
		rt.SetEpoch(start + 146*day)
		// 1000 * 146/365 = 400 exactly
		assert.Equal(t, abi.NewTokenAmount(400), h.getVested(rt, id))
	})

	t.Run("the full amount vests at maturity and after", func(t *testing.T) {
		rt, id := setup(t)
		rt.SetEpoch(start + 365*day)
		assert.Equal(t, amount, h.getVested(rt, id))
		rt.SetEpoch(start + 1000*day)
		assert.Equal(t, amount, h.getVested(rt, id))
	})

	t.Run("vested amount never decreases", func(t *testing.T) {
		rt, id := setup(t)
		prev := big.Zero()
		for e := start; e <= start+400*day; e += 10 * day {
			rt.SetEpoch(e)
			vested := h.getVested(rt, id)
			assert.True(t, vested.GreaterThanEqual(prev), "vested %v decreased below %v at epoch %d", vested, prev, e)
			prev = vested
		}
	})

	t.Run("queries are read-only", func(t *testing.T) {
		rt, id := setup(t)
		rt.SetEpoch(start + 100*day)
		first := h.getVested(rt, id)
		second := h.getVested(rt, id)
		assert.Equal(t, first, second)
		h.checkState(rt)
	})

	t.Run("fails for unknown schedule", func(t *testing.T) {
		rt, _ := setup(t)
		rt.ExpectValidateCallerAny()
		rt.ExpectAbort(vesting.ErrScheduleNotFound, func() {
			rt.Call(h.GetVestedAmount, &vesting.ScheduleIDParams{ID: 99})
		})
		rt.Verify()
	})
}

func TestClaim(t *testing.T) {
	h := newHarness(t)
	start := abi.ChainEpoch(0)
	amount := abi.NewTokenAmount(1000)

	setup := func(t *testing.T) (*mock.Runtime, vesting.ScheduleID) {
		rt := h.builder(t).WithEpoch(start).Build(t)
		h.constructAndVerify(rt)
		id := h.createSchedule(rt, h.beneficiary, amount, 90*day, 365*day, true)
		return rt, id
	}

	t.Run("fails before the cliff", func(t *testing.T) {
		rt, id := setup(t)
		rt.SetEpoch(start + 89*day)
		h.expectClaimAbort(rt, h.beneficiary, id, vesting.ErrNothingToClaim)
	})

	t.Run("claims the vested amount after the cliff", func(t *testing.T) {
		rt, id := setup(t)
		rt.SetEpoch(start + 146*day)
		claimed := h.claim(rt, h.beneficiary, id, abi.NewTokenAmount(400))
		assert.Equal(t, abi.NewTokenAmount(400), claimed)

		var st vesting.State
		rt.GetState(&st)
		assert.Equal(t, abi.NewTokenAmount(600), st.TotalCustody)
		schedule, found, err := st.GetSchedule(adt.AsStore(rt), id)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, abi.NewTokenAmount(400), schedule.ReleasedAmount)
		h.checkState(rt)
	})

	t.Run("claiming twice at the same epoch fails the second time", func(t *testing.T) {
		rt, id := setup(t)
		rt.SetEpoch(start + 146*day)
		h.claim(rt, h.beneficiary, id, abi.NewTokenAmount(400))
		h.expectClaimAbort(rt, h.beneficiary, id, vesting.ErrNothingToClaim)
		h.checkState(rt)
	})

	t.Run("incremental claims sum to the total at maturity", func(t *testing.T) {
		rt, id := setup(t)
		rt.SetEpoch(start + 146*day)
		first := h.claim(rt, h.beneficiary, id, abi.NewTokenAmount(400))
		rt.SetEpoch(start + 365*day)
		second := h.claim(rt, h.beneficiary, id, abi.NewTokenAmount(600))
		assert.Equal(t, amount, big.Add(first, second))

		var st vesting.State
		rt.GetState(&st)
		assert.Equal(t, big.Zero(), st.TotalCustody)
		h.checkState(rt)
	})

	t.Run("fails for a non-beneficiary caller", func(t *testing.T) {
		rt, id := setup(t)
		rt.SetEpoch(start + 146*day)
		stranger := tutil.NewIDAddr(t, 555)
		h.expectClaimAbort(rt, stranger, id, vesting.ErrNotBeneficiary)
	})

	t.Run("fails for unknown schedule", func(t *testing.T) {
		rt, _ := setup(t)
		h.expectClaimAbort(rt, h.beneficiary, 99, vesting.ErrScheduleNotFound)
	})

	t.Run("fails while paused, even for unknown schedules", func(t *testing.T) {
		rt, id := setup(t)
		rt.SetEpoch(start + 146*day)
		h.pause(rt)
		h.expectClaimAbort(rt, h.beneficiary, id, vesting.ErrPaused)
		h.expectClaimAbort(rt, h.beneficiary, 99, vesting.ErrPaused)
	})

	t.Run("succeeds again after unpause", func(t *testing.T) {
		rt, id := setup(t)
		rt.SetEpoch(start + 146*day)
		h.pause(rt)
		h.expectClaimAbort(rt, h.beneficiary, id, vesting.ErrPaused)
		h.unpause(rt)
		h.claim(rt, h.beneficiary, id, abi.NewTokenAmount(400))
		h.checkState(rt)
	})
}

func TestRevoke(t *testing.T) {
	h := newHarness(t)
	amount := abi.NewTokenAmount(1000)

	// No cliff, 100 day duration: half vests by day 50.
	setup := func(t *testing.T, revocable bool) (*mock.Runtime, vesting.ScheduleID) {
		rt := h.builder(t).WithEpoch(0).Build(t)
		h.constructAndVerify(rt)
		id := h.createSchedule(rt, h.beneficiary, amount, 0, 100*day, revocable)
		return rt, id
	}

	t.Run("refunds the unvested portion to the admin", func(t *testing.T) {
		rt, id := setup(t, true)
		rt.SetEpoch(50 * day)
		refunded := h.revoke(rt, id, abi.NewTokenAmount(500))
		assert.Equal(t, abi.NewTokenAmount(500), refunded)

		var st vesting.State
		rt.GetState(&st)
		assert.Equal(t, abi.NewTokenAmount(500), st.TotalCustody)
		schedule, found, err := st.GetSchedule(adt.AsStore(rt), id)
		require.NoError(t, err)
		require.True(t, found)
		assert.True(t, schedule.Revoked)
		assert.Equal(t, abi.NewTokenAmount(500), schedule.TotalAmount)
		h.checkState(rt)
	})

	t.Run("the vested remainder stays claimable after revocation", func(t *testing.T) {
		rt, id := setup(t, true)
		rt.SetEpoch(50 * day)
		h.revoke(rt, id, abi.NewTokenAmount(500))

		// Much later, only the frozen vested amount is claimable.
		rt.SetEpoch(200 * day)
		assert.Equal(t, abi.NewTokenAmount(500), h.getVested(rt, id))
		claimed := h.claim(rt, h.beneficiary, id, abi.NewTokenAmount(500))
		assert.Equal(t, abi.NewTokenAmount(500), claimed)

		var st vesting.State
		rt.GetState(&st)
		assert.Equal(t, big.Zero(), st.TotalCustody)
		h.checkState(rt)
	})

	t.Run("claimed-then-revoked amounts balance to the total", func(t *testing.T) {
		rt, id := setup(t, true)
		rt.SetEpoch(50 * day)
		claimed := h.claim(rt, h.beneficiary, id, abi.NewTokenAmount(500))
		refunded := h.revoke(rt, id, abi.NewTokenAmount(500))
		assert.Equal(t, amount, big.Add(claimed, refunded))
		h.checkState(rt)
	})

	t.Run("fails for a non-revocable schedule", func(t *testing.T) {
		rt, id := setup(t, false)
		rt.SetEpoch(50 * day)
		h.expectRevokeAbort(rt, id, vesting.ErrNotRevocable)
	})

	t.Run("fails when already revoked", func(t *testing.T) {
		rt, id := setup(t, true)
		rt.SetEpoch(50 * day)
		h.revoke(rt, id, abi.NewTokenAmount(500))
		h.expectRevokeAbort(rt, id, vesting.ErrAlreadyRevoked)
	})

	t.Run("fails when fully vested", func(t *testing.T) {
		rt, id := setup(t, true)
		rt.SetEpoch(100 * day)
		h.expectRevokeAbort(rt, id, vesting.ErrNothingToRevoke)
	})

	t.Run("fails for unknown schedule", func(t *testing.T) {
		rt, _ := setup(t, true)
		h.expectRevokeAbort(rt, 99, vesting.ErrScheduleNotFound)
	})

	t.Run("fails when caller is not the admin", func(t *testing.T) {
		rt, id := setup(t, true)
		rt.SetEpoch(50 * day)
		stranger := tutil.NewIDAddr(t, 555)
		rt.SetCaller(stranger, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAddr(h.admin)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(h.Revoke, &vesting.ScheduleIDParams{ID: id})
		})
		rt.Verify()
	})

	t.Run("revocation is permitted while paused", func(t *testing.T) {
		rt, id := setup(t, true)
		rt.SetEpoch(50 * day)
		h.pause(rt)
		refunded := h.revoke(rt, id, abi.NewTokenAmount(500))
		assert.Equal(t, abi.NewTokenAmount(500), refunded)
		h.checkState(rt)
	})
}

func TestPause(t *testing.T) {
	h := newHarness(t)

	t.Run("pause and unpause flip the flag", func(t *testing.T) {
		rt := h.builder(t).Build(t)
		h.constructAndVerify(rt)

		h.pause(rt)
		var st vesting.State
		rt.GetState(&st)
		assert.True(t, st.Paused)

		h.unpause(rt)
		rt.GetState(&st)
		assert.False(t, st.Paused)
	})

	t.Run("pausing twice is a no-op", func(t *testing.T) {
		rt := h.builder(t).Build(t)
		h.constructAndVerify(rt)
		h.pause(rt)
		h.pause(rt)

		var st vesting.State
		rt.GetState(&st)
		assert.True(t, st.Paused)
	})

	t.Run("queries remain available while paused", func(t *testing.T) {
		rt := h.builder(t).WithEpoch(0).Build(t)
		h.constructAndVerify(rt)
		id := h.createSchedule(rt, h.beneficiary, abi.NewTokenAmount(1000), 0, 100*day, true)
		h.pause(rt)

		rt.SetEpoch(50 * day)
		assert.Equal(t, abi.NewTokenAmount(500), h.getVested(rt, id))
		assert.Equal(t, abi.NewTokenAmount(500), h.getClaimable(rt, id))
	})

	t.Run("fails when caller is not the admin", func(t *testing.T) {
		rt := h.builder(t).Build(t)
		h.constructAndVerify(rt)

		stranger := tutil.NewIDAddr(t, 555)
		rt.SetCaller(stranger, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAddr(h.admin)
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(h.Pause, nil)
		})
		rt.Verify()
	})
}

//
// Helper methods for calling vesting actor methods
//

type vestingHarness struct {
	vesting.Actor
	t testing.TB

	receiver    addr.Address
	token       addr.Address
	admin       addr.Address
	beneficiary addr.Address
}

func newHarness(t *testing.T) *vestingHarness {
	return &vestingHarness{
		Actor:       vesting.Actor{},
		t:           t,
		receiver:    tutil.NewIDAddr(t, 100),
		token:       tutil.NewIDAddr(t, 80),
		admin:       tutil.NewIDAddr(t, 101),
		beneficiary: tutil.NewIDAddr(t, 102),
	}
}

func (h *vestingHarness) builder(t *testing.T) *mock.RuntimeBuilder {
	return mock.NewBuilder(context.Background(), h.receiver).
		WithCaller(builtin.InitActorAddr, builtin.InitActorCodeID)
}

func (h *vestingHarness) constructAndVerify(rt *mock.Runtime) {
	rt.SetCaller(builtin.InitActorAddr, builtin.InitActorCodeID)
	rt.ExpectValidateCallerAddr(builtin.InitActorAddr)
	ret := rt.Call(h.Constructor, &vesting.ConstructorParams{Token: h.token, Admin: h.admin})
	assert.Nil(h.t, ret.(*adt.EmptyValue))
	rt.Verify()
}

func (h *vestingHarness) createSchedule(rt *mock.Runtime, beneficiary addr.Address, amount abi.TokenAmount,
	cliff, duration abi.ChainEpoch, revocable bool) vesting.ScheduleID {
	var st vesting.State
	rt.GetState(&st)
	expectedID := st.NextScheduleID

	rt.SetCaller(h.admin, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAddr(h.admin)
	rt.ExpectSend(h.token, builtin.MethodsToken.TransferFrom, &token.TransferFromParams{
		From:   h.admin,
		To:     h.receiver,
		Amount: amount,
	}, big.Zero(), nil, exitcode.Ok)
	rt.ExpectEmittedEvent(&vesting.ScheduleCreatedEvent{
		ID:              expectedID,
		Beneficiary:     beneficiary,
		TotalAmount:     amount,
		StartTime:       rt.GetEpoch(),
		CliffDuration:   cliff,
		VestingDuration: duration,
		Revocable:       revocable,
	})

	ret := rt.Call(h.CreateSchedule, &vesting.CreateScheduleParams{
		Beneficiary:     beneficiary,
		Amount:          amount,
		CliffDuration:   cliff,
		VestingDuration: duration,
		Revocable:       revocable,
	}).(*vesting.CreateScheduleReturn)
	rt.Verify()
	return ret.ID
}

func (h *vestingHarness) expectCreateAbort(rt *mock.Runtime, code exitcode.ExitCode, params *vesting.CreateScheduleParams) {
	rt.SetCaller(h.admin, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAddr(h.admin)
	rt.ExpectAbort(code, func() {
		rt.Call(h.CreateSchedule, params)
	})
	rt.Verify()
}

func (h *vestingHarness) claim(rt *mock.Runtime, caller addr.Address, id vesting.ScheduleID, amount abi.TokenAmount) abi.TokenAmount {
	rt.SetCaller(caller, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAny()
	rt.ExpectSend(h.token, builtin.MethodsToken.Transfer, &token.TransferParams{
		To:     caller,
		Amount: amount,
	}, big.Zero(), nil, exitcode.Ok)
	rt.ExpectEmittedEvent(&vesting.TokensClaimedEvent{ID: id, Beneficiary: caller, Amount: amount})

	ret := rt.Call(h.Claim, &vesting.ScheduleIDParams{ID: id}).(*vesting.ClaimReturn)
	rt.Verify()
	return ret.Amount
}

func (h *vestingHarness) expectClaimAbort(rt *mock.Runtime, caller addr.Address, id vesting.ScheduleID, code exitcode.ExitCode) {
	rt.SetCaller(caller, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAny()
	rt.ExpectAbort(code, func() {
		rt.Call(h.Claim, &vesting.ScheduleIDParams{ID: id})
	})
	rt.Verify()
}

func (h *vestingHarness) revoke(rt *mock.Runtime, id vesting.ScheduleID, refund abi.TokenAmount) abi.TokenAmount {
	rt.SetCaller(h.admin, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAddr(h.admin)
	rt.ExpectSend(h.token, builtin.MethodsToken.Transfer, &token.TransferParams{
		To:     h.admin,
		Amount: refund,
	}, big.Zero(), nil, exitcode.Ok)
	rt.ExpectEmittedEvent(&vesting.ScheduleRevokedEvent{ID: id, Beneficiary: h.beneficiary, UnvestedAmount: refund})

	ret := rt.Call(h.Revoke, &vesting.ScheduleIDParams{ID: id}).(*vesting.RevokeReturn)
	rt.Verify()
	return ret.Refunded
}

func (h *vestingHarness) expectRevokeAbort(rt *mock.Runtime, id vesting.ScheduleID, code exitcode.ExitCode) {
	rt.SetCaller(h.admin, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAddr(h.admin)
	rt.ExpectAbort(code, func() {
		rt.Call(h.Revoke, &vesting.ScheduleIDParams{ID: id})
	})
	rt.Verify()
}

func (h *vestingHarness) pause(rt *mock.Runtime) {
	rt.SetCaller(h.admin, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAddr(h.admin)
	rt.Call(h.Pause, nil)
	rt.Verify()
}

func (h *vestingHarness) unpause(rt *mock.Runtime) {
	rt.SetCaller(h.admin, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAddr(h.admin)
	rt.Call(h.Unpause, nil)
	rt.Verify()
}

func (h *vestingHarness) getVested(rt *mock.Runtime, id vesting.ScheduleID) abi.TokenAmount {
	rt.ExpectValidateCallerAny()
	ret := rt.Call(h.GetVestedAmount, &vesting.ScheduleIDParams{ID: id}).(*abi.TokenAmount)
	rt.Verify()
	return *ret
}

func (h *vestingHarness) getClaimable(rt *mock.Runtime, id vesting.ScheduleID) abi.TokenAmount {
	rt.ExpectValidateCallerAny()
	ret := rt.Call(h.GetClaimableAmount, &vesting.ScheduleIDParams{ID: id}).(*abi.TokenAmount)
	rt.Verify()
	return *ret
}

func (h *vestingHarness) checkState(rt *mock.Runtime) {
	var st vesting.State
	rt.GetState(&st)
	_, msgs, err := vesting.CheckStateInvariants(&st, adt.AsStore(rt))
	require.NoError(h.t, err)
	assert.True(h.t, msgs.IsEmpty(), strings.Join(msgs.Messages(), "\n"))
}
