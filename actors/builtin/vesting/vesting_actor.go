package vesting

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"

	"github.com/vestchain/vesting-actors/actors/builtin"
	"github.com/vestchain/vesting-actors/actors/builtin/token"
	"github.com/vestchain/vesting-actors/actors/runtime"
	"github.com/vestchain/vesting-actors/actors/util/adt"
)

// The vesting actor holds tokens in custody and releases them to
// beneficiaries along linear schedules with optional cliffs.
type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.CreateSchedule,
		3:                         a.Claim,
		4:                         a.Revoke,
		5:                         a.Pause,
		6:                         a.Unpause,
		7:                         a.GetVestedAmount,
		8:                         a.GetClaimableAmount,
	}
}

var _ runtime.Invokee = Actor{}

// Exit codes specific to the vesting actor.
const (
	ErrInvalidBeneficiary = exitcode.FirstActorSpecificExitCode + iota
	ErrInvalidAmount
	ErrInvalidDuration
	ErrCliffExceedsDuration
	ErrScheduleNotFound
	ErrNotBeneficiary
	ErrNothingToClaim
	ErrNotRevocable
	ErrAlreadyRevoked
	ErrNothingToRevoke
	ErrPaused
)

type ConstructorParams struct {
	Token addr.Address
	Admin addr.Address
}

func (a Actor) Constructor(rt runtime.Runtime, params *ConstructorParams) *adt.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.InitActorAddr)

	if params.Token == addr.Undef {
		rt.Abortf(exitcode.ErrIllegalArgument, "token address is empty")
	}
	if params.Admin == addr.Undef {
		rt.Abortf(exitcode.ErrIllegalArgument, "admin address is empty")
	}

	st, err := ConstructState(adt.AsStore(rt), params.Token, params.Admin)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	rt.State().Create(st)
	return nil
}

type CreateScheduleParams struct {
	Beneficiary     addr.Address
	Amount          abi.TokenAmount
	CliffDuration   abi.ChainEpoch
	VestingDuration abi.ChainEpoch
	Revocable       bool
}

type CreateScheduleReturn struct {
	ID ScheduleID
}

// Creates a new vesting schedule beginning at the current epoch, pulling
// the full amount from the admin's token balance into custody.
// The admin must have approved this actor for at least the amount.
func (a Actor) CreateSchedule(rt runtime.Runtime, params *CreateScheduleParams) *CreateScheduleReturn {
	var st State
	rt.State().Readonly(&st)
	rt.ValidateImmediateCallerIs(st.Admin)

	if st.Paused {
		rt.Abortf(ErrPaused, "vesting actor is paused")
	}
	if params.Beneficiary == addr.Undef {
		rt.Abortf(ErrInvalidBeneficiary, "beneficiary address is empty")
	}
	if params.Amount.LessThanEqual(big.Zero()) {
		rt.Abortf(ErrInvalidAmount, "vesting amount %v must be positive", params.Amount)
	}
	if params.VestingDuration <= 0 {
		rt.Abortf(ErrInvalidDuration, "vesting duration %d must be positive", params.VestingDuration)
	}
	if params.CliffDuration < 0 {
		rt.Abortf(ErrInvalidDuration, "cliff duration %d must not be negative", params.CliffDuration)
	}
	if params.CliffDuration > params.VestingDuration {
		rt.Abortf(ErrCliffExceedsDuration, "cliff duration %d exceeds vesting duration %d",
			params.CliffDuration, params.VestingDuration)
	}

	// Pull the tokens into custody before recording the schedule.
	_, code := rt.Send(st.Token, builtin.MethodsToken.TransferFrom, &token.TransferFromParams{
		From:   st.Admin,
		To:     rt.Message().Receiver(),
		Amount: params.Amount,
	}, big.Zero())
	builtin.RequireSuccess(rt, code, "failed to transfer %v into custody", params.Amount)

	start := rt.CurrEpoch()
	var id ScheduleID
	rt.State().Transaction(&st, func() {
		var err error
		id, err = st.PutNewSchedule(adt.AsStore(rt), &Schedule{
			Beneficiary:     params.Beneficiary,
			TotalAmount:     params.Amount,
			ReleasedAmount:  big.Zero(),
			StartTime:       start,
			CliffDuration:   params.CliffDuration,
			VestingDuration: params.VestingDuration,
			Revocable:       params.Revocable,
			Revoked:         false,
		})
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to store new schedule")
		st.TotalCustody = big.Add(st.TotalCustody, params.Amount)
	})

	rt.EmitEvent(&ScheduleCreatedEvent{
		ID:              id,
		Beneficiary:     params.Beneficiary,
		TotalAmount:     params.Amount,
		StartTime:       start,
		CliffDuration:   params.CliffDuration,
		VestingDuration: params.VestingDuration,
		Revocable:       params.Revocable,
	})
	return &CreateScheduleReturn{ID: id}
}

type ScheduleIDParams struct {
	ID ScheduleID
}

type ClaimReturn struct {
	Amount abi.TokenAmount
}

// Pays out all currently claimable tokens of a schedule to its beneficiary.
// Only the beneficiary may claim. Aborts if nothing is claimable.
func (a Actor) Claim(rt runtime.Runtime, params *ScheduleIDParams) *ClaimReturn {
	rt.ValidateImmediateCallerAcceptAny()
	caller := rt.Message().Caller()
	now := rt.CurrEpoch()

	var st State
	var amount abi.TokenAmount
	var beneficiary addr.Address
	rt.State().Transaction(&st, func() {
		if st.Paused {
			rt.Abortf(ErrPaused, "vesting actor is paused")
		}

		store := adt.AsStore(rt)
		schedule, found, err := st.GetSchedule(store, params.ID)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load schedule %d", params.ID)
		if !found {
			rt.Abortf(ErrScheduleNotFound, "no schedule with ID %d", params.ID)
		}
		if caller != schedule.Beneficiary {
			rt.Abortf(ErrNotBeneficiary, "caller %v is not the beneficiary of schedule %d", caller, params.ID)
		}

		amount = schedule.ClaimableAmount(now)
		if amount.LessThanEqual(big.Zero()) {
			rt.Abortf(ErrNothingToClaim, "nothing to claim for schedule %d at epoch %d", params.ID, now)
		}

		schedule.ReleasedAmount = big.Add(schedule.ReleasedAmount, amount)
		err = st.PutSchedule(store, params.ID, schedule)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to update schedule %d", params.ID)
		st.TotalCustody = big.Sub(st.TotalCustody, amount)
		beneficiary = schedule.Beneficiary
	})

	// State is committed before the outbound transfer, so a reentrant claim
	// observes the updated released amount.
	_, code := rt.Send(st.Token, builtin.MethodsToken.Transfer, &token.TransferParams{
		To:     beneficiary,
		Amount: amount,
	}, big.Zero())
	builtin.RequireSuccess(rt, code, "failed to transfer %v to %v", amount, beneficiary)

	rt.EmitEvent(&TokensClaimedEvent{ID: params.ID, Beneficiary: beneficiary, Amount: amount})
	return &ClaimReturn{Amount: amount}
}

type RevokeReturn struct {
	Refunded abi.TokenAmount
}

// Revokes a revocable schedule, returning the unvested portion to the admin.
// The vested-but-unclaimed portion remains claimable by the beneficiary.
// Revocation is permitted while paused so the admin can stop a compromised
// schedule without first unpausing.
func (a Actor) Revoke(rt runtime.Runtime, params *ScheduleIDParams) *RevokeReturn {
	var st State
	rt.State().Readonly(&st)
	rt.ValidateImmediateCallerIs(st.Admin)
	now := rt.CurrEpoch()

	var refund abi.TokenAmount
	var beneficiary addr.Address
	rt.State().Transaction(&st, func() {
		store := adt.AsStore(rt)
		schedule, found, err := st.GetSchedule(store, params.ID)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load schedule %d", params.ID)
		if !found {
			rt.Abortf(ErrScheduleNotFound, "no schedule with ID %d", params.ID)
		}
		if !schedule.Revocable {
			rt.Abortf(ErrNotRevocable, "schedule %d is not revocable", params.ID)
		}
		if schedule.Revoked {
			rt.Abortf(ErrAlreadyRevoked, "schedule %d already revoked", params.ID)
		}

		vested := schedule.VestedAmount(now)
		refund = big.Sub(schedule.TotalAmount, vested)
		if refund.LessThanEqual(big.Zero()) {
			rt.Abortf(ErrNothingToRevoke, "schedule %d has fully vested", params.ID)
		}

		// Freeze the schedule at its vested amount. The beneficiary keeps
		// their claim on the vested remainder.
		schedule.TotalAmount = vested
		schedule.Revoked = true
		err = st.PutSchedule(store, params.ID, schedule)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to update schedule %d", params.ID)
		st.TotalCustody = big.Sub(st.TotalCustody, refund)
		beneficiary = schedule.Beneficiary
	})

	_, code := rt.Send(st.Token, builtin.MethodsToken.Transfer, &token.TransferParams{
		To:     st.Admin,
		Amount: refund,
	}, big.Zero())
	builtin.RequireSuccess(rt, code, "failed to refund %v to %v", refund, st.Admin)

	rt.EmitEvent(&ScheduleRevokedEvent{ID: params.ID, Beneficiary: beneficiary, UnvestedAmount: refund})
	return &RevokeReturn{Refunded: refund}
}

// Suspends schedule creation and claims. Idempotent.
func (a Actor) Pause(rt runtime.Runtime, _ *adt.EmptyValue) *adt.EmptyValue {
	var st State
	rt.State().Readonly(&st)
	rt.ValidateImmediateCallerIs(st.Admin)

	rt.State().Transaction(&st, func() {
		st.Paused = true
	})
	return nil
}

// Resumes schedule creation and claims. Idempotent.
func (a Actor) Unpause(rt runtime.Runtime, _ *adt.EmptyValue) *adt.EmptyValue {
	var st State
	rt.State().Readonly(&st)
	rt.ValidateImmediateCallerIs(st.Admin)

	rt.State().Transaction(&st, func() {
		st.Paused = false
	})
	return nil
}

// Returns the amount vested to date for a schedule, whether or not released.
func (a Actor) GetVestedAmount(rt runtime.Runtime, params *ScheduleIDParams) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.State().Readonly(&st)

	schedule, found, err := st.GetSchedule(adt.AsStore(rt), params.ID)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load schedule %d", params.ID)
	if !found {
		rt.Abortf(ErrScheduleNotFound, "no schedule with ID %d", params.ID)
	}

	amount := schedule.VestedAmount(rt.CurrEpoch())
	return &amount
}

// Returns the amount currently payable to the beneficiary of a schedule.
func (a Actor) GetClaimableAmount(rt runtime.Runtime, params *ScheduleIDParams) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.State().Readonly(&st)

	schedule, found, err := st.GetSchedule(adt.AsStore(rt), params.ID)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load schedule %d", params.ID)
	if !found {
		rt.Abortf(ErrScheduleNotFound, "no schedule with ID %d", params.ID)
	}

	amount := schedule.ClaimableAmount(rt.CurrEpoch())
	return &amount
}

// Events emitted by the vesting actor.
// Each event carries enough to maintain an external view of the schedule
// it concerns without reading actor state.

type ScheduleCreatedEvent struct {
	ID              ScheduleID
	Beneficiary     addr.Address
	TotalAmount     abi.TokenAmount
	StartTime       abi.ChainEpoch
	CliffDuration   abi.ChainEpoch
	VestingDuration abi.ChainEpoch
	Revocable       bool
}

type TokensClaimedEvent struct {
	ID          ScheduleID
	Beneficiary addr.Address
	Amount      abi.TokenAmount
}

type ScheduleRevokedEvent struct {
	ID             ScheduleID
	Beneficiary    addr.Address
	UnvestedAmount abi.TokenAmount
}
