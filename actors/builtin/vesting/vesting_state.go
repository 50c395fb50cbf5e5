package vesting

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"
	errors "github.com/pkg/errors"

	"github.com/vestchain/vesting-actors/actors/util/adt"
)

// Identifier for a vesting schedule, unique within a single vesting actor.
type ScheduleID uint64

type State struct {
	// The token actor in whose custody vested funds are held.
	Token addr.Address

	// Address permitted to create, revoke and pause schedules.
	Admin addr.Address

	// While true, creation of new schedules and claims are rejected.
	// Read-only queries and revocations remain available.
	Paused bool

	// Schedules indexed by ScheduleID (AMT[ScheduleID]Schedule).
	Schedules cid.Cid

	// ScheduleID to use for the next schedule created.
	NextScheduleID ScheduleID

	// Sum over all schedules of (TotalAmount - ReleasedAmount).
	// This is the token balance the actor is obligated to hold.
	TotalCustody abi.TokenAmount
}

// A single linear vesting schedule.
// Tokens vest continuously from StartTime over VestingDuration, except that
// nothing is payable before the cliff has elapsed. Once the cliff passes the
// full linear amount (including the portion accrued during the cliff) becomes
// claimable at once.
type Schedule struct {
	// Account entitled to claim vested tokens.
	Beneficiary addr.Address

	// Total tokens placed under the schedule.
	// Reduced to the vested amount when the schedule is revoked.
	TotalAmount abi.TokenAmount

	// Tokens already paid out to the beneficiary.
	ReleasedAmount abi.TokenAmount

	// Epoch at which vesting begins.
	StartTime abi.ChainEpoch

	// Period after StartTime during which nothing is claimable.
	CliffDuration abi.ChainEpoch

	// Period after StartTime over which the total amount vests linearly.
	VestingDuration abi.ChainEpoch

	// Whether the admin may revoke this schedule.
	Revocable bool

	// Set when the schedule has been revoked.
	Revoked bool
}

func ConstructState(store adt.Store, token addr.Address, admin addr.Address) (*State, error) {
	emptySchedules, err := adt.MakeEmptyArray(store)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create empty schedules array")
	}

	return &State{
		Token:          token,
		Admin:          admin,
		Paused:         false,
		Schedules:      emptySchedules.Root(),
		NextScheduleID: 0,
		TotalCustody:   big.Zero(),
	}, nil
}

// Allocates the next schedule ID and stores the schedule under it.
func (st *State) PutNewSchedule(store adt.Store, schedule *Schedule) (ScheduleID, error) {
	id := st.NextScheduleID
	schedules := adt.AsArray(store, st.Schedules)
	if err := schedules.Set(uint64(id), schedule); err != nil {
		return 0, errors.Wrapf(err, "failed to store schedule %d", id)
	}
	st.Schedules = schedules.Root()
	st.NextScheduleID = id + 1
	return id, nil
}

// Loads the schedule with the given ID, if present.
func (st *State) GetSchedule(store adt.Store, id ScheduleID) (*Schedule, bool, error) {
	schedules := adt.AsArray(store, st.Schedules)
	var schedule Schedule
	found, err := schedules.Get(uint64(id), &schedule)
	if err != nil {
		return nil, false, errors.Wrapf(err, "failed to load schedule %d", id)
	}
	if !found {
		return nil, false, nil
	}
	return &schedule, true, nil
}

// Stores an updated schedule under an existing ID.
func (st *State) PutSchedule(store adt.Store, id ScheduleID, schedule *Schedule) error {
	schedules := adt.AsArray(store, st.Schedules)
	if err := schedules.Set(uint64(id), schedule); err != nil {
		return errors.Wrapf(err, "failed to store schedule %d", id)
	}
	st.Schedules = schedules.Root()
	return nil
}

// Iterates all schedules in ID order.
func (st *State) ForEachSchedule(store adt.Store, f func(id ScheduleID, schedule *Schedule) error) error {
	schedules := adt.AsArray(store, st.Schedules)
	var schedule Schedule
	return schedules.ForEach(&schedule, func(i int64) error {
		s := schedule
		return f(ScheduleID(i), &s)
	})
}

// The amount vested at the given epoch. Vesting is linear in elapsed time
// with integer division (rounding down), gated by the cliff.
// A revoked schedule's TotalAmount was frozen at its vested amount when it
// was revoked, so it reports that frozen amount forever after.
func (s *Schedule) VestedAmount(now abi.ChainEpoch) abi.TokenAmount {
	if s.Revoked {
		return s.TotalAmount
	}
	if now < s.StartTime+s.CliffDuration {
		return big.Zero()
	}
	if now >= s.StartTime+s.VestingDuration {
		return s.TotalAmount
	}
	elapsed := now - s.StartTime
	// Multiply before dividing to avoid compounding truncation.
	return big.Div(
		big.Mul(s.TotalAmount, big.NewInt(int64(elapsed))),
		big.NewInt(int64(s.VestingDuration)),
	)
}

// The amount vested but not yet released at the given epoch.
func (s *Schedule) ClaimableAmount(now abi.ChainEpoch) abi.TokenAmount {
	return big.Sub(s.VestedAmount(now), s.ReleasedAmount)
}

// The amount still held by the actor on behalf of this schedule.
func (s *Schedule) UnreleasedAmount() abi.TokenAmount {
	return big.Sub(s.TotalAmount, s.ReleasedAmount)
}
