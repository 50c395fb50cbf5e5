package vesting

import (
	"github.com/filecoin-project/go-state-types/big"

	"github.com/vestchain/vesting-actors/actors/builtin"
	"github.com/vestchain/vesting-actors/actors/util/adt"
)

type StateSummary struct {
	ScheduleCount  uint64
	RevokedCount   uint64
	TotalUnclaimed big.Int
}

// Checks internal invariants of vesting state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator, error) {
	acc := &builtin.MessageAccumulator{}

	acc.Require(st.TotalCustody.GreaterThanEqual(big.Zero()), "total custody %v is negative", st.TotalCustody)

	maxID := ScheduleID(0)
	scheduleCount := uint64(0)
	revokedCount := uint64(0)
	totalUnclaimed := big.Zero()
	err := st.ForEachSchedule(store, func(id ScheduleID, schedule *Schedule) error {
		if id >= maxID {
			maxID = id + 1
		}

		acc.Require(schedule.TotalAmount.GreaterThanEqual(big.Zero()),
			"schedule %d has negative total amount %v", id, schedule.TotalAmount)
		acc.Require(schedule.ReleasedAmount.GreaterThanEqual(big.Zero()),
			"schedule %d has negative released amount %v", id, schedule.ReleasedAmount)
		acc.Require(schedule.ReleasedAmount.LessThanEqual(schedule.TotalAmount),
			"schedule %d released %v exceeds total %v", id, schedule.ReleasedAmount, schedule.TotalAmount)
		acc.Require(schedule.VestingDuration > 0,
			"schedule %d has non-positive vesting duration %d", id, schedule.VestingDuration)
		acc.Require(schedule.CliffDuration >= 0,
			"schedule %d has negative cliff duration %d", id, schedule.CliffDuration)
		acc.Require(schedule.CliffDuration <= schedule.VestingDuration,
			"schedule %d cliff %d exceeds vesting duration %d", id, schedule.CliffDuration, schedule.VestingDuration)
		acc.Require(!schedule.Revoked || schedule.Revocable,
			"schedule %d is revoked but not revocable", id)

		if schedule.Revoked {
			revokedCount++
		}
		scheduleCount++
		totalUnclaimed = big.Add(totalUnclaimed, schedule.UnreleasedAmount())
		return nil
	})
	if err != nil {
		return nil, acc, err
	}

	acc.Require(st.NextScheduleID >= maxID, "next schedule id %d is not beyond stored ids", st.NextScheduleID)
	acc.Require(st.TotalCustody.Equals(totalUnclaimed),
		"total custody %v does not equal sum of unreleased amounts %v", st.TotalCustody, totalUnclaimed)

	return &StateSummary{
		ScheduleCount:  scheduleCount,
		RevokedCount:   revokedCount,
		TotalUnclaimed: totalUnclaimed,
	}, acc, nil
}
