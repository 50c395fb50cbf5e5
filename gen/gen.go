package main

import (
	gen "github.com/whyrusleeping/cbor-gen"

	account "github.com/vestchain/vesting-actors/actors/builtin/account"
	token "github.com/vestchain/vesting-actors/actors/builtin/token"
	vesting "github.com/vestchain/vesting-actors/actors/builtin/vesting"
)

func main() {
	if err := gen.WriteTupleEncodersToFile("./actors/builtin/account/cbor_gen.go", "account",
		// actor state
		account.State{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/token/cbor_gen.go", "token",
		// actor state
		token.State{},
		// method params and returns
		token.ConstructorParams{},
		token.TransferParams{},
		token.ApproveParams{},
		token.TransferFromParams{},
		token.AddressParams{},
		token.AllowanceParams{},
		// events
		token.TransferEvent{},
		token.ApprovalEvent{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/vesting/cbor_gen.go", "vesting",
		// actor state
		vesting.State{},
		vesting.Schedule{},
		// method params and returns
		vesting.ConstructorParams{},
		vesting.CreateScheduleParams{},
		vesting.CreateScheduleReturn{},
		vesting.ScheduleIDParams{},
		vesting.ClaimReturn{},
		vesting.RevokeReturn{},
		// events
		vesting.ScheduleCreatedEvent{},
		vesting.TokensClaimedEvent{},
		vesting.ScheduleRevokedEvent{},
	); err != nil {
		panic(err)
	}
}
