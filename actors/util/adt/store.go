package adt

import (
	"context"

	cid "github.com/ipfs/go-cid"
	hamt "github.com/ipfs/go-hamt-ipld"
	"github.com/filecoin-project/go-state-types/exitcode"

	"github.com/vestchain/vesting-actors/actors/runtime"
)

// Store defines an interface required to back the ADTs in this package.
type Store interface {
	Context() context.Context
	hamt.CborIpldStore
}

// Adapter of a runtime as an ADT store.
// Put () and Get() interpret missing or failed accesses as fatal runtime errors.
func AsStore(rt runtime.Runtime) Store {
	return rtStore{rt}
}

type rtStore struct {
	runtime.Runtime
}

var _ Store = &rtStore{}

func (r rtStore) Context() context.Context {
	return r.Runtime.Context()
}

func (r rtStore) Get(_ context.Context, c cid.Cid, out interface{}) error {
	// The runtime provides its own context, the one given here is dropped.
	if !r.Runtime.Store().Get(c, out.(runtime.CBORUnmarshaler)) {
		r.Abortf(exitcode.ErrNotFound, "not found")
	}
	return nil
}

func (r rtStore) Put(_ context.Context, v interface{}) (cid.Cid, error) {
	// The runtime provides its own context, the one given here is dropped.
	return r.Runtime.Store().Put(v.(runtime.CBORMarshaler)), nil
}
