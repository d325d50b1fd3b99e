package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/native/ledger"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// ExtendTTL keeps the storage horizon stored by the key. If less than
// threshold blocks remain before the horizon, it is moved to target blocks
// after the current height. Returns the resulting horizon.
func ExtendTTL(ctx storage.Context, key any, threshold, target int) int {
	height := ledger.CurrentIndex()
	horizon := GetInt(ctx, key)

	if horizon-height < threshold {
		horizon = height + target
		storage.Put(ctx, key, horizon)
	}

	return horizon
}

// RemainingTTL returns the number of blocks left before the horizon stored
// by the key. It is never negative.
func RemainingTTL(ctx storage.Context, key any) int {
	left := GetInt(ctx, key) - ledger.CurrentIndex()
	if left < 0 {
		return 0
	}

	return left
}
