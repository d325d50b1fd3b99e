// Package reclaimer is a claimant contract which tries to claim once more
// when it receives the payout.
package reclaimer

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	escrowKey = 'e'
	repeatKey = 'r'
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		return
	}

	escrow := data.(interop.Hash160)
	if len(escrow) != interop.Hash160Len {
		panic("invalid escrow")
	}

	storage.Put(storage.GetContext(), []byte{escrowKey}, escrow)
}

// Claim claims the allotment of the contract from the escrow.
func Claim(token interop.Hash160) {
	claim(storage.GetContext(), token)
}

// OnNEP17Payment claims again on the first payment made by the token.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	ctx := storage.GetContext()
	if storage.Get(ctx, []byte{repeatKey}) != nil {
		return
	}
	storage.Put(ctx, []byte{repeatKey}, []byte{1})

	claim(ctx, runtime.GetCallingScriptHash())
}

func claim(ctx storage.Context, token interop.Hash160) {
	escrow := storage.Get(ctx, []byte{escrowKey}).(interop.Hash160)
	contract.Call(escrow, "claim", contract.All, runtime.GetExecutingScriptHash(), token)
}
