package token

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const (
	ownerKey      = 'o'
	supplyKey     = 's'
	balancePrefix = 'b'
	frozenPrefix  = 'f'
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		return
	}

	owner := data.(interop.Hash160)
	if len(owner) != interop.Hash160Len {
		panic("invalid owner")
	}

	storage.Put(storage.GetContext(), []byte{ownerKey}, owner)
}

func Symbol() string {
	return "TKN"
}

func Decimals() int {
	return 8
}

func TotalSupply() int {
	return getInt(storage.GetReadOnlyContext(), []byte{supplyKey})
}

func BalanceOf(account interop.Hash160) int {
	if len(account) != interop.Hash160Len {
		panic("invalid account")
	}
	return getInt(storage.GetReadOnlyContext(), balanceKey(account))
}

func Transfer(from, to interop.Hash160, amount int, data any) bool {
	if len(from) != interop.Hash160Len || len(to) != interop.Hash160Len {
		panic("invalid account")
	}
	if amount < 0 {
		panic("negative amount")
	}
	if !runtime.CheckWitness(from) {
		return false
	}

	ctx := storage.GetContext()

	if storage.Get(ctx, frozenKey(from)) != nil {
		return false
	}

	fromBalance := getInt(ctx, balanceKey(from))
	if fromBalance < amount {
		return false
	}

	if amount != 0 && !from.Equals(to) {
		storage.Put(ctx, balanceKey(from), fromBalance-amount)
		storage.Put(ctx, balanceKey(to), getInt(ctx, balanceKey(to))+amount)
	}

	runtime.Notify("Transfer", from, to, amount)
	postTransfer(from, to, amount, data)
	return true
}

// Mint issues new tokens to the account. It can be invoked by the token
// owner only.
func Mint(to interop.Hash160, amount int) {
	ctx := storage.GetContext()

	owner := storage.Get(ctx, []byte{ownerKey}).(interop.Hash160)
	if !runtime.CheckWitness(owner) {
		panic("only owner can mint")
	}
	if amount < 0 {
		panic("negative amount")
	}

	storage.Put(ctx, balanceKey(to), getInt(ctx, balanceKey(to))+amount)
	storage.Put(ctx, []byte{supplyKey}, getInt(ctx, []byte{supplyKey})+amount)

	var from interop.Hash160
	runtime.Notify("Transfer", from, to, amount)
	postTransfer(from, to, amount, nil)
}

// SetFrozen forbids or allows transfers from the account. It can be invoked
// by the token owner only.
func SetFrozen(account interop.Hash160, frozen bool) {
	ctx := storage.GetContext()

	owner := storage.Get(ctx, []byte{ownerKey}).(interop.Hash160)
	if !runtime.CheckWitness(owner) {
		panic("only owner can freeze")
	}

	if frozen {
		storage.Put(ctx, frozenKey(account), []byte{1})
	} else {
		storage.Delete(ctx, frozenKey(account))
	}
}

func postTransfer(from, to interop.Hash160, amount int, data any) {
	if management.GetContract(to) != nil {
		contract.Call(to, "onNEP17Payment", contract.All, from, amount, data)
	}
}

func balanceKey(account interop.Hash160) []byte {
	return append([]byte{balancePrefix}, account...)
}

func frozenKey(account interop.Hash160) []byte {
	return append([]byte{frozenPrefix}, account...)
}

func getInt(ctx storage.Context, key []byte) int {
	v := storage.Get(ctx, key)
	if v == nil {
		return 0
	}
	return v.(int)
}
