package claimable

import (
	"github.com/nspcc-dev/claimable-contract/common"
	"github.com/nspcc-dev/claimable-contract/contracts/claimable/claimableconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

type (
	// Claimant is an account entitled to a fixed part of the deposited
	// amount.
	Claimant struct {
		Claimant interop.Hash160
		Amount   int
	}

	// ClaimableBalance is a record of escrowed funds of a single token.
	// TotalAmount is a sum of all deposits made for the token, it is not
	// decreased by claims.
	ClaimableBalance struct {
		Token       interop.Hash160
		TotalAmount int
		Claimants   []Claimant
	}
)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		admin        interop.Hash160
		blocksPerDay int
	})

	if len(args.admin) != interop.Hash160Len {
		panic(claimableconst.ErrInvalidAdmin)
	}

	day := args.blocksPerDay
	if day < 0 {
		panic(claimableconst.ErrInvalidDayLength)
	}
	if day == 0 {
		day = claimableconst.DefaultBlocksPerDay
	}

	ctx := storage.GetContext()

	storage.Put(ctx, []byte{claimableconst.InitKey}, []byte{1})
	storage.Put(ctx, []byte{claimableconst.AdminKey}, args.admin)
	storage.Put(ctx, []byte{claimableconst.BlocksPerDayKey}, day)

	target := claimableconst.TargetTTLDays * day
	common.ExtendTTL(ctx, []byte{claimableconst.HorizonKey}, target, target)

	runtime.Log("claimable contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by committee.
func Update(nefFile, manifest []byte, data any) {
	common.CheckCommitteeWitness()

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("claimable contract updated")
}

// OnNEP17Payment is a callback for NEP-17 compatible tokens. The contract
// accepts only the funds pulled by Deposit from the admin account.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	ctx := storage.GetReadOnlyContext()
	admin := getAdmin(ctx)

	if data == nil || data.(string) != claimableconst.DepositMarker || !from.Equals(admin) {
		panic(claimableconst.ErrDirectPayment)
	}
}

// Deposit locks funds of the token for the claimants. The transferred amount
// is a sum of all claimant amounts, it is taken from the `from` account
// which must be the contract admin and must witness the invocation.
//
// If the token already has a record, new claimants are placed before the
// existing ones and the deposited amount is added to the total. Otherwise a
// new record is created.
//
// It produces Deposit notification.
func Deposit(from, token interop.Hash160, claimants []Claimant) {
	ctx := storage.GetContext()

	if !from.Equals(getAdmin(ctx)) {
		panic(claimableconst.ErrNotAdmin)
	}
	if len(claimants) > claimableconst.MaxClaimants {
		panic(claimableconst.ErrTooManyClaimants)
	}
	common.CheckWitness(from)

	if len(token) != interop.Hash160Len {
		panic(claimableconst.ErrInvalidToken)
	}

	amount := 0
	for i := range claimants {
		share := claimants[i].Amount
		if share < 0 || !common.IsInt128(share) {
			panic(claimableconst.ErrInvalidAmount)
		}

		amount += share
		common.CheckInt128(amount, claimableconst.ErrAmountOverflow)
	}

	self := runtime.GetExecutingScriptHash()
	ok := contract.Call(token, "transfer", contract.All, from, self, amount, claimableconst.DepositMarker).(bool)
	if !ok {
		panic(claimableconst.ErrTransferFailed)
	}

	key := balanceKey(token)

	stored := common.GetSerialized(ctx, key)
	if stored != nil {
		extendTTL(ctx)

		cb := stored.(ClaimableBalance)

		merged := []Claimant{}
		for i := range claimants {
			merged = append(merged, claimants[i])
		}
		for i := range cb.Claimants {
			merged = append(merged, cb.Claimants[i])
		}

		total := amount + cb.TotalAmount
		common.CheckInt128(total, claimableconst.ErrAmountOverflow)

		common.SetSerialized(ctx, key, ClaimableBalance{
			Token:       token,
			TotalAmount: total,
			Claimants:   merged,
		})
		runtime.Log("claimable balance extended")
	} else {
		common.SetSerialized(ctx, key, ClaimableBalance{
			Token:       token,
			TotalAmount: amount,
			Claimants:   claimants,
		})
		runtime.Log("claimable balance created")
	}

	runtime.Notify("Deposit", token, from, amount)
}

// Claim transfers the amount allotted to the sender and removes the sender
// from the token record. Only the first matching claimant entry is paid.
// The sender must witness the invocation. Claims can't be nested: a payout
// that calls back into Claim (e.g. from onNEP17Payment of the claimant
// contract) aborts the whole invocation.
//
// It produces Claim notification.
func Claim(sender, token interop.Hash160) {
	ctx := storage.GetContext()

	lock := []byte{claimableconst.ClaimLockKey}
	if storage.Get(ctx, lock) != nil {
		panic(claimableconst.ErrClaimInProgress)
	}
	storage.Put(ctx, lock, []byte{1})

	common.CheckWitness(sender)
	extendTTL(ctx)

	key := balanceKey(token)

	stored := common.GetSerialized(ctx, key)
	if stored == nil {
		panic(claimableconst.ErrNoBalance)
	}
	cb := stored.(ClaimableBalance)

	index := -1
	for i := range cb.Claimants {
		if cb.Claimants[i].Claimant.Equals(sender) {
			index = i
			break
		}
	}
	if index < 0 {
		panic(claimableconst.ErrNoClaimant)
	}

	amount := cb.Claimants[index].Amount

	self := runtime.GetExecutingScriptHash()
	ok := contract.Call(cb.Token, "transfer", contract.All, self, sender, amount, nil).(bool)
	if !ok {
		panic(claimableconst.ErrTransferFailed)
	}

	rest := []Claimant{}
	for i := range cb.Claimants {
		if i != index {
			rest = append(rest, cb.Claimants[i])
		}
	}
	cb.Claimants = rest

	common.SetSerialized(ctx, key, cb)
	storage.Delete(ctx, lock)

	runtime.Notify("Claim", token, sender, amount)
}

// ExtendTTL refreshes the contract storage lifetime if it is about to
// expire. It can be invoked by anyone.
func ExtendTTL() {
	extendTTL(storage.GetContext())
}

// GetTTL returns the number of blocks left before the contract storage
// lifetime expires.
func GetTTL() int {
	return common.RemainingTTL(storage.GetReadOnlyContext(), []byte{claimableconst.HorizonKey})
}

// Admin returns the account allowed to make deposits.
func Admin() interop.Hash160 {
	return getAdmin(storage.GetReadOnlyContext())
}

// GetBalance returns the record of the token. It panics if the token has
// no record.
func GetBalance(token interop.Hash160) ClaimableBalance {
	stored := common.GetSerialized(storage.GetReadOnlyContext(), balanceKey(token))
	if stored == nil {
		panic(claimableconst.ErrNoBalance)
	}

	return stored.(ClaimableBalance)
}

// ListBalances returns an iterator over all token records, see
// ClaimableBalance.
func ListBalances() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{claimableconst.BalancePrefix}, storage.ValuesOnly|storage.DeserializeValues)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func getAdmin(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, []byte{claimableconst.AdminKey}).(interop.Hash160)
}

func balanceKey(token interop.Hash160) []byte {
	return append([]byte{claimableconst.BalancePrefix}, token...)
}

func extendTTL(ctx storage.Context) {
	day := storage.Get(ctx, []byte{claimableconst.BlocksPerDayKey}).(int)
	common.ExtendTTL(ctx, []byte{claimableconst.HorizonKey},
		claimableconst.RenewalThresholdDays*day, claimableconst.TargetTTLDays*day)
}
