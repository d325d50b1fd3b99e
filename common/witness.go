package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/neo"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
)

const (
	// ErrWitnessFailed is thrown when the account expected to sign the
	// transaction did not.
	ErrWitnessFailed = "witness check failed"
	// ErrCommitteeWitnessFailed is thrown when the method is not signed by
	// the chain committee.
	ErrCommitteeWitnessFailed = "only committee can update contract"
)

// CheckWitness panics with ErrWitnessFailed if the account did not sign the
// transaction.
func CheckWitness(account []byte) {
	if !runtime.CheckWitness(account) {
		panic(ErrWitnessFailed)
	}
}

// CheckCommitteeWitness panics with ErrCommitteeWitnessFailed if the
// committee did not sign the transaction.
func CheckCommitteeWitness() {
	if !runtime.CheckWitness(CommitteeAddress()) {
		panic(ErrCommitteeWitnessFailed)
	}
}

// CommitteeAddress returns script hash of the committee multisignature
// account (M = N/2+1).
func CommitteeAddress() []byte {
	keys := neo.GetCommittee()
	return contract.CreateMultisigAccount(len(keys)/2+1, keys)
}
