// Package chaintest provides helpers to run the contracts on a single-node
// in-memory chain.
package chaintest

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

var (
	// ClaimablePath is a path to the Claimable contract sources.
	ClaimablePath = filepath.Join(rootDir(), "contracts", "claimable")
	// TokenPath is a path to the test NEP-17 token sources.
	TokenPath = filepath.Join(rootDir(), "internal", "testcontracts", "token")
	// ReclaimerPath is a path to the re-entrant claimant contract sources.
	ReclaimerPath = filepath.Join(rootDir(), "internal", "testcontracts", "reclaimer")
)

func rootDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..")
}

// NewExecutor returns executor over a fresh single-node chain.
func NewExecutor(t testing.TB) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// CompileClaimable compiles the Claimable contract for the committee sender.
func CompileClaimable(t testing.TB, e *neotest.Executor) *neotest.Contract {
	return neotest.CompileFile(t, e.CommitteeHash, ClaimablePath, filepath.Join(ClaimablePath, "config.yml"))
}

// DeployClaimable deploys the Claimable contract with the given admin. Zero
// blocksPerDay keeps the contract default.
func DeployClaimable(t testing.TB, e *neotest.Executor, admin util.Uint160, blocksPerDay int) util.Uint160 {
	c := CompileClaimable(t, e)
	e.DeployContract(t, c, []any{admin, blocksPerDay})
	return c.Hash
}

// DeployToken deploys a test NEP-17 token owned by the committee. Tokens are
// told apart by the name which must be unique within the chain.
func DeployToken(t testing.TB, e *neotest.Executor, name string) util.Uint160 {
	base := neotest.CompileFile(t, e.CommitteeHash, TokenPath, filepath.Join(TokenPath, "config.yml"))

	m := *base.Manifest
	m.Name = name

	c := &neotest.Contract{
		Hash:     state.CreateContractHash(e.CommitteeHash, base.NEF.Checksum, name),
		NEF:      base.NEF,
		Manifest: &m,
	}
	e.DeployContract(t, c, e.CommitteeHash)
	return c.Hash
}

// DeployReclaimer deploys claimant contract which claims from the escrow
// once more when it receives the payout.
func DeployReclaimer(t testing.TB, e *neotest.Executor, escrow util.Uint160) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, ReclaimerPath, filepath.Join(ReclaimerPath, "config.yml"))
	e.DeployContract(t, c, escrow)
	return c.Hash
}

// SetFrozen forbids or allows transfers of the token from the account.
func SetFrozen(t testing.TB, e *neotest.Executor, token, account util.Uint160, frozen bool) {
	e.CommitteeInvoker(token).Invoke(t, stackitem.Null{}, "setFrozen", account, frozen)
}

// Mint issues amount of the token to the account.
func Mint(t testing.TB, e *neotest.Executor, token, to util.Uint160, amount any) {
	e.CommitteeInvoker(token).Invoke(t, stackitem.Null{}, "mint", to, amount)
}
