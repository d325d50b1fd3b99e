package claimable

import (
	"fmt"
	"math/big"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// balancesBatch is the number of records fetched per iterator traversal.
const balancesBatch = 64

// NewClaimant returns claimant entry for Deposit.
func NewClaimant(account util.Uint160, amount int64) *Claimant {
	return &Claimant{Claimant: account, Amount: big.NewInt(amount)}
}

// Remaining returns the sum of amounts that are still to be claimed. Unlike
// TotalAmount, it decreases with every claim.
func (res *ClaimableBalance) Remaining() *big.Int {
	sum := new(big.Int)
	for _, c := range res.Claimants {
		sum.Add(sum, c.Amount)
	}
	return sum
}

// Find returns the first entry of the account or nil. This is the entry
// paid by a claim of the account.
func (res *ClaimableBalance) Find(account util.Uint160) *Claimant {
	for _, c := range res.Claimants {
		if c.Claimant.Equals(account) {
			return c
		}
	}
	return nil
}

// Balances returns all token records of the contract. It uses iterator
// sessions of the RPC server.
func (c *ContractReader) Balances() ([]*ClaimableBalance, error) {
	sess, iter, err := c.ListBalances()
	if err != nil {
		return nil, err
	}
	defer func() { _ = c.invoker.TerminateSession(sess) }()

	var res []*ClaimableBalance
	for {
		items, err := c.invoker.TraverseIterator(sess, &iter, balancesBatch)
		if err != nil {
			return nil, fmt.Errorf("traverse balances: %w", err)
		}

		bs, err := BalancesFromItems(items)
		if err != nil {
			return nil, err
		}
		res = append(res, bs...)

		if len(items) < balancesBatch {
			return res, nil
		}
	}
}

// BalancesFromItems decodes records returned by ListBalancesExpanded or by
// iterator traversal.
func BalancesFromItems(items []stackitem.Item) ([]*ClaimableBalance, error) {
	res := make([]*ClaimableBalance, 0, len(items))
	for i := range items {
		b, err := itemToClaimableBalance(items[i], nil)
		if err != nil {
			return nil, fmt.Errorf("balance %d: %w", i, err)
		}
		res = append(res, b)
	}
	return res, nil
}

func claimantsToParams(claimants []*Claimant) []any {
	res := make([]any, 0, len(claimants))
	for _, c := range claimants {
		res = append(res, []any{c.Claimant, c.Amount})
	}
	return res
}
