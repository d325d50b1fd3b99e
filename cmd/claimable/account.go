package main

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/claimable-contract/contracts/claimable/claimableconst"
	"github.com/nspcc-dev/claimable-contract/rpc/claimable"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
)

// addressLen is the length of the decoded Neo address: version byte, script
// hash and 4-byte checksum.
const addressLen = 1 + util.Uint160Size + 4

// parseAccount accepts either Neo address or hex-encoded LE script hash.
func parseAccount(s string) (util.Uint160, error) {
	if len(s) == 2*util.Uint160Size {
		h, err := util.Uint160DecodeStringLE(s)
		if err != nil {
			return h, fmt.Errorf("decode script hash '%s': %w", s, err)
		}
		return h, nil
	}

	raw, err := base58.Decode(s)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("'%s' is neither script hash nor base58 address: %w", s, err)
	}

	if len(raw) != addressLen {
		return util.Uint160{}, fmt.Errorf("invalid address '%s': decoded length %d instead of %d", s, len(raw), addressLen)
	}

	// checksum is verified below, the version tells the network apart
	if raw[0] != address.Prefix {
		return util.Uint160{}, fmt.Errorf("address '%s' is of another network: version 0x%02x instead of 0x%02x", s, raw[0], address.Prefix)
	}

	h, err := address.StringToUint160(s)
	if err != nil {
		return h, fmt.Errorf("invalid address '%s': %w", s, err)
	}

	return h, nil
}

// parseClaimants decodes 'account:amount' pairs.
func parseClaimants(args []string) ([]*claimable.Claimant, error) {
	if len(args) == 0 {
		return nil, errors.New("no claimants")
	}
	if len(args) > claimableconst.MaxClaimants {
		return nil, fmt.Errorf("%d claimants exceed the limit of %d", len(args), claimableconst.MaxClaimants)
	}

	res := make([]*claimable.Claimant, 0, len(args))

	for i := range args {
		acc, amount, ok := strings.Cut(args[i], ":")
		if !ok {
			return nil, fmt.Errorf("claimant #%d: expected 'account:amount', got '%s'", i, args[i])
		}

		h, err := parseAccount(acc)
		if err != nil {
			return nil, fmt.Errorf("claimant #%d: %w", i, err)
		}

		v, ok := new(big.Int).SetString(amount, 10)
		if !ok {
			return nil, fmt.Errorf("claimant #%d: invalid amount '%s'", i, amount)
		}
		if v.Sign() < 0 {
			return nil, fmt.Errorf("claimant #%d: negative amount %s", i, v)
		}

		res = append(res, &claimable.Claimant{Claimant: h, Amount: v})
	}

	return res, nil
}

// openAccount returns decrypted account from the configured wallet. Without
// configured address the wallet's default (change) account is used.
func openAccount(c *config) (*wallet.Account, error) {
	if c.Wallet.Path == "" {
		return nil, errors.New("missing wallet")
	}

	w, err := wallet.NewWalletFromFile(c.Wallet.Path)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}
	defer w.Close()

	var h util.Uint160
	if c.Wallet.Address != "" {
		h, err = parseAccount(c.Wallet.Address)
		if err != nil {
			return nil, fmt.Errorf("wallet account: %w", err)
		}
	} else {
		h = w.GetChangeAddress()
	}

	acc := w.GetAccount(h)
	if acc == nil {
		return nil, fmt.Errorf("account %s is missing in the wallet", address.Uint160ToString(h))
	}

	err = acc.Decrypt(c.Wallet.Password, w.Scrypt)
	if err != nil {
		return nil, fmt.Errorf("decrypt account %s: %w", address.Uint160ToString(h), err)
	}

	return acc, nil
}
