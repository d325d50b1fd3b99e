package main

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/claimable-contract/contracts/claimable/claimableconst"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	neobase58 "github.com/nspcc-dev/neo-go/pkg/encoding/base58"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/stretchr/testify/require"
)

func TestParseAccount(t *testing.T) {
	h := util.Uint160{1, 2, 3, 4, 5}

	res, err := parseAccount(address.Uint160ToString(h))
	require.NoError(t, err)
	require.Equal(t, h, res)

	res, err = parseAccount(h.StringLE())
	require.NoError(t, err)
	require.Equal(t, h, res)

	t.Run("invalid", func(t *testing.T) {
		addr := address.Uint160ToString(h)
		// corrupted checksum
		broken := addr[:len(addr)-1] + string(base58Neighbour(addr[len(addr)-1]))

		for _, s := range []string{
			"",
			"0OIl",
			base58.Encode([]byte{1, 2, 3}),
			broken,
			"zz" + h.StringLE()[2:],
		} {
			_, err := parseAccount(s)
			require.Error(t, err, s)
		}
	})

	t.Run("another network", func(t *testing.T) {
		// legacy Neo version byte
		legacy := neobase58.CheckEncode(append([]byte{0x17}, h.BytesBE()...))

		_, err := parseAccount(legacy)
		require.ErrorContains(t, err, "another network: version 0x17 instead of 0x35")
	})
}

// base58Neighbour returns another char of the base58 alphabet.
func base58Neighbour(c byte) byte {
	if c == 'z' {
		return 'y'
	}
	return 'z'
}

func TestParseClaimants(t *testing.T) {
	x, y := util.Uint160{0x01}, util.Uint160{0x02}

	cs, err := parseClaimants([]string{
		address.Uint160ToString(x) + ":50",
		y.StringLE() + ":0",
		address.Uint160ToString(x) + ":170141183460469231731687303715884105727",
	})
	require.NoError(t, err)
	require.Len(t, cs, 3)
	require.Equal(t, x, cs[0].Claimant)
	require.EqualValues(t, 50, cs[0].Amount.Int64())
	require.Equal(t, y, cs[1].Claimant)
	require.Zero(t, cs[1].Amount.Sign())
	require.Equal(t, "170141183460469231731687303715884105727", cs[2].Amount.String())

	t.Run("invalid", func(t *testing.T) {
		for _, args := range [][]string{
			nil,
			{address.Uint160ToString(x)},
			{address.Uint160ToString(x) + ":"},
			{address.Uint160ToString(x) + ":ten"},
			{address.Uint160ToString(x) + ":-1"},
			{"nobody:1"},
		} {
			_, err := parseClaimants(args)
			require.Error(t, err, args)
		}
	})

	t.Run("too many", func(t *testing.T) {
		args := make([]string, claimableconst.MaxClaimants+1)
		for i := range args {
			args[i] = address.Uint160ToString(util.Uint160{byte(i)}) + ":" + strconv.Itoa(i)
		}

		_, err := parseClaimants(args)
		require.ErrorContains(t, err, "exceed")

		_, err = parseClaimants(args[:claimableconst.MaxClaimants])
		require.NoError(t, err)
	})
}

func TestOpenAccount(t *testing.T) {
	const pass = "secret"

	p := filepath.Join(t.TempDir(), "wallet.json")

	w, err := wallet.NewWallet(p)
	require.NoError(t, err)
	require.NoError(t, w.CreateAccount("first", pass))
	require.NoError(t, w.CreateAccount("second", pass))
	require.NoError(t, w.Save())
	second := w.Accounts[1].ScriptHash()
	w.Close()

	var c config
	c.Wallet.Path = p
	c.Wallet.Password = pass

	acc, err := openAccount(&c)
	require.NoError(t, err)
	require.NotNil(t, acc.PrivateKey())

	c.Wallet.Address = address.Uint160ToString(second)
	acc, err = openAccount(&c)
	require.NoError(t, err)
	require.Equal(t, second, acc.ScriptHash())

	t.Run("wrong password", func(t *testing.T) {
		c := c
		c.Wallet.Password = "guess"
		_, err := openAccount(&c)
		require.Error(t, err)
	})

	t.Run("unknown account", func(t *testing.T) {
		c := c
		c.Wallet.Address = address.Uint160ToString(util.Uint160{0xff})
		_, err := openAccount(&c)
		require.ErrorContains(t, err, "missing in the wallet")
	})

	t.Run("missing wallet", func(t *testing.T) {
		_, err := openAccount(&config{})
		require.Error(t, err)

		var c config
		c.Wallet.Path = filepath.Join(t.TempDir(), "missing.json")
		_, err = openAccount(&c)
		require.Error(t, err)
	})
}
