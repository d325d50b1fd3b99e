package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testFlags map[string]string

func (x testFlags) GlobalIsSet(name string) bool {
	_, ok := x[name]
	return ok
}

func (x testFlags) GlobalString(name string) string {
	return x[name]
}

func writeConfig(t *testing.T, data string) string {
	p := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(p, []byte(data), 0600))
	return p
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := loadConfig("")
		require.NoError(t, err)
		require.Equal(t, defaultTimeout, c.RPC.DialTimeout)
		require.Equal(t, defaultTimeout, c.RPC.RequestTimeout)
		require.Equal(t, defaultWaitTimeout, c.WaitTimeout)
		require.Equal(t, "info", c.Logger.Level)
		require.Error(t, c.checkRPC())
	})

	t.Run("file", func(t *testing.T) {
		p := writeConfig(t, `
rpc:
  endpoint: http://localhost:30333
  dial_timeout: 5s
wallet:
  path: /tmp/wallet.json
  address: NbUgTSFvPmsRxmGeWpuuGeJUoRoi6PErcM
  password: one
contract: 0b17a07ab7a1e8ec8b0b3d3a0a7e7bcb0d0c5c1a
wait_timeout: 1m
logger:
  level: debug
`)
		t.Setenv(passwordEnv, "")

		c, err := loadConfig(p)
		require.NoError(t, err)
		require.NoError(t, c.checkRPC())
		require.Equal(t, "http://localhost:30333", c.RPC.Endpoint)
		require.Equal(t, 5*time.Second, c.RPC.DialTimeout)
		require.Equal(t, defaultTimeout, c.RPC.RequestTimeout)
		require.Equal(t, "/tmp/wallet.json", c.Wallet.Path)
		require.Equal(t, "NbUgTSFvPmsRxmGeWpuuGeJUoRoi6PErcM", c.Wallet.Address)
		require.Equal(t, "one", c.Wallet.Password)
		require.Equal(t, "0b17a07ab7a1e8ec8b0b3d3a0a7e7bcb0d0c5c1a", c.Contract)
		require.Equal(t, time.Minute, c.WaitTimeout)
		require.Equal(t, "debug", c.Logger.Level)
	})

	t.Run("password from environment", func(t *testing.T) {
		p := writeConfig(t, "wallet:\n  password: one\n")
		t.Setenv(passwordEnv, "two")

		c, err := loadConfig(p)
		require.NoError(t, err)
		require.Equal(t, "two", c.Wallet.Password)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := loadConfig(writeConfig(t, "rpc: [1, 2"))
		require.Error(t, err)

		_, err = loadConfig(writeConfig(t, "wait_timeout: forever\n"))
		require.Error(t, err)
	})
}

func TestConfig_ApplyFlags(t *testing.T) {
	c, err := loadConfig(writeConfig(t, `
rpc:
  endpoint: http://localhost:30333
wallet:
  path: wallet.json
contract: NbUgTSFvPmsRxmGeWpuuGeJUoRoi6PErcM
`))
	require.NoError(t, err)

	c.applyFlags(testFlags{
		rpcFlag:      "http://localhost:40332",
		addressFlag:  "NfgHwwTi3wHAS8aFAN243C5vGbkYDpqLHP",
		logLevelFlag: "warn",
	})

	require.Equal(t, "http://localhost:40332", c.RPC.Endpoint)
	require.Equal(t, "wallet.json", c.Wallet.Path)
	require.Equal(t, "NfgHwwTi3wHAS8aFAN243C5vGbkYDpqLHP", c.Wallet.Address)
	require.Equal(t, "NbUgTSFvPmsRxmGeWpuuGeJUoRoi6PErcM", c.Contract)
	require.Equal(t, "warn", c.Logger.Level)
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger("debug")
	require.NoError(t, err)
	require.NotNil(t, l)

	_, err = newLogger("loud")
	require.Error(t, err)
}
