package deploy

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type testBlockchain struct {
	contracts map[util.Uint160]*state.Contract
	err       error
}

func (b *testBlockchain) GetContractStateByHash(h util.Uint160) (*state.Contract, error) {
	if b.err != nil {
		return nil, b.err
	}
	cs, ok := b.contracts[h]
	if !ok {
		return nil, errors.New("Unknown contract")
	}
	return cs, nil
}

type sentCall struct {
	contract util.Uint160
	method   string
	params   []any
}

type testActor struct {
	sender util.Uint160
	calls  []sentCall

	sendErr error
	waitErr error
	state   vmstate.State
	fault   string
}

func (a *testActor) Sender() util.Uint160 { return a.sender }

func (a *testActor) SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error) {
	if a.sendErr != nil {
		return util.Uint256{}, 0, a.sendErr
	}
	a.calls = append(a.calls, sentCall{contract, method, params})
	return util.Uint256{byte(len(a.calls))}, 100, nil
}

func (a *testActor) WaitAny(_ context.Context, vub uint32, hashes ...util.Uint256) (*state.AppExecResult, error) {
	if a.waitErr != nil {
		return nil, a.waitErr
	}
	return &state.AppExecResult{
		Container: hashes[0],
		Execution: state.Execution{VMState: a.state, FaultException: a.fault},
	}, nil
}

func testContract(t *testing.T) (nef.File, manifest.Manifest) {
	f, err := nef.NewFile([]byte{0x40}) // RET
	require.NoError(t, err)

	m := manifest.DefaultManifest("Claimable balance")
	return *f, *m
}

func newTestPrm(t *testing.T) (Prm, *testBlockchain, *testActor) {
	f, m := testContract(t)
	b := &testBlockchain{contracts: make(map[util.Uint160]*state.Contract)}
	a := &testActor{sender: util.Uint160{0xaa}, state: vmstate.Halt}

	return Prm{
		Logger:       zaptest.NewLogger(t),
		Blockchain:   b,
		Actor:        a,
		NEF:          f,
		Manifest:     m,
		Admin:        util.Uint160{1, 2, 3},
		BlocksPerDay: 10,
	}, b, a
}

func TestDeploy(t *testing.T) {
	prm, _, a := newTestPrm(t)

	addr, err := Deploy(context.Background(), prm)
	require.NoError(t, err)
	require.Equal(t, state.CreateContractHash(a.sender, prm.NEF.Checksum, prm.Manifest.Name), addr)

	require.Len(t, a.calls, 1)
	call := a.calls[0]
	require.Equal(t, management.Hash, call.contract)
	require.Equal(t, "deploy", call.method)
	require.Len(t, call.params, 3)

	rawNEF, err := prm.NEF.Bytes()
	require.NoError(t, err)
	require.Equal(t, rawNEF, call.params[0])

	var m manifest.Manifest
	require.NoError(t, json.Unmarshal(call.params[1].([]byte), &m))
	require.Equal(t, prm.Manifest.Name, m.Name)

	require.Equal(t, []any{prm.Admin, prm.BlocksPerDay}, call.params[2])
}

func TestDeploy_Existing(t *testing.T) {
	t.Run("same code", func(t *testing.T) {
		prm, b, a := newTestPrm(t)
		addr := ContractAddress(a.sender, prm.NEF, prm.Manifest)
		b.contracts[addr] = &state.Contract{ContractBase: state.ContractBase{Hash: addr, NEF: prm.NEF}}

		res, err := Deploy(context.Background(), prm)
		require.NoError(t, err)
		require.Equal(t, addr, res)
		require.Empty(t, a.calls)
	})

	t.Run("different code", func(t *testing.T) {
		prm, b, a := newTestPrm(t)
		addr := ContractAddress(a.sender, prm.NEF, prm.Manifest)

		old, err := nef.NewFile([]byte{0x11, 0x40}) // PUSH1, RET
		require.NoError(t, err)
		b.contracts[addr] = &state.Contract{ContractBase: state.ContractBase{Hash: addr, NEF: *old}}

		res, err := Deploy(context.Background(), prm)
		require.NoError(t, err)
		require.Equal(t, addr, res)
		require.Len(t, a.calls, 1)
		require.Equal(t, addr, a.calls[0].contract)
		require.Equal(t, "update", a.calls[0].method)
		require.Nil(t, a.calls[0].params[2])
	})
}

func TestDeploy_Errors(t *testing.T) {
	for name, modify := range map[string]func(*Prm){
		"no logger":     func(p *Prm) { p.Logger = nil },
		"no blockchain": func(p *Prm) { p.Blockchain = nil },
		"no actor":      func(p *Prm) { p.Actor = nil },
		"no name":       func(p *Prm) { p.Manifest.Name = "" },
		"no admin":      func(p *Prm) { p.Admin = util.Uint160{} },
		"negative day":  func(p *Prm) { p.BlocksPerDay = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			prm, _, _ := newTestPrm(t)
			modify(&prm)

			_, err := Deploy(context.Background(), prm)
			require.ErrorContains(t, err, "invalid parameters")
		})
	}

	t.Run("state failure", func(t *testing.T) {
		prm, b, a := newTestPrm(t)
		b.err = errors.New("connection refused")

		_, err := Deploy(context.Background(), prm)
		require.ErrorContains(t, err, "connection refused")
		require.Empty(t, a.calls)
	})

	t.Run("send failure", func(t *testing.T) {
		prm, _, a := newTestPrm(t)
		a.sendErr = errors.New("insufficient funds")

		_, err := Deploy(context.Background(), prm)
		require.ErrorContains(t, err, "insufficient funds")
	})

	t.Run("wait failure", func(t *testing.T) {
		prm, _, a := newTestPrm(t)
		a.waitErr = context.DeadlineExceeded

		_, err := Deploy(context.Background(), prm)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("fault", func(t *testing.T) {
		prm, _, a := newTestPrm(t)
		a.state = vmstate.Fault
		a.fault = "invalid admin"

		_, err := Deploy(context.Background(), prm)
		require.ErrorContains(t, err, "invalid admin")
	})
}
