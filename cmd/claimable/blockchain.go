package main

import (
	"context"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
)

// wrapper over Neo RPC providing blockchain services needed for the commands.
type remoteBlockchain struct {
	rpc   *rpcclient.Client
	actor *actor.Actor
}

// newRemoteBlockchain dials Neo RPC server and returns remoteBlockchain
// acting on behalf of acc. If acc is nil, random account is used, it is
// enough for read-only commands.
func newRemoteBlockchain(c *config, acc *wallet.Account) (*remoteBlockchain, error) {
	err := c.checkRPC()
	if err != nil {
		return nil, err
	}

	if acc == nil {
		acc, err = wallet.NewAccount()
		if err != nil {
			return nil, fmt.Errorf("generate new Neo account: %w", err)
		}
	}

	cli, err := rpcclient.New(context.Background(), c.RPC.Endpoint, rpcclient.Options{
		DialTimeout:    c.RPC.DialTimeout,
		RequestTimeout: c.RPC.RequestTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	err = cli.Init()
	if err != nil {
		cli.Close()
		return nil, fmt.Errorf("RPC client init: %w", err)
	}

	act, err := actor.NewSimple(cli, acc)
	if err != nil {
		cli.Close()
		return nil, fmt.Errorf("init actor: %w", err)
	}

	return &remoteBlockchain{
		rpc:   cli,
		actor: act,
	}, nil
}

func (x *remoteBlockchain) close() {
	x.rpc.Close()
}

// contractState requests state of the contract deployed at the given address.
func (x *remoteBlockchain) contractState(h util.Uint160) (state.Contract, error) {
	st, err := x.rpc.GetContractStateByHash(h)
	if err != nil {
		return state.Contract{}, fmt.Errorf("get state of the contract '%s': %w", h.StringLE(), err)
	}
	return *st, nil
}

// waitTx waits for the transaction sent by the actor and returns its
// application log. Faulted transactions are returned as error.
func (x *remoteBlockchain) waitTx(ctx context.Context, txHash util.Uint256, vub uint32) (*result.ApplicationLog, error) {
	res, err := x.actor.WaitAny(ctx, vub, txHash)
	if err != nil {
		return nil, fmt.Errorf("wait for transaction %s: %w", txHash.StringLE(), err)
	}

	if res.VMState != vmstate.Halt {
		return nil, fmt.Errorf("transaction %s failed: %s", txHash.StringLE(), res.FaultException)
	}

	trig := trigger.Application

	log, err := x.rpc.GetApplicationLog(txHash, &trig)
	if err != nil {
		return nil, fmt.Errorf("get application log of %s: %w", txHash.StringLE(), err)
	}

	return log, nil
}

// iterateContractStorage iterates over all storage items of the contract at
// the state of the penult block and passes them into f. It breaks on any f's
// error and returns it. It returns the block height the items belong to.
func (x *remoteBlockchain) iterateContractStorage(contract util.Uint160, f func(key, value []byte) error) (uint32, error) {
	nLatestBlock, err := x.actor.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get number of the latest block: %w", err)
	}

	height := nLatestBlock - 1

	stateRoot, err := x.rpc.GetStateRootByHeight(height)
	if err != nil {
		return 0, fmt.Errorf("get state root at penult block #%d: %w", height, err)
	}

	var start []byte

	for {
		res, err := x.rpc.FindStates(stateRoot.Root, contract, nil, start, nil)
		if err != nil {
			return 0, fmt.Errorf("get historical storage items of the contract at state root '%s': %w", stateRoot.Root, err)
		}

		for i := range res.Results {
			err = f(res.Results[i].Key, res.Results[i].Value)
			if err != nil {
				return 0, err
			}
		}

		if !res.Truncated || len(res.Results) == 0 {
			return height, nil
		}

		start = res.Results[len(res.Results)-1].Key
	}
}
