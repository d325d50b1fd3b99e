// Package deploy provides deployment of the Claimable contract to the Neo
// network.
package deploy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for the contract deployment.
type Blockchain interface {
	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// Actor composes, signs and sends transactions on behalf of the deployer.
// [actor.Actor] satisfies this interface.
type Actor interface {
	// Sender returns the account paying for transactions, it determines the
	// contract address.
	Sender() util.Uint160

	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)

	WaitAny(ctx context.Context, vub uint32, hashes ...util.Uint256) (*state.AppExecResult, error)
}

// Prm groups all parameters of the contract deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	Blockchain Blockchain

	// Deployer. The contract is updated through it if the deployed code
	// differs, so it must be witnessed by the committee in this case.
	Actor Actor

	NEF      nef.File
	Manifest manifest.Manifest

	// Account allowed to make deposits.
	Admin util.Uint160

	// Number of blocks per day, zero selects the contract default.
	BlocksPerDay int
}

// Deploy makes the Claimable contract available on the chain and returns its
// address. Deploy is idempotent: contract with the same NEF is left as is,
// contract with different NEF is updated (its storage is kept), missing
// contract is deployed with the admin and day length from Prm.
//
// Deploy blocks until the transaction is accepted or ctx is done.
func Deploy(ctx context.Context, prm Prm) (util.Uint160, error) {
	err := checkPrm(prm)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("invalid parameters: %w", err)
	}

	addr := ContractAddress(prm.Actor.Sender(), prm.NEF, prm.Manifest)
	l := prm.Logger.With(zap.Stringer("address", addr))

	cs, err := prm.Blockchain.GetContractStateByHash(addr)
	switch {
	case err == nil:
		if cs.NEF.Checksum == prm.NEF.Checksum {
			l.Info("contract is already deployed with the same code, skip")
			return addr, nil
		}

		l.Info("contract code differs from the deployed one, updating...",
			zap.Uint32("deployed checksum", cs.NEF.Checksum), zap.Uint32("new checksum", prm.NEF.Checksum))

		err = sendAndWait(ctx, prm, addr, "update", nil)
		if err != nil {
			return util.Uint160{}, fmt.Errorf("update contract: %w", err)
		}

		l.Info("contract successfully updated")
	case isErrContractNotFound(err):
		l.Info("contract is missing on the chain, deploying...",
			zap.Stringer("admin", prm.Admin), zap.Int("blocks per day", prm.BlocksPerDay))

		err = sendAndWait(ctx, prm, management.Hash, "deploy", []any{prm.Admin, prm.BlocksPerDay})
		if err != nil {
			return util.Uint160{}, fmt.Errorf("deploy contract: %w", err)
		}

		l.Info("contract successfully deployed")
	default:
		return util.Uint160{}, fmt.Errorf("get contract state: %w", err)
	}

	return addr, nil
}

// ContractAddress returns the address of the contract deployed by the sender.
func ContractAddress(sender util.Uint160, nefFile nef.File, m manifest.Manifest) util.Uint160 {
	return state.CreateContractHash(sender, nefFile.Checksum, m.Name)
}

func checkPrm(prm Prm) error {
	switch {
	case prm.Logger == nil:
		return errors.New("missing logger")
	case prm.Blockchain == nil:
		return errors.New("missing blockchain")
	case prm.Actor == nil:
		return errors.New("missing actor")
	case prm.Manifest.Name == "":
		return errors.New("missing contract name")
	case prm.Admin.Equals(util.Uint160{}):
		return errors.New("missing admin")
	case prm.BlocksPerDay < 0:
		return fmt.Errorf("negative blocks per day %d", prm.BlocksPerDay)
	}
	return nil
}

func sendAndWait(ctx context.Context, prm Prm, contract util.Uint160, method string, data any) error {
	rawNEF, err := prm.NEF.Bytes()
	if err != nil {
		return fmt.Errorf("encode NEF: %w", err)
	}

	rawManifest, err := json.Marshal(&prm.Manifest)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	txHash, vub, err := prm.Actor.SendCall(contract, method, rawNEF, rawManifest, data)
	if err != nil {
		return fmt.Errorf("send transaction: %w", err)
	}

	prm.Logger.Info("transaction sent, waiting...", zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	res, err := prm.Actor.WaitAny(ctx, vub, txHash)
	if err != nil {
		return fmt.Errorf("wait for transaction %s: %w", txHash.StringLE(), err)
	}

	if res.VMState != vmstate.Halt {
		return fmt.Errorf("transaction %s failed: %s", txHash.StringLE(), res.FaultException)
	}

	return nil
}

func isErrContractNotFound(err error) bool {
	return strings.Contains(err.Error(), "Unknown contract")
}
