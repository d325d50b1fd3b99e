package dump

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/claimable-contract/contracts/claimable/claimableconst"
	"github.com/nspcc-dev/claimable-contract/rpc/claimable"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// ContractState is a decoded storage of the Claimable contract.
type ContractState struct {
	Initialized  bool
	Admin        util.Uint160
	BlocksPerDay int64
	// Block height until which the contract storage is kept alive.
	Horizon  int64
	Balances []*claimable.ClaimableBalance
}

// DecodeState decodes storage of the named Claimable contract from the dump.
func DecodeState(r *Reader, name string) (*ContractState, error) {
	if _, ok := r.ContractState(name); !ok {
		return nil, fmt.Errorf("contract '%s' is missing in the dump", name)
	}

	var res ContractState

	err := r.IterateContractStorage(name, res.addItem)
	if err != nil {
		return nil, err
	}

	if !res.Initialized {
		return nil, errors.New("contract is not initialized")
	}

	return &res, nil
}

func (x *ContractState) addItem(key, value []byte) error {
	if len(key) == 0 {
		return errors.New("empty storage key")
	}

	switch key[0] {
	case claimableconst.InitKey:
		x.Initialized = true
	case claimableconst.AdminKey:
		u, err := util.Uint160DecodeBytesBE(value)
		if err != nil {
			return fmt.Errorf("decode admin: %w", err)
		}
		x.Admin = u
	case claimableconst.BlocksPerDayKey:
		x.BlocksPerDay = bigint.FromBytes(value).Int64()
	case claimableconst.HorizonKey:
		x.Horizon = bigint.FromBytes(value).Int64()
	case claimableconst.BalancePrefix:
		token, err := util.Uint160DecodeBytesBE(key[1:])
		if err != nil {
			return fmt.Errorf("decode token from balance key: %w", err)
		}

		item, err := stackitem.Deserialize(value)
		if err != nil {
			return fmt.Errorf("deserialize balance of %s: %w", token.StringLE(), err)
		}

		var b claimable.ClaimableBalance

		err = b.FromStackItem(item)
		if err != nil {
			return fmt.Errorf("decode balance of %s: %w", token.StringLE(), err)
		}

		if !b.Token.Equals(token) {
			return fmt.Errorf("balance of %s is stored under %s key", b.Token.StringLE(), token.StringLE())
		}

		x.Balances = append(x.Balances, &b)
	default:
		return fmt.Errorf("unexpected storage key prefix 0x%02x", key[0])
	}

	return nil
}
