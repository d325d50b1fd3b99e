package dump

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
)

// Creator dumps states of the Neo smart contracts, the Claimable contract in
// particular. Each dump is a '<label>-<block>' directory with files:
//
//	'contracts.json': JSON array of contracts' states
//	'storage.csv': CSV of contracts' storages
//
// Storage CSV records are 'name,key,value' where name stands for contract
// name and binary key-value are hex-encoded.
//
// Use IterateDumps or Open to access existing dumps.
type Creator struct {
	contractsPath string

	storage *os.File
	csv     *csv.Writer

	contracts []dumpContractState
}

// NewCreator returns Creator which dumps contracts into given directory. The
// dump is identified by specified ID. Resulting Creator should be closed when
// finished working with it.
//
// NewCreator fails with [os.ErrExist] if dump with provided ID already exists.
func NewCreator(dir string, id ID) (*Creator, error) {
	p := dumpDir(dir, id)

	err := os.Mkdir(p, 0700)
	if err != nil {
		return nil, fmt.Errorf("create dump directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(p, storageFile), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("create storage file: %w", err)
	}

	return &Creator{
		contractsPath: filepath.Join(p, contractsFile),
		storage:       f,
		csv:           csv.NewWriter(f),
	}, nil
}

// AddContract adds given state of the named Neo contract to the resulting dump
// and returns StorageWriter for the contract storage. After all needed
// contracts are added, they should be flushed via Flush method.
func (x *Creator) AddContract(name string, st state.Contract) *StorageWriter {
	x.contracts = append(x.contracts, dumpContractState{
		Name:  name,
		State: st,
	})

	return &StorageWriter{
		name: name,
		csv:  x.csv,
	}
}

// Flush writes contract states and flushes accumulated storage items.
func (x *Creator) Flush() error {
	x.csv.Flush()

	err := x.csv.Error()
	if err != nil {
		return fmt.Errorf("flush CSV data: %w", err)
	}

	data, err := json.MarshalIndent(x.contracts, "", " ")
	if err != nil {
		return fmt.Errorf("encode contract states to JSON: %w", err)
	}

	err = os.WriteFile(x.contractsPath, data, 0600)
	if err != nil {
		return fmt.Errorf("write contract states: %w", err)
	}

	return nil
}

// Close releases underlying resources of the Creator and makes it unusable.
func (x *Creator) Close() {
	_ = x.storage.Close()
}

// StorageWriter writes data into the superior contract's storage dump.
type StorageWriter struct {
	name string
	csv  *csv.Writer
}

// Write saves given binary key-value into the contract dump as storage item.
func (x *StorageWriter) Write(key, value []byte) error {
	err := x.csv.Write([]string{x.name, encodeBytes(key), encodeBytes(value)})
	if err != nil {
		return fmt.Errorf("write storage item as CSV data: %w", err)
	}

	return nil
}
