package dump

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
)

// IterateDumps passes ID and Reader of each dump made by Creator in the
// specified directory into f. Entries which are not dumps are skipped,
// missing directory has no dumps.
func IterateDumps(dir string, f func(ID, *Reader)) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read dumps directory: %w", err)
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}

		id, err := parseID(e.Name())
		if err != nil {
			continue
		}

		r, err := Open(dir, id)
		if err != nil {
			return fmt.Errorf("open dump '%s': %w", id, err)
		}

		f(id, r)
	}

	return nil
}

type kv struct{ k, v []byte }

// Reader reads contracts collected in the superior dump.
type Reader struct {
	states   []dumpContractState
	mStorage map[string][]kv
}

// Open reads the dump with the given ID from the directory.
func Open(dir string, id ID) (*Reader, error) {
	p := dumpDir(dir, id)

	data, err := os.ReadFile(filepath.Join(p, contractsFile))
	if err != nil {
		return nil, fmt.Errorf("read contract states: %w", err)
	}

	var r Reader

	err = json.Unmarshal(data, &r.states)
	if err != nil {
		return nil, fmt.Errorf("decode contract states from JSON: %w", err)
	}

	f, err := os.Open(filepath.Join(p, storageFile))
	if err != nil {
		return nil, fmt.Errorf("open storage items: %w", err)
	}
	defer f.Close()

	err = r.readStorage(f)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

func (x *Reader) readStorage(r io.Reader) error {
	_csv := csv.NewReader(r)
	_csv.FieldsPerRecord = storageFields
	_csv.ReuseRecord = true

	x.mStorage = make(map[string][]kv)

	for {
		rec, err := _csv.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read next CSV record: %w", err)
		}

		var item kv

		item.k, err = decodeBytes(rec[1])
		if err != nil {
			return fmt.Errorf("decode storage item key: %w", err)
		}

		item.v, err = decodeBytes(rec[2])
		if err != nil {
			return fmt.Errorf("decode storage item value: %w", err)
		}

		x.mStorage[rec[0]] = append(x.mStorage[rec[0]], item)
	}
}

// ContractState returns state of the named contract from the superior dump.
func (x *Reader) ContractState(name string) (state.Contract, bool) {
	for i := range x.states {
		if x.states[i].Name == name {
			return x.states[i].State, true
		}
	}
	return state.Contract{}, false
}

// IterateContractStorage iterates over storage items of the named contract
// in the order they were dumped and passes them into f. It breaks on any f's
// error and returns it.
func (x *Reader) IterateContractStorage(name string, f func(key, value []byte) error) error {
	kvs := x.mStorage[name]
	for i := range kvs {
		err := f(kvs[i].k, kvs[i].v)
		if err != nil {
			return err
		}
	}
	return nil
}
