package dump

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
)

const (
	// separates label and block in the dump directory name
	sep = "-"

	contractsFile = "contracts.json"
	storageFile   = "storage.csv"

	// name, key, value
	storageFields = 3
)

// ID is a unique identifier of the dump. It names the dump directory.
type ID struct {
	// Label of the dump source (e.g. testnet, mainnet).
	Label string
	// Blockchain height at which the state was pulled.
	Block uint32
}

// String returns hyphen-separated ID fields.
func (x ID) String() string {
	return x.Label + sep + strconv.FormatUint(uint64(x.Block), 10)
}

// parseID decodes ID from the dump directory name. Label may contain
// separators itself, the block is always the last part.
func parseID(s string) (ID, error) {
	i := strings.LastIndex(s, sep)
	if i <= 0 {
		return ID{}, fmt.Errorf("expected '<label>%s<block>', got '%s'", sep, s)
	}

	n, err := strconv.ParseUint(s[i+1:], 10, 32)
	if err != nil {
		return ID{}, fmt.Errorf("decode block number from '%s': %w", s[i+1:], err)
	}

	return ID{Label: s[:i], Block: uint32(n)}, nil
}

// dumpContractState is a JSON-encoded information about the dumped contract.
type dumpContractState struct {
	Name  string         `json:"name"`
	State state.Contract `json:"state"`
}

func dumpDir(dir string, id ID) string {
	return filepath.Join(dir, id.String())
}

// storage items are hex-encoded, so key prefixes stay readable.
func encodeBytes(b []byte) string {
	return hex.EncodeToString(b)
}

func decodeBytes(s string) ([]byte, error) {
	return hex.DecodeString(s)
}
