/*
Package contracts provides access to compiled contracts of the repository.

Compiled contract is a directory with 'contract.nef' and 'manifest.json'
files, the layout produced by the build for each contract directory.
*/
package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
)

const (
	claimableDir = "claimable"

	nefName      = "contract.nef"
	manifestName = "manifest.json"
)

// Contract groups information about compiled Neo contract.
type Contract struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

var (
	errInvalidNEF      = errors.New("invalid NEF")
	errInvalidManifest = errors.New("invalid manifest")
)

// GetClaimable returns compiled Claimable contract from the given root of
// the contracts tree (e.g. 'contracts' directory of the repository).
func GetClaimable(root string) (Contract, error) {
	c, err := readContractFromDir(os.DirFS(root), claimableDir)
	if err != nil {
		return c, fmt.Errorf("read contract %s: %w", claimableDir, err)
	}
	return c, nil
}

// ReadDir returns compiled contract stored in the given directory.
func ReadDir(dir string) (Contract, error) {
	return readContractFromDir(os.DirFS(dir), ".")
}

func readContractFromDir(_fs fs.FS, dir string) (Contract, error) {
	var c Contract

	// fs.FS paths are slash-separated on any OS, so filepath.Join() is not
	// applicable.
	fNEF, err := _fs.Open(path.Join(dir, nefName))
	if err != nil {
		return c, fmt.Errorf("open NEF: %w", err)
	}
	defer fNEF.Close()

	fManifest, err := _fs.Open(path.Join(dir, manifestName))
	if err != nil {
		return c, fmt.Errorf("open manifest: %w", err)
	}
	defer fManifest.Close()

	bReader := io.NewBinReaderFromIO(fNEF)
	c.NEF.DecodeBinary(bReader)
	if bReader.Err != nil {
		return c, fmt.Errorf("%w: %v", errInvalidNEF, bReader.Err)
	}

	err = json.NewDecoder(fManifest).Decode(&c.Manifest)
	if err != nil {
		return c, fmt.Errorf("%w: %v", errInvalidManifest, err)
	}

	return c, nil
}
