package contracts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/stretchr/testify/require"
)

func TestGetMissingFiles(t *testing.T) {
	_fs := fstest.MapFS{}

	_, err := readContractFromDir(_fs, claimableDir)
	require.ErrorContains(t, err, "open NEF")

	_fs[claimableDir+"/"+nefName] = &fstest.MapFile{}
	_, err = readContractFromDir(_fs, claimableDir)
	require.ErrorContains(t, err, "open manifest")
}

func TestReadInvalidFormat(t *testing.T) {
	var (
		_fs          = fstest.MapFS{}
		nefPath      = claimableDir + "/" + nefName
		manifestPath = claimableDir + "/" + manifestName
	)

	_, validNEF := anyValidNEF(t)
	_, validManifest := anyValidManifest(t, "Claimable balance")

	_fs[nefPath] = &fstest.MapFile{Data: validNEF}
	_fs[manifestPath] = &fstest.MapFile{Data: validManifest}

	c, err := readContractFromDir(_fs, claimableDir)
	require.NoError(t, err)
	require.Equal(t, "Claimable balance", c.Manifest.Name)

	_fs[nefPath] = &fstest.MapFile{Data: []byte("not a NEF")}

	_, err = readContractFromDir(_fs, claimableDir)
	require.ErrorIs(t, err, errInvalidNEF)
	require.ErrorContains(t, err, "invalid NEF: ")

	_fs[nefPath] = &fstest.MapFile{Data: validNEF}
	_fs[manifestPath] = &fstest.MapFile{Data: []byte("not a manifest")}

	_, err = readContractFromDir(_fs, claimableDir)
	require.ErrorIs(t, err, errInvalidManifest)
}

func TestGetClaimable(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, claimableDir)
	require.NoError(t, os.Mkdir(dir, 0700))

	_, err := GetClaimable(root)
	require.Error(t, err)

	expNEF, validNEF := anyValidNEF(t)
	_, validManifest := anyValidManifest(t, "Claimable balance")

	require.NoError(t, os.WriteFile(filepath.Join(dir, nefName), validNEF, 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifestName), validManifest, 0600))

	c, err := GetClaimable(root)
	require.NoError(t, err)
	require.Equal(t, expNEF.Checksum, c.NEF.Checksum)
	require.Equal(t, "Claimable balance", c.Manifest.Name)

	c, err = ReadDir(dir)
	require.NoError(t, err)
	require.Equal(t, expNEF.Script, c.NEF.Script)
}

func anyValidNEF(tb testing.TB) (nef.File, []byte) {
	script := make([]byte, 32)

	_nef, err := nef.NewFile(script)
	require.NoError(tb, err)

	bNEF, err := _nef.Bytes()
	require.NoError(tb, err)

	return *_nef, bNEF
}

func anyValidManifest(tb testing.TB, name string) (manifest.Manifest, []byte) {
	_manifest := manifest.NewManifest(name)

	jManifest, err := json.Marshal(_manifest)
	require.NoError(tb, err)

	return *_manifest, jManifest
}
