package common

import "github.com/nspcc-dev/neo-go/pkg/interop/native/std"

// Version of the contracts, kept in sync with the VERSION file.
const (
	major = 0
	minor = 1
	patch = 0

	Version = major*1_000_000 + minor*1_000 + patch
)

// PrevVersion is the oldest deployed version the code can be updated from.
// Storage schema does not change between versions, so no migration is run.
const PrevVersion = 0*1_000_000 + 1*1_000 + 0

const (
	// ErrVersionMismatch is thrown by CheckVersion when deployed code is too
	// old to be updated.
	ErrVersionMismatch = "previous version mismatch"

	// ErrAlreadyUpdated is thrown by CheckVersion when deployed code has the
	// same version.
	ErrAlreadyUpdated = "contract is already of the latest version"
)

// CheckVersion panics unless the code of version from can be updated to the
// current one.
func CheckVersion(from int) {
	switch {
	case from < PrevVersion:
		panic(ErrVersionMismatch + ": expected >=" + std.Itoa(PrevVersion, 10))
	case from == Version:
		panic(ErrAlreadyUpdated + ": " + std.Itoa(Version, 10))
	}
}

// AppendVersion appends the version of the running code to the update data,
// it is passed to CheckVersion by _deploy of the new code.
func AppendVersion(data any) []any {
	if data == nil {
		return []any{Version}
	}
	return append(data.([]any), Version)
}
