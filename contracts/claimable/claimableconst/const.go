// Package claimableconst contains constants shared by the Claimable contract
// and its off-chain clients.
package claimableconst

const (
	// MaxClaimants is the maximum number of claimants a single deposit may
	// name.
	MaxClaimants = 10

	// DefaultBlocksPerDay is the number of blocks per day used when the
	// contract is deployed without explicit setting (15-second blocks).
	DefaultBlocksPerDay = 5760

	// TargetTTLDays is the number of days the contract storage is kept alive
	// after a refresh.
	TargetTTLDays = 7
	// RenewalThresholdDays is the number of remaining days below which the
	// storage lifetime is refreshed.
	RenewalThresholdDays = TargetTTLDays - 1

	// DepositMarker is a data argument of the token transfer made by
	// Deposit. Payments without it are rejected.
	DepositMarker = "claimable deposit"
)

// Storage keys and prefixes.
const (
	AdminKey        = 'a'
	InitKey         = 'i'
	HorizonKey      = 't'
	BlocksPerDayKey = 'd'
	BalancePrefix   = 'b'
	// Set while Claim pays out, never persisted.
	ClaimLockKey = 'l'
)

// Exception messages.
const (
	ErrNotAdmin         = "only admin may deposit"
	ErrTooManyClaimants = "too many claimants"
	ErrInvalidAmount    = "invalid claimant amount"
	ErrAmountOverflow   = "amount overflow"
	ErrTransferFailed   = "token transfer failed"
	ErrNoBalance        = "no balance found"
	ErrNoClaimant       = "no matching claimant found"
	ErrDirectPayment    = "direct payments are not accepted"
	ErrInvalidAdmin     = "invalid admin"
	ErrInvalidDayLength = "invalid blocks per day"
	ErrInvalidToken     = "invalid token"
	ErrClaimInProgress  = "claim is already in progress"
)
