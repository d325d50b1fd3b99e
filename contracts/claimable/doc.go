/*
Package claimable contains Claimable contract which keeps escrowed token
balances until their claimants take them.

The contract admin is set at deployment. Only the admin can deposit funds:
Deposit pulls the sum of claimant amounts from the admin account into the
contract and records claimants of the token. Each claimant can then take its
amount once with Claim, after that it is removed from the record. The
contract has no cancellation: deposited funds leave the contract through
claims only.

Up to 10 claimants can be named by a single deposit. Deposits of the same
token are merged into one record, new claimants go first. A claim pays the
first entry of the claimant only, so an account named by several deposits
can claim several times. Claims can't be nested, so a claimant contract
can't claim again while its payout is in progress.

The contract keeps a storage horizon (block height) refreshed by claims,
repeated deposits and ExtendTTL calls. The horizon is moved to 7 days ahead
once less than 6 days remain.

# Contract notifications

Deposit notification. This notification is produced when funds are locked for
claimants.

	Deposit:
	  - name: token
	    type: Hash160
	  - name: from
	    type: Hash160
	  - name: amount
	    type: Integer

Claim notification. This notification is produced when a claimant takes its
amount.

	Claim:
	  - name: token
	    type: Hash160
	  - name: claimant
	    type: Hash160
	  - name: amount
	    type: Integer
*/
package claimable

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'i' -> []byte{1}
   initialization marker
 - 'a' -> interop.Hash160
   admin account
 - 'd' -> int
   number of blocks per day
 - 't' -> int
   storage horizon, block height
 - 'l' -> []byte{1}
   claim lock, exists only during a Claim invocation
 - 'b' + interop.Hash160 -> std.Serialize(ClaimableBalance)
   token record, key suffix is the token contract hash

# Setting
Admin and day length are set by _deploy and never change.

# Balances
Records are never deleted: a record stays with empty claimant list after the
last claim.
*/
