/*
Package dump provides I/O operations for collected states of the Claimable
contract.

A dump keeps the contract state and all its storage items at some block,
so escrowed balances of a "live" contract can be inspected offline and
reproduced in tests. Dumps are stored in the file system using
human-readable encoding, see Creator for the layout. Storage items of the
Claimable contract are decoded with DecodeState.
*/
package dump
