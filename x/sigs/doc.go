/*
Package sigs provides basic authentication
middleware to verify the ed25519 signatures on the transaction.

Signatures are bound to the chain id, so a transaction signed
for one network cannot be replayed on another. Each signature
also carries the current sequence of its signer, which is
incremented once the signature is accepted: the same signed
transaction is accepted at most once.
*/
package sigs
