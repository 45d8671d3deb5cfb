/*
Package signers implements the signer registry of a multiclique account.

The registry is a singleton holding the ordered set of Ed25519 public keys
that may sign on behalf of the account, together with the default threshold:
the number of signatures required for any operation that is not governed by
a dedicated policy.

The registry is created once, from the genesis file or with Initialize. Any
later change must be authorized by the account itself.
*/
package signers
