/*
Package multiclique defines the common interfaces that tie the multiclique
extensions together, as well as the simpler shared types (conditions,
addresses, contexts and store interfaces).

A multiclique account is guarded by a set of Ed25519 signers and a default
threshold. Individual target contracts can be bound to a policy that computes
its own threshold and maintains its own state. The decision itself is made by
the x/clique extension, the signer registry lives in x/signers and policy
bindings in x/policy.

Every state transition is executed against a cache wrapped KVStore, so that a
failing authorization leaves no trace in the underlying store.
*/
package multiclique
