/*
Package clique implements the authorization decision of a multiclique account.

An authorization request carries a payload digest, the signatures of that
payload and the list of contexts (contract invocations) the signers want to
authorize. Every signature must come from a registered signer and be valid.
Then each context must be satisfied: a context bound to a policy must reach
the threshold computed by that policy, which is also given a chance to update
its own state. Any other context must reach the default threshold.

The decision is all or nothing. Policy state changes of a request are written
only if every context of the request was authorized.

The Decorator runs the decision for transactions carrying an authorization
request and, on success, grants the account condition to the rest of the
stack. Handlers that govern the account (x/signers, x/policy) require it.
*/
package clique
