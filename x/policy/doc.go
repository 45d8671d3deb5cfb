/*
Package policy implements the policy directory of a multiclique account.

A target contract can be bound to a policy. When the account authorizes an
invocation of a bound target, the policy decides how many signatures are
required and may keep its own state, for example the amount already spent.
Unbound targets fall back to the default threshold of the signer registry.

Policies are plugged in through the Capability interface and resolved by
their address with a Resolver.
*/
package policy
