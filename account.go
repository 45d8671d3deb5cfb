package multiclique

// accountExtension is the extension name of the account condition.
const accountExtension = "clique"

// AccountCondition returns the condition representing the multiclique account
// itself. It is placed in the request context only after the account's own
// authorization rules approved the transaction. Governance operations, that
// modify the signer registry or the policy directory, require it.
func AccountCondition() Condition {
	return NewCondition(accountExtension, "account", []byte("self"))
}

// AccountAddress returns the address of the multiclique account.
func AccountAddress() Address {
	return AccountCondition().Address()
}
